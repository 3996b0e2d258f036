package diagfmt

import (
	"encoding/json"
	"io"

	"omega/internal/diag"
	"omega/internal/source"
)

// LocationJSON is a byte range plus, on request, its line/column ends.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	OldText     string       `json:"old_text,omitempty"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

type FixJSON struct {
	Title string        `json:"title"`
	Edits []FixEditJSON `json:"edits,omitempty"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput — корень JSON-вывода.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// jsonBuilder carries the options through the conversion.
type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) location(span source.Span) LocationJSON {
	loc := LocationJSON{StartByte: span.Start, EndByte: span.End}
	f, ok := b.fs.Lookup(span.File)
	if !ok {
		return loc
	}
	loc.File = displayName(f.Name, b.opts.PathMode)
	if b.opts.IncludePositions {
		start, end := b.fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func (b jsonBuilder) diagnostic(d diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: b.location(d.Primary),
	}
	// тайминги живут в заметке, без неё запись пустая
	if b.opts.IncludeNotes || d.Code == diag.ObsTimings {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, NoteJSON{Message: n.Msg, Location: b.location(n.Span)})
		}
	}
	if b.opts.IncludeFixes {
		for _, fix := range d.Fixes {
			out.Fixes = append(out.Fixes, b.fix(fix))
		}
	}
	return out
}

func (b jsonBuilder) fix(fix diag.Fix) FixJSON {
	out := FixJSON{Title: fix.Title}
	for _, edit := range fix.Edits {
		e := FixEditJSON{
			Location: b.location(edit.Span),
			NewText:  edit.NewText,
			OldText:  replacedText(b.fs, edit),
		}
		if b.opts.IncludePreviews {
			if p, err := previewEdit(b.fs, edit); err == nil {
				e.BeforeLines, e.AfterLines = p.before, p.after
			}
		}
		out.Edits = append(out.Edits, e)
	}
	return out
}

// BuildDiagnosticsOutput converts the bag without encoding it; opts.Max
// truncates the output, not the bag.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	b := jsonBuilder{fs: fs, opts: opts}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items))}
	for _, d := range items {
		out.Diagnostics = append(out.Diagnostics, b.diagnostic(d))
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes BuildDiagnosticsOutput as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
