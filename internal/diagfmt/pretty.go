package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"omega/internal/diag"
	"omega/internal/source"
)

const defaultTabWidth = 4

type palette struct {
	err, warn, info *color.Color
	loc, gutter     *color.Color
	caret, note     *color.Color
	fix, added      *color.Color
	removed         *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:     mk(color.FgRed, color.Bold),
		warn:    mk(color.FgYellow, color.Bold),
		info:    mk(color.FgCyan, color.Bold),
		loc:     mk(color.Bold),
		gutter:  mk(color.FgBlue),
		caret:   mk(color.FgRed, color.Bold),
		note:    mk(color.FgCyan),
		fix:     mk(color.FgGreen),
		added:   mk(color.FgGreen),
		removed: mk(color.FgRed),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <name>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if opts.TabWidth <= 0 {
		opts.TabWidth = defaultTabWidth
	}
	p := newPalette(opts.Color)

	var sb strings.Builder
	for _, d := range bag.Items() {
		prettyOne(&sb, d, fs, opts, p)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func prettyOne(sb *strings.Builder, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	file, ok := fs.Lookup(d.Primary.File)
	if !ok {
		fmt.Fprintf(sb, "%s %s: %s\n", p.severity(d.Severity).Sprint(d.Severity), d.Code.ID(), d.Message)
		return
	}
	start, _ := fs.Resolve(d.Primary)
	name := displayName(file.Name, opts.PathMode)

	fmt.Fprintf(sb, "%s %s %s: %s\n",
		p.loc.Sprintf("%s:%d:%d:", name, start.Line, start.Col),
		p.severity(d.Severity).Sprint(d.Severity),
		d.Code.ID(),
		d.Message,
	)
	writeSnippet(sb, file, d.Primary, start.Line, opts, p)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			pos, _ := fs.Resolve(note.Span)
			fmt.Fprintf(sb, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), name, pos.Line, pos.Col, note.Msg)
		}
	}
	if opts.ShowFixes {
		for i, fix := range d.Fixes {
			writeFix(sb, fs, name, i+1, fix, opts, p)
		}
	}
}

// writeSnippet prints the context lines and the caret line under the span.
func writeSnippet(sb *strings.Builder, file *source.File, sp source.Span, line uint32, opts PrettyOpts, p palette) {
	if line == 0 || int(line) > max(file.LineCount(), 1) {
		return
	}
	first := uint32(1)
	if line > uint32(opts.Context) {
		first = line - uint32(opts.Context)
	}
	width := len(fmt.Sprint(line))

	for n := first; n <= line; n++ {
		text := expandTabs(file.GetLine(n), opts.TabWidth)
		fmt.Fprintf(sb, "%s %s\n", p.gutter.Sprintf("%*d |", width, n), text)
	}

	lineStart := file.LineStart(line)
	lineText := file.GetLine(line)
	lineLen, err := safecast.Conv[uint32](len(lineText))
	if err != nil {
		return
	}
	lineEnd := lineStart + lineLen

	from := min(max(sp.Start, lineStart), lineEnd)
	to := min(max(sp.End, from), lineEnd)
	prefix := string(file.Content[lineStart:from])
	segment := string(file.Content[from:to])

	pad := runewidth.StringWidth(expandTabs(prefix, opts.TabWidth))
	under := runewidth.StringWidth(expandTabs(prefix+segment, opts.TabWidth)) - pad
	marker := "^"
	if under > 1 {
		marker += strings.Repeat("~", under-1)
	}
	fmt.Fprintf(sb, "%s %s%s\n", p.gutter.Sprintf("%*s |", width, ""), strings.Repeat(" ", pad), p.caret.Sprint(marker))
}

func writeFix(sb *strings.Builder, fs *source.FileSet, name string, n int, fix diag.Fix, opts PrettyOpts, p palette) {
	fmt.Fprintf(sb, "  %s %s\n", p.fix.Sprintf("fix #%d:", n), fix.Title)
	for _, edit := range fix.Edits {
		start, end := fs.Resolve(edit.Span)
		fmt.Fprintf(sb, "    %s:%d:%d-%d:%d apply=%q\n", name, start.Line, start.Col, end.Line, end.Col, edit.NewText)
		if !opts.ShowPreview {
			continue
		}
		preview, err := previewEdit(fs, edit)
		if err != nil {
			continue
		}
		sb.WriteString("    preview:\n")
		for _, l := range preview.before {
			fmt.Fprintf(sb, "      %s\n", p.removed.Sprint("- "+l))
		}
		for _, l := range preview.after {
			fmt.Fprintf(sb, "      %s\n", p.added.Sprint("+ "+l))
		}
	}
}

// expandTabs replaces tabs with spaces up to the next tab stop, measuring
// display width the way a terminal does.
func expandTabs(s string, tabWidth int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}
