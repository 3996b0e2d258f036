package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"omega/internal/source"
)

type goldenLine struct {
	label string // error | warning | info | note
	code  string
	name  string
	pos   source.LineCol
	msg   string
}

// FormatGoldenDiagnostics renders one line per diagnostic for golden
// comparisons:
//
//	error LEX1001 main.om:1:5 invalid character '$'
//
// Lines are sorted by buffer name, position, label, code and message.
// Diagnostics pointing at unknown buffers are skipped.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []goldenLine
	add := func(label string, code Code, sp source.Span, msg string) {
		file, ok := fs.Lookup(sp.File)
		if !ok {
			return
		}
		lines = append(lines, goldenLine{
			label: label,
			code:  code.ID(),
			name:  file.Name,
			pos:   file.Position(sp.Start),
			msg:   oneLine(msg),
		})
	}
	for _, d := range diags {
		add(severityLabel(d.Severity), d.Code, d.Primary, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				add("note", d.Code, n.Span, n.Msg)
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b goldenLine) int {
		return cmp.Or(
			cmp.Compare(a.name, b.name),
			cmp.Compare(a.pos.Line, b.pos.Line),
			cmp.Compare(a.pos.Col, b.pos.Col),
			cmp.Compare(a.label, b.label),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.msg, b.msg),
		)
	})

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fmt.Sprintf("%s %s %s:%d:%d %s", l.label, l.code, l.name, l.pos.Line, l.pos.Col, l.msg)
	}
	return strings.Join(out, "\n")
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	}
	return "info"
}

// oneLine folds line breaks so each diagnostic stays on one golden line.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
