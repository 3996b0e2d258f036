package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"omega/internal/diag"
	"omega/internal/lexer"
	"omega/internal/source"
)

// scanInto сканирует буфер и складывает диагностики лексера в bag
func scanInto(t *testing.T, name, content string) (*source.FileSet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(content))
	bag := diag.NewBag(16)
	sc := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	sc.Collect()
	return fs, bag
}

func prettyString(t *testing.T, fs *source.FileSet, bag *diag.Bag, opts PrettyOpts) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, opts); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	return buf.String()
}

func TestPrettyCaret(t *testing.T) {
	fs, bag := scanInto(t, "test.om", "x = a ? b\n")
	got := prettyString(t, fs, bag, PrettyOpts{})
	want := "test.om:1:7: ERROR LEX1001: invalid character '?': character does not start any token\n" +
		"1 | x = a ? b\n" +
		"  |       ^\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs, bag := scanInto(t, "ctx.om", "var a = 1\nvar b = 2\nvar c = $\n")
	got := prettyString(t, fs, bag, PrettyOpts{Context: 1})
	if !strings.Contains(got, "2 | var b = 2\n3 | var c = $\n") {
		t.Fatalf("expected one line of context, got:\n%s", got)
	}
	if strings.Contains(got, "var a") {
		t.Fatalf("context must stop at one line, got:\n%s", got)
	}
}

func TestPrettyCaretAlignment(t *testing.T) {
	tests := []struct {
		name    string
		content string
		pad     int
		marker  string
	}{
		{"tab", "\tx @", 6, "^"},
		{"wide runes", "\"日本\" @", 7, "^"},
		{"bad sequence", "a !x", 2, "^~"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, bag := scanInto(t, "w.om", tt.content)
			got := prettyString(t, fs, bag, PrettyOpts{TabWidth: 4})
			caret := "  | " + strings.Repeat(" ", tt.pad) + tt.marker + "\n"
			if !strings.Contains(got, caret) {
				t.Fatalf("expected caret line %q, got:\n%s", caret, got)
			}
		})
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs, bag := scanInto(t, "/very/long/absolute/path/to/some/nested/directory/fix.om", "if !done {\n")
	got := prettyString(t, fs, bag, PrettyOpts{ShowNotes: true, ShowFixes: true, ShowPreview: true})

	for _, want := range []string{
		"fix.om:1:4: ERROR LEX1001",
		`fix #1: replace with "!="`,
		`fix.om:1:4-1:5 apply="!="`,
		"preview:",
		"- if !done {",
		"+ if !=done {",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
	if strings.Contains(got, "/very/long") {
		t.Errorf("auto path mode must shorten long names:\n%s", got)
	}
}

func TestPrettyUnterminatedStringFix(t *testing.T) {
	fs, bag := scanInto(t, "s.om", `print "hi`)
	got := prettyString(t, fs, bag, PrettyOpts{ShowFixes: true, ShowPreview: true})
	for _, want := range []string{
		"s.om:1:9: ERROR LEX1002: unterminated string literal",
		"fix #1: close the string literal",
		`+ print "hi"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("n.om", []byte("var x = 1\n"))
	bag := diag.NewBag(4)
	d := diag.New(diag.SevWarning, diag.LexInfo, source.Span{File: id, Start: 4, End: 5}, "look here")
	d = d.WithNote(source.Span{File: id, Start: 8, End: 9}, "and here")
	bag.Add(d)

	got := prettyString(t, fs, bag, PrettyOpts{ShowNotes: true})
	if !strings.Contains(got, "n.om:1:5: WARNING LEX1000: look here") {
		t.Errorf("header missing:\n%s", got)
	}
	if !strings.Contains(got, "note: n.om:1:9: and here") {
		t.Errorf("note missing:\n%s", got)
	}
}

func TestPrettyColor(t *testing.T) {
	fs, bag := scanInto(t, "c.om", "@")
	plain := prettyString(t, fs, bag, PrettyOpts{})
	colored := prettyString(t, fs, bag, PrettyOpts{Color: true})
	if strings.Contains(plain, "\x1b[") {
		t.Errorf("plain output contains escapes: %q", plain)
	}
	if !strings.Contains(colored, "\x1b[") {
		t.Errorf("colored output has no escapes: %q", colored)
	}
}
