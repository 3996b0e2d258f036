package testkit

import (
	"strings"
	"testing"

	"omega/internal/lexer"
	"omega/internal/source"
	"omega/internal/token"
)

func scan(t *testing.T, src string) (*source.File, []token.Token, []*lexer.Error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("kit.om", []byte(src)))
	toks, errs := lexer.New(file, lexer.Options{}).Collect()
	return file, toks, errs
}

func TestScannerOutputHoldsInvariants(t *testing.T) {
	sources := []string{
		"var x = 1",
		"func f(a: int) string {\n\treturn \"héllo wörld\"\n}",
		"if a<=b&&c!=d { print length(s) }",
		"",
		"\n\n  \n",
		"x = «y» + 1",
		"print \"unterminated\nvar ok = 12_000",
		"a ! b @ c 9z",
	}
	for _, src := range sources {
		file, toks, _ := scan(t, src)
		if err := CheckTokenInvariants(file, toks); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCoverageOnCleanScan(t *testing.T) {
	file, toks, errs := scan(t, "while i < 10 {\n  i = i + 1 \"é\"\r\n}\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if err := CheckCoverage(file, toks); err != nil {
		t.Fatal(err)
	}
}

func TestCoverageDetectsSkippedText(t *testing.T) {
	file, toks, _ := scan(t, "a @ b")
	err := CheckCoverage(file, toks)
	if err == nil || !strings.Contains(err.Error(), "1:3") {
		t.Fatalf("expected uncovered '@' at 1:3, got %v", err)
	}
}

func TestInvariantViolations(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("kit.om", []byte("var x = \"s\"")))

	tests := []struct {
		name string
		toks []token.Token
		want string
	}{
		{
			name: "wrong column",
			toks: []token.Token{{Kind: token.Id, Lexeme: "x", Coord: token.Coord{Line: 1, Column: 1}}},
			want: "expected \"x\"",
		},
		{
			name: "out of order",
			toks: []token.Token{
				{Kind: token.Id, Lexeme: "x", Coord: token.Coord{Line: 1, Column: 5}},
				{Kind: token.Keyword, Lexeme: "var", Coord: token.Coord{Line: 1, Column: 1}},
			},
			want: "does not follow",
		},
		{
			name: "keyword as id",
			toks: []token.Token{{Kind: token.Id, Lexeme: "var", Coord: token.Coord{Line: 1, Column: 1}}},
			want: "classified as Id",
		},
		{
			name: "unquoted string",
			toks: []token.Token{{Kind: token.StringLiteral, Lexeme: "s", Coord: token.Coord{Line: 1, Column: 10}}},
			want: "expected \"\\\"s\\\"\"",
		},
		{
			name: "line out of range",
			toks: []token.Token{{Kind: token.Id, Lexeme: "x", Coord: token.Coord{Line: 2, Column: 1}}},
			want: "out of range",
		},
		{
			name: "past end of line",
			toks: []token.Token{{Kind: token.Id, Lexeme: "x", Coord: token.Coord{Line: 1, Column: 40}}},
			want: "past end of line",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTokenInvariants(file, tt.toks)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
