// Package testkit holds checks shared by scanner tests and fuzz harnesses.
package testkit

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"

	"omega/internal/source"
	"omega/internal/token"
)

// CheckTokenInvariants verifies a token stream against the buffer it came
// from, whether or not the scan reported errors:
//  1. every token has a valid kind and a non-empty lexeme (strings may be empty)
//  2. coordinates are strictly increasing
//  3. the token's source text starts at its rune column
//  4. identifiers and keywords are classified by the keyword table
func CheckTokenInvariants(file *source.File, toks []token.Token) error {
	if file == nil {
		return fmt.Errorf("nil file")
	}
	lineCount, err := safecast.Conv[uint32](file.LineCount())
	if err != nil {
		return fmt.Errorf("line count overflow: %w", err)
	}

	var prev token.Coord
	for i, tok := range toks {
		if !tok.Kind.Valid() {
			return fmt.Errorf("token %d: invalid kind %d", i, tok.Kind)
		}
		if tok.Lexeme == "" && tok.Kind != token.StringLiteral {
			return fmt.Errorf("token %d: empty lexeme for %s", i, tok.Kind)
		}
		if tok.Coord.Line == 0 || tok.Coord.Column == 0 || tok.Coord.Line > lineCount {
			return fmt.Errorf("token %d: coordinate %s out of range", i, tok.Coord)
		}
		if i > 0 && !prev.Before(tok.Coord) {
			return fmt.Errorf("token %d: coordinate %s does not follow %s", i, tok.Coord, prev)
		}
		prev = tok.Coord

		at, ok := runeOffset(file.GetLine(tok.Coord.Line), tok.Coord.Column)
		if !ok {
			return fmt.Errorf("token %d: column %d past end of line %d", i, tok.Coord.Column, tok.Coord.Line)
		}
		if want := sourceText(tok); !strings.HasPrefix(at, want) {
			return fmt.Errorf("token %d: expected %q at %s, found %q", i, want, tok.Coord, clip(at, len(want)))
		}

		switch tok.Kind {
		case token.Id:
			if token.LookupKeyword(tok.Lexeme) {
				return fmt.Errorf("token %d: keyword %q classified as Id", i, tok.Lexeme)
			}
		case token.Keyword:
			if !token.LookupKeyword(tok.Lexeme) {
				return fmt.Errorf("token %d: %q is not a keyword", i, tok.Lexeme)
			}
		case token.Punctuation:
			if !token.Symbols.Contains(tok.Lexeme) {
				return fmt.Errorf("token %d: %q is not a symbol", i, tok.Lexeme)
			}
		}
	}
	return nil
}

// CheckCoverage verifies that an error-free scan left nothing but whitespace
// between tokens.
func CheckCoverage(file *source.File, toks []token.Token) error {
	if err := CheckTokenInvariants(file, toks); err != nil {
		return err
	}
	byLine := make(map[uint32][]token.Token)
	for _, tok := range toks {
		byLine[tok.Coord.Line] = append(byLine[tok.Coord.Line], tok)
	}
	for num, text := range file.Lines() {
		runes := []rune(text)
		covered := make([]bool, len(runes))
		for _, tok := range byLine[num] {
			start := int(tok.Coord.Column) - 1
			for k := range utf8.RuneCountInString(sourceText(tok)) {
				covered[start+k] = true
			}
		}
		for k, r := range runes {
			if !covered[k] && !isSpace(r) {
				return fmt.Errorf("%d:%d: %q is not covered by any token", num, k+1, r)
			}
		}
	}
	return nil
}

func sourceText(tok token.Token) string {
	if tok.Kind == token.StringLiteral {
		return `"` + tok.Lexeme + `"`
	}
	return tok.Lexeme
}

// runeOffset returns the rest of text starting at the 1-based rune column.
func runeOffset(text string, col uint32) (string, bool) {
	for off := range text {
		if col == 1 {
			return text[off:], true
		}
		col--
	}
	return "", false
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}
