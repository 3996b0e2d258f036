package token

import "fmt"

// Coord is a 1-based position of the first character of a lexeme.
type Coord struct {
	Line   uint32 `json:"line" msgpack:"line"`
	Column uint32 `json:"column" msgpack:"column"`
}

func (c Coord) String() string {
	return fmt.Sprintf("%d:%d", c.Line, c.Column)
}

// IsZero reports whether the coordinate was never set (valid coords start at 1:1).
func (c Coord) IsZero() bool {
	return c.Line == 0 && c.Column == 0
}

// Before orders coordinates top-to-bottom, left-to-right.
func (c Coord) Before(other Coord) bool {
	if c.Line != other.Line {
		return c.Line < other.Line
	}
	return c.Column < other.Column
}

// Token is one classified lexeme. Tokens are values and never mutated after
// the scanner produced them.
type Token struct {
	Kind   Kind   `json:"kind" msgpack:"kind"`
	Lexeme string `json:"lexeme" msgpack:"lexeme"`
	Coord  Coord  `json:"coord" msgpack:"coord"`
}

func (t Token) String() string {
	return fmt.Sprintf("Token(kind=%s, lex=%q, @=%s)", t.Kind, t.Lexeme, t.Coord)
}

// Is reports whether the token has the given kind and lexeme.
func (t Token) Is(kind Kind, lexeme string) bool {
	return t.Kind == kind && t.Lexeme == lexeme
}

// IsPunctuation reports whether the token is the punctuation symbol sym.
// An empty sym matches any punctuation.
func (t Token) IsPunctuation(sym string) bool {
	return t.Kind == Punctuation && (sym == "" || t.Lexeme == sym)
}

// IsKeyword reports whether the token is the keyword kw.
// An empty kw matches any keyword.
func (t Token) IsKeyword(kw string) bool {
	return t.Kind == Keyword && (kw == "" || t.Lexeme == kw)
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Id }

// IsLiteral reports whether the token is an integer or string literal.
func (t Token) IsLiteral() bool {
	return t.Kind == IntLiteral || t.Kind == StringLiteral
}
