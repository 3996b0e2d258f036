package lexer

import (
	"fmt"

	"omega/internal/token"
)

// Stream is the parser-facing view of a Scanner: one token of lookahead,
// with lexical errors set aside so the parser only ever sees tokens.
type Stream struct {
	sc   *Scanner
	look token.Token
	has  bool
	errs []*Error
}

// NewStream wraps sc. The stream takes over consumption of sc.
func NewStream(sc *Scanner) *Stream {
	return &Stream{sc: sc}
}

// fill pulls results until a token is buffered or input ends.
func (st *Stream) fill() bool {
	for !st.has {
		r, ok := st.sc.Next()
		if !ok {
			return false
		}
		if r.Err != nil {
			st.errs = append(st.errs, r.Err)
			continue
		}
		st.look, st.has = r.Token, true
	}
	return true
}

// Peek returns the next token without consuming it.
func (st *Stream) Peek() (token.Token, bool) {
	if !st.fill() {
		return token.Token{}, false
	}
	return st.look, true
}

// Consume returns the next token and advances past it.
func (st *Stream) Consume() (token.Token, bool) {
	if !st.fill() {
		return token.Token{}, false
	}
	st.has = false
	return st.look, true
}

// Match consumes the next token only when it has the given kind and lexeme.
// An empty lexeme accepts any token of that kind.
func (st *Stream) Match(kind token.Kind, lexeme string) (token.Token, bool) {
	tok, ok := st.Peek()
	if !ok || !matches(tok, kind, lexeme) {
		return token.Token{}, false
	}
	st.has = false
	return tok, true
}

// Expect is Match that fails with *MismatchError instead of false.
func (st *Stream) Expect(kind token.Kind, lexeme string) (token.Token, error) {
	tok, ok := st.Peek()
	if !ok {
		return token.Token{}, &MismatchError{Want: kind, Lexeme: lexeme, EOF: true}
	}
	if !matches(tok, kind, lexeme) {
		return token.Token{}, &MismatchError{Want: kind, Lexeme: lexeme, Got: tok}
	}
	st.has = false
	return tok, nil
}

// AtEnd reports whether no tokens remain.
func (st *Stream) AtEnd() bool {
	return !st.fill()
}

// Errors returns the lexical errors skipped so far.
func (st *Stream) Errors() []*Error {
	return st.errs
}

func matches(tok token.Token, kind token.Kind, lexeme string) bool {
	return tok.Kind == kind && (lexeme == "" || tok.Lexeme == lexeme)
}

// MismatchError reports an unexpected token (or the end of input) where a
// specific token was required.
type MismatchError struct {
	Want   token.Kind
	Lexeme string // пусто — подходит любой токен вида Want
	Got    token.Token
	EOF    bool
}

func (e *MismatchError) Error() string {
	want := e.Want.String()
	if e.Lexeme != "" {
		want = fmt.Sprintf("%s %q", e.Want, e.Lexeme)
	}
	if e.EOF {
		return fmt.Sprintf("expected %s, got end of input", want)
	}
	return fmt.Sprintf("expected %s, got %s", want, e.Got)
}
