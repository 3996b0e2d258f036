package lexer

import (
	"errors"
	"fmt"

	"omega/internal/diag"
	"omega/internal/source"
	"omega/internal/token"
)

// ErrorKind classifies lexical defects.
type ErrorKind uint8

const (
	// InvalidCharacter: a character cannot start or continue a token in the
	// current context, including punctuation prefixes that match nothing.
	InvalidCharacter ErrorKind = iota + 1
	// UnexpectedLineEnd: a token that needs a terminator was still open when
	// the line ended.
	UnexpectedLineEnd
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidCharacter:
		return "InvalidCharacter"
	case UnexpectedLineEnd:
		return "UnexpectedLineEnd"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Sentinels for errors.Is.
var (
	ErrInvalidCharacter  = errors.New("invalid character")
	ErrUnexpectedLineEnd = errors.New("unexpected line end")
)

// Error is one lexical defect. It carries everything needed to render a
// diagnostic without access to scanner state.
type Error struct {
	Kind    ErrorKind   `json:"kind"`
	Char    rune        `json:"char,omitempty"` // zero for UnexpectedLineEnd
	Coord   token.Coord `json:"coord"`
	Context string      `json:"context"`
	Span    source.Span `json:"-"`

	fixes []diag.Fix
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidCharacter:
		return fmt.Sprintf("invalid character %q at %s: %s", e.Char, e.Coord, e.Context)
	case UnexpectedLineEnd:
		return fmt.Sprintf("unexpected line end at %s: %s", e.Coord, e.Context)
	}
	return fmt.Sprintf("lexical error at %s: %s", e.Coord, e.Context)
}

// Is matches the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidCharacter:
		return e.Kind == InvalidCharacter
	case ErrUnexpectedLineEnd:
		return e.Kind == UnexpectedLineEnd
	}
	return false
}

// Code maps the error kind to its diagnostic code.
func (e *Error) Code() diag.Code {
	switch e.Kind {
	case InvalidCharacter:
		return diag.LexInvalidCharacter
	case UnexpectedLineEnd:
		return diag.LexUnexpectedLineEnd
	}
	return diag.UnknownCode
}

// Message is the diagnostic text without the coordinate prefix.
func (e *Error) Message() string {
	if e.Kind == InvalidCharacter {
		return fmt.Sprintf("invalid character %q: %s", e.Char, e.Context)
	}
	return e.Context
}

// Diagnostic converts the error into a diag record with any fix suggestions.
func (e *Error) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Code(), e.Span, e.Message())
	for _, fix := range e.fixes {
		d = d.WithFix(fix.Title, fix.Edits...)
	}
	return d
}

// Fixes returns the repair suggestions attached by the scanner.
func (e *Error) Fixes() []diag.Fix {
	return e.fixes
}
