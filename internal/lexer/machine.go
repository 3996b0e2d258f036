package lexer

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"fortio.org/safecast"

	"omega/internal/diag"
	"omega/internal/source"
	"omega/internal/token"
)

// line is the read-only context of the line being scanned. Transitions take
// the current state and one character and return the next state plus any
// completed results; they never touch scanner fields.
type line struct {
	text string
	num  uint32
	file source.FileID
	base uint32 // смещение начала строки в файле
}

func (ln *line) coord(m Mark) token.Coord {
	return token.Coord{Line: ln.num, Column: m.Col}
}

func (ln *line) span(from, to int) source.Span {
	start, err := safecast.Conv[uint32](from)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	end, err := safecast.Conv[uint32](to)
	if err != nil {
		panic(fmt.Errorf("span end overflow: %w", err))
	}
	return source.Span{File: ln.file, Start: ln.base + start, End: ln.base + end}
}

// step feeds character c, found at mark at and occupying size bytes.
func (ln *line) step(st scanState, at Mark, c rune, size int) (scanState, []Result) {
	switch s := st.(type) {
	case noContext:
		return ln.dispatch(at, c, size)

	case identifier:
		switch {
		case isIdentContinue(c):
			return s, nil
		case endsWord(c):
			lexeme := ln.text[s.start.Off:at.Off]
			return ln.redispatch(ln.emit(token.Classify(lexeme), lexeme, s.start), at, c, size)
		default:
			return noContext{}, one(ln.invalid(at, c, size, "unexpected character while parsing "+stateName(s)))
		}

	case integerLiteral:
		switch {
		case isIntContinue(c):
			return s, nil
		case endsWord(c):
			lexeme := ln.text[s.start.Off:at.Off]
			return ln.redispatch(ln.emit(token.IntLiteral, lexeme, s.start), at, c, size)
		default:
			return noContext{}, one(ln.invalid(at, c, size, "unexpected character while parsing "+stateName(s)))
		}

	case stringLiteral:
		if c == '"' {
			return noContext{}, one(ln.emit(token.StringLiteral, ln.text[s.start.Off+1:at.Off], s.start))
		}
		return s, nil

	case punctuationCandidate:
		return ln.narrow(s, at, c, size)
	}
	panic(fmt.Sprintf("lexer: unexpected scan state %T", st))
}

// dispatch starts a token from a clean state.
func (ln *line) dispatch(at Mark, c rune, size int) (scanState, []Result) {
	switch {
	case c == '"':
		return stringLiteral{start: at}, nil
	case isDigit(c):
		return integerLiteral{start: at}, nil
	case isIdentStart(c):
		return identifier{start: at}, nil
	case isSpace(c):
		return noContext{}, nil
	}

	candidates := token.Symbols.MatchFirstChar(c)
	if len(candidates) == 0 {
		return noContext{}, one(ln.invalid(at, c, size, "character does not start any token"))
	}
	return ln.settle(at, candidates, size)
}

// redispatch emits first and then lets c start whatever comes next.
func (ln *line) redispatch(first Result, at Mark, c rune, size int) (scanState, []Result) {
	next, rest := ln.dispatch(at, c, size)
	return next, append([]Result{first}, rest...)
}

// settle ends the candidate as soon as exactly one symbol remains and the
// prefix already spells it out; otherwise scanning continues.
func (ln *line) settle(start Mark, remaining []string, accLen int) (scanState, []Result) {
	if len(remaining) == 1 && len(remaining[0]) == accLen {
		return noContext{}, one(ln.emit(token.Punctuation, remaining[0], start))
	}
	return punctuationCandidate{start: start, remaining: remaining}, nil
}

func (ln *line) narrow(s punctuationCandidate, at Mark, c rune, size int) (scanState, []Result) {
	acc := ln.text[s.start.Off:at.Off]
	pos := len(acc)

	var narrowed []string
	for _, cand := range s.remaining {
		if len(cand) > pos && c < utf8.RuneSelf && cand[pos] == byte(c) {
			narrowed = append(narrowed, cand)
		}
	}
	if len(narrowed) > 0 {
		return ln.settle(s.start, narrowed, pos+size)
	}

	// Жадность: продолжение не подошло, но сам префикс — символ ("<" в "a < b").
	if slices.Contains(s.remaining, acc) {
		return ln.redispatch(ln.emit(token.Punctuation, acc, s.start), at, c, size)
	}
	return ln.redispatch(ln.badSequence(s, acc, at, c, size), at, c, size)
}

// end flushes the state when the line runs out; a line end terminates ids,
// integers and complete punctuation the same way whitespace does.
func (ln *line) end(st scanState, eol Mark) []Result {
	switch s := st.(type) {
	case noContext:
		return nil

	case identifier:
		lexeme := ln.text[s.start.Off:]
		return one(ln.emit(token.Classify(lexeme), lexeme, s.start))

	case integerLiteral:
		return one(ln.emit(token.IntLiteral, ln.text[s.start.Off:], s.start))

	case stringLiteral:
		e := ln.lineEnd(eol, "unterminated string literal")
		e.fixes = []diag.Fix{{
			Title: "close the string literal",
			Edits: []diag.FixEdit{{Span: ln.span(len(ln.text), len(ln.text)), NewText: `"`}},
		}}
		return one(Result{Err: e})

	case punctuationCandidate:
		acc := ln.text[s.start.Off:]
		if slices.Contains(s.remaining, acc) {
			return one(ln.emit(token.Punctuation, acc, s.start))
		}
		e := ln.lineEnd(eol, fmt.Sprintf("unterminated punctuation %q", acc))
		e.fixes = ln.completions(s, acc)
		return one(Result{Err: e})
	}
	panic(fmt.Sprintf("lexer: unexpected scan state %T at line end", st))
}

func (ln *line) emit(kind token.Kind, lexeme string, start Mark) Result {
	return Result{Token: token.Token{Kind: kind, Lexeme: lexeme, Coord: ln.coord(start)}}
}

func (ln *line) invalid(at Mark, c rune, size int, context string) Result {
	return Result{Err: &Error{
		Kind:    InvalidCharacter,
		Char:    c,
		Coord:   ln.coord(at),
		Context: context,
		Span:    ln.span(at.Off, at.Off+size),
	}}
}

func (ln *line) badSequence(s punctuationCandidate, acc string, at Mark, c rune, size int) Result {
	first, _ := utf8.DecodeRuneInString(acc)
	return Result{Err: &Error{
		Kind:    InvalidCharacter,
		Char:    first,
		Coord:   ln.coord(s.start),
		Context: fmt.Sprintf("invalid punctuation sequence %q", acc+string(c)),
		Span:    ln.span(s.start.Off, at.Off+size),
		fixes:   ln.completions(s, acc),
	}}
}

// lineEnd reports at the line's last character.
func (ln *line) lineEnd(eol Mark, context string) *Error {
	_, last := utf8.DecodeLastRuneInString(ln.text)
	return &Error{
		Kind:    UnexpectedLineEnd,
		Coord:   token.Coord{Line: ln.num, Column: eol.Col - 1},
		Context: context,
		Span:    ln.span(len(ln.text)-last, len(ln.text)),
	}
}

// completions suggests replacing an orphan prefix with each symbol it starts.
func (ln *line) completions(s punctuationCandidate, acc string) []diag.Fix {
	end := s.start.Off + len(acc)
	fixes := make([]diag.Fix, 0, len(s.remaining))
	for _, cand := range s.remaining {
		fixes = append(fixes, diag.Fix{
			Title: fmt.Sprintf("replace with %q", cand),
			Edits: []diag.FixEdit{{Span: ln.span(s.start.Off, end), NewText: cand}},
		})
	}
	return fixes
}

func one(r Result) []Result {
	return []Result{r}
}
