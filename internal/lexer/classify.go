package lexer

import "omega/internal/token"

// ASCII-only classification: anything at or above utf8.RuneSelf never starts
// or continues a token.

func isLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || isLetter(r)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func isIntContinue(r rune) bool {
	return r == '_' || isDigit(r)
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}

// endsWord reports whether r terminates an identifier or integer literal
// and must be re-dispatched afterwards.
func endsWord(r rune) bool {
	return isSpace(r) || token.Symbols.StartsAny(r)
}
