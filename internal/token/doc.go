// Package token defines the lexical vocabulary and token model of Omega.
// Invariants:
//   - Token.Lexeme is exactly the matched source text; string literals drop
//     their delimiting quotes and keep everything between them verbatim.
//   - Token.Coord points at the first character of the lexeme (1-based line
//     and column, columns counted in characters).
//   - A token carries exactly one Kind; keywords are never reported as Id.
//   - The Punctuation and Keywords vocabularies are fixed; downstream
//     keyword/identifier classification depends on exact membership.
package token
