package token

import (
	"slices"
	"unicode/utf8"
)

// Vocabulary is an immutable set of reserved spellings with a first-character index.
type Vocabulary struct {
	entries []string
	set     map[string]struct{}
	byFirst map[rune][]string
	maxLen  int
}

// NewVocabulary builds a vocabulary; duplicate spellings collapse to the first occurrence.
func NewVocabulary(entries ...string) Vocabulary {
	v := Vocabulary{
		entries: make([]string, 0, len(entries)),
		set:     make(map[string]struct{}, len(entries)),
		byFirst: make(map[rune][]string),
	}
	for _, e := range entries {
		if e == "" {
			panic("token: empty vocabulary entry")
		}
		if _, dup := v.set[e]; dup {
			continue
		}
		v.set[e] = struct{}{}
		v.entries = append(v.entries, e)
		first, _ := utf8.DecodeRuneInString(e)
		v.byFirst[first] = append(v.byFirst[first], e)
		v.maxLen = max(v.maxLen, len(e))
	}
	return v
}

// Contains reports whether s equals one entry exactly.
func (v Vocabulary) Contains(s string) bool {
	_, ok := v.set[s]
	return ok
}

// MatchFirstChar returns all entries starting with c in declaration order,
// or nil when none does.
// ВАЖНО: результат разделяется между вызовами, не модифицируйте его.
func (v Vocabulary) MatchFirstChar(c rune) []string {
	m := v.byFirst[c]
	return m[:len(m):len(m)]
}

// StartsAny reports whether some entry begins with c.
func (v Vocabulary) StartsAny(c rune) bool {
	return len(v.byFirst[c]) > 0
}

// Entries returns a copy of the distinct entries in declaration order.
func (v Vocabulary) Entries() []string {
	return slices.Clone(v.entries)
}

// Len is the number of distinct entries.
func (v Vocabulary) Len() int {
	return len(v.entries)
}

// MaxLen is the byte length of the longest entry.
func (v Vocabulary) MaxLen() int {
	return v.maxLen
}
