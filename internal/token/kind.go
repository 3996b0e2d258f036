package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Punctuation covers operators and delimiters from the Symbols vocabulary.
	Punctuation Kind = iota
	// Keyword is an identifier-shaped lexeme listed in the Keywords vocabulary.
	Keyword
	// Id is any other identifier.
	Id
	// IntLiteral is a run of decimal digits and underscores.
	IntLiteral
	// StringLiteral is the text between a pair of double quotes on one line.
	StringLiteral
)

var kindNames = [...]string{
	Punctuation:   "Punctuation",
	Keyword:       "Keyword",
	Id:            "Id",
	IntLiteral:    "IntLiteral",
	StringLiteral: "StringLiteral",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// ParseKind converts a kind name back to Kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown token kind %q", s)
}

// MarshalText keeps serialized listings readable (JSON, msgpack, golden files).
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid token kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
