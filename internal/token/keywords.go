package token

// Keywords is the fixed, case-sensitive keyword vocabulary.
var Keywords = NewVocabulary(
	// boolean
	"and", "or", "not",
	// literals
	"true", "false",
	// operations
	"length", "call", "print", "return",
	// declarations
	"var", "func",
	// control
	"while", "if", "else",
	// primitive types
	"bool", "int",
	// extensions
	"string",
)

// Symbols is the fixed operator and delimiter vocabulary.
// "&" appears in both the misc and bitwise groups; the set keeps one copy.
var Symbols = NewVocabulary(
	// misc
	":", ",", "&", "[", "]", "{", "}", "(", ")",
	// arithmetic
	"*", "/", "%", "+", "-", "=",
	// bitwise
	"|", "&",
	// comparison
	"<=", "<", ">", ">=", "==", "!=",
	// extensions
	"<<", ">>", "~",
)

// LookupKeyword reports whether ident is a keyword.
// Keywords are case-sensitive: only the lowercase spellings are recognised.
func LookupKeyword(ident string) bool {
	return Keywords.Contains(ident)
}

// Classify returns Keyword for keyword spellings and Id for everything else.
func Classify(ident string) Kind {
	if LookupKeyword(ident) {
		return Keyword
	}
	return Id
}
