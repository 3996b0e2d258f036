package lexer

// scanState is the per-line state of the machine. Exactly one variant is
// active; accumulated text is never copied, it is the slice of the line
// between the variant's start mark and the current position.
type scanState interface {
	scanState()
}

// noContext: no token has been started.
type noContext struct{}

// identifier accumulates [A-Za-z_][A-Za-z0-9_]*.
type identifier struct {
	start Mark
}

// integerLiteral accumulates [0-9][0-9_]*.
type integerLiteral struct {
	start Mark
}

// stringLiteral accumulates everything after the opening quote at start.
type stringLiteral struct {
	start Mark
}

// punctuationCandidate holds the symbols still compatible with the prefix
// consumed since start.
type punctuationCandidate struct {
	start     Mark
	remaining []string
}

func (noContext) scanState()            {}
func (identifier) scanState()           {}
func (integerLiteral) scanState()       {}
func (stringLiteral) scanState()        {}
func (punctuationCandidate) scanState() {}

func stateName(st scanState) string {
	switch st.(type) {
	case noContext:
		return "no context"
	case identifier:
		return "id"
	case integerLiteral:
		return "integer literal"
	case stringLiteral:
		return "string literal"
	case punctuationCandidate:
		return "punctuation"
	}
	return "unknown"
}
