package trace

import "time"

// Kind says whether an event opens a span, closes it, or stands alone.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event. Coarser scopes have smaller values,
// so a Level admits a prefix of them.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // batch of buffers
	ScopePass                    // one scan of one buffer
	ScopeLine                    // one source line
	ScopeToken                   // one token or lexical error
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeLine:   "line",
	ScopeToken:  "token",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one record of the log. Sinks assign Seq on arrival; Time is
// filled in when the producer left it zero.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64 // 0 для точек
	ParentID uint64
	Name     string // "tokenize", "scan", "line", "token", "error"
	Detail   string
	Extra    map[string]string
}
