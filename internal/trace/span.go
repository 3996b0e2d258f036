package trace

import (
	"sync/atomic"
	"time"
)

var spanIDs atomic.Uint64

// Span is an open begin/end pair. A Span whose tracer filtered it out has
// ID 0 and ignores every call, so callers never check before using one.
type Span struct {
	tracer Tracer
	id     uint64
	parent uint64
	scope  Scope
	name   string
	start  time.Time
	extra  map[string]string
}

// Begin opens a span under parent (0 for a root) and records its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Level().ShouldEmit(scope) {
		return &Span{}
	}
	sp := &Span{
		tracer: t,
		id:     spanIDs.Add(1),
		parent: parent,
		scope:  scope,
		name:   name,
		start:  time.Now(),
	}
	t.Emit(Event{
		Time:     sp.start,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   sp.id,
		ParentID: parent,
		Name:     name,
	})
	return sp
}

func (s *Span) recording() bool {
	return s != nil && s.id != 0
}

// ID is 0 for a span that is not recorded.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// WithExtra attaches a key to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.recording() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 4)
	}
	s.extra[key] = value
	return s
}

// Point records an instant event parented to s if scope passes the level.
func (s *Span) Point(scope Scope, name, detail string, extra map[string]string) {
	if !s.recording() || !s.tracer.Level().ShouldEmit(scope) {
		return
	}
	s.tracer.Emit(Event{
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: s.id,
		Name:     name,
		Detail:   detail,
		Extra:    extra,
	})
}

// End records the end event and returns how long the span was open.
func (s *Span) End(detail string) time.Duration {
	if !s.recording() {
		return 0
	}
	now := time.Now()
	s.tracer.Emit(Event{
		Time:     now,
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
		Extra:    s.extra,
	})
	return now.Sub(s.start)
}
