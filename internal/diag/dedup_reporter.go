package diag

import (
	"sync"

	"omega/internal/source"
)

// identity is what makes two diagnostics the same report; notes and fixes
// do not count.
type identity struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

// DedupReporter forwards only the first of equal diagnostics. Safe for
// concurrent use, so one instance can sit in front of a shared reporter.
type DedupReporter struct {
	next Reporter
	mu   sync.Mutex
	seen map[identity]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[identity]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil {
		return
	}
	id := identity{code: d.Code, sev: d.Severity, span: d.Primary, msg: d.Message}
	r.mu.Lock()
	_, dup := r.seen[id]
	r.seen[id] = struct{}{}
	r.mu.Unlock()
	if !dup {
		Emit(r.next, d)
	}
}

// Suppressed reports whether d would be dropped as a repeat.
func (r *DedupReporter) Suppressed(d Diagnostic) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, dup := r.seen[identity{code: d.Code, sev: d.Severity, span: d.Primary, msg: d.Message}]
	return dup
}
