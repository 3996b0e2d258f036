package trace

import (
	"io"
	"slices"
	"sync"
	"time"
)

// RingTracer keeps the most recent events in memory, oldest overwritten
// first, for dumping after the fact.
type RingTracer struct {
	gate
	mu    sync.Mutex
	slots []Event
	total uint64 // сколько событий принято за всё время
}

// NewRingTracer keeps up to size events; size <= 0 means 4096.
func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = defaultRingSize
	}
	return &RingTracer{gate: gate{level: level}, slots: make([]Event, size)}
}

func (t *RingTracer) Emit(ev Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	t.mu.Lock()
	t.total++
	ev.Seq = t.total
	t.slots[(t.total-1)%uint64(len(t.slots))] = ev
	t.mu.Unlock()
}

// Snapshot copies the retained events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	size := uint64(len(t.slots))
	if t.total <= size {
		return slices.Clone(t.slots[:t.total])
	}
	head := t.total % size
	return slices.Concat(t.slots[head:], t.slots[:head])
}

// Total counts every accepted event, including overwritten ones.
func (t *RingTracer) Total() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// Dump writes the retained events in format.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	var buf []byte
	for _, ev := range t.Snapshot() {
		buf = AppendEvent(buf, ev, format)
	}
	_, err := w.Write(buf)
	return err
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }
