package trace

import (
	"io"
	"sync"
	"time"
)

// StreamTracer formats each accepted event and writes it at once.
type StreamTracer struct {
	gate
	mu     sync.Mutex
	w      io.Writer
	format Format
	seq    uint64
	buf    []byte
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{gate: gate{level: level}, w: w, format: format}
}

func (t *StreamTracer) Emit(ev Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	ev.Seq = t.seq
	t.buf = AppendEvent(t.buf[:0], ev, t.format)
	// ошибки записи трассы не должны ломать сканирование
	_, _ = t.w.Write(t.buf)
}

// Flush forwards to the writer when it buffers (bufio.Writer and the like).
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes the writer if it is an io.Closer.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
