package trace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives events. Implementations must be safe for concurrent use:
// TokenizeAll scans several buffers at once into one tracer.
type Tracer interface {
	Emit(ev Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

type nopTracer struct{}

func (nopTracer) Emit(Event)    {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop discards everything; FromContext returns it when no tracer is set.
var Nop Tracer = nopTracer{}

// gate is the level filter shared by the sinks.
type gate struct {
	level Level
}

func (g gate) Level() Level  { return g.level }
func (g gate) Enabled() bool { return g.level > LevelOff }

// StorageMode selects the sinks New builds.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // писать сразу
	ModeRing                          // держать последние события в памяти
	ModeBoth
)

var modeNames = [...]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string {
	if int(m) < len(modeNames) && modeNames[m] != "" {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode accepts stream, ring or both.
func ParseMode(s string) (StorageMode, error) {
	s = strings.ToLower(s)
	for i, name := range modeNames {
		if name != "" && name == s {
			return StorageMode(i), nil
		}
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config describes the tracer built by New.
type Config struct {
	Level    Level
	Mode     StorageMode
	Format   Format
	Output   io.Writer // nil — stderr
	RingSize int       // 0 — 4096
}

const defaultRingSize = 4096

// New builds the tracer described by cfg; LevelOff always yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	switch cfg.Mode {
	case ModeStream:
		return NewStreamTracer(out, cfg.Level, cfg.Format), nil
	case ModeRing:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	case ModeBoth:
		return NewMultiTracer(cfg.Level,
			NewStreamTracer(out, cfg.Level, cfg.Format),
			NewRingTracer(cfg.RingSize, cfg.Level),
		), nil
	}
	return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
}

// Point records a parentless instant event.
func Point(t Tracer, scope Scope, name, detail string, extra map[string]string) {
	if t == nil || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(Event{Kind: KindPoint, Scope: scope, Name: name, Detail: detail, Extra: extra})
}

// MultiTracer copies every event to each of its sinks; each sink still
// applies its own level.
type MultiTracer struct {
	gate
	sinks []Tracer
}

func NewMultiTracer(level Level, sinks ...Tracer) *MultiTracer {
	return &MultiTracer{gate: gate{level: level}, sinks: sinks}
}

func (t *MultiTracer) Emit(ev Event) {
	for _, s := range t.sinks {
		s.Emit(ev)
	}
}

func (t *MultiTracer) Flush() error {
	var errs []error
	for _, s := range t.sinks {
		errs = append(errs, s.Flush())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Close() error {
	var errs []error
	for _, s := range t.sinks {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
