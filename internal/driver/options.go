package driver

import (
	"fmt"
	"io"

	"omega/internal/config"
	"omega/internal/trace"
)

// Options controls batch tokenization.
type Options struct {
	MaxDiagnostics int  // ёмкость Bag на один буфер
	Dedup          bool // подавлять повторяющиеся диагностики
	Jobs           int  // 0 — GOMAXPROCS
	Timings        bool // добавить OBS6001 с таймингами фаз
	Tracer         trace.Tracer
	Cache          *ListingCache
	Observer       PhaseObserver // nil — без уведомлений
}

func (o Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return trace.Nop
	}
	return o.Tracer
}

// OptionsFromConfig builds Options and the tracer described by cfg. Stream
// trace output goes to traceOut (stderr when nil).
func OptionsFromConfig(cfg config.Config, traceOut io.Writer) (Options, error) {
	level, err := trace.ParseLevel(cfg.Trace.Level)
	if err != nil {
		return Options{}, fmt.Errorf("trace level: %w", err)
	}
	format, err := trace.ParseFormat(cfg.Trace.Format)
	if err != nil {
		return Options{}, fmt.Errorf("trace format: %w", err)
	}
	mode, err := trace.ParseMode(cfg.Trace.Mode)
	if err != nil {
		return Options{}, fmt.Errorf("trace mode: %w", err)
	}
	tracer, err := trace.New(trace.Config{
		Level:    level,
		Mode:     mode,
		Format:   format,
		Output:   traceOut,
		RingSize: cfg.Trace.RingSize,
	})
	if err != nil {
		return Options{}, fmt.Errorf("create tracer: %w", err)
	}
	return Options{
		MaxDiagnostics: cfg.Scan.MaxDiagnostics,
		Dedup:          cfg.Scan.Dedup,
		Jobs:           cfg.Scan.Jobs,
		Tracer:         tracer,
	}, nil
}
