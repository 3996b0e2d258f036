// Package observ measures driver phases (cache lookup, scan) for timing reports.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one measured step. Dur stays zero until the phase is ended.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer records consecutive phases of one buffer. Not safe for concurrent
// use.
type Timer struct {
	clock  func() time.Time
	phases []Phase
}

func NewTimer() *Timer { return NewTimerWithClock(time.Now) }

// NewTimerWithClock lets tests drive time by hand.
func NewTimerWithClock(clock func() time.Time) *Timer {
	return &Timer{clock: clock, phases: make([]Phase, 0, 4)}
}

// Begin starts a phase and returns the index End expects.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: t.clock()})
	return len(t.phases) - 1
}

// End closes phase idx; unknown indexes are ignored.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur, p.Note = t.clock().Sub(p.Start), note
}

// PhaseReport is the serialisable form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report — все фазы и их сумма в миллисекундах.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	var r Report
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note})
	}
	r.TotalMS = millis(total)
	return r
}

// Summary renders Report as an aligned table.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		line := fmt.Sprintf("  %-12s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			line += "  // " + p.Note
		}
		sb.WriteString(line + "\n")
	}
	fmt.Fprintf(&sb, "  %-12s %7.2f ms\n", "total", r.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
