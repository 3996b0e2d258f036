package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a tokenize phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

func (s PhaseStatus) String() string {
	if s == PhaseEnd {
		return "end"
	}
	return "start"
}

// PhaseEvent describes a phase boundary of one buffer ("cache", "scan").
type PhaseEvent struct {
	File    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration // заполняется только для PhaseEnd
}

// PhaseObserver receives phase events emitted during Tokenize. With
// TokenizeAll it is called from several goroutines.
type PhaseObserver func(PhaseEvent)

// phases pairs the observer with the per-buffer timer bookkeeping.
type phases struct {
	file    string
	observe PhaseObserver
	started map[string]time.Time
}

func newPhases(file string, observe PhaseObserver) *phases {
	return &phases{file: file, observe: observe, started: make(map[string]time.Time, 2)}
}

func (p *phases) begin(name string) {
	if p.observe == nil {
		return
	}
	p.started[name] = time.Now()
	p.observe(PhaseEvent{File: p.file, Name: name, Status: PhaseStart})
}

func (p *phases) end(name string) {
	if p.observe == nil {
		return
	}
	p.observe(PhaseEvent{File: p.file, Name: name, Status: PhaseEnd, Elapsed: time.Since(p.started[name])})
}
