// Package reveal is door opening choreography after successful payment.
package reveal

import (
	"fmt"
	"time"

	"github.com/duernstein/selfcheckout/helpers"
)

type Phase uint8

const (
	PhaseSuccess Phase = iota
	PhaseOpening
	PhaseOpen
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseSuccess:
		return "Success"
	case PhaseOpening:
		return "Opening"
	case PhaseOpen:
		return "Open"
	case PhaseComplete:
		return "Complete"
	}
	return fmt.Sprintf("Phase(%d)", p)
}

// Schedule offsets are relative to Success screen entry.
type Schedule struct {
	Opening  time.Duration
	Open     time.Duration
	Complete time.Duration
}

var DefaultSchedule = Schedule{
	Opening:  2000 * time.Millisecond,
	Open:     4000 * time.Millisecond,
	Complete: 5500 * time.Millisecond,
}

func (s Schedule) Valid() bool {
	return s.Opening >= 0 && s.Opening <= s.Open && s.Open <= s.Complete
}

// PhaseAt is phase at elapsed time since Success entry.
func PhaseAt(s Schedule, elapsed time.Duration) Phase {
	switch {
	case elapsed >= s.Complete:
		return PhaseComplete
	case elapsed >= s.Open:
		return PhaseOpen
	case elapsed >= s.Opening:
		return PhaseOpening
	}
	return PhaseSuccess
}

// Sequence owns timers of one reveal run at a time.
// Timer callbacks only report (generation, phase) to onPhase, owner applies it with Apply.
// Not safe for concurrent use except timer callbacks.
type Sequence struct {
	schedule Schedule
	after    helpers.AfterFunc
	onPhase  func(gen uint32, p Phase)
	gen      uint32
	phase    Phase
	running  bool
	timers   []helpers.Stopper
}

func NewSequence(s Schedule, after helpers.AfterFunc, onPhase func(gen uint32, p Phase)) *Sequence {
	if after == nil {
		after = helpers.TimeAfterFunc
	}
	return &Sequence{schedule: s, after: after, onPhase: onPhase}
}

func (self *Sequence) Phase() Phase       { return self.phase }
func (self *Sequence) Running() bool      { return self.running }
func (self *Sequence) Generation() uint32 { return self.gen }
func (self *Sequence) Schedule() Schedule { return self.schedule }

// Start restarts sequence from PhaseSuccess, cancelling previous run.
func (self *Sequence) Start() uint32 {
	self.Cancel()
	self.gen++
	self.phase = PhaseSuccess
	self.running = true
	gen := self.gen
	targets := []struct {
		at time.Duration
		p  Phase
	}{
		{self.schedule.Opening, PhaseOpening},
		{self.schedule.Open, PhaseOpen},
		{self.schedule.Complete, PhaseComplete},
	}
	for _, x := range targets {
		p := x.p
		self.timers = append(self.timers, self.after(x.at, func() { self.onPhase(gen, p) }))
	}
	return gen
}

// Cancel stops pending timers. Events already in flight become stale.
func (self *Sequence) Cancel() {
	for _, t := range self.timers {
		t.Stop()
	}
	self.timers = self.timers[:0]
	if self.running {
		self.running = false
		self.gen++
	}
}

// Apply advances phase from timer event. False for stale generation or backward phase.
func (self *Sequence) Apply(gen uint32, p Phase) bool {
	if !self.running || gen != self.gen || p <= self.phase {
		return false
	}
	self.phase = p
	if p == PhaseComplete {
		self.timers = self.timers[:0]
	}
	return true
}
