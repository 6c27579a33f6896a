package helpers

import (
	"sort"
	"sync"
	"time"
)

// FakeScheduler is manual clock for timer driven code in tests.
// Callbacks run synchronously inside Advance.
type FakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	s       *FakeScheduler
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (self *FakeScheduler) AfterFunc(d time.Duration, f func()) Stopper {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.seq++
	t := &fakeTimer{s: self, at: self.now + d, seq: self.seq, f: f}
	self.timers = append(self.timers, t)
	return t
}

func (self *FakeScheduler) Now() time.Duration {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.now
}

// Pending counts timers not yet fired or stopped.
func (self *FakeScheduler) Pending() int {
	self.mu.Lock()
	defer self.mu.Unlock()
	n := 0
	for _, t := range self.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves clock forward by d firing due timers in deadline order.
func (self *FakeScheduler) Advance(d time.Duration) {
	self.mu.Lock()
	target := self.now + d
	self.mu.Unlock()
	for {
		self.mu.Lock()
		var due []*fakeTimer
		for _, t := range self.timers {
			if !t.stopped && !t.fired && t.at <= target {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			self.now = target
			self.mu.Unlock()
			return
		}
		sort.Slice(due, func(i, j int) bool {
			if due[i].at == due[j].at {
				return due[i].seq < due[j].seq
			}
			return due[i].at < due[j].at
		})
		t := due[0]
		t.fired = true
		self.now = t.at
		self.mu.Unlock()
		t.f()
	}
}

func (self *fakeTimer) Stop() bool {
	self.s.mu.Lock()
	defer self.s.mu.Unlock()
	if self.stopped || self.fired {
		return false
	}
	self.stopped = true
	return true
}
