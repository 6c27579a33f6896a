package tele

import (
	"context"
	"sync"

	"github.com/duernstein/selfcheckout/log2"
)

// Recorder is in-memory Teler for tests and dry runs.
type Recorder struct {
	mu     sync.Mutex
	states []State
	errors []error
	txs    []Telemetry_Transaction
}

var _ Teler = &Recorder{}

func (self *Recorder) Init(context.Context, *log2.Log, Config) error { return nil }
func (self *Recorder) Close()                                        {}

func (self *Recorder) State(s State) {
	self.mu.Lock()
	self.states = append(self.states, s)
	self.mu.Unlock()
}

func (self *Recorder) Error(e error) {
	self.mu.Lock()
	self.errors = append(self.errors, e)
	self.mu.Unlock()
}

func (self *Recorder) Transaction(tx Telemetry_Transaction) {
	self.mu.Lock()
	self.txs = append(self.txs, tx)
	self.mu.Unlock()
}

func (self *Recorder) States() []State {
	self.mu.Lock()
	defer self.mu.Unlock()
	return append([]State(nil), self.states...)
}

func (self *Recorder) Errors() []error {
	self.mu.Lock()
	defer self.mu.Unlock()
	return append([]error(nil), self.errors...)
}

func (self *Recorder) Transactions() []Telemetry_Transaction {
	self.mu.Lock()
	defer self.mu.Unlock()
	return append([]Telemetry_Transaction(nil), self.txs...)
}
