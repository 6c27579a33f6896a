// Package payment is the method selection and mock processing state machine
// of the Payment screen.
package payment

import (
	"fmt"
	"time"

	"github.com/duernstein/selfcheckout/internal/cardform"
)

type Method uint8

const (
	MethodNone Method = iota
	MethodApple
	MethodCard
)

func (m Method) String() string {
	switch m {
	case MethodNone:
		return "none"
	case MethodApple:
		return "apple"
	case MethodCard:
		return "card"
	}
	return fmt.Sprintf("Method(%d)", m)
}

// Gateway authorizes payment asynchronously and calls done exactly once.
type Gateway interface {
	Authorize(req Request, done func(error))
}

type Request struct {
	Attempt uint32
	Method  Method
	Card    cardform.Fields
}

type Result struct {
	Attempt uint32
	Method  Method
	Err     error
}

type Outcome uint8

const (
	OutcomeStale Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
)

// Processor is not safe for concurrent use.
// Gateway completion is delivered to onDone, owner feeds it back via Complete.
type Processor struct {
	gw      Gateway
	onDone  func(Result)
	method  Method
	card    cardform.Fields
	attempt uint32
	busy    bool
	failed  bool
	started time.Time
}

func NewProcessor(gw Gateway, onDone func(Result)) *Processor {
	return &Processor{gw: gw, onDone: onDone}
}

func (self *Processor) Method() Method        { return self.method }
func (self *Processor) Processing() bool      { return self.busy }
func (self *Processor) Failed() bool          { return self.failed }
func (self *Processor) Attempt() uint32       { return self.attempt }
func (self *Processor) Card() cardform.Fields { return self.card }
func (self *Processor) CardValid() bool       { return self.method == MethodCard && self.card.Valid() }
func (self *Processor) CanLeave() bool        { return !self.busy }

// Started is time of last submit.
func (self *Processor) Started() time.Time { return self.started }

// Reset prepares fresh state on entering Payment screen.
// In-flight attempt (if any) becomes stale.
func (self *Processor) Reset() {
	self.method = MethodNone
	self.card = cardform.Fields{}
	self.busy = false
	self.failed = false
}

// SelectMethod toggles Card and submits Apple immediately.
func (self *Processor) SelectMethod(m Method) bool {
	if self.busy {
		return false
	}
	switch m {
	case MethodCard:
		self.failed = false
		self.card = cardform.Fields{}
		if self.method == MethodCard {
			self.method = MethodNone
		} else {
			self.method = MethodCard
		}
		return true
	case MethodApple:
		return self.SubmitApplePay()
	}
	return false
}

func (self *Processor) SubmitApplePay() bool {
	if self.busy {
		return false
	}
	self.method = MethodApple
	self.card = cardform.Fields{}
	self.submit()
	return true
}

func (self *Processor) SubmitCardPayment() bool {
	if self.busy || !self.CardValid() {
		return false
	}
	self.submit()
	return true
}

// CancelCard returns to method selection discarding card form.
func (self *Processor) CancelCard() bool {
	if self.busy || self.method != MethodCard {
		return false
	}
	self.method = MethodNone
	self.card = cardform.Fields{}
	return true
}

// EditCard applies keystroke transform to card form field.
func (self *Processor) EditCard(f func(*cardform.Fields)) bool {
	if self.busy || self.method != MethodCard {
		return false
	}
	f(&self.card)
	return true
}

// Complete accepts gateway result for current attempt.
// Failure returns to method selection with failed flag set.
func (self *Processor) Complete(r Result) Outcome {
	if !self.busy || r.Attempt != self.attempt {
		return OutcomeStale
	}
	self.busy = false
	if r.Err != nil {
		self.failed = true
		self.method = MethodNone
		self.card = cardform.Fields{}
		return OutcomeFailed
	}
	return OutcomeSucceeded
}

func (self *Processor) submit() {
	self.busy = true
	self.failed = false
	self.attempt++
	self.started = time.Now()
	req := Request{Attempt: self.attempt, Method: self.method, Card: self.card}
	self.gw.Authorize(req, func(err error) {
		self.onDone(Result{Attempt: req.Attempt, Method: req.Method, Err: err})
	})
}
