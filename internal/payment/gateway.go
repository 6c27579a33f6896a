package payment

import (
	"time"

	"github.com/duernstein/selfcheckout/helpers"
)

const (
	DefaultAppleDelay = 2000 * time.Millisecond
	DefaultCardDelay  = 2500 * time.Millisecond
)

// MockGateway approves every request after fixed per-method latency.
// Set Fail to simulate declined payment.
type MockGateway struct {
	AppleDelay time.Duration
	CardDelay  time.Duration
	AfterFunc  helpers.AfterFunc
	Fail       error
}

func NewMockGateway(appleDelay, cardDelay time.Duration, after helpers.AfterFunc) *MockGateway {
	if after == nil {
		after = helpers.TimeAfterFunc
	}
	return &MockGateway{
		AppleDelay: appleDelay,
		CardDelay:  cardDelay,
		AfterFunc:  after,
	}
}

func (self *MockGateway) Delay(m Method) time.Duration {
	if m == MethodApple {
		return self.AppleDelay
	}
	return self.CardDelay
}

func (self *MockGateway) Authorize(req Request, done func(error)) {
	err := self.Fail
	self.AfterFunc(self.Delay(req.Method), func() { done(err) })
}
