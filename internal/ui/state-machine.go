package ui

import (
	"context"
	"strconv"
	"time"

	"github.com/duernstein/selfcheckout/internal/cardform"
	"github.com/duernstein/selfcheckout/internal/flow"
	"github.com/duernstein/selfcheckout/internal/i18n"
	"github.com/duernstein/selfcheckout/internal/payment"
	"github.com/duernstein/selfcheckout/internal/reveal"
	"github.com/duernstein/selfcheckout/internal/types"
	"github.com/duernstein/selfcheckout/tele"
	"github.com/google/uuid"
	"github.com/juju/errors"
)

func (self *UI) Loop(ctx context.Context) {
	self.g.Alive.Add(1)
	defer self.g.Alive.Done()
	self.g.Tele.State(tele.State_Nominal)
	for self.g.Alive.IsRunning() {
		current := self.flow.Screen()
		next := self.enter(ctx, current)
		if !self.g.Alive.IsRunning() {
			self.g.Log.Debugf("ui Loop stopping because g.Alive")
			break
		}
		self.exit(ctx, current, next)
		self.setScreen(next)
		if self.XXX_testHook != nil {
			self.XXX_testHook(next)
		}
	}
	self.reveal.Cancel()
	self.g.Log.Debugf("ui loop end")
}

// enter renders screen and handles events until flow moves to another screen.
func (self *UI) enter(ctx context.Context, s flow.Screen) flow.Screen {
	self.g.Log.Debugf("ui enter %s", s.String())
	switch s {
	case flow.ScreenLanding:
		self.g.ClientEnd()
	case flow.ScreenDoorSelect:
		self.pendingDoor = flow.DoorNone
	case flow.ScreenPayment:
		self.pay.Reset()
	case flow.ScreenSuccess:
		self.reveal.Start()
	}

	for {
		self.render()
		e := self.wait(0)
		switch e.Kind {
		case types.EventStop:
			return s
		case types.EventInput:
			self.onInput(ctx, s, e.Input)
		case types.EventPayment:
			self.onPaymentEvent(e)
		case types.EventReveal:
			if !self.reveal.Apply(e.Seq, reveal.Phase(e.Value)) {
				self.g.Log.Debugf("ui reveal stale %s", e.String())
			}
		}
		if next := self.flow.Screen(); next != s {
			return next
		}
	}
}

func (self *UI) exit(ctx context.Context, current, next flow.Screen) {
	self.g.Log.Debugf("ui exit %s -> %s door=%d", current.String(), next.String(), self.flow.Door())
	switch current {
	case flow.ScreenDoorSelect:
		self.pendingDoor = flow.DoorNone
	case flow.ScreenPayment:
		// card form must not outlive Payment screen
		self.pay.Reset()
	case flow.ScreenSuccess:
		self.reveal.Cancel()
	}
}

func (self *UI) onInput(ctx context.Context, s flow.Screen, e types.InputEvent) {
	self.g.Log.Debugf("ui input source=%s key=%s", e.Source, e.Key)
	if e.Key == types.KeyLang {
		self.onLang(e.Arg)
		return
	}

	switch s {
	case flow.ScreenLanding:
		if e.Key == types.KeyContinue && self.flow.ContinueFromLanding() {
			self.sessionBegin()
		}

	case flow.ScreenDoorSelect:
		switch e.Key {
		case types.KeyDoor:
			n, err := strconv.Atoi(e.Arg)
			if err != nil || n <= 0 || n > 255 || !self.flow.DoorAllowed(flow.Door(n)) {
				self.g.Log.Debugf("ui door=%q not allowed", e.Arg)
				return
			}
			self.pendingDoor = flow.Door(n)
		case types.KeyConfirm:
			if self.pendingDoor != flow.DoorNone {
				self.flow.SelectDoor(self.pendingDoor)
			}
		case types.KeyBack:
			self.flow.BackToLanding()
		}

	case flow.ScreenPayment:
		self.onPaymentInput(e)

	case flow.ScreenSuccess:
		if e.Key == types.KeyNew && self.reveal.Phase() == reveal.PhaseComplete {
			self.flow.Reset()
		}
	}
}

func (self *UI) onPaymentInput(e types.InputEvent) {
	switch e.Key {
	case types.KeyApple:
		self.pay.SelectMethod(payment.MethodApple)
	case types.KeyCard:
		self.pay.SelectMethod(payment.MethodCard)
	case types.KeyCardNumber:
		self.pay.EditCard(func(f *cardform.Fields) { f.SetNumber(e.Arg) })
	case types.KeyCardHolder:
		self.pay.EditCard(func(f *cardform.Fields) { f.SetHolder(e.Arg) })
	case types.KeyCardExpiry:
		self.pay.EditCard(func(f *cardform.Fields) { f.SetExpiry(e.Arg) })
	case types.KeyCardCVC:
		self.pay.EditCard(func(f *cardform.Fields) { f.SetCVC(e.Arg) })
	case types.KeyPay:
		self.pay.SubmitCardPayment()
	case types.KeyCancel:
		self.pay.CancelCard()
	case types.KeyBack:
		if self.pay.CanLeave() {
			self.flow.BackToDoorSelect()
		}
	}
}

func (self *UI) onPaymentEvent(e types.Event) {
	r := payment.Result{Attempt: e.Seq, Method: payment.Method(e.Value), Err: e.Err}
	switch self.pay.Complete(r) {
	case payment.OutcomeStale:
		self.g.Log.Debugf("ui payment stale %s", e.String())

	case payment.OutcomeFailed:
		self.g.Error(errors.Annotatef(r.Err, "payment method=%s attempt=%d", r.Method.String(), r.Attempt))

	case payment.OutcomeSucceeded:
		paymentTime := time.Since(self.pay.Started())
		if self.flow.PaymentSucceeded() {
			self.g.Tele.Transaction(tele.Telemetry_Transaction{
				Session:    self.session,
				Door:       uint32(self.flow.Door()),
				Method:     r.Method.String(),
				Language:   string(self.tr.Language()),
				DurationMs: uint32(time.Since(self.sessionStart) / time.Millisecond),
				PaymentMs:  uint32(paymentTime / time.Millisecond),
			})
			self.g.Log.Infof("ui purchase session=%s door=%d method=%s", self.session, self.flow.Door(), r.Method.String())
		}
	}
}

func (self *UI) onLang(arg string) {
	var err error
	if arg == "" {
		err = self.tr.SetLanguage(self.tr.Language().Toggle())
	} else {
		var lang i18n.Language
		if lang, err = i18n.ParseLanguage(arg); err == nil {
			err = self.tr.SetLanguage(lang)
		}
	}
	if err != nil {
		self.g.Error(err, "ui language")
	}
}

func (self *UI) sessionBegin() {
	self.session = uuid.New().String()
	self.sessionStart = time.Now()
	self.g.ClientBegin()
	self.g.Log.Debugf("ui session=%s", self.session)
}
