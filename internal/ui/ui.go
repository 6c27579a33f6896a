// Package ui runs the kiosk screens: one goroutine owns flow, payment and reveal state,
// reacts to user input and timer events, renders View to text display and frontend.
package ui

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/duernstein/selfcheckout/hardware/text_display"
	"github.com/duernstein/selfcheckout/helpers"
	"github.com/duernstein/selfcheckout/internal/flow"
	"github.com/duernstein/selfcheckout/internal/i18n"
	"github.com/duernstein/selfcheckout/internal/payment"
	"github.com/duernstein/selfcheckout/internal/reveal"
	"github.com/duernstein/selfcheckout/internal/state"
	"github.com/duernstein/selfcheckout/internal/types"
	"github.com/juju/errors"
	"github.com/temoto/atomic_clock"
)

type UI struct { //nolint:maligned
	g       *state.Global
	tr      i18n.Translator
	flow    *flow.Controller
	doors   []flow.Door
	gateway *payment.MockGateway
	pay     *payment.Processor
	reveal  *reveal.Sequence
	display *text_display.TextDisplay
	eventch chan types.Event
	inputch chan types.InputEvent
	screen  uint32 // flow.Screen published for other goroutines

	pendingDoor  flow.Door
	session      string
	sessionStart time.Time
	lastActivity *atomic_clock.Clock

	viewMu   sync.Mutex
	view     View
	viewSubs map[string]chan View

	// test code sets these before Init
	XXX_afterFunc helpers.AfterFunc
	XXX_testHook  func(flow.Screen)
	XXX_viewHook  func(View)
}

const eventBuffer = 8

func (self *UI) Init(ctx context.Context) error {
	self.g = state.GetGlobal(ctx)
	self.tr = i18n.GetTranslator(ctx)

	doors, err := self.g.Config.Doors()
	if err != nil {
		return errors.Annotate(err, "ui doors")
	}
	schedule := self.g.Config.RevealSchedule()
	if !schedule.Valid() {
		return errors.NotValidf("ui reveal schedule %v", schedule)
	}
	after := self.XXX_afterFunc
	if after == nil {
		after = helpers.TimeAfterFunc
	}

	self.doors = doors
	self.flow = flow.NewController(doors)
	self.gateway = payment.NewMockGateway(self.g.Config.AppleDelay(), self.g.Config.CardDelay(), after)
	self.pay = payment.NewProcessor(self.gateway, self.onPaymentDone)
	self.reveal = reveal.NewSequence(schedule, after, self.onRevealPhase)
	self.display = self.g.TextDisplay
	self.eventch = make(chan types.Event, eventBuffer)
	self.inputch = self.g.Input.SubscribeChan("ui", self.g.Alive.StopChan())
	self.lastActivity = atomic_clock.Now()
	self.viewSubs = make(map[string]chan View)
	self.setScreen(flow.ScreenLanding)
	return nil
}

// Screen is safe to call from any goroutine.
func (self *UI) Screen() flow.Screen     { return flow.Screen(atomic.LoadUint32(&self.screen)) }
func (self *UI) setScreen(s flow.Screen) { atomic.StoreUint32(&self.screen, uint32(s)) }
func (self *UI) IdleTime() time.Duration { return atomic_clock.Since(self.lastActivity) }

// Gateway gives access to mock payment settings, e.g. simulated decline.
func (self *UI) Gateway() *payment.MockGateway { return self.gateway }

// post delivers timer event into UI loop. Never blocks after stop.
func (self *UI) post(e types.Event) {
	select {
	case self.eventch <- e:
	case <-self.g.Alive.StopChan():
	}
}

func (self *UI) onPaymentDone(r payment.Result) {
	self.post(types.Event{Kind: types.EventPayment, Seq: r.Attempt, Value: int(r.Method), Err: r.Err})
}

func (self *UI) onRevealPhase(gen uint32, p reveal.Phase) {
	self.post(types.Event{Kind: types.EventReveal, Seq: gen, Value: int(p)})
}

// wait returns next event. Zero timeout waits without time limit.
func (self *UI) wait(timeout time.Duration) types.Event {
	var tmrC <-chan time.Time
	if timeout > 0 {
		tmr := time.NewTimer(timeout)
		defer tmr.Stop()
		tmrC = tmr.C
	}
	select {
	case e := <-self.eventch:
		return e

	case e, ok := <-self.inputch:
		if !ok {
			self.g.Log.Errorf("ui input unsubscribed")
			self.inputch = nil
			return types.Event{Kind: types.EventInvalid}
		}
		self.lastActivity.SetNow()
		return types.Event{Kind: types.EventInput, Input: e}

	case <-tmrC:
		return types.Event{Kind: types.EventTime}

	case <-self.g.Alive.StopChan():
		return types.Event{Kind: types.EventStop}
	}
}

// View returns last rendered view.
func (self *UI) View() View {
	self.viewMu.Lock()
	defer self.viewMu.Unlock()
	return self.view.Copy()
}

// SubscribeView registers ch for rendered views. Slow subscriber only gets latest view.
func (self *UI) SubscribeView(name string, ch chan View) {
	self.viewMu.Lock()
	defer self.viewMu.Unlock()
	if _, ok := self.viewSubs[name]; ok {
		panic("code error ui duplicate view subscribe name=" + name)
	}
	self.viewSubs[name] = ch
}

func (self *UI) UnsubscribeView(name string) {
	self.viewMu.Lock()
	delete(self.viewSubs, name)
	self.viewMu.Unlock()
}

func (self *UI) publish(v View) {
	self.viewMu.Lock()
	defer self.viewMu.Unlock()
	self.view = v
	for _, ch := range self.viewSubs {
		sendLatest(ch, v.Copy())
	}
}

func sendLatest(ch chan View, v View) {
	select {
	case ch <- v:
		return
	default:
	}
	// drop stale view
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
