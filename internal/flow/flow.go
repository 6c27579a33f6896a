// Package flow is the kiosk screen state machine.
// Transitions are listed in one table, any other (screen, action) pair is ignored.
package flow

import (
	"fmt"
)

type Screen uint8

const (
	ScreenLanding Screen = iota
	ScreenDoorSelect
	ScreenPayment
	ScreenSuccess
)

var AllScreens = []Screen{ScreenLanding, ScreenDoorSelect, ScreenPayment, ScreenSuccess}

func (s Screen) String() string {
	switch s {
	case ScreenLanding:
		return "Landing"
	case ScreenDoorSelect:
		return "DoorSelect"
	case ScreenPayment:
		return "Payment"
	case ScreenSuccess:
		return "Success"
	}
	return fmt.Sprintf("Screen(%d)", s)
}

func (s Screen) Valid() bool { return s <= ScreenSuccess }

type Action uint8

const (
	ActionContinue Action = iota + 1
	ActionSelectDoor
	ActionBackToLanding
	ActionBackToDoorSelect
	ActionPaymentSucceeded
	ActionReset
)

var AllActions = []Action{ActionContinue, ActionSelectDoor, ActionBackToLanding, ActionBackToDoorSelect, ActionPaymentSucceeded, ActionReset}

func (a Action) String() string {
	switch a {
	case ActionContinue:
		return "Continue"
	case ActionSelectDoor:
		return "SelectDoor"
	case ActionBackToLanding:
		return "BackToLanding"
	case ActionBackToDoorSelect:
		return "BackToDoorSelect"
	case ActionPaymentSucceeded:
		return "PaymentSucceeded"
	case ActionReset:
		return "Reset"
	}
	return fmt.Sprintf("Action(%d)", a)
}

// Door is cabinet compartment number, 0 means none.
type Door uint8

const DoorNone Door = 0

var transitions = map[Screen]map[Action]Screen{
	ScreenLanding:    {ActionContinue: ScreenDoorSelect},
	ScreenDoorSelect: {ActionSelectDoor: ScreenPayment, ActionBackToLanding: ScreenLanding},
	ScreenPayment:    {ActionBackToDoorSelect: ScreenDoorSelect, ActionPaymentSucceeded: ScreenSuccess},
	ScreenSuccess:    {ActionReset: ScreenLanding},
}

// Next returns target screen for (from, action) or false when pair is not in table.
func Next(from Screen, a Action) (Screen, bool) {
	to, ok := transitions[from][a]
	return to, ok
}

// Controller holds active screen and selected door.
// Not safe for concurrent use, owned by UI loop.
type Controller struct {
	screen Screen
	door   Door
	doors  map[Door]struct{}
}

func NewController(doors []Door) *Controller {
	self := &Controller{
		screen: ScreenLanding,
		doors:  make(map[Door]struct{}, len(doors)),
	}
	for _, d := range doors {
		if d != DoorNone {
			self.doors[d] = struct{}{}
		}
	}
	return self
}

func (self *Controller) Screen() Screen { return self.screen }
func (self *Controller) Door() Door     { return self.door }

func (self *Controller) DoorAllowed(d Door) bool {
	_, ok := self.doors[d]
	return ok
}

func (self *Controller) ContinueFromLanding() bool { return self.apply(ActionContinue, DoorNone) }
func (self *Controller) SelectDoor(d Door) bool    { return self.apply(ActionSelectDoor, d) }
func (self *Controller) BackToLanding() bool       { return self.apply(ActionBackToLanding, DoorNone) }
func (self *Controller) BackToDoorSelect() bool    { return self.apply(ActionBackToDoorSelect, DoorNone) }
func (self *Controller) PaymentSucceeded() bool    { return self.apply(ActionPaymentSucceeded, DoorNone) }
func (self *Controller) Reset() bool               { return self.apply(ActionReset, DoorNone) }

// Do applies action by value, door is used only by ActionSelectDoor.
func (self *Controller) Do(a Action, d Door) bool { return self.apply(a, d) }

func (self *Controller) apply(a Action, d Door) bool {
	to, ok := Next(self.screen, a)
	if !ok {
		return false
	}
	if a == ActionSelectDoor && !self.DoorAllowed(d) {
		return false
	}
	switch to {
	case ScreenPayment:
		self.door = d
	case ScreenLanding, ScreenDoorSelect:
		self.door = DoorNone
	}
	self.screen = to
	return true
}

func (self *Controller) String() string {
	return fmt.Sprintf("flow(screen=%s door=%d)", self.screen.String(), self.door)
}
