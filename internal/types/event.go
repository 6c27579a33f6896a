package types

import (
	"fmt"
)

type EventKind uint8

const (
	EventInvalid EventKind = iota
	EventInput
	EventPayment
	EventReveal
	EventTime
	EventStop
)

func (k EventKind) String() string {
	switch k {
	case EventInvalid:
		return "Invalid"
	case EventInput:
		return "Input"
	case EventPayment:
		return "Payment"
	case EventReveal:
		return "Reveal"
	case EventTime:
		return "Time"
	case EventStop:
		return "Stop"
	}
	return fmt.Sprintf("EventKind(%d)", k)
}

// Event is everything UI loop reacts to.
// Seq identifies payment attempt or reveal generation, Value carries reveal phase.
type Event struct {
	Input InputEvent
	Err   error
	Seq   uint32
	Value int
	Kind  EventKind
}

func (e *Event) String() string {
	inner := ""
	switch e.Kind {
	case EventInput:
		inner = fmt.Sprintf(" source=%s key=%s arg=%s", e.Input.Source, e.Input.Key, e.Input.Arg)
	case EventPayment:
		inner = fmt.Sprintf(" attempt=%d err=%v", e.Seq, e.Err)
	case EventReveal:
		inner = fmt.Sprintf(" gen=%d phase=%d", e.Seq, e.Value)
	}
	return fmt.Sprintf("Event(%s%s)", e.Kind.String(), inner)
}
