// Abstract input events
package input

import (
	"fmt"
	"strings"
	"sync"

	"github.com/duernstein/selfcheckout/internal/types"
	"github.com/duernstein/selfcheckout/log2"
	"github.com/juju/errors"
)

const (
	SourceWeb     = "web"
	SourceConsole = "console"
)

func Drain(ch <-chan types.InputEvent) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// ParseLine reads console form "key [arg]", e.g. "door 2" or "card-holder Anna Weber".
func ParseLine(source, line string) (types.InputEvent, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return types.InputEvent{}, errors.NotValidf("empty input")
	}
	parts := strings.SplitN(line, " ", 2)
	key, ok := types.ParseInputKey(parts[0])
	if !ok {
		return types.InputEvent{}, errors.NotFoundf("input key=%s", parts[0])
	}
	e := types.InputEvent{Source: source, Key: key}
	if len(parts) == 2 {
		e.Arg = strings.TrimSpace(parts[1])
	}
	return e, nil
}

type EventFunc func(types.InputEvent)
type sub struct {
	name string
	ch   chan<- types.InputEvent
	fun  EventFunc
	stop <-chan struct{}
}

// Dispatch delivers every emitted event to all subscribers.
type Dispatch struct {
	Log  *log2.Log
	bus  chan types.InputEvent
	mu   sync.Mutex
	subs map[string]*sub
	stop <-chan struct{}
}

func NewDispatch(log *log2.Log, stop <-chan struct{}) *Dispatch {
	return &Dispatch{
		Log:  log,
		bus:  make(chan types.InputEvent),
		subs: make(map[string]*sub, 4),
		stop: stop,
	}
}

func (self *Dispatch) SubscribeChan(name string, substop <-chan struct{}) chan types.InputEvent {
	target := make(chan types.InputEvent)
	self.safeSubscribe(&sub{
		name: name,
		ch:   target,
		stop: substop,
	})
	return target
}

func (self *Dispatch) SubscribeFunc(name string, fun EventFunc, substop <-chan struct{}) {
	self.safeSubscribe(&sub{
		name: name,
		fun:  fun,
		stop: substop,
	})
}

func (self *Dispatch) Unsubscribe(name string) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if sub, ok := self.subs[name]; ok {
		self.subClose(sub)
	} else {
		panic("code error input sub not found name=" + name)
	}
}

func (self *Dispatch) Run() {
	for {
		select {
		case event := <-self.bus:
			handled := false
			self.mu.Lock()
			for _, sub := range self.subs {
				self.subFire(sub, event)
				handled = true
			}
			self.mu.Unlock()
			if !handled {
				self.Log.Errorf("input is not handled event=%#v", event)
			}

		case <-self.stop:
			return
		}
	}
}

// Emit blocks until Run takes event or dispatch is stopped.
func (self *Dispatch) Emit(event types.InputEvent) {
	select {
	case self.bus <- event:
		self.Log.Debugf("input emit=%#v", event)
	case <-self.stop:
	}
}

func (self *Dispatch) subFire(sub *sub, event types.InputEvent) {
	select {
	case <-sub.stop:
		self.subClose(sub)
		return
	default:
	}

	if sub.ch == nil && sub.fun == nil {
		panic(fmt.Sprintf("input sub=%s ch=nil fun=nil", sub.name))
	}
	if sub.fun != nil {
		sub.fun(event)
	}
	if sub.ch != nil {
		select {
		case sub.ch <- event:
		case <-sub.stop:
			self.subClose(sub)
		}
	}
}

func (self *Dispatch) subClose(s *sub) {
	if s.ch != nil {
		close(s.ch)
	}
	delete(self.subs, s.name)
}

func (self *Dispatch) safeSubscribe(s *sub) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if existing, ok := self.subs[s.name]; ok {
		select {
		case <-s.stop:
			panic("code error input subscribe already closed name=" + s.name)
		case <-existing.stop:
			self.subClose(existing)
		default:
			panic("code error input duplicate subscribe name=" + s.name)
		}
	}
	self.subs[s.name] = s
}
