// Package text_display drives two line character display on the cabinet front.
// Lines longer than display width scroll.
package text_display

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/juju/errors"
	"github.com/paulrosania/go-charset/charset"
	_ "github.com/paulrosania/go-charset/data"
	"github.com/temoto/alive/v2"
)

const MaxWidth = 40

var spaceBytes = bytes.Repeat([]byte{' '}, MaxWidth)

type TextDisplay struct { //nolint:maligned
	alive *alive.Alive
	mu    sync.Mutex
	dev   Devicer
	tr    atomic.Value
	width uint32
	state State

	tickd time.Duration
	tick  uint32
	upd   chan<- State
}

type TextDisplayConfig struct {
	Codepage    string
	ScrollDelay time.Duration
	Width       uint32
}

type Devicer interface {
	Clear()
	CursorYX(y, x uint8) bool
	Write(b []byte)
}

func NewTextDisplay(opt *TextDisplayConfig) (*TextDisplay, error) {
	if opt == nil {
		return nil, errors.NotValidf("text display config=nil")
	}
	if opt.Width == 0 || opt.Width > MaxWidth {
		return nil, errors.NotValidf("text display width=%d (1..%d)", opt.Width, MaxWidth)
	}
	self := &TextDisplay{
		alive: alive.NewAlive(),
		tickd: opt.ScrollDelay,
		width: opt.Width,
	}
	if opt.Codepage != "" {
		if err := self.SetCodepage(opt.Codepage); err != nil {
			return nil, errors.Annotatef(err, "codepage=%s", opt.Codepage)
		}
	}
	return self, nil
}

func (self *TextDisplay) SetCodepage(cp string) error {
	tr, err := charset.TranslatorTo(cp)
	if err != nil {
		return err
	}
	self.tr.Store(tr)
	return nil
}

func (self *TextDisplay) SetDevice(dev Devicer) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.dev = dev
}

func (self *TextDisplay) Width() uint32 { return self.width }

func (self *TextDisplay) Clear() {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.state.Clear()
	if self.dev != nil {
		self.dev.Clear()
	}
	self.notify()
}

// SetLines replaces both lines and restarts scrolling.
// Nothing is written when content did not change.
func (self *TextDisplay) SetLines(line1, line2 string) {
	b1, b2 := self.Translate(line1), self.Translate(line2)
	self.mu.Lock()
	defer self.mu.Unlock()
	if bytes.Equal(b1, self.state.L1) && bytes.Equal(b2, self.state.L2) {
		return
	}
	self.state.L1, self.state.L2 = b1, b2
	atomic.StoreUint32(&self.tick, 0)
	self.flush()
	self.notify()
}

func (self *TextDisplay) Tick() {
	self.mu.Lock()
	defer self.mu.Unlock()
	atomic.AddUint32(&self.tick, 1)
	self.flush()
}

// Run scrolls long lines until Stop. Returns at once with zero scroll delay.
func (self *TextDisplay) Run() {
	if self.tickd == 0 {
		return
	}
	tmr := time.NewTicker(self.tickd)
	defer tmr.Stop()
	stopch := self.alive.StopChan()
	for {
		select {
		case <-tmr.C:
			self.Tick()
		case <-stopch:
			return
		}
	}
}

func (self *TextDisplay) Stop() { self.alive.Stop() }

// Translate encodes s into display codepage. Trailing \x00 disables padding.
func (self *TextDisplay) Translate(s string) []byte {
	if len(s) == 0 {
		return spaceBytes[:0]
	}
	pad := true
	if s[len(s)-1] == '\x00' {
		pad = false
		s = s[:len(s)-1]
	}

	result := []byte(s)
	if tr, ok := self.tr.Load().(charset.Translator); ok && tr != nil {
		_, tb, err := tr.Translate(result, true)
		if err != nil {
			panic(err)
		}
		// translator reuses internal buffer
		result = append([]byte(nil), tb...)
	}
	if pad {
		result = PadSpace(result, self.width)
	}
	return result
}

func (self *TextDisplay) SetUpdateChan(ch chan<- State) {
	self.mu.Lock()
	self.upd = ch
	self.mu.Unlock()
}

func (self *TextDisplay) State() State {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.state.Copy()
}

// caller must hold mu
func (self *TextDisplay) flush() {
	if self.dev == nil {
		return
	}
	var buf [MaxWidth]byte
	tick := atomic.LoadUint32(&self.tick)
	for i, line := range [2][]byte{self.state.L1, self.state.L2} {
		b := buf[:self.width]
		n := scrollWrap(b, line, tick)
		// rewrite without clear, erase short content with spaces
		if n < self.width {
			copy(b[n:], spaceBytes)
		}
		self.dev.CursorYX(uint8(i+1), 1)
		self.dev.Write(b)
	}
}

// caller must hold mu
func (self *TextDisplay) notify() {
	if self.upd != nil {
		self.upd <- self.state.Copy()
	}
}

type State struct {
	L1, L2 []byte
}

func (s *State) Clear() {
	s.L1 = nil
	s.L2 = nil
}

func (s State) Copy() State {
	return State{
		L1: append([]byte(nil), s.L1...),
		L2: append([]byte(nil), s.L2...),
	}
}

func (s State) Format(width uint32) string {
	return fmt.Sprintf("%s\n%s", PadSpace(s.L1, width), PadSpace(s.L2, width))
}

func (s State) String() string {
	return fmt.Sprintf("%s\n%s", s.L1, s.L2)
}

// PadSpace returns b when len>=width, otherwise copy padded with spaces.
func PadSpace(b []byte, width uint32) []byte {
	l := uint32(len(b))
	if l == 0 {
		return spaceBytes[:width]
	}
	if l >= width {
		return b
	}
	buf := make([]byte, 0, width)
	return append(append(buf, b...), spaceBytes[:width-l]...)
}

// relies that len(buf) == display width
func scrollWrap(buf []byte, content []byte, tick uint32) uint32 {
	length := uint32(len(content))
	width := uint32(len(buf))
	gap := width / 2
	n := 0
	if length <= width {
		n = copy(buf, content)
		copy(buf[n:], spaceBytes)
		return uint32(n)
	}

	offset := tick % (length + gap)
	if offset < length {
		n = copy(buf, content[offset:])
	} else {
		gap -= offset - length
	}
	n += copy(buf[n:], spaceBytes[:gap])
	n += copy(buf[n:], content)
	return uint32(n)
}
