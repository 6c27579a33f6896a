package text_display

import "sync"

func NewMockTextDisplay(opt *TextDisplayConfig) *TextDisplay {
	display, err := NewTextDisplay(opt)
	if err != nil {
		panic(err)
	}
	display.dev = new(MockDevicer)
	return display
}

// MockDevicer keeps written lines in memory.
type MockDevicer struct {
	mu    sync.Mutex
	y     uint8
	Lines [2][]byte
}

func (self *MockDevicer) Clear() {
	self.mu.Lock()
	self.Lines = [2][]byte{}
	self.mu.Unlock()
}

func (self *MockDevicer) CursorYX(y, x uint8) bool {
	self.mu.Lock()
	self.y = y
	self.mu.Unlock()
	return y >= 1 && y <= 2
}

func (self *MockDevicer) Write(b []byte) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.y >= 1 && self.y <= 2 {
		self.Lines[self.y-1] = append([]byte(nil), b...)
	}
}

func (self *MockDevicer) Line(n int) string {
	self.mu.Lock()
	defer self.mu.Unlock()
	return string(self.Lines[n-1])
}
