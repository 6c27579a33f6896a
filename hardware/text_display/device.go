package text_display

import (
	"io"
	"os"

	"github.com/juju/errors"
)

// PoleDevice speaks ESC/POS customer display command subset over serial port or any writer.
type PoleDevice struct {
	w   io.Writer
	err error
}

const (
	poleClear byte = 0x0c
	poleEsc   byte = 0x1b
)

func NewPoleDevice(w io.Writer) *PoleDevice { return &PoleDevice{w: w} }

func OpenPoleDevice(path string) (*PoleDevice, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, errors.Annotatef(err, "display device=%s", path)
	}
	return NewPoleDevice(f), nil
}

func (self *PoleDevice) Clear() { self.write([]byte{poleClear}) }

func (self *PoleDevice) CursorYX(y, x uint8) bool {
	self.write([]byte{poleEsc, 'l', x, y})
	return self.err == nil
}

func (self *PoleDevice) Write(b []byte) { self.write(b) }

// Err returns first write error.
func (self *PoleDevice) Err() error { return self.err }

func (self *PoleDevice) write(b []byte) {
	if self.err != nil {
		return
	}
	if _, err := self.w.Write(b); err != nil {
		self.err = errors.Annotate(err, "display write")
	}
}
