// Print QR code of kiosk URL into terminal.
package qr

import (
	"context"
	"fmt"
	"strings"

	"github.com/duernstein/selfcheckout/cmd/selfcheckout/subcmd"
	"github.com/duernstein/selfcheckout/internal/state"
	"github.com/juju/errors"
	qrcode "github.com/skip2/go-qrcode"
)

var Mod = subcmd.Mod{Name: "qr", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	if config.Kiosk.URL == "" {
		return errors.NotValidf("config kiosk.url empty")
	}
	s, err := Render(config.Kiosk.URL)
	if err != nil {
		return err
	}
	fmt.Print(s)
	return nil
}

// Render draws QR code with two characters per module, dark is full block.
func Render(content string) (string, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", errors.Annotatef(err, "qr content=%q", content)
	}
	return renderBitmap(q.Bitmap()), nil
}

func renderBitmap(bitmap [][]bool) string {
	var b strings.Builder
	for _, row := range bitmap {
		for _, dark := range row {
			if dark {
				b.WriteString("██")
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
