package state

import (
	"context"
	"os"
	"testing"

	"github.com/duernstein/selfcheckout/hardware/text_display"
	"github.com/duernstein/selfcheckout/internal/i18n"
	"github.com/duernstein/selfcheckout/log2"
	"github.com/duernstein/selfcheckout/tele"
)

// NewTestContext returns Global inited from inline config,
// with mock text display, in-memory tele recorder and translator in context.
func NewTestContext(t testing.TB, confString string) (context.Context, *Global) {
	fs := NewMockFullReader(map[string]string{
		"test-inline": confString,
	})

	var log *log2.Log
	if os.Getenv("selfcheckout_test_log_stderr") == "1" {
		log = log2.NewStderr(log2.LDebug) // useful with panics
	} else {
		log = log2.NewTest(t, log2.LDebug)
	}
	log.SetFlags(log2.LTestFlags)
	ctx, g := NewContext(log, new(tele.Recorder))
	t.Cleanup(g.Alive.Stop)
	g.BuildVersion = "test"
	cfg := MustReadConfig(log, fs, "test-inline")
	g.TextDisplay = text_display.NewMockTextDisplay(&text_display.TextDisplayConfig{Width: cfg.DisplayWidth()})
	g.MustInit(ctx, cfg)
	ctx = i18n.WithTranslator(ctx, g.Translator)
	return ctx, g
}
