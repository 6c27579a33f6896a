// Helper for developing kiosk screens without touch frontend.
// Type actions like "continue", "door 2", "card-number 4242..." into console.
package uidev

import (
	"context"
	"time"

	"github.com/duernstein/selfcheckout/cmd/selfcheckout/kiosk"
	"github.com/duernstein/selfcheckout/cmd/selfcheckout/subcmd"
	"github.com/duernstein/selfcheckout/hardware/input"
	"github.com/duernstein/selfcheckout/helpers/cli"
	"github.com/duernstein/selfcheckout/internal/state"
	"github.com/duernstein/selfcheckout/internal/types"
	"github.com/duernstein/selfcheckout/log2"
)

const modName = "ui-dev"

var Mod = subcmd.Mod{Name: modName, Main: Main}

const stopTimeout = 5 * time.Second

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	if _, err := kiosk.Start(ctx, config); err != nil {
		return err
	}
	g.Log.Debugf("ui-dev init complete, running")

	// console ends on EOF or "quit"
	go func() {
		if err := cli.MainLoop(modName, newExecutor(g.Log, g.Input.Emit, g.Stop), cli.FilterWords(words())); err != nil {
			g.Error(err, "ui-dev console")
		}
		g.Stop()
	}()
	<-g.Alive.StopChan()
	if !g.StopWait(stopTimeout) {
		g.Log.Errorf("ui-dev stop timeout=%v", stopTimeout)
	}
	g.Tele.Close()
	return nil
}

func words() []string {
	ws := make([]string, 0, len(types.AllKeys)+1)
	for _, k := range types.AllKeys {
		ws = append(ws, string(k))
	}
	return append(ws, "quit")
}

func newExecutor(log *log2.Log, emit func(types.InputEvent), stop func()) func(string) {
	return func(line string) {
		if line == "quit" {
			stop()
			return
		}
		e, err := input.ParseLine(input.SourceConsole, line)
		if err != nil {
			log.Errorf("ui-dev line=%q err=%v", line, err)
			return
		}
		emit(e)
	}
}
