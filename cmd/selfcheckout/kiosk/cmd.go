package kiosk

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/daemon"
	"github.com/duernstein/selfcheckout/cmd/selfcheckout/subcmd"
	"github.com/duernstein/selfcheckout/internal/i18n"
	"github.com/duernstein/selfcheckout/internal/state"
	"github.com/duernstein/selfcheckout/internal/ui"
	"github.com/duernstein/selfcheckout/internal/web"
	"github.com/juju/errors"
)

var Mod = subcmd.Mod{Name: "kiosk", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	if _, err := Start(ctx, config); err != nil {
		return err
	}
	subcmd.SdNotify(daemon.SdNotifyReady)
	g.Log.Infof("kiosk init complete")

	g.Alive.Wait()
	g.Tele.Close()
	return nil
}

// Start brings up everything kiosk needs and runs UI loop in background.
// Process stops on SIGINT, SIGTERM or g.Stop().
func Start(ctx context.Context, config *state.Config) (*ui.UI, error) {
	g := state.GetGlobal(ctx)
	g.MustInit(ctx, config)

	ctx = i18n.WithTranslator(ctx, g.Translator)
	g.Translator.OnChange(func(lang i18n.Language) {
		g.Log.Infof("language=%s", lang)
	})

	uiFront := &ui.UI{}
	if err := uiFront.Init(ctx); err != nil {
		return nil, errors.Annotate(err, "ui Init")
	}

	if config.UI.Web.Enable {
		srv := web.NewServer(g.Log, g.Input, uiFront, config.Kiosk.URL)
		go func() {
			if err := srv.Run(config.WebListen(), g.Alive); err != nil {
				g.Error(err)
				g.Stop()
			}
		}()
	}

	go stopOnSignal(g)
	go uiFront.Loop(ctx)
	return uiFront, nil
}

func stopOnSignal(g *state.Global) {
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	select {
	case sig := <-sigch:
		g.Log.Infof("signal=%v stopping", sig)
		g.Stop()
	case <-g.Alive.StopChan():
	}
}
