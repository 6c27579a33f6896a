package state

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/duernstein/selfcheckout/hardware/input"
	"github.com/duernstein/selfcheckout/hardware/text_display"
	"github.com/duernstein/selfcheckout/helpers"
	"github.com/duernstein/selfcheckout/internal/i18n"
	"github.com/duernstein/selfcheckout/log2"
	"github.com/duernstein/selfcheckout/tele"
	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
)

type Global struct {
	Alive        *alive.Alive
	BuildVersion string
	Config       *Config
	Input        *input.Dispatch
	Log          *log2.Log
	Tele         tele.Teler
	TextDisplay  *text_display.TextDisplay
	Translator   *i18n.Provider

	clientMu sync.Mutex
	client   bool

	_copy_guard sync.Mutex //nolint:unused
}

const ContextKey = "run/state-global"

func GetGlobal(ctx context.Context) *Global {
	v := ctx.Value(ContextKey)
	if v == nil {
		panic(fmt.Sprintf("context['%s'] is nil", ContextKey))
	}
	if g, ok := v.(*Global); ok {
		return g
	}
	panic(fmt.Sprintf("context['%s'] expected type *Global actual=%#v", ContextKey, v))
}

// If `Init` fails, consider `Global` is in broken state.
func (g *Global) Init(ctx context.Context, cfg *Config) error {
	g.Config = cfg
	g.Log.Infof("build version=%s", g.BuildVersion)

	if g.Config.Persist.Root == "" {
		g.Log.Errorf("config: persist.root=empty, language preference will not survive restart")
	}
	g.Log.Debugf("config: persist.root=%s", g.Config.Persist.Root)

	// Since tele is remote error reporting mechanism, it must be inited before anything else
	g.Config.Tele.BuildVersion = g.BuildVersion
	if g.Config.Tele.PersistPath == "" && g.Config.Persist.Root != "" {
		g.Config.Tele.PersistPath = filepath.Join(g.Config.Persist.Root, "tele")
	}
	if err := g.Tele.Init(ctx, g.Log, g.Config.Tele); err != nil {
		g.Tele = tele.NewStub()
		return errors.Annotate(err, "tele init")
	}
	// tele logs into own clone, so hook does not recurse
	g.Log.SetErrorFunc(g.Tele.Error)

	errs := make([]error, 0, 4)
	if _, err := g.Config.Doors(); err != nil {
		errs = append(errs, err)
	}
	if s := g.Config.RevealSchedule(); !s.Valid() {
		errs = append(errs, errors.NotValidf("config reveal schedule %v", s))
	}

	lang := i18n.DefaultLanguage
	if s := g.Config.UI.DefaultLanguage; s != "" {
		var err error
		if lang, err = i18n.ParseLanguage(s); err != nil {
			errs = append(errs, errors.Annotate(err, "config ui.default_language"))
			lang = i18n.DefaultLanguage
		}
	}
	var err error
	if g.Translator, err = i18n.NewProvider(i18n.MustDefaultCatalog(), lang, g.Config.Persist.Root, g.Log); err != nil {
		errs = append(errs, err)
	}

	if err := g.initDisplay(); err != nil {
		errs = append(errs, err)
	}
	g.initInput()

	if err := helpers.FoldErrors(errs); err != nil {
		g.Tele.State(tele.State_Problem)
		return err
	}
	return nil
}

func (g *Global) MustInit(ctx context.Context, cfg *Config) {
	err := g.Init(ctx, cfg)
	if err != nil {
		g.Log.Fatal(errors.ErrorStack(err))
	}
}

// Error logs err with optional annotation. Log error hook forwards it to tele.
func (g *Global) Error(err error, args ...interface{}) {
	if err != nil {
		if len(args) != 0 {
			msg := args[0].(string)
			args = args[1:]
			err = errors.Annotatef(err, msg, args...)
		}
		g.Log.Debugf("%s", errors.ErrorStack(err))
		g.Log.Error(err)
	}
}

// ClientBegin marks start of customer session.
func (g *Global) ClientBegin() {
	g.clientMu.Lock()
	defer g.clientMu.Unlock()
	if !g.client {
		g.client = true
		g.Log.Infof("--- client activity begin ---")
		g.Tele.State(tele.State_Client)
	}
}

func (g *Global) ClientEnd() {
	g.clientMu.Lock()
	defer g.clientMu.Unlock()
	if g.client {
		g.client = false
		g.Log.Infof("--- client activity end ---")
		g.Tele.State(tele.State_Nominal)
	}
}

func (g *Global) ClientWorking() bool {
	g.clientMu.Lock()
	defer g.clientMu.Unlock()
	return g.client
}

func (g *Global) Stop() {
	g.Alive.Stop()
}

func (g *Global) StopWait(timeout time.Duration) bool {
	g.Alive.Stop()
	select {
	case <-g.Alive.WaitChan():
		return true
	case <-time.After(timeout):
		return false
	}
}

func (g *Global) initDisplay() error {
	if g.TextDisplay == nil {
		d, err := text_display.NewTextDisplay(&text_display.TextDisplayConfig{
			Codepage:    g.Config.UI.Display.Codepage,
			ScrollDelay: time.Duration(g.Config.UI.Display.ScrollDelayMs) * time.Millisecond,
			Width:       g.Config.DisplayWidth(),
		})
		if err != nil {
			return errors.Annotate(err, "display")
		}
		g.TextDisplay = d
	}
	if path := g.Config.UI.Display.Device; path != "" {
		dev, err := text_display.OpenPoleDevice(path)
		if err != nil {
			return err
		}
		g.TextDisplay.SetDevice(dev)
		g.Alive.Add(1)
		go func() {
			defer g.Alive.Done()
			g.TextDisplay.Run()
		}()
		go func() {
			<-g.Alive.StopChan()
			g.TextDisplay.Stop()
		}()
	}
	g.TextDisplay.Clear()
	return nil
}

func (g *Global) initInput() {
	if g.Input == nil {
		g.Input = input.NewDispatch(g.Log, g.Alive.StopChan())
		go g.Input.Run()
	}
}
