package state

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/duernstein/selfcheckout/internal/flow"
	"github.com/duernstein/selfcheckout/internal/i18n"
	"github.com/duernstein/selfcheckout/internal/reveal"
	"github.com/duernstein/selfcheckout/log2"
	"github.com/duernstein/selfcheckout/tele"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestReadConfig(t *testing.T) {
	t.Parallel()

	type Case struct {
		name      string
		input     string
		check     func(testing.TB, context.Context)
		expectErr string
	}
	cases := []Case{
		{"empty", "", func(t testing.TB, ctx context.Context) {
			g := GetGlobal(ctx)
			doors, err := g.Config.Doors()
			assert.NoError(t, err)
			assert.Equal(t, []flow.Door{1, 2}, doors)
			assert.Equal(t, 2000*time.Millisecond, g.Config.AppleDelay())
			assert.Equal(t, 2500*time.Millisecond, g.Config.CardDelay())
			assert.Equal(t, reveal.DefaultSchedule, g.Config.RevealSchedule())
			assert.Equal(t, uint32(DefaultDisplayWidth), g.Config.DisplayWidth())
			assert.Equal(t, DefaultWebListen, g.Config.WebListen())
			assert.Equal(t, i18n.LangDE, g.Translator.Language())
		}, ""},

		{"kiosk",
			`kiosk { doors = [3, 1, 4] url = "http://kiosk.local/" } ui { default_language = "en" }`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				doors, err := g.Config.Doors()
				assert.NoError(t, err)
				assert.Equal(t, []flow.Door{3, 1, 4}, doors)
				assert.Equal(t, "http://kiosk.local/", g.Config.Kiosk.URL)
				assert.Equal(t, i18n.LangEN, g.Translator.Language())
			},
			"",
		},

		{"timing",
			`payment { apple_ms = 10 card_ms = 20 } reveal { opening_ms = 1 open_ms = 2 complete_ms = 3 }`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				assert.Equal(t, 10*time.Millisecond, g.Config.AppleDelay())
				assert.Equal(t, 20*time.Millisecond, g.Config.CardDelay())
				assert.Equal(t, reveal.Schedule{Opening: time.Millisecond, Open: 2 * time.Millisecond, Complete: 3 * time.Millisecond}, g.Config.RevealSchedule())
			},
			"",
		},

		{"display",
			`ui { display { width = 16 scroll_delay_ms = 300 } web { listen = ":9000" } }`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				assert.Equal(t, uint32(16), g.Config.DisplayWidth())
				assert.Equal(t, ":9000", g.Config.WebListen())
			},
			"",
		},

		{"include-normalize", `
kiosk { name = "a" }
include "./empty" {}`,
			nil, ""},

		{"include-optional", `
include "doors-7" {}
include "non-exist" { optional = true }`,
			func(t testing.TB, ctx context.Context) {
				doors, _ := GetGlobal(ctx).Config.Doors()
				assert.Equal(t, []flow.Door{7}, doors)
			}, ""},

		{"include-overwrites", `
kiosk { doors = [1] }
include "doors-7" {}`,
			func(t testing.TB, ctx context.Context) {
				doors, _ := GetGlobal(ctx).Config.Doors()
				assert.Equal(t, []flow.Door{7}, doors)
			}, ""},

		{"include-site-doors", `
kiosk { doors = [1, 2] }
include "site-doors" {}`,
			func(t testing.TB, ctx context.Context) {
				doors, _ := GetGlobal(ctx).Config.Doors()
				assert.Equal(t, []flow.Door{3}, doors)
			}, ""},

		{"include-keeps-doors", `
kiosk { doors = [1, 2] }
include "site-url" {}`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				doors, _ := g.Config.Doors()
				assert.Equal(t, []flow.Door{1, 2}, doors)
				assert.Equal(t, "http://site/", g.Config.Kiosk.URL)
			}, ""},

		{"error-include-required", `include "non-exist" {}`, nil, "config required name=non-exist"},
		{"error-door-zero", `kiosk { doors = [0] }`, nil, "door=0"},
		{"error-door-duplicate", `kiosk { doors = [2, 2] }`, nil, "duplicate door=2"},
		{"error-language", `ui { default_language = "fr" }`, nil, "ui.default_language"},
		{"error-reveal-order", `reveal { opening_ms = 5000 open_ms = 100 }`, nil, "reveal schedule"},
		{"error-syntax", `hello`, nil, "key 'hello' expected start of object"},
		{"error-include-loop", `include "include-loop" {}`, nil, "config include loop: from=include-loop include=include-loop"},
	}
	mkCheck := func(c Case) func(*testing.T) {
		return func(t *testing.T) {
			log := log2.NewTest(t, log2.LDebug)
			ctx, g := NewContext(log, tele.NewStub())
			defer g.Alive.Stop()

			fs := NewMockFullReader(map[string]string{
				"test-inline":  c.input,
				"empty":        "",
				"doors-7":      "kiosk{doors=[7]}",
				"site-doors":   "kiosk { doors = [3] }",
				"site-url":     `kiosk { url = "http://site/" }`,
				"error-syntax": "hello",
				"include-loop": `include "include-loop" {}`,
			})
			cfg, err := ReadConfig(log, fs, "test-inline")
			if err == nil {
				err = g.Init(ctx, cfg)
			}
			if c.expectErr == "" {
				if err != nil {
					t.Fatalf("error expected=nil actual='%v'", errors.ErrorStack(err))
				}
				if c.check != nil {
					c.check(t, ctx)
				}
			} else {
				if err == nil || !strings.Contains(err.Error(), c.expectErr) {
					t.Fatalf("error expected='%s' actual='%v'", c.expectErr, err)
				}
			}
		}
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, mkCheck(c))
	}
}

func TestGlobalErrorForwardsToTele(t *testing.T) {
	t.Parallel()
	ctx, g := NewTestContext(t, "")
	rec := g.Tele.(*tele.Recorder)
	g.Error(errors.New("boom"), "door=%d", 2)
	errs := rec.Errors()
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "door=2: boom", errs[0].Error())
	}
	assert.NotNil(t, i18n.GetTranslator(ctx))
}

func TestClientActivity(t *testing.T) {
	t.Parallel()
	_, g := NewTestContext(t, "")
	rec := g.Tele.(*tele.Recorder)
	assert.False(t, g.ClientWorking())
	g.ClientBegin()
	g.ClientBegin()
	assert.True(t, g.ClientWorking())
	g.ClientEnd()
	assert.False(t, g.ClientWorking())
	assert.Equal(t, []tele.State{tele.State_Client, tele.State_Nominal}, rec.States())
}

func TestGetGlobalMissing(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { GetGlobal(context.Background()) })
}

func TestBundledConfig(t *testing.T) {
	t.Parallel()
	log := log2.NewTest(t, log2.LDebug)
	c, err := ReadConfig(log, NewOsFullReader(), "../../selfcheckout.hcl")
	if err != nil {
		t.Fatal(errors.ErrorStack(err))
	}
	doors, err := c.Doors()
	assert.NoError(t, err)
	assert.Equal(t, []flow.Door{1, 2}, doors)
	assert.Equal(t, reveal.DefaultSchedule, c.RevealSchedule())
	assert.Equal(t, "de", c.UI.DefaultLanguage)
	assert.True(t, c.UI.Web.Enable)
	assert.False(t, c.Tele.Enabled)
	assert.Equal(t, 1, c.Tele.KioskId)
}
