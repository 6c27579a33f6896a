package ui_test

import (
	"context"
	"testing"
	"time"

	"github.com/duernstein/selfcheckout/hardware/input"
	"github.com/duernstein/selfcheckout/helpers"
	"github.com/duernstein/selfcheckout/internal/flow"
	"github.com/duernstein/selfcheckout/internal/state"
	"github.com/duernstein/selfcheckout/internal/types"
	"github.com/duernstein/selfcheckout/internal/ui"
	"github.com/duernstein/selfcheckout/tele"
	"github.com/stretchr/testify/require"
)

const testViewTimeout = 5 * time.Second

type tenv struct {
	ctx   context.Context
	g     *state.Global
	ui    *ui.UI
	clock *helpers.FakeScheduler
	rec   *tele.Recorder
	views chan ui.View
}

// step either emits input or advances fake clock, then checks next rendered view.
// Step with only fun runs it and expects no view.
type step struct {
	inev    types.InputEvent
	advance time.Duration
	check   func(testing.TB, ui.View)
	fun     func()
}

func uiTestSetup(t testing.TB, conf string) *tenv {
	ctx, g := state.NewTestContext(t, conf)
	env := &tenv{
		ctx:   ctx,
		g:     g,
		clock: new(helpers.FakeScheduler),
		rec:   g.Tele.(*tele.Recorder),
		views: make(chan ui.View, 64),
	}
	env.ui = &ui.UI{
		XXX_afterFunc: env.clock.AfterFunc,
		XXX_testHook:  func(s flow.Screen) { t.Logf("testHook %s", s.String()) },
		XXX_viewHook:  func(v ui.View) { env.views <- v },
	}
	require.NoError(t, env.ui.Init(ctx))
	go env.ui.Loop(ctx)
	return env
}

func uiTestRun(t testing.TB, env *tenv, steps []step) {
	for i, step := range steps {
		if step.fun != nil {
			step.fun()
			if step.check == nil {
				continue
			}
		}
		switch {
		case !step.inev.IsZero():
			if step.inev.Source == "" {
				step.inev.Source = input.SourceConsole
			}
			env.g.Input.Emit(step.inev)
		case step.advance != 0:
			env.clock.Advance(step.advance)
		}
		v := env.requireView(t)
		t.Logf("step=%d input=%s advance=%v view screen=%s phase=%s lines=%q", i, step.inev.Key, step.advance, v.Screen, v.Phase, v.Lines)
		if step.check != nil {
			step.check(t, v)
		}
	}
}

func (env *tenv) requireView(t testing.TB) ui.View {
	t.Helper()
	select {
	case v := <-env.views:
		return v
	case <-time.After(testViewTimeout):
		t.Fatal("timeout waiting for ui render")
	}
	return ui.View{}
}

func (env *tenv) stop() {
	env.g.Alive.Stop()
	env.g.Alive.Wait()
}

func key(k types.InputKey) types.InputEvent { return types.InputEvent{Key: k} }
func keyArg(k types.InputKey, arg string) types.InputEvent {
	return types.InputEvent{Key: k, Arg: arg}
}

func expectScreen(s flow.Screen) func(testing.TB, ui.View) {
	return func(t testing.TB, v ui.View) {
		require.Equal(t, s.String(), v.Screen)
	}
}
