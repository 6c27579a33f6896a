package ui_test

import (
	"testing"
	"time"

	"github.com/duernstein/selfcheckout/hardware/text_display"
	"github.com/duernstein/selfcheckout/internal/flow"
	"github.com/duernstein/selfcheckout/internal/i18n"
	"github.com/duernstein/selfcheckout/internal/reveal"
	"github.com/duernstein/selfcheckout/internal/state"
	"github.com/duernstein/selfcheckout/internal/types"
	"github.com/duernstein/selfcheckout/internal/ui"
	"github.com/duernstein/selfcheckout/log2"
	"github.com/duernstein/selfcheckout/tele"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toDoorSelect() []step {
	return []step{
		{check: expectScreen(flow.ScreenLanding)},
		{inev: key(types.KeyContinue), check: expectScreen(flow.ScreenDoorSelect)},
	}
}

func toPayment(door string) []step {
	return append(toDoorSelect(),
		step{inev: keyArg(types.KeyDoor, door), check: expectScreen(flow.ScreenDoorSelect)},
		step{inev: key(types.KeyConfirm), check: expectScreen(flow.ScreenPayment)},
	)
}

func TestApplePayHappyPath(t *testing.T) {
	t.Parallel()

	env := uiTestSetup(t, `ui { default_language = "en" }`)
	defer env.stop()

	steps := append(toPayment("2"),
		step{inev: key(types.KeyApple), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, "apple", v.Method)
			assert.True(t, v.Processing)
			assert.False(t, v.Controls.Back)
			assert.False(t, v.Controls.Apple)
			assert.Equal(t, [2]string{"Please wait", "Door 2"}, v.Lines)
		}},
		// no-op while processing
		step{inev: key(types.KeyBack), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, flow.ScreenPayment.String(), v.Screen)
			assert.True(t, v.Processing)
		}},
		step{fun: func() { env.clock.Advance(1999 * time.Millisecond) }},
		step{advance: time.Millisecond, check: func(t testing.TB, v ui.View) {
			assert.Equal(t, flow.ScreenSuccess.String(), v.Screen)
			assert.Equal(t, reveal.PhaseSuccess.String(), v.Phase)
			assert.Equal(t, 2, v.Door)
			assert.False(t, v.Controls.NewPurchase)
			assert.Equal(t, [2]string{"Paid", "Door 2"}, v.Lines)
		}},
		// new purchase is offered only after reveal completes
		step{inev: key(types.KeyNew), check: expectScreen(flow.ScreenSuccess)},
		step{advance: 2000 * time.Millisecond, check: func(t testing.TB, v ui.View) {
			assert.Equal(t, reveal.PhaseOpening.String(), v.Phase)
			assert.Equal(t, [2]string{"Door opening", "Door 2"}, v.Lines)
		}},
		step{advance: 2000 * time.Millisecond, check: func(t testing.TB, v ui.View) {
			assert.Equal(t, reveal.PhaseOpen.String(), v.Phase)
			assert.Equal(t, 2, v.Door)
		}},
		step{advance: 1500 * time.Millisecond, check: func(t testing.TB, v ui.View) {
			assert.Equal(t, reveal.PhaseComplete.String(), v.Phase)
			assert.True(t, v.Controls.NewPurchase)
			assert.Equal(t, [2]string{"Thank you!", "Enjoy your wine"}, v.Lines)
		}},
		step{inev: key(types.KeyNew), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, flow.ScreenLanding.String(), v.Screen)
			assert.Equal(t, 0, v.Door)
		}},
	)
	uiTestRun(t, env, steps)

	txs := env.rec.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, uint32(2), txs[0].Door)
	assert.Equal(t, "apple", txs[0].Method)
	assert.Equal(t, "en", txs[0].Language)
	assert.Len(t, txs[0].Session, 36)
	assert.Equal(t, []tele.State{tele.State_Nominal, tele.State_Client, tele.State_Nominal}, env.rec.States())
	assert.Equal(t, 0, env.clock.Pending())
}

func TestCardPayment(t *testing.T) {
	t.Parallel()

	env := uiTestSetup(t, `kiosk { doors = [1, 2, 3] } payment { card_ms = 300 }`)
	defer env.stop()

	steps := append(toPayment("3"),
		step{inev: key(types.KeyCard), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, "card", v.Method)
			require.NotNil(t, v.Card)
			assert.True(t, v.Controls.CardInputs)
			assert.True(t, v.Controls.Cancel)
			assert.False(t, v.Controls.Submit)
		}},
		step{inev: keyArg(types.KeyCardNumber, "4111111111111111"), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, "4111 1111 1111 1111", v.Card.Number)
			assert.Equal(t, [2]string{"Kreditkarte", "**** 1111"}, v.Lines)
		}},
		step{inev: keyArg(types.KeyCardExpiry, "1225"), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, "12/25", v.Card.Expiry)
		}},
		step{inev: keyArg(types.KeyCardCVC, "12a3"), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, "123", v.Card.CVC)
			assert.False(t, v.Controls.Submit)
		}},
		// submit gated by validity
		step{inev: key(types.KeyPay), check: func(t testing.TB, v ui.View) {
			assert.False(t, v.Processing)
		}},
		step{inev: keyArg(types.KeyCardHolder, "Max Mustermann"), check: func(t testing.TB, v ui.View) {
			assert.True(t, v.Controls.Submit)
		}},
		step{inev: key(types.KeyPay), check: func(t testing.TB, v ui.View) {
			assert.True(t, v.Processing)
			assert.False(t, v.Controls.CardInputs)
			assert.False(t, v.Controls.Cancel)
			assert.False(t, v.Controls.Submit)
		}},
		step{inev: key(types.KeyCancel), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, "card", v.Method)
		}},
		step{advance: 300 * time.Millisecond, check: func(t testing.TB, v ui.View) {
			assert.Equal(t, flow.ScreenSuccess.String(), v.Screen)
			assert.Equal(t, 3, v.Door)
			assert.Nil(t, v.Card)
		}},
	)
	uiTestRun(t, env, steps)

	txs := env.rec.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, "card", txs[0].Method)
	assert.Equal(t, "de", txs[0].Language)
}

func TestCardToggleAndCancel(t *testing.T) {
	t.Parallel()

	env := uiTestSetup(t, "")
	defer env.stop()

	steps := append(toPayment("1"),
		step{inev: key(types.KeyCard), check: func(t testing.TB, v ui.View) { assert.Equal(t, "card", v.Method) }},
		step{inev: keyArg(types.KeyCardNumber, "4111"), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, "4111", v.Card.Number)
		}},
		step{inev: key(types.KeyCard), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, "none", v.Method)
			assert.Nil(t, v.Card)
		}},
		step{inev: key(types.KeyCard), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, "", v.Card.Number, "form must be fresh")
		}},
		step{inev: key(types.KeyCancel), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, "none", v.Method)
			assert.True(t, v.Controls.Back)
		}},
		// card input without card method is ignored
		step{inev: keyArg(types.KeyCardNumber, "4111"), check: func(t testing.TB, v ui.View) {
			assert.Nil(t, v.Card)
		}},
	)
	uiTestRun(t, env, steps)
}

func TestDoorSelect(t *testing.T) {
	t.Parallel()

	env := uiTestSetup(t, "")
	defer env.stop()

	steps := append(toDoorSelect(),
		step{inev: key(types.KeyConfirm), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, flow.ScreenDoorSelect.String(), v.Screen)
			assert.Equal(t, []int{1, 2}, v.Doors)
			assert.False(t, v.Controls.Confirm)
		}},
		step{inev: keyArg(types.KeyDoor, "3"), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, 0, v.PendingDoor)
		}},
		step{inev: keyArg(types.KeyDoor, "x"), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, 0, v.PendingDoor)
		}},
		step{inev: keyArg(types.KeyDoor, "1"), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, 1, v.PendingDoor)
			assert.Equal(t, 0, v.Door, "pending choice is not selection")
			assert.True(t, v.Controls.Confirm)
			assert.Equal(t, [2]string{"Tür wählen", "Tür 1"}, v.Lines)
		}},
		step{inev: key(types.KeyBack), check: expectScreen(flow.ScreenLanding)},
		step{inev: key(types.KeyContinue), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, 0, v.PendingDoor, "pending door cleared after leaving screen")
		}},
		step{inev: keyArg(types.KeyDoor, "2"), check: expectScreen(flow.ScreenDoorSelect)},
		step{inev: key(types.KeyConfirm), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, flow.ScreenPayment.String(), v.Screen)
			assert.Equal(t, 2, v.Door)
			assert.Equal(t, "none", v.Method)
		}},
		step{inev: key(types.KeyBack), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, flow.ScreenDoorSelect.String(), v.Screen)
			assert.Equal(t, 0, v.Door)
		}},
	)
	uiTestRun(t, env, steps)
	assert.Len(t, env.rec.Transactions(), 0)
}

func TestPaymentFailure(t *testing.T) {
	t.Parallel()

	env := uiTestSetup(t, "")
	defer env.stop()
	env.ui.Gateway().Fail = errors.New("declined")

	steps := append(toPayment("1"),
		step{inev: key(types.KeyApple), check: func(t testing.TB, v ui.View) { assert.True(t, v.Processing) }},
		step{advance: 2000 * time.Millisecond, check: func(t testing.TB, v ui.View) {
			assert.Equal(t, flow.ScreenPayment.String(), v.Screen)
			assert.False(t, v.Processing)
			assert.True(t, v.Failed)
			assert.Equal(t, "none", v.Method)
			assert.True(t, v.Controls.Apple)
			assert.Equal(t, "Zahlung fehlgeschlagen, bitte erneut versuchen", v.Lines[1])
		}},
		step{inev: key(types.KeyCard), check: func(t testing.TB, v ui.View) {
			assert.False(t, v.Failed)
		}},
	)
	uiTestRun(t, env, steps)

	errs := env.rec.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "declined")
	assert.Len(t, env.rec.Transactions(), 0)
}

func TestLanguageSwitch(t *testing.T) {
	t.Parallel()

	env := uiTestSetup(t, "")
	defer env.stop()

	steps := []step{
		{check: func(t testing.TB, v ui.View) {
			assert.Equal(t, "de", v.Lang)
			assert.Equal(t, "Weiter", v.Texts["landing.continue"])
			assert.Equal(t, []string{ui.StepDone, ui.StepActive, ui.StepPending}, v.Steps)
		}},
		{inev: keyArg(types.KeyLang, "en"), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, "en", v.Lang)
			assert.Equal(t, "Continue", v.Texts["landing.continue"])
			assert.Equal(t, [2]string{"Weingut Dürnstein", "Welcome"}, v.Lines)
		}},
		{inev: keyArg(types.KeyLang, "fr"), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, "en", v.Lang)
		}},
		{inev: key(types.KeyContinue), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, "Select Door", v.Texts["doorSelect.title"])
			_, ok := v.Texts["landing.continue"]
			assert.False(t, ok)
		}},
		{inev: key(types.KeyLang), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, "de", v.Lang)
			assert.Equal(t, flow.ScreenDoorSelect.String(), v.Screen)
			assert.Equal(t, "Tür auswählen", v.Texts["doorSelect.title"])
		}},
	}
	uiTestRun(t, env, steps)
	assert.Equal(t, i18n.LangDE, env.g.Translator.Language())
	assert.Len(t, env.rec.Errors(), 1)
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	env := uiTestSetup(t, `ui { display { width = 16 } }`)
	defer env.stop()
	display := env.g.TextDisplay
	_T := func(l1, l2 string) string {
		return text_display.State{L1: display.Translate(l1), L2: display.Translate(l2)}.Format(16)
	}

	uiTestRun(t, env, []step{
		{check: func(t testing.TB, v ui.View) {
			assert.Equal(t, _T("Weingut Dürnstein", "Willkommen"), display.State().Format(16))
		}},
		{inev: key(types.KeyContinue), check: func(t testing.TB, v ui.View) {
			assert.Equal(t, _T("Tür wählen", ""), display.State().Format(16))
		}},
	})
	assert.Equal(t, flow.ScreenDoorSelect, env.ui.Screen())
	assert.Equal(t, flow.ScreenDoorSelect.String(), env.ui.View().Screen)
	assert.True(t, env.ui.IdleTime() >= 0)
}

func TestViewSubscribe(t *testing.T) {
	t.Parallel()

	env := uiTestSetup(t, "")
	defer env.stop()
	ch := make(chan ui.View, 1)
	env.ui.SubscribeView("test", ch)
	defer env.ui.UnsubscribeView("test")

	uiTestRun(t, env, []step{
		{check: expectScreen(flow.ScreenLanding)},
		{inev: key(types.KeyContinue), check: expectScreen(flow.ScreenDoorSelect)},
		{inev: keyArg(types.KeyDoor, "1"), check: expectScreen(flow.ScreenDoorSelect)},
	})
	// slow subscriber gets latest only
	v := <-ch
	assert.Equal(t, 1, v.PendingDoor)
	assert.Panics(t, func() { env.ui.SubscribeView("test", ch) })
}

func TestInitWithoutTranslator(t *testing.T) {
	t.Parallel()

	log := log2.NewTest(t, log2.LDebug)
	ctx, g := state.NewContext(log, tele.NewStub())
	defer g.Alive.Stop()
	g.MustInit(ctx, state.MustReadConfig(log, state.NewMockFullReader(map[string]string{"c": ""}), "c"))
	u := &ui.UI{}
	assert.Panics(t, func() { _ = u.Init(ctx) })
}
