package ui

import (
	"fmt"

	"github.com/duernstein/selfcheckout/internal/cardform"
	"github.com/duernstein/selfcheckout/internal/flow"
	"github.com/duernstein/selfcheckout/internal/payment"
	"github.com/duernstein/selfcheckout/internal/reveal"
)

// Landing step indicator values.
const (
	StepDone    = "done"
	StepActive  = "active"
	StepPending = "pending"
)

// Controls tells frontend which controls are enabled.
type Controls struct {
	Continue    bool `json:"continue"`
	Door        bool `json:"door"`
	Confirm     bool `json:"confirm"`
	Back        bool `json:"back"`
	Apple       bool `json:"apple"`
	Card        bool `json:"card"`
	CardInputs  bool `json:"cardInputs"`
	Submit      bool `json:"submit"`
	Cancel      bool `json:"cancel"`
	NewPurchase bool `json:"newPurchase"`
	Lang        bool `json:"lang"`
}

// View is complete render of current screen.
type View struct {
	Screen      string            `json:"screen"`
	Phase       string            `json:"phase,omitempty"`
	Door        int               `json:"door,omitempty"`
	PendingDoor int               `json:"pendingDoor,omitempty"`
	Doors       []int             `json:"doors,omitempty"`
	Steps       []string          `json:"steps,omitempty"`
	Method      string            `json:"method,omitempty"`
	Processing  bool              `json:"processing"`
	Failed      bool              `json:"failed"`
	Card        *cardform.Fields  `json:"card,omitempty"`
	Lang        string            `json:"lang"`
	Lines       [2]string         `json:"lines"`
	Texts       map[string]string `json:"texts"`
	Controls    Controls          `json:"controls"`
}

func (v View) Copy() View {
	c := v
	if v.Doors != nil {
		c.Doors = append([]int(nil), v.Doors...)
	}
	if v.Steps != nil {
		c.Steps = append([]string(nil), v.Steps...)
	}
	if v.Card != nil {
		card := *v.Card
		c.Card = &card
	}
	if v.Texts != nil {
		c.Texts = make(map[string]string, len(v.Texts))
		for k, s := range v.Texts {
			c.Texts[k] = s
		}
	}
	return c
}

var commonTextKeys = []string{"brand.name", "brand.estate"}

var screenTextKeys = map[flow.Screen][]string{
	flow.ScreenLanding: {"landing.step1", "landing.step2", "landing.step3", "landing.continue", "landing.scanned"},
	flow.ScreenDoorSelect: {"doorSelect.title", "doorSelect.subtitle", "doorSelect.door",
		"doorSelect.confirm", "doorSelect.back"},
	flow.ScreenPayment: {"payment.title", "payment.subtitle", "payment.or", "payment.card",
		"payment.cardNumber", "payment.cardHolder", "payment.expiry", "payment.cvc",
		"payment.cancel", "payment.processing", "payment.payNow", "payment.secure", "payment.failed",
		"doorSelect.door", "doorSelect.back"},
	flow.ScreenSuccess: {"success.title", "success.subtitle", "success.doorInfo", "success.opening",
		"success.ready", "success.thanks", "success.enjoy", "success.newPurchase",
		"opening.title", "opening.subtitle", "opening.wait", "opening.ready",
		"opening.thanks", "opening.enjoy", "opening.newPurchase", "doorSelect.door"},
}

// buildView is called only from UI loop.
func (self *UI) buildView() View {
	s := self.flow.Screen()
	v := View{
		Screen: s.String(),
		Door:   int(self.flow.Door()),
		Lang:   string(self.tr.Language()),
		Texts:  make(map[string]string, 24),
	}
	v.Controls.Lang = true
	for _, keys := range [][]string{commonTextKeys, screenTextKeys[s]} {
		for _, k := range keys {
			v.Texts[k] = self.tr.T(k)
		}
	}

	switch s {
	case flow.ScreenLanding:
		v.Steps = []string{StepDone, StepActive, StepPending}
		v.Controls.Continue = true

	case flow.ScreenDoorSelect:
		v.Doors = make([]int, len(self.doors))
		for i, d := range self.doors {
			v.Doors[i] = int(d)
		}
		v.PendingDoor = int(self.pendingDoor)
		v.Controls.Door = true
		v.Controls.Confirm = self.pendingDoor != flow.DoorNone
		v.Controls.Back = true

	case flow.ScreenPayment:
		busy := self.pay.Processing()
		method := self.pay.Method()
		v.Method = method.String()
		v.Processing = busy
		v.Failed = self.pay.Failed()
		v.Controls.Back = !busy
		v.Controls.Apple = !busy
		v.Controls.Card = !busy
		if method == payment.MethodCard {
			card := self.pay.Card()
			v.Card = &card
			v.Controls.CardInputs = !busy
			v.Controls.Cancel = !busy
			v.Controls.Submit = !busy && self.pay.CardValid()
		}

	case flow.ScreenSuccess:
		phase := self.reveal.Phase()
		v.Phase = phase.String()
		v.Controls.NewPurchase = phase == reveal.PhaseComplete
	}
	v.Lines = self.displayLines(s, &v)
	return v
}

func (self *UI) displayLines(s flow.Screen, v *View) [2]string {
	t := self.tr.T
	doorLine := ""
	if v.Door != 0 {
		doorLine = fmt.Sprintf("%s %d", t("doorSelect.door"), v.Door)
	}
	switch s {
	case flow.ScreenLanding:
		return [2]string{t("brand.estate"), t("display.welcome")}

	case flow.ScreenDoorSelect:
		l2 := ""
		if v.PendingDoor != 0 {
			l2 = fmt.Sprintf("%s %d", t("doorSelect.door"), v.PendingDoor)
		}
		return [2]string{t("display.selectDoor"), l2}

	case flow.ScreenPayment:
		switch {
		case v.Processing:
			return [2]string{t("display.processing"), doorLine}
		case v.Failed:
			return [2]string{t("display.pay"), t("payment.failed")}
		case v.Card != nil:
			return [2]string{t("payment.card"), v.Card.Masked()}
		}
		return [2]string{t("display.pay"), doorLine}

	case flow.ScreenSuccess:
		switch self.reveal.Phase() {
		case reveal.PhaseOpening:
			return [2]string{t("display.opening"), doorLine}
		case reveal.PhaseOpen:
			return [2]string{t("display.open"), doorLine}
		case reveal.PhaseComplete:
			return [2]string{t("display.thanks"), t("success.enjoy")}
		}
		return [2]string{t("display.paid"), doorLine}
	}
	return [2]string{}
}

func (self *UI) render() {
	v := self.buildView()
	self.display.SetLines(v.Lines[0], v.Lines[1])
	self.publish(v)
	if self.XXX_viewHook != nil {
		self.XXX_viewHook(v.Copy())
	}
}
