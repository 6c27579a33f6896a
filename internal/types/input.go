package types

// InputKey names user action coming from touch frontend or developer console.
type InputKey string

const (
	KeyContinue   InputKey = "continue"
	KeyDoor       InputKey = "door"    // arg=door number, pending choice only
	KeyConfirm    InputKey = "confirm" // pending door -> payment
	KeyBack       InputKey = "back"
	KeyApple      InputKey = "apple"
	KeyCard       InputKey = "card"
	KeyCardNumber InputKey = "card-number"
	KeyCardHolder InputKey = "card-holder"
	KeyCardExpiry InputKey = "card-expiry"
	KeyCardCVC    InputKey = "card-cvc"
	KeyPay        InputKey = "pay"
	KeyCancel     InputKey = "cancel"
	KeyNew        InputKey = "new"
	KeyLang       InputKey = "lang" // arg=de|en, empty toggles
)

var AllKeys = []InputKey{
	KeyContinue, KeyDoor, KeyConfirm, KeyBack,
	KeyApple, KeyCard, KeyCardNumber, KeyCardHolder, KeyCardExpiry, KeyCardCVC, KeyPay, KeyCancel,
	KeyNew, KeyLang,
}

func ParseInputKey(s string) (InputKey, bool) {
	for _, k := range AllKeys {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

type InputEvent struct {
	Source string
	Key    InputKey
	Arg    string
}

func (e *InputEvent) IsZero() bool { return e.Key == "" }
