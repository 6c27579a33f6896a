// Package cardform formats card payment fields on every keystroke.
// All transforms are pure and re-derivable from current field value.
package cardform

import (
	"strings"
	"unicode/utf8"

	"github.com/duernstein/selfcheckout/helpers"
)

const (
	NumberMaxDigits = 16
	NumberMaxLen    = NumberMaxDigits + NumberMaxDigits/4 - 1 // 19
	NumberMinDigits = 15
	ExpiryLen       = len("MM/YY")
	CVCMinLen       = 3
	CVCMaxLen       = 4
	groupSize       = 4
)

// FormatCardNumber groups leading 4..16 digits by four.
// Fewer than 4 digits are returned as is.
func FormatCardNumber(raw string) string {
	digits := helpers.DigitsOnly(raw)
	if len(digits) < groupSize {
		return digits
	}
	if len(digits) > NumberMaxDigits {
		digits = digits[:NumberMaxDigits]
	}
	var b strings.Builder
	b.Grow(NumberMaxLen)
	for i := 0; i < len(digits); i += groupSize {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + groupSize
		if end > len(digits) {
			end = len(digits)
		}
		b.WriteString(digits[i:end])
	}
	return b.String()
}

// FormatExpiry produces MM/YY shape once two digits are typed.
func FormatExpiry(raw string) string {
	digits := helpers.DigitsOnly(raw)
	if len(digits) < 2 {
		return digits
	}
	if len(digits) > 4 {
		digits = digits[:4]
	}
	return digits[:2] + "/" + digits[2:]
}

func SanitizeCVC(raw string) string {
	digits := helpers.DigitsOnly(raw)
	if len(digits) > CVCMaxLen {
		digits = digits[:CVCMaxLen]
	}
	return digits
}

// Fields is ephemeral card form content, created fresh per payment attempt.
type Fields struct {
	Number string `json:"number"`
	Holder string `json:"holder"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
}

// IsValid gates card payment submit.
// Expiry month range and card number checksum are not verified.
func IsValid(f Fields) bool {
	return len(helpers.DigitsOnly(f.Number)) >= NumberMinDigits &&
		len(f.Expiry) == ExpiryLen &&
		len(helpers.DigitsOnly(f.CVC)) >= CVCMinLen &&
		f.Holder != ""
}

func (f *Fields) SetNumber(raw string) { f.Number = FormatCardNumber(raw) }
func (f *Fields) SetExpiry(raw string) { f.Expiry = FormatExpiry(raw) }
func (f *Fields) SetCVC(raw string)    { f.CVC = SanitizeCVC(raw) }
func (f *Fields) SetHolder(raw string) { f.Holder = raw }

func (f *Fields) Valid() bool { return IsValid(*f) }

// Masked shows last four digits only, e.g. "**** 1111". Empty when fewer than 4 digits.
func (f *Fields) Masked() string {
	digits := helpers.DigitsOnly(f.Number)
	if len(digits) < groupSize {
		return ""
	}
	return "**** " + digits[len(digits)-groupSize:]
}

// HolderShort truncates holder name to n runes for narrow displays.
func (f *Fields) HolderShort(n int) string {
	if utf8.RuneCountInString(f.Holder) <= n {
		return f.Holder
	}
	r := []rune(f.Holder)
	return string(r[:n])
}
