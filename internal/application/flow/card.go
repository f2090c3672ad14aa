package flow

import (
	"strings"

	"github.com/feehub/student-fee-portal/internal/application/forms"
	"github.com/feehub/student-fee-portal/internal/domain/shared"
)

// CardDetails holds the card form's field values. The stored values carry the
// live cosmetic formatting; validation always strips it first, so formatting
// never changes what is validated.
type CardDetails struct {
	CardNumber string `json:"cardNumber" validate:"required,cardnumber"`
	CardName   string `json:"cardName" validate:"required"`
	ExpiryDate string `json:"expiryDate" validate:"required,cardexpiry"`
	CVC        string `json:"cvc" validate:"required,min=3"`
}

// Normalize applies the live formatting to the number and expiry, exactly as
// the inputs do while typing.
func (c CardDetails) Normalize() CardDetails {
	c.CardNumber = FormatCardNumber(c.CardNumber)
	c.ExpiryDate = FormatExpiry(c.ExpiryDate)
	c.CardName = strings.TrimSpace(c.CardName)
	c.CVC = strings.TrimSpace(c.CVC)
	return c
}

// Validate returns per-field errors, or nil when the card data is acceptable:
// non-empty cardholder name, exactly 16 digits, MM / YY expiry with a real
// month, CVC of at least 3 characters.
func (c CardDetails) Validate() shared.FieldErrors {
	return forms.FieldErrors(c)
}

// FormatCardNumber groups the first run of 4-16 digits into blocks of four
// separated by spaces. Inputs with fewer than four digits are returned as
// typed. Stripping non-digits always recovers the underlying value.
func FormatCardNumber(value string) string {
	digits := forms.StripNonDigits(value)
	if len(digits) < 4 {
		return value
	}
	if len(digits) > 16 {
		digits = digits[:16]
	}

	parts := make([]string, 0, 4)
	for i := 0; i < len(digits); i += 4 {
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		parts = append(parts, digits[i:end])
	}
	return strings.Join(parts, " ")
}

// FormatExpiry inserts the " / " separator after the first two digits. Inputs
// with fewer than two digits are returned as their bare digits.
func FormatExpiry(value string) string {
	digits := forms.StripNonDigits(value)
	if len(digits) < 2 {
		return digits
	}
	if len(digits) > 4 {
		digits = digits[:4]
	}
	return digits[:2] + " / " + digits[2:]
}
