package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type cardForm struct {
	CardNumber string `json:"cardNumber" validate:"required,cardnumber"`
	ExpiryDate string `json:"expiryDate" validate:"required,cardexpiry"`
}

func TestStripNonDigits(t *testing.T) {
	assert.Equal(t, "4242424242424242", StripNonDigits("4242 4242 4242 4242"))
	assert.Equal(t, "1229", StripNonDigits("12 / 29"))
	assert.Equal(t, "", StripNonDigits("abc -/"))
}

func TestCardNumberRule(t *testing.T) {
	errs := FieldErrors(cardForm{CardNumber: "4242 4242 4242 4242", ExpiryDate: "12 / 29"})
	assert.Nil(t, errs)

	errs = FieldErrors(cardForm{CardNumber: "4242 4242 4242", ExpiryDate: "12 / 29"})
	assert.Equal(t, "Card number must be 16 digits.", errs["cardNumber"])
}

func TestCardExpiryRule(t *testing.T) {
	for _, bad := range []string{"13 / 29", "1 / 29", "00 / 29", "12/29", "12 - 29"} {
		errs := FieldErrors(cardForm{CardNumber: "4242 4242 4242 4242", ExpiryDate: bad})
		assert.Equal(t, "Expiry date must be in MM / YY format.", errs["expiryDate"], "expiry %q", bad)
	}
}

func TestFieldNamesComeFromJSONTags(t *testing.T) {
	errs := FieldErrors(cardForm{})
	assert.Contains(t, errs, "cardNumber")
	assert.Contains(t, errs, "expiryDate")
}
