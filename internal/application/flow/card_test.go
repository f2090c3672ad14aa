package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCardNumber(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"4242424242424242", "4242 4242 4242 4242"},
		{"4242 4242 4242 4242", "4242 4242 4242 4242"},
		{"4242-4242-4242-4242", "4242 4242 4242 4242"},
		{"42424242424242429999", "4242 4242 4242 4242"}, // overflow truncated
		{"424242", "4242 42"},
		{"424", "424"}, // fewer than four digits: as typed
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatCardNumber(c.in), "input %q", c.in)
	}
}

func TestFormatExpiry(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"1229", "12 / 29"},
		{"12 / 29", "12 / 29"},
		{"12", "12 / "},
		{"1", "1"},
		{"122934", "12 / 29"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatExpiry(c.in), "input %q", c.in)
	}
}

func TestFormattingIsReversible(t *testing.T) {
	// Cosmetic only: stripping non-digits recovers the validated value.
	formatted := FormatCardNumber("4242424242424242")
	assert.Equal(t, "4242 4242 4242 4242", formatted)

	var digits string
	for _, r := range formatted {
		if r >= '0' && r <= '9' {
			digits += string(r)
		}
	}
	assert.Equal(t, "4242424242424242", digits)
}

func TestCardValidation(t *testing.T) {
	valid := CardDetails{
		CardNumber: "4242 4242 4242 4242",
		CardName:   "John Doe",
		ExpiryDate: "12 / 29",
		CVC:        "123",
	}
	assert.Nil(t, valid.Validate())

	t.Run("short card number", func(t *testing.T) {
		c := valid
		c.CardNumber = "4242 4242 4242"
		errs := c.Validate()
		assert.Equal(t, "Card number must be 16 digits.", errs["cardNumber"])
	})

	t.Run("invalid month", func(t *testing.T) {
		c := valid
		c.ExpiryDate = "13 / 29"
		errs := c.Validate()
		assert.Equal(t, "Expiry date must be in MM / YY format.", errs["expiryDate"])
	})

	t.Run("single digit month", func(t *testing.T) {
		c := valid
		c.ExpiryDate = "1 / 29"
		errs := c.Validate()
		assert.Equal(t, "Expiry date must be in MM / YY format.", errs["expiryDate"])
	})

	t.Run("missing name", func(t *testing.T) {
		c := valid
		c.CardName = ""
		errs := c.Validate()
		assert.Equal(t, "Cardholder name is required.", errs["cardName"])
	})

	t.Run("short cvc", func(t *testing.T) {
		c := valid
		c.CVC = "12"
		errs := c.Validate()
		assert.Equal(t, "CVC must be 3-4 digits.", errs["cvc"])
	})

	t.Run("all fields empty", func(t *testing.T) {
		errs := CardDetails{}.Validate()
		assert.Len(t, errs, 4)
	})
}
