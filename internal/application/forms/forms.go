// Package forms wires go-playground/validator for the portal's form inputs
// and translates raw validation failures into per-field messages. Field
// errors stay local: they are attached next to the offending input and are
// never sent to the server.
package forms

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/feehub/student-fee-portal/internal/domain/shared"
)

// Validate is the shared validator instance.
var Validate *validator.Validate

// custom validation tags
const (
	cardNumberTag = "cardnumber"
	cardExpiryTag = "cardexpiry"
)

// expiryPattern is the canonical "MM / YY" form after live formatting:
// two-digit month 01-12, the " / " separator, two-digit year.
var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])\s\/\s\d{2}$`)

func init() {
	Validate = validator.New()

	// Use JSON tag names in errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(cardNumberTag, cardNumberValidation)
	_ = Validate.RegisterValidation(cardExpiryTag, cardExpiryValidation)
}

// cardNumberValidation requires exactly 16 digits once cosmetic formatting is
// stripped.
func cardNumberValidation(fl validator.FieldLevel) bool {
	return len(StripNonDigits(fl.Field().String())) == 16
}

// cardExpiryValidation requires the canonical "MM / YY" form.
func cardExpiryValidation(fl validator.FieldLevel) bool {
	return expiryPattern.MatchString(fl.Field().String())
}

// StripNonDigits removes everything but ASCII digits. Live formatting is
// cosmetic and must be reversible through this function before validation.
func StripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// messages maps "field/tag" to the user-facing message. Unlisted pairs fall
// back to a generic message.
var messages = map[string]string{
	"cardName/required":      "Cardholder name is required.",
	"cardNumber/cardnumber":  "Card number must be 16 digits.",
	"cardNumber/required":    "Card number must be 16 digits.",
	"expiryDate/cardexpiry":  "Expiry date must be in MM / YY format.",
	"expiryDate/required":    "Expiry date must be in MM / YY format.",
	"cvc/min":                "CVC must be 3-4 digits.",
	"cvc/required":           "CVC must be 3-4 digits.",
	"name/required":          "Name is required.",
	"email/required":         "Email is required.",
	"email/email":            "Enter a valid email address.",
	"password/required":      "Password is required.",
	"password/min":           "Password must be at least 6 characters.",
	"identifier/required":    "Enter your student ID or email.",
}

// FieldErrors runs the validator and converts failures into a FieldErrors
// map. Returns nil when the struct is valid.
func FieldErrors(v any) shared.FieldErrors {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return shared.FieldErrors{"form": err.Error()}
	}

	out := make(shared.FieldErrors, len(verrs))
	for _, fe := range verrs {
		if msg, ok := messages[fe.Field()+"/"+fe.Tag()]; ok {
			out[fe.Field()] = msg
			continue
		}
		out[fe.Field()] = "Invalid value."
	}
	return out
}
