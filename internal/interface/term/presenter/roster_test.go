package presenter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/internal/domain/student"
)

func TestFormatTable(t *testing.T) {
	p := NewRosterPresenter()
	out := p.FormatTable([]student.Record{
		{ID: "stu-1", Name: "Alice", Email: "alice@school.edu", FeesPaid: student.FeesPaid},
		{ID: "stu-2", Name: "Bob", Email: "bob@school.edu", FeesPaid: student.FeesUnpaid},
	})

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Fee Status")
	assert.Contains(t, out, "[PAID]")
	assert.Contains(t, out, "[UNPAID]")

	// Row order is the projection order.
	assert.Less(t, strings.Index(out, "Alice"), strings.Index(out, "Bob"))
}

func TestFormatTableEmpty(t *testing.T) {
	p := NewRosterPresenter()
	out := p.FormatTable(nil)

	assert.Equal(t, EmptyRosterMessage, out)
	assert.NotContains(t, out, "ID")
}

func TestFormatLoadErrorDistinctFromEmpty(t *testing.T) {
	p := NewRosterPresenter()
	out := p.FormatLoadError(shared.NewDomainError("gateway", "FetchAll", shared.ErrConnectivity, "down"))

	assert.Contains(t, out, "Could not reach the server")
	assert.NotEqual(t, EmptyRosterMessage, out)
}

func TestFormatPanel(t *testing.T) {
	p := NewFeePanelPresenter()
	out := p.FormatPanel(student.Record{
		ID: "stu-1", Name: "Alice", Email: "alice@school.edu", FeesPaid: student.FeesUnpaid,
	})

	assert.Contains(t, out, FeeAmount)
	assert.Contains(t, out, FeeDueDate)
	assert.Contains(t, out, "unpaid")
}

func TestFormatFieldErrorsStableOrder(t *testing.T) {
	out := FormatFieldErrors(map[string]string{
		"cvc":        "CVC must be 3-4 digits.",
		"cardNumber": "Card number must be 16 digits.",
	})

	// Card number is listed before CVC regardless of map iteration order.
	assert.Less(t, strings.Index(out, "Card number"), strings.Index(out, "CVC"))
}

func TestFormatProfile(t *testing.T) {
	p := NewProfilePresenter()
	out := p.FormatProfile(student.Record{
		ID: "stu-1", Name: "Alice", Email: "alice@school.edu", FeesPaid: student.FeesPaid,
	})

	assert.Contains(t, out, "stu-1")
	assert.Contains(t, out, "alice@school.edu")
	assert.Contains(t, out, "paid")
}
