package presenter

import (
	"fmt"
	"strings"

	"github.com/feehub/student-fee-portal/internal/application/flow"
	"github.com/feehub/student-fee-portal/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// FEE PANEL PRESENTER
// ══════════════════════════════════════════════════════════════════════════════

// Static fee display data. The portal shows one fixed semester fee.
const (
	FeeAmount  = "65000.00"
	FeeDueDate = "2025-08-15"
)

// FeePanelPresenter formats the fee summary and payment-method list.
type FeePanelPresenter struct{}

// NewFeePanelPresenter creates a fee panel presenter.
func NewFeePanelPresenter() *FeePanelPresenter {
	return &FeePanelPresenter{}
}

// FormatPanel renders the fee summary for a student.
func (p *FeePanelPresenter) FormatPanel(record student.Record) string {
	var sb strings.Builder
	sb.WriteString("Semester Fee\n")
	fmt.Fprintf(&sb, "  Student:  %s (%s)\n", record.Name, record.ID)
	fmt.Fprintf(&sb, "  Amount:   %s\n", FeeAmount)
	fmt.Fprintf(&sb, "  Due date: %s\n", FeeDueDate)
	fmt.Fprintf(&sb, "  Status:   %s\n", record.FeesPaid)
	return sb.String()
}

// FormatMethods renders the numbered payment-method menu.
func (p *FeePanelPresenter) FormatMethods(methods []flow.Method) string {
	var sb strings.Builder
	sb.WriteString("Choose a payment method:\n")
	for i, m := range methods {
		fmt.Fprintf(&sb, "  %d) %s\n", i+1, m)
	}
	return sb.String()
}

// FormatFieldErrors renders per-field validation messages under the form.
func FormatFieldErrors(errs map[string]string) string {
	if len(errs) == 0 {
		return ""
	}
	// Stable display order for the card form fields.
	order := []string{"name", "email", "password", "cardNumber", "cardName", "expiryDate", "cvc"}
	var sb strings.Builder
	seen := make(map[string]bool, len(errs))
	for _, field := range order {
		if msg, ok := errs[field]; ok {
			fmt.Fprintf(&sb, "  ✗ %s\n", msg)
			seen[field] = true
		}
	}
	for field, msg := range errs {
		if !seen[field] {
			fmt.Fprintf(&sb, "  ✗ %s\n", msg)
		}
	}
	return sb.String()
}
