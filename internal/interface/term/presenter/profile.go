package presenter

import (
	"fmt"
	"strings"

	"github.com/feehub/student-fee-portal/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE PRESENTER
// ══════════════════════════════════════════════════════════════════════════════

// ProfilePresenter formats a student's own profile page.
type ProfilePresenter struct{}

// NewProfilePresenter creates a profile presenter.
func NewProfilePresenter() *ProfilePresenter {
	return &ProfilePresenter{}
}

// FormatProfile renders the profile card.
func (p *ProfilePresenter) FormatProfile(record student.Record) string {
	var sb strings.Builder
	sb.WriteString("My Profile\n")
	fmt.Fprintf(&sb, "  ID:         %s\n", record.ID)
	fmt.Fprintf(&sb, "  Name:       %s\n", record.Name)
	fmt.Fprintf(&sb, "  Email:      %s\n", record.Email)
	fmt.Fprintf(&sb, "  Fee status: %s\n", record.FeesPaid)
	return sb.String()
}
