// Package presenter formats domain and query output for terminal display.
// Presenters are pure: they turn data into strings and never talk to the
// network or mutate state.
package presenter

import (
	"fmt"
	"strings"

	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER PRESENTER
// ══════════════════════════════════════════════════════════════════════════════

// EmptyRosterMessage is shown when the roster loaded fine but the current
// search and filter match nothing. It is deliberately distinct from the
// load-failure message.
const EmptyRosterMessage = "No students found"

// RosterPresenter formats the projected roster as a table.
type RosterPresenter struct{}

// NewRosterPresenter creates a roster presenter.
func NewRosterPresenter() *RosterPresenter {
	return &RosterPresenter{}
}

// FormatTable renders the records as an aligned table with a fee-status
// badge column. An empty slice renders the empty message instead.
func (p *RosterPresenter) FormatTable(records []student.Record) string {
	if len(records) == 0 {
		return EmptyRosterMessage
	}

	idW, nameW, emailW := len("ID"), len("Name"), len("Email")
	for _, r := range records {
		idW = max(idW, len(r.ID))
		nameW = max(nameW, len(r.Name))
		emailW = max(emailW, len(r.Email))
	}

	var sb strings.Builder
	writeRow := func(id, name, email, status string) {
		fmt.Fprintf(&sb, "%-*s  %-*s  %-*s  %s\n", idW, id, nameW, name, emailW, email, status)
	}

	writeRow("ID", "Name", "Email", "Fee Status")
	sb.WriteString(strings.Repeat("─", idW+nameW+emailW+len("Fee Status")+6))
	sb.WriteByte('\n')
	for _, r := range records {
		writeRow(string(r.ID), r.Name, r.Email, p.badge(r.FeesPaid))
	}
	return sb.String()
}

// badge renders the fee status column value.
func (p *RosterPresenter) badge(status student.FeeStatus) string {
	if bool(status) {
		return "[PAID]"
	}
	return "[UNPAID]"
}

// FormatLoadError renders the page-level failure message for a roster that
// could not be fetched at all.
func (p *RosterPresenter) FormatLoadError(err error) string {
	if shared.IsConnectivity(err) {
		return "Could not reach the server. Check your connection and try again."
	}
	return "Could not load the student list. Please try again."
}
