// Package student contains the student record domain model.
// This is the core of the business logic - it has no external dependencies.
package student

import (
	"strings"

	"github.com/feehub/student-fee-portal/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// ID is the externally assigned student identifier. It is unique per student
// and immutable after creation.
type ID string

// IsValid reports whether the ID is non-empty after trimming.
func (id ID) IsValid() bool {
	return strings.TrimSpace(string(id)) != ""
}

// String returns the string form of the ID.
func (id ID) String() string {
	return string(id)
}

// FeeStatus is the boolean fee flag. It transitions only false -> true, and
// only through the payment-confirmation path on the server; the client never
// flips it directly.
type FeeStatus bool

const (
	// FeesUnpaid means the fee obligation is still due.
	FeesUnpaid FeeStatus = false
	// FeesPaid means the fee obligation has been satisfied.
	FeesPaid FeeStatus = true
)

// String returns "paid" or "unpaid".
func (f FeeStatus) String() string {
	if bool(f) {
		return "paid"
	}
	return "unpaid"
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Record is a student record as served by the remote gateway.
type Record struct {
	// ID is assigned out-of-band at sign-up and never changes.
	ID ID

	// Name is the display name, editable through the profile flow.
	Name string

	// Email is the contact address, editable through the profile flow.
	Email string

	// FeesPaid is mutated only by the gateway as a side effect of a
	// confirmed payment. Profile edits must not touch it.
	FeesPaid FeeStatus
}

// Validate checks the structural invariants of a record.
func (r Record) Validate() error {
	if !r.ID.IsValid() {
		return shared.NewDomainError("student", "Validate", shared.ErrInvalidID, "student id is empty")
	}
	if strings.TrimSpace(r.Name) == "" {
		return shared.NewDomainError("student", "Validate", shared.ErrEmptyValue, "name is empty")
	}
	if strings.TrimSpace(r.Email) == "" {
		return shared.NewDomainError("student", "Validate", shared.ErrEmptyValue, "email is empty")
	}
	return nil
}

// ProfileUpdate is the editable subset of a record. FeesPaid is deliberately
// absent: there is no client-initiated path to change it here.
type ProfileUpdate struct {
	ID    ID
	Name  string
	Email string
}

// Normalize trims the editable fields.
func (u ProfileUpdate) Normalize() ProfileUpdate {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	return u
}
