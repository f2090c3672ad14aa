// Package query contains read operations following the CQRS pattern.
// Queries never modify state - they only read and return data.
package query

import (
	"sort"
	"strings"

	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER PROJECTION
// The filtered, sorted view of the student collection. A projection is a pure
// function of {collection, search, status filter, sort spec}: identical inputs
// always yield an identical output sequence and the source collection is
// never mutated.
// ══════════════════════════════════════════════════════════════════════════════

// StatusFilter narrows the roster by fee status.
type StatusFilter string

const (
	StatusAll    StatusFilter = "all"
	StatusPaid   StatusFilter = "paid"
	StatusUnpaid StatusFilter = "unpaid"
)

// SortKey selects the record field the roster is ordered by.
type SortKey string

const (
	SortByID    SortKey = "id"
	SortByName  SortKey = "name"
	SortByEmail SortKey = "email"
	SortByFees  SortKey = "fees"
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// RosterQuery carries the three live inputs of the roster view.
type RosterQuery struct {
	// Search is a free-text query matched case-insensitively against name
	// and email, and as a plain substring against the id's string form.
	Search string

	// Status keeps only records whose fee status matches.
	Status StatusFilter

	// Key and Dir form the sort spec.
	Key SortKey
	Dir Direction
}

// DefaultRosterQuery matches the initial view: everything, by name, ascending.
func DefaultRosterQuery() RosterQuery {
	return RosterQuery{Status: StatusAll, Key: SortByName, Dir: Asc}
}

// Validate checks the query and fills zero values with defaults.
func (q *RosterQuery) Validate() error {
	if q.Status == "" {
		q.Status = StatusAll
	}
	if q.Key == "" {
		q.Key = SortByName
	}
	if q.Dir == "" {
		q.Dir = Asc
	}

	switch q.Status {
	case StatusAll, StatusPaid, StatusUnpaid:
	default:
		return shared.NewDomainError("roster", "Validate", shared.ErrInvalidInput, "unknown status filter "+string(q.Status))
	}
	switch q.Key {
	case SortByID, SortByName, SortByEmail, SortByFees:
	default:
		return shared.NewDomainError("roster", "Validate", shared.ErrInvalidInput, "unknown sort key "+string(q.Key))
	}
	switch q.Dir {
	case Asc, Desc:
	default:
		return shared.NewDomainError("roster", "Validate", shared.ErrInvalidInput, "unknown sort direction "+string(q.Dir))
	}
	return nil
}

// Project derives the roster projection from the full collection. The input
// slice is left untouched; the returned slice is freshly allocated.
func Project(records []student.Record, q RosterQuery) ([]student.Record, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	filtered := make([]student.Record, 0, len(records))
	for _, r := range records {
		if matches(r, q) {
			filtered = append(filtered, r)
		}
	}

	// Stable sort keeps the filter-step order for equal keys, so reversing
	// the direction reverses the comparison, not the tie order.
	sort.SliceStable(filtered, func(i, j int) bool {
		c := compare(filtered[i], filtered[j], q.Key)
		if q.Dir == Desc {
			return c > 0
		}
		return c < 0
	})

	return filtered, nil
}

// matches implements the filter predicate: status must match, and a non-empty
// search term must hit name, email, or the id string.
func matches(r student.Record, q RosterQuery) bool {
	switch q.Status {
	case StatusPaid:
		if r.FeesPaid != student.FeesPaid {
			return false
		}
	case StatusUnpaid:
		if r.FeesPaid != student.FeesUnpaid {
			return false
		}
	}

	if q.Search == "" {
		return true
	}
	needle := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(r.Name), needle) ||
		strings.Contains(strings.ToLower(r.Email), needle) ||
		strings.Contains(r.ID.String(), q.Search)
}

// compare orders two records by the chosen key: lexicographic for strings,
// false<true for the fee flag. Returns <0, 0, or >0.
func compare(a, b student.Record, key SortKey) int {
	switch key {
	case SortByID:
		return strings.Compare(a.ID.String(), b.ID.String())
	case SortByName:
		return strings.Compare(a.Name, b.Name)
	case SortByEmail:
		return strings.Compare(a.Email, b.Email)
	case SortByFees:
		switch {
		case a.FeesPaid == b.FeesPaid:
			return 0
		case a.FeesPaid == student.FeesUnpaid:
			return -1
		default:
			return 1
		}
	}
	return 0
}
