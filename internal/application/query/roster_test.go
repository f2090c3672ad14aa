package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/internal/domain/student"
)

func sampleRoster() []student.Record {
	return []student.Record{
		{ID: "103", Name: "Charlie Fox", Email: "charlie@school.edu", FeesPaid: student.FeesUnpaid},
		{ID: "101", Name: "alice Young", Email: "alice@school.edu", FeesPaid: student.FeesPaid},
		{ID: "102", Name: "Bob Stone", Email: "bob@school.edu", FeesPaid: student.FeesUnpaid},
		{ID: "104", Name: "Dana Hill", Email: "dana@school.edu", FeesPaid: student.FeesPaid},
	}
}

func ids(records []student.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID.String()
	}
	return out
}

func TestProjectDeterministic(t *testing.T) {
	roster := sampleRoster()
	q := RosterQuery{Search: "o", Status: StatusAll, Key: SortByEmail, Dir: Desc}

	first, err := Project(roster, q)
	require.NoError(t, err)
	second, err := Project(roster, q)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestProjectDoesNotMutateSource(t *testing.T) {
	roster := sampleRoster()
	want := sampleRoster()

	_, err := Project(roster, RosterQuery{Key: SortByID, Dir: Desc})
	require.NoError(t, err)

	assert.Equal(t, want, roster)
}

func TestProjectFilterPredicate(t *testing.T) {
	roster := sampleRoster()

	t.Run("status filter", func(t *testing.T) {
		got, err := Project(roster, RosterQuery{Status: StatusUnpaid})
		require.NoError(t, err)
		for _, r := range got {
			assert.Equal(t, student.FeesUnpaid, r.FeesPaid)
		}
		assert.Len(t, got, 2)
	})

	t.Run("search is case-insensitive on name and email", func(t *testing.T) {
		got, err := Project(roster, RosterQuery{Search: "ALICE"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, student.ID("101"), got[0].ID)
	})

	t.Run("search matches id substring", func(t *testing.T) {
		got, err := Project(roster, RosterQuery{Search: "04"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, student.ID("104"), got[0].ID)
	})

	t.Run("search and status combine", func(t *testing.T) {
		got, err := Project(roster, RosterQuery{Search: "school.edu", Status: StatusPaid})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"101", "104"}, ids(got))
	})

	t.Run("no matches is empty, not an error", func(t *testing.T) {
		got, err := Project(roster, RosterQuery{Search: "zzz"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestProjectSortDirection(t *testing.T) {
	roster := sampleRoster()

	asc, err := Project(roster, RosterQuery{Key: SortByID, Dir: Asc})
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "102", "103", "104"}, ids(asc))

	desc, err := Project(roster, RosterQuery{Key: SortByID, Dir: Desc})
	require.NoError(t, err)
	assert.Equal(t, []string{"104", "103", "102", "101"}, ids(desc))
}

func TestProjectSortTiesKeepFilterOrder(t *testing.T) {
	roster := sampleRoster()

	// Two paid and two unpaid records: sorting by the fee flag groups them,
	// and within a group the original order survives in both directions.
	asc, err := Project(roster, RosterQuery{Key: SortByFees, Dir: Asc})
	require.NoError(t, err)
	assert.Equal(t, []string{"103", "102", "101", "104"}, ids(asc))

	desc, err := Project(roster, RosterQuery{Key: SortByFees, Dir: Desc})
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "104", "103", "102"}, ids(desc))
}

func TestProjectSortIsCaseSensitiveLexicographic(t *testing.T) {
	roster := sampleRoster()

	got, err := Project(roster, RosterQuery{Key: SortByName, Dir: Asc})
	require.NoError(t, err)
	// Uppercase letters order before lowercase in a plain lexicographic sort.
	assert.Equal(t, []string{"102", "103", "104", "101"}, ids(got))
}

func TestProjectValidatesInputs(t *testing.T) {
	_, err := Project(sampleRoster(), RosterQuery{Status: "overdue"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = Project(sampleRoster(), RosterQuery{Key: "age"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = Project(sampleRoster(), RosterQuery{Dir: "sideways"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestDefaultsFillZeroValues(t *testing.T) {
	q := RosterQuery{}
	require.NoError(t, q.Validate())
	assert.Equal(t, DefaultRosterQuery(), q)
}
