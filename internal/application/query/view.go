package query

import (
	"context"

	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER VIEW ENGINE
// Holds the collection fetched once per view instance and recomputes the
// projection locally on every filter/sort/search change. A failed fetch is a
// distinct state from a loaded-but-empty projection: the two need different
// user-facing messages.
// ══════════════════════════════════════════════════════════════════════════════

// ViewState is the lifecycle state of a roster view instance.
type ViewState string

const (
	// ViewLoading - the initial fetch has not completed yet.
	ViewLoading ViewState = "loading"
	// ViewLoaded - the collection is present (possibly empty).
	ViewLoaded ViewState = "loaded"
	// ViewFailed - the fetch failed; there is no collection at all.
	ViewFailed ViewState = "failed"
)

// RosterView is one mounted instance of the roster page. Exactly one fetch is
// issued per instance; Project never touches the network.
type RosterView struct {
	gateway student.RecordGateway

	state   ViewState
	records []student.Record
	loadErr error
}

// NewRosterView creates a view in the loading state.
func NewRosterView(gateway student.RecordGateway) *RosterView {
	return &RosterView{gateway: gateway, state: ViewLoading}
}

// Load performs the single fetch for this view instance. Calling it again
// after it has settled is a state-transition error, not a re-fetch. When ctx
// is cancelled before the result can be applied, the view is left untouched
// so a torn-down page never observes a late write.
func (v *RosterView) Load(ctx context.Context) error {
	if v.state != ViewLoading {
		return shared.NewDomainError("roster", "Load", shared.ErrStateTransition, "view already loaded")
	}

	records, err := v.gateway.FetchAll(ctx)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err != nil {
		v.state = ViewFailed
		v.loadErr = err
		return err
	}

	v.state = ViewLoaded
	v.records = records
	return nil
}

// State returns the current view state.
func (v *RosterView) State() ViewState {
	return v.state
}

// Err returns the fetch error, if the view failed to load.
func (v *RosterView) Err() error {
	return v.loadErr
}

// Project recomputes the projection for the given inputs. Purely local; only
// valid once the view is loaded.
func (v *RosterView) Project(q RosterQuery) ([]student.Record, error) {
	switch v.state {
	case ViewLoading:
		return nil, shared.NewDomainError("roster", "Project", shared.ErrInvalidState, "collection not loaded yet")
	case ViewFailed:
		return nil, shared.WrapError("roster", "Project", shared.ErrConnectivity, "collection absent after failed load", v.loadErr)
	}
	return Project(v.records, q)
}
