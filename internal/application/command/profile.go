package command

import (
	"context"

	"github.com/feehub/student-fee-portal/internal/application/forms"
	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE FLOW
// idle -> editing -> saving -> idle. A save sends the validated {name, email}
// pair and replaces the local record only with the server-confirmed one - no
// optimistic update, so the view never shows unconfirmed data. On failure the
// flow returns to editing with the draft intact.
// ══════════════════════════════════════════════════════════════════════════════

// ProfileState is the profile flow's current state.
type ProfileState string

const (
	ProfileIdle    ProfileState = "idle"
	ProfileEditing ProfileState = "editing"
	ProfileSaving  ProfileState = "saving"
)

// ProfileDraft is the edit panel's form input.
type ProfileDraft struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// ProfileFlow manages one student's profile view and its edit sub-form.
type ProfileFlow struct {
	gateway student.RecordGateway

	state  ProfileState
	record *student.Record
	draft  ProfileDraft
}

// NewProfileFlow creates a flow in the idle state around a fetched record.
func NewProfileFlow(gateway student.RecordGateway, record *student.Record) *ProfileFlow {
	return &ProfileFlow{gateway: gateway, state: ProfileIdle, record: record}
}

// LoadProfile fetches the record for the session's student and returns a flow
// around it. The ctx check keeps a torn-down page from receiving the result.
func LoadProfile(ctx context.Context, gateway student.RecordGateway, id student.ID) (*ProfileFlow, error) {
	if !id.IsValid() {
		return nil, shared.NewDomainError("profile", "Load", shared.ErrNoIdentity, "student id not found, please log in again")
	}

	record, err := gateway.FetchOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return NewProfileFlow(gateway, record), nil
}

// State returns the current flow state.
func (f *ProfileFlow) State() ProfileState {
	return f.state
}

// Record returns the current server-confirmed record.
func (f *ProfileFlow) Record() student.Record {
	return *f.record
}

// Draft returns the edit panel's current input.
func (f *ProfileFlow) Draft() ProfileDraft {
	return f.draft
}

// BeginEdit opens the edit panel with the current record as the draft.
func (f *ProfileFlow) BeginEdit() error {
	if f.state != ProfileIdle {
		return shared.NewDomainError("profile", "BeginEdit", shared.ErrStateTransition, "already editing")
	}
	f.state = ProfileEditing
	f.draft = ProfileDraft{Name: f.record.Name, Email: f.record.Email}
	return nil
}

// SetDraft replaces the edit panel's input.
func (f *ProfileFlow) SetDraft(draft ProfileDraft) error {
	if f.state != ProfileEditing {
		return shared.NewDomainError("profile", "SetDraft", shared.ErrStateTransition, "not editing")
	}
	f.draft = draft
	return nil
}

// CancelEdit closes the edit panel, discarding the draft.
func (f *ProfileFlow) CancelEdit() error {
	if f.state != ProfileEditing {
		return shared.NewDomainError("profile", "CancelEdit", shared.ErrStateTransition, "not editing")
	}
	f.state = ProfileIdle
	f.draft = ProfileDraft{}
	return nil
}

// Save validates the draft, sends the update, and applies the confirmed
// record. The saving state guards against a second save while one is
// outstanding. Validation failures and server rejections both land back in
// editing; only a confirmed response reaches idle.
func (f *ProfileFlow) Save(ctx context.Context) error {
	if f.state != ProfileEditing {
		return shared.NewDomainError("profile", "Save", shared.ErrStateTransition, "nothing to save")
	}

	update := student.ProfileUpdate{
		ID:    f.record.ID,
		Name:  f.draft.Name,
		Email: f.draft.Email,
	}.Normalize()

	if errs := forms.FieldErrors(ProfileDraft{Name: update.Name, Email: update.Email}); errs != nil {
		return errs
	}

	f.state = ProfileSaving
	confirmed, err := f.gateway.UpdateProfile(ctx, update)

	if ctxErr := ctx.Err(); ctxErr != nil {
		// Torn down mid-save: drop the result, leave the record untouched.
		f.state = ProfileEditing
		return ctxErr
	}

	if err != nil {
		f.state = ProfileEditing
		return shared.WrapError("profile", "Save", shared.ErrServerRejected, "update failed", err)
	}

	f.record = confirmed
	f.state = ProfileIdle
	f.draft = ProfileDraft{}
	return nil
}
