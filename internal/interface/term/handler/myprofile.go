package handler

import (
	"context"
	"errors"

	"github.com/feehub/student-fee-portal/internal/application/command"
	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/internal/interface/term"
	"github.com/feehub/student-fee-portal/internal/interface/term/presenter"
)

// MyProfile is the signed-in student's own profile page with its edit panel.
type MyProfile struct {
	gateways GatewayFactory
	profile  *presenter.ProfilePresenter
}

// NewMyProfile creates the profile page handler.
func NewMyProfile(gateways GatewayFactory) *MyProfile {
	return &MyProfile{
		gateways: gateways,
		profile:  presenter.NewProfilePresenter(),
	}
}

// Handle implements term.Handler.
func (h *MyProfile) Handle(ctx context.Context, t *term.Terminal) (string, error) {
	flow, err := command.LoadProfile(ctx, h.gateways(t.Session), t.Session.StudentID)
	if err != nil {
		if ctx.Err() != nil {
			return term.PageExit, ctx.Err()
		}
		if shared.IsIdentity(err) {
			return term.PageLogin, nil
		}
		t.Println("Could not load your profile. Please try again.")
		return term.PageHome, nil
	}

	for {
		t.Divider()
		t.Println(h.profile.FormatProfile(flow.Record()))
		t.Println("Commands: edit | payfee | back")

		line, err := t.Prompt("profile")
		if err != nil {
			return term.PageExit, err
		}

		switch line {
		case "edit":
			if next, err := h.edit(ctx, t, flow); err != nil || next != "" {
				return next, err
			}
		case "payfee":
			return term.PagePayFee, nil
		case "back":
			return term.PageHome, nil
		default:
			t.Println("Unknown command.")
		}
	}
}

// edit runs the edit panel until the draft is saved or the user cancels.
// Returns an empty next page to stay on the profile.
func (h *MyProfile) edit(ctx context.Context, t *term.Terminal, flow *command.ProfileFlow) (string, error) {
	if err := flow.BeginEdit(); err != nil {
		return "", err
	}

	for {
		draft := flow.Draft()
		t.Println("Editing profile (blank keeps the current value, 'cancel' discards)")

		name, err := t.Prompt("Name [" + draft.Name + "]")
		if err != nil {
			return term.PageExit, err
		}
		if name == "cancel" {
			return "", flow.CancelEdit()
		}
		if name != "" {
			draft.Name = name
		}

		email, err := t.Prompt("Email [" + draft.Email + "]")
		if err != nil {
			return term.PageExit, err
		}
		if email == "cancel" {
			return "", flow.CancelEdit()
		}
		if email != "" {
			draft.Email = email
		}

		if err := flow.SetDraft(draft); err != nil {
			return "", err
		}

		saveErr := flow.Save(ctx)
		if saveErr == nil {
			t.Println("Profile updated.")
			return "", nil
		}
		if ctx.Err() != nil {
			return term.PageExit, ctx.Err()
		}

		var fieldErrs shared.FieldErrors
		if errors.As(saveErr, &fieldErrs) {
			t.Println(presenter.FormatFieldErrors(fieldErrs))
			continue
		}

		// Server rejected the update; the draft is intact for another try.
		t.Println("The server rejected the update. Your changes were kept.")
	}
}
