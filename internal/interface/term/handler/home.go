package handler

import (
	"context"
	"time"

	"github.com/feehub/student-fee-portal/internal/application/command"
	"github.com/feehub/student-fee-portal/internal/interface/term"
)

// Home is the entry page. It shows a menu matched to whether a session is
// present and routes the choice.
type Home struct {
	auth *command.Authenticator
}

// NewHome creates the entry page handler.
func NewHome(auth *command.Authenticator) *Home {
	return &Home{auth: auth}
}

// Handle implements term.Handler.
func (h *Home) Handle(ctx context.Context, t *term.Terminal) (string, error) {
	t.Divider()
	t.Println("Student Fee Portal")
	t.Divider()

	signedIn := t.Session.Validate(time.Now()) == nil
	if signedIn {
		t.Println("  1) Student list")
		t.Println("  2) My profile")
		t.Println("  3) Pay fee")
		t.Println("  4) Log out")
		t.Println("  5) Exit")
	} else {
		t.Println("  1) Log in")
		t.Println("  2) Sign up")
		t.Println("  3) Exit")
	}

	choice, err := t.Prompt("Choose")
	if err != nil {
		return term.PageExit, err
	}

	if signedIn {
		switch choice {
		case "1":
			return term.PageStudentList, nil
		case "2":
			return term.PageMyProfile, nil
		case "3":
			return term.PagePayFee, nil
		case "4":
			if err := h.auth.Logout(); err != nil {
				return term.PageExit, err
			}
			t.Println("Logged out.")
			return term.PageHome, nil
		case "5":
			return term.PageExit, nil
		}
	} else {
		switch choice {
		case "1":
			return term.PageLogin, nil
		case "2":
			return term.PageSignUp, nil
		case "3":
			return term.PageExit, nil
		}
	}

	t.Println("Unknown choice.")
	return term.PageHome, nil
}
