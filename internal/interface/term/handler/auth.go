package handler

import (
	"context"
	"errors"

	"github.com/feehub/student-fee-portal/internal/application/command"
	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/internal/interface/term"
	"github.com/feehub/student-fee-portal/internal/interface/term/presenter"
)

// SignUp is the registration page.
type SignUp struct {
	auth *command.Authenticator
}

// NewSignUp creates the sign-up page handler.
func NewSignUp(auth *command.Authenticator) *SignUp {
	return &SignUp{auth: auth}
}

// Handle implements term.Handler.
func (h *SignUp) Handle(ctx context.Context, t *term.Terminal) (string, error) {
	t.Divider()
	t.Println("Sign Up (blank name to go back)")

	form := command.SignUpForm{}
	var err error
	if form.Name, err = t.Prompt("Name"); err != nil {
		return term.PageExit, err
	}
	if form.Name == "" {
		return term.PageHome, nil
	}
	if form.Email, err = t.Prompt("Email"); err != nil {
		return term.PageExit, err
	}
	if form.Password, err = t.Prompt("Password"); err != nil {
		return term.PageExit, err
	}

	if _, err := h.auth.SignUp(ctx, form); err != nil {
		printAuthFailure(t, err)
		return term.PageSignUp, nil
	}

	t.Println("Welcome! You are signed in.")
	return term.PageStudentList, nil
}

// Login is the login page.
type Login struct {
	auth *command.Authenticator
}

// NewLogin creates the login page handler.
func NewLogin(auth *command.Authenticator) *Login {
	return &Login{auth: auth}
}

// Handle implements term.Handler.
func (h *Login) Handle(ctx context.Context, t *term.Terminal) (string, error) {
	t.Divider()
	t.Println("Log In (blank identifier to go back)")

	form := command.LoginForm{}
	var err error
	if form.Identifier, err = t.Prompt("Student id or email"); err != nil {
		return term.PageExit, err
	}
	if form.Identifier == "" {
		return term.PageHome, nil
	}
	if form.Password, err = t.Prompt("Password"); err != nil {
		return term.PageExit, err
	}

	if _, err := h.auth.Login(ctx, form); err != nil {
		printAuthFailure(t, err)
		return term.PageLogin, nil
	}

	t.Println("Welcome back!")
	return term.PageStudentList, nil
}

// printAuthFailure renders a credential failure without ending the page loop.
func printAuthFailure(t *term.Terminal, err error) {
	var fieldErrs shared.FieldErrors
	if errors.As(err, &fieldErrs) {
		t.Println(presenter.FormatFieldErrors(fieldErrs))
		return
	}
	if shared.IsConnectivity(err) {
		t.Println("Could not reach the server. Check your connection and try again.")
		return
	}
	t.Println("Sign-in failed. Check your details and try again.")
}
