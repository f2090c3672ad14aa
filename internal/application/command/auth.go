// Package command contains state-changing use cases: credential exchange and
// profile updates. Each command is a self-contained handler with explicit
// dependencies - no ambient state.
package command

import (
	"context"

	"github.com/feehub/student-fee-portal/internal/application/forms"
	"github.com/feehub/student-fee-portal/internal/domain/session"
	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/internal/domain/student"
)

// SignUpForm carries the sign-up page's input.
type SignUpForm struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginForm carries the login page's input. Identifier is a student id or
// email.
type LoginForm struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// Authenticator handles sign-up, login, and logout against the credential
// endpoint, and owns the session lifecycle: set on success, cleared on
// logout, never read from ambient storage by the flows themselves.
type Authenticator struct {
	credentials student.CredentialGateway
	sessions    session.Store
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(credentials student.CredentialGateway, sessions session.Store) *Authenticator {
	return &Authenticator{credentials: credentials, sessions: sessions}
}

// SignUp validates the form locally, registers the student, and persists the
// returned identity.
func (a *Authenticator) SignUp(ctx context.Context, form SignUpForm) (session.Session, error) {
	if errs := forms.FieldErrors(form); errs != nil {
		return session.Session{}, errs
	}

	creds, err := a.credentials.SignUp(ctx, student.SignUpInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		return session.Session{}, shared.WrapError("auth", "SignUp", shared.ErrServerRejected, "signup failed", err)
	}
	if creds.Token == "" {
		return session.Session{}, shared.NewDomainError("auth", "SignUp", shared.ErrServerRejected, "signup failed: token not received")
	}

	return a.establish(ctx, creds)
}

// Login validates the form locally and exchanges credentials for a session.
func (a *Authenticator) Login(ctx context.Context, form LoginForm) (session.Session, error) {
	if errs := forms.FieldErrors(form); errs != nil {
		return session.Session{}, errs
	}

	creds, err := a.credentials.Login(ctx, form.Identifier, form.Password)
	if err != nil {
		return session.Session{}, shared.WrapError("auth", "Login", shared.ErrServerRejected, "login failed", err)
	}

	return a.establish(ctx, creds)
}

// Logout clears every persisted session key and leaves the caller signed out.
func (a *Authenticator) Logout() error {
	return a.sessions.Clear()
}

// Current returns the persisted session, which may be zero.
func (a *Authenticator) Current() (session.Session, error) {
	return a.sessions.Load()
}

// establish builds and persists the session, dropping it when the caller has
// already been torn down.
func (a *Authenticator) establish(ctx context.Context, creds *student.Credentials) (session.Session, error) {
	if err := ctx.Err(); err != nil {
		return session.Session{}, err
	}

	s := session.New(creds.Token, creds.StudentID)
	if err := a.sessions.Save(s); err != nil {
		return session.Session{}, shared.WrapError("auth", "Save", shared.ErrInvalidState, "could not persist session", err)
	}
	return s, nil
}
