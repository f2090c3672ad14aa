// Package session defines the explicit session identity object that replaces
// ambient token lookup. A Session is set on successful authentication,
// injected into every flow that needs an identifier, and cleared on logout.
package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/internal/domain/student"
)

// Storage keys, fixed by the credential endpoint contract.
const (
	KeyToken  = "token"
	KeyUserID = "userId"
)

// Session holds the authenticated identity for the current user.
type Session struct {
	// Token is the opaque bearer token issued by the credential endpoint.
	Token string

	// StudentID identifies the signed-in student.
	StudentID student.ID

	// ExpiresAt is the token expiry parsed from its claims; zero when the
	// token carries no expiry.
	ExpiresAt time.Time
}

// New builds a session from credential endpoint output. The token is parsed
// without signature verification - the client holds no signing key, and the
// server re-validates every request anyway - purely to read the expiry claim.
func New(token string, id student.ID) Session {
	s := Session{Token: token, StudentID: id}

	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err == nil && claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s
}

// IsZero reports whether no identity is present at all.
func (s Session) IsZero() bool {
	return strings.TrimSpace(s.Token) == "" && !s.StudentID.IsValid()
}

// Validate checks that the session can identify a student right now.
func (s Session) Validate(now time.Time) error {
	if !s.StudentID.IsValid() {
		return shared.NewDomainError("session", "Validate", shared.ErrNoIdentity, "student id not found, please log in again")
	}
	if strings.TrimSpace(s.Token) == "" {
		return shared.NewDomainError("session", "Validate", shared.ErrNoIdentity, "no token, please log in again")
	}
	if !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt) {
		return shared.NewDomainError("session", "Validate", shared.ErrSessionExpired, "session expired, please log in again")
	}
	return nil
}

// Store persists a session across runs, mirroring the browser's session
// storage: two fixed keys, cleared together on logout.
type Store interface {
	// Save persists the session.
	Save(s Session) error

	// Load returns the persisted session, or a zero Session when none is
	// stored.
	Load() (Session, error)

	// Clear removes all persisted session keys.
	Clear() error
}
