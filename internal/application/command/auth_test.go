package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feehub/student-fee-portal/internal/domain/session"
	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/internal/domain/student"
	"github.com/feehub/student-fee-portal/internal/infrastructure/external/gateway/gatewaytest"
)

// memStore is a session.Store kept entirely in memory.
type memStore struct {
	saved session.Session
}

func (m *memStore) Save(s session.Session) error    { m.saved = s; return nil }
func (m *memStore) Load() (session.Session, error)  { return m.saved, nil }
func (m *memStore) Clear() error                    { m.saved = session.Session{}; return nil }

func TestSignUpValidatesLocally(t *testing.T) {
	auth := NewAuthenticator(gatewaytest.New(), &memStore{})

	_, err := auth.SignUp(context.Background(), SignUpForm{Name: "A", Email: "not-an-email", Password: "123"})
	var fieldErrs shared.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Enter a valid email address.", fieldErrs["email"])
	assert.Equal(t, "Password must be at least 6 characters.", fieldErrs["password"])
}

func TestSignUpEstablishesSession(t *testing.T) {
	store := &memStore{}
	auth := NewAuthenticator(gatewaytest.New(), store)

	s, err := auth.SignUp(context.Background(), SignUpForm{
		Name: "Bob Stone", Email: "bob@school.edu", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "fake-token", s.Token)
	assert.True(t, s.StudentID.IsValid())
	assert.Equal(t, s, store.saved)
}

func TestLoginAndLogout(t *testing.T) {
	store := &memStore{}
	fake := gatewaytest.New(student.Record{ID: "stu-7", Name: "Dana", Email: "dana@school.edu"})
	auth := NewAuthenticator(fake, store)

	s, err := auth.Login(context.Background(), LoginForm{Identifier: "dana@school.edu", Password: "pw1234"})
	require.NoError(t, err)
	assert.Equal(t, student.ID("stu-7"), s.StudentID)

	current, err := auth.Current()
	require.NoError(t, err)
	assert.Equal(t, s, current)

	require.NoError(t, auth.Logout())
	current, err = auth.Current()
	require.NoError(t, err)
	assert.True(t, current.IsZero())
}

func TestLoginServerRejection(t *testing.T) {
	auth := NewAuthenticator(gatewaytest.New(), &memStore{})

	_, err := auth.Login(context.Background(), LoginForm{Identifier: "nobody@school.edu", Password: "pw1234"})
	assert.ErrorIs(t, err, shared.ErrServerRejected)
}

func TestSignUpTeardownDoesNotPersist(t *testing.T) {
	store := &memStore{}
	auth := NewAuthenticator(gatewaytest.New(), store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := auth.SignUp(ctx, SignUpForm{Name: "Eve", Email: "eve@school.edu", Password: "secret1"})
	require.Error(t, err)
	assert.True(t, store.saved.IsZero())
}
