package handler

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feehub/student-fee-portal/internal/application/command"
	"github.com/feehub/student-fee-portal/internal/application/flow"
	"github.com/feehub/student-fee-portal/internal/domain/session"
	"github.com/feehub/student-fee-portal/internal/domain/student"
	"github.com/feehub/student-fee-portal/internal/infrastructure/external/gateway/gatewaytest"
	"github.com/feehub/student-fee-portal/internal/interface/term"
)

type memStore struct {
	sess session.Session
}

func (m *memStore) Save(s session.Session) error   { m.sess = s; return nil }
func (m *memStore) Load() (session.Session, error) { return m.sess, nil }
func (m *memStore) Clear() error                   { m.sess = session.Session{}; return nil }

// newPortal wires a full router around the in-memory fake, the way main does
// around the real infrastructure.
func newPortal(store *memStore, fake *gatewaytest.Fake, input string) (*term.Router, *bytes.Buffer) {
	out := &bytes.Buffer{}
	auth := command.NewAuthenticator(fake, store)
	gateways := GatewayFactory(func(session.Session) student.RecordGateway { return fake })

	router := term.NewRouter(term.RouterConfig{
		Sessions: store,
		In:       strings.NewReader(input),
		Out:      out,
	})
	router.Register(term.PageHome, NewHome(auth))
	router.Register(term.PageSignUp, NewSignUp(auth))
	router.Register(term.PageLogin, NewLogin(auth))
	router.RegisterProtected(term.PageStudentList, NewStudentList(gateways))
	router.RegisterProtected(term.PageMyProfile, NewMyProfile(gateways))
	router.RegisterProtected(term.PagePayFee, NewPayFee(gateways, flow.PaymentConfig{}))
	return router, out
}

func TestSignUpThroughRoster(t *testing.T) {
	fake := gatewaytest.New(student.Record{
		ID: "stu-1", Name: "Bob", Email: "bob@school.edu", FeesPaid: student.FeesPaid,
	})
	store := &memStore{}

	// home: sign up; form; roster: back; home: exit.
	input := strings.Join([]string{
		"2",
		"Alice", "alice@school.edu", "secret99",
		"back",
		"5",
	}, "\n") + "\n"

	router, out := newPortal(store, fake, input)
	require.NoError(t, router.Run(context.Background()))

	assert.Contains(t, out.String(), "Welcome! You are signed in.")
	assert.Contains(t, out.String(), "bob@school.edu")
	assert.False(t, store.sess.IsZero())
}

func TestSignUpValidationStaysOnPage(t *testing.T) {
	fake := gatewaytest.New()
	store := &memStore{}

	// First attempt has a bad email and short password; second backs out.
	input := strings.Join([]string{
		"2",
		"Alice", "not-an-email", "123",
		"",
		"3",
	}, "\n") + "\n"

	router, out := newPortal(store, fake, input)
	require.NoError(t, router.Run(context.Background()))

	assert.Contains(t, out.String(), "Enter a valid email address.")
	assert.Contains(t, out.String(), "Password must be at least 6 characters.")
	assert.True(t, store.sess.IsZero())
}

func TestRosterSearchAndSort(t *testing.T) {
	fake := gatewaytest.New(
		student.Record{ID: "stu-1", Name: "Alice", Email: "alice@school.edu", FeesPaid: student.FeesPaid},
		student.Record{ID: "stu-2", Name: "Bob", Email: "bob@school.edu", FeesPaid: student.FeesUnpaid},
	)
	store := &memStore{sess: session.New("tok", "stu-1")}

	input := strings.Join([]string{
		"1",
		"search bob",
		"back",
		"5",
	}, "\n") + "\n"

	router, out := newPortal(store, fake, input)
	require.NoError(t, router.Run(context.Background()))

	// After the search only Bob remains in the last table. Anchor on the
	// padded header row; a bare "ID" would also match inside the badges.
	rendered := out.String()
	lastTable := rendered[strings.LastIndex(rendered, "ID "):]
	assert.Contains(t, lastTable, "Bob")
	assert.NotContains(t, lastTable, "Alice")
}

func TestPortalStopsOnInputEOF(t *testing.T) {
	// An exhausted input stream must end the run instead of bouncing back to
	// the home page and prompting into the dead stream forever.
	fake := gatewaytest.New()
	router, out := newPortal(&memStore{}, fake, "")

	err := router.Run(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 1, strings.Count(out.String(), "Choose: "))
	assert.NotContains(t, out.String(), "Something went wrong")
}

func TestProfileEditRoundTrip(t *testing.T) {
	fake := gatewaytest.New(student.Record{
		ID: "stu-1", Name: "Alice", Email: "alice@school.edu", FeesPaid: student.FeesUnpaid,
	})
	store := &memStore{sess: session.New("tok", "stu-1")}

	// profile: edit; keep name, change email; back; exit.
	input := strings.Join([]string{
		"2",
		"edit",
		"", "alice.b@school.edu",
		"back",
		"5",
	}, "\n") + "\n"

	router, out := newPortal(store, fake, input)
	require.NoError(t, router.Run(context.Background()))

	assert.Contains(t, out.String(), "Profile updated.")
	record, ok := fake.Record("stu-1")
	require.True(t, ok)
	assert.Equal(t, "Alice", record.Name)
	assert.Equal(t, "alice.b@school.edu", record.Email)
}

func TestPayFeeAlreadyPaid(t *testing.T) {
	fake := gatewaytest.New(student.Record{
		ID: "stu-1", Name: "Alice", Email: "alice@school.edu", FeesPaid: student.FeesPaid,
	})
	store := &memStore{sess: session.New("tok", "stu-1")}

	// payfee short-circuits to the profile without a captcha prompt.
	input := strings.Join([]string{
		"3",
		"back",
		"5",
	}, "\n") + "\n"

	router, out := newPortal(store, fake, input)
	require.NoError(t, router.Run(context.Background()))

	assert.Contains(t, out.String(), "Your fee is already paid.")
	assert.NotContains(t, out.String(), "Captcha:")
}

func TestPayFeeCaptchaBack(t *testing.T) {
	fake := gatewaytest.New(student.Record{
		ID: "stu-1", Name: "Alice", Email: "alice@school.edu", FeesPaid: student.FeesUnpaid,
	})
	store := &memStore{sess: session.New("tok", "stu-1")}

	input := strings.Join([]string{
		"3",
		"back",
		"back",
		"5",
	}, "\n") + "\n"

	router, out := newPortal(store, fake, input)
	require.NoError(t, router.Run(context.Background()))

	assert.Contains(t, out.String(), "Captcha:")
	// Backing out of the captcha never reaches the method menu.
	assert.NotContains(t, out.String(), "Choose a payment method")
	assert.Equal(t, 0, fake.UpdateFeeCalls)
}
