package student

import "context"

// RecordGateway is the client-side port to the remote real-time record
// channel. One gateway call corresponds to one named request/acknowledgement
// exchange on the channel. Implementations must scope the underlying
// connection to the call: open before use, closed on every exit path, and
// must honor ctx cancellation so a torn-down caller never receives a late
// result.
type RecordGateway interface {
	// FetchOne returns the record for the given student id.
	FetchOne(ctx context.Context, id ID) (*Record, error)

	// FetchAll returns the full ordered collection of records.
	FetchAll(ctx context.Context) ([]Record, error)

	// UpdateProfile sends an edited {id, name, email} triple and returns the
	// server-confirmed record. The local record must only be replaced with
	// the returned one - no optimistic update.
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*Record, error)

	// UpdateFeeStatus asks the server to mark the student's fee as paid.
	// Acknowledgement only; the caller re-fetches or trusts the ack.
	UpdateFeeStatus(ctx context.Context, id ID) error
}

// SignUpInput carries the credential endpoint's sign-up payload.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

// Credentials is the result of a successful credential exchange.
type Credentials struct {
	Token     string
	StudentID ID
}

// CredentialGateway is the client-side port to the credential HTTP endpoint.
type CredentialGateway interface {
	// SignUp registers a new student and returns a token and identifier.
	SignUp(ctx context.Context, input SignUpInput) (*Credentials, error)

	// Login exchanges an identifier and password for a token.
	Login(ctx context.Context, identifier, password string) (*Credentials, error)
}
