// Package gatewaytest provides in-memory gateway doubles for tests, in the
// spirit of a dummy service: deterministic, no network, no goroutines.
package gatewaytest

import (
	"context"
	"errors"
	"sync"

	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/internal/domain/student"
)

// Fake implements student.RecordGateway and student.CredentialGateway over an
// in-memory record map. Error fields, when set, are returned instead of data
// to simulate connectivity failures or server rejections.
type Fake struct {
	mu      sync.Mutex
	records map[student.ID]student.Record
	order   []student.ID

	// Forced errors per operation. Nil means the operation succeeds.
	FetchOneErr      error
	FetchAllErr      error
	UpdateProfileErr error
	UpdateFeeErr     error
	LoginErr         error
	SignUpErr        error

	// Token issued by the credential operations.
	Token string

	// Call counters.
	FetchAllCalls  int
	UpdateFeeCalls int
}

// New creates a Fake seeded with the given records.
func New(records ...student.Record) *Fake {
	f := &Fake{
		records: make(map[student.ID]student.Record, len(records)),
		Token:   "fake-token",
	}
	for _, r := range records {
		f.records[r.ID] = r
		f.order = append(f.order, r.ID)
	}
	return f
}

// Record returns the current state of one record.
func (f *Fake) Record(id student.ID) (student.Record, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	return r, ok
}

// FetchOne implements student.RecordGateway.
func (f *Fake) FetchOne(ctx context.Context, id student.ID) (*student.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.FetchOneErr != nil {
		return nil, f.FetchOneErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return nil, shared.NewDomainError("gateway", "FetchOne", shared.ErrNotFound, "student not found")
	}
	return &r, nil
}

// FetchAll implements student.RecordGateway.
func (f *Fake) FetchAll(ctx context.Context) ([]student.Record, error) {
	f.mu.Lock()
	f.FetchAllCalls++
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.FetchAllErr != nil {
		return nil, f.FetchAllErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]student.Record, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.records[id])
	}
	return out, nil
}

// UpdateProfile implements student.RecordGateway.
func (f *Fake) UpdateProfile(ctx context.Context, update student.ProfileUpdate) (*student.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.UpdateProfileErr != nil {
		return nil, f.UpdateProfileErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[update.ID]
	if !ok {
		return nil, shared.NewDomainError("gateway", "UpdateProfile", shared.ErrNotFound, "student not found")
	}
	r.Name = update.Name
	r.Email = update.Email
	f.records[update.ID] = r
	return &r, nil
}

// UpdateFeeStatus implements student.RecordGateway.
func (f *Fake) UpdateFeeStatus(ctx context.Context, id student.ID) error {
	f.mu.Lock()
	f.UpdateFeeCalls++
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if f.UpdateFeeErr != nil {
		return f.UpdateFeeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return shared.NewDomainError("gateway", "UpdateFeeStatus", shared.ErrNotFound, "student not found")
	}
	r.FeesPaid = student.FeesPaid
	f.records[id] = r
	return nil
}

// SignUp implements student.CredentialGateway.
func (f *Fake) SignUp(ctx context.Context, input student.SignUpInput) (*student.Credentials, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.SignUpErr != nil {
		return nil, f.SignUpErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := student.ID("stu-" + input.Email)
	f.records[id] = student.Record{ID: id, Name: input.Name, Email: input.Email}
	f.order = append(f.order, id)
	return &student.Credentials{Token: f.Token, StudentID: id}, nil
}

// Login implements student.CredentialGateway.
func (f *Fake) Login(ctx context.Context, identifier, password string) (*student.Credentials, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	if password == "" {
		return nil, errors.New("empty password")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.Email == identifier || r.ID.String() == identifier {
			return &student.Credentials{Token: f.Token, StudentID: r.ID}, nil
		}
	}
	return nil, shared.NewDomainError("gateway", "Login", shared.ErrServerRejected, "invalid credentials")
}
