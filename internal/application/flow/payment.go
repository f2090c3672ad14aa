package flow

import (
	"context"
	"time"

	"github.com/feehub/student-fee-portal/internal/domain/session"
	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// PAYMENT FLOW
// selection -> form -> processing -> success, with form -> selection as the
// only backward transition and form -> form on validation failure. The flow
// is simulated: after a fixed delay it asks the gateway to mark the fee paid
// and waits for the acknowledgement. An absent or failed acknowledgement
// surfaces an error and returns to form - the flow never strands the user in
// processing.
// ══════════════════════════════════════════════════════════════════════════════

// PaymentState is the flow's current stage.
type PaymentState string

const (
	PaymentSelection  PaymentState = "selection"
	PaymentForm       PaymentState = "form"
	PaymentProcessing PaymentState = "processing"
	PaymentSuccess    PaymentState = "success"
)

// Method identifies an offered payment method. The choice is recorded but
// changes nothing downstream in this simulated flow.
type Method string

const (
	MethodVisa       Method = "visa"
	MethodMastercard Method = "mastercard"
	MethodPayPal     Method = "paypal"
	MethodRazorpay   Method = "razorpay"
)

// Methods lists the offered payment methods in display order.
func Methods() []Method {
	return []Method{MethodVisa, MethodMastercard, MethodPayPal, MethodRazorpay}
}

func validMethod(m Method) bool {
	switch m {
	case MethodVisa, MethodMastercard, MethodPayPal, MethodRazorpay:
		return true
	}
	return false
}

// PaymentConfig tunes the simulated flow.
type PaymentConfig struct {
	// ProcessingDelay is the fixed artificial delay before the fee-status
	// update is sent.
	ProcessingDelay time.Duration
}

// DefaultPaymentConfig matches the original two-second simulation.
func DefaultPaymentConfig() PaymentConfig {
	return PaymentConfig{ProcessingDelay: 2 * time.Second}
}

// PaymentFlow is one payment attempt for one student. It is discarded on
// success or navigation away.
type PaymentFlow struct {
	gateway student.RecordGateway
	sess    session.Session
	config  PaymentConfig

	state       PaymentState
	method      Method
	card        CardDetails
	fieldErrors shared.FieldErrors
}

// NewPaymentFlow creates a flow at the method-selection stage. The session is
// injected explicitly; the flow never reads ambient storage.
func NewPaymentFlow(gateway student.RecordGateway, sess session.Session, config PaymentConfig) *PaymentFlow {
	return &PaymentFlow{
		gateway: gateway,
		sess:    sess,
		config:  config,
		state:   PaymentSelection,
	}
}

// State returns the flow's current stage.
func (f *PaymentFlow) State() PaymentState {
	return f.state
}

// Method returns the chosen payment method, empty at selection.
func (f *PaymentFlow) Method() Method {
	return f.method
}

// Card returns the card form's current (formatted) values.
func (f *PaymentFlow) Card() CardDetails {
	return f.card
}

// FieldErrors returns the per-field errors from the last submit attempt.
func (f *PaymentFlow) FieldErrors() shared.FieldErrors {
	return f.fieldErrors
}

// ChooseMethod records the method and advances to the card form.
func (f *PaymentFlow) ChooseMethod(m Method) error {
	if f.state != PaymentSelection {
		return shared.NewDomainError("payment", "ChooseMethod", shared.ErrStateTransition, "method already chosen")
	}
	if !validMethod(m) {
		return shared.NewDomainError("payment", "ChooseMethod", shared.ErrInvalidInput, "unknown payment method "+string(m))
	}
	f.method = m
	f.state = PaymentForm
	return nil
}

// ChangeMethod is the only backward transition: form -> selection, with the
// method cleared.
func (f *PaymentFlow) ChangeMethod() error {
	if f.state != PaymentForm {
		return shared.NewDomainError("payment", "ChangeMethod", shared.ErrStateTransition, "not at the card form")
	}
	f.method = ""
	f.state = PaymentSelection
	return nil
}

// EditCard stores the card input with live formatting applied.
func (f *PaymentFlow) EditCard(card CardDetails) error {
	if f.state != PaymentForm {
		return shared.NewDomainError("payment", "EditCard", shared.ErrStateTransition, "not at the card form")
	}
	f.card = card.Normalize()
	return nil
}

// Submit validates the card data and, if it passes, runs the simulated
// payment: wait the fixed delay, emit the fee-status update on the record
// channel, and await the acknowledgement.
//
// Validation failure keeps the flow at form with errors attached and makes no
// network call. A missing identity refuses to enter processing. An
// acknowledgement failure returns to form - not selection - with the entered
// card data preserved (it was already validated; a server failure does not
// invalidate it).
func (f *PaymentFlow) Submit(ctx context.Context) error {
	if f.state != PaymentForm {
		return shared.NewDomainError("payment", "Submit", shared.ErrStateTransition, "nothing to submit")
	}

	f.card = f.card.Normalize()
	if errs := f.card.Validate(); errs != nil {
		f.fieldErrors = errs
		return errs
	}
	f.fieldErrors = nil

	// Identity precondition: without a resolvable student id the flow must
	// refuse to proceed rather than attempt the update.
	if err := f.sess.Validate(time.Now()); err != nil {
		return err
	}

	f.state = PaymentProcessing

	if f.config.ProcessingDelay > 0 {
		select {
		case <-ctx.Done():
			f.state = PaymentForm
			return ctx.Err()
		case <-time.After(f.config.ProcessingDelay):
		}
	}

	err := f.gateway.UpdateFeeStatus(ctx, f.sess.StudentID)

	if ctxErr := ctx.Err(); ctxErr != nil {
		// Torn down mid-flight: drop the result, leave form state so a
		// surviving caller is not stranded in processing.
		f.state = PaymentForm
		return ctxErr
	}

	if err != nil {
		f.state = PaymentForm
		return shared.WrapError("payment", "Submit", shared.ErrServerRejected,
			"payment processing failed on the server, please try again", err)
	}

	f.state = PaymentSuccess
	return nil
}
