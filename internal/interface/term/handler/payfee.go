package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/feehub/student-fee-portal/internal/application/flow"
	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/internal/domain/student"
	"github.com/feehub/student-fee-portal/internal/interface/term"
	"github.com/feehub/student-fee-portal/internal/interface/term/presenter"
)

// PayFee is the fee payment page: captcha gate, method selection, card form,
// simulated processing.
type PayFee struct {
	gateways GatewayFactory
	config   flow.PaymentConfig
	fees     *presenter.FeePanelPresenter
}

// NewPayFee creates the payment page handler.
func NewPayFee(gateways GatewayFactory, config flow.PaymentConfig) *PayFee {
	return &PayFee{
		gateways: gateways,
		config:   config,
		fees:     presenter.NewFeePanelPresenter(),
	}
}

// Handle implements term.Handler.
func (h *PayFee) Handle(ctx context.Context, t *term.Terminal) (string, error) {
	gateway := h.gateways(t.Session)

	record, err := gateway.FetchOne(ctx, t.Session.StudentID)
	if err != nil {
		if ctx.Err() != nil {
			return term.PageExit, ctx.Err()
		}
		t.Println("Could not load your fee details. Please try again.")
		return term.PageHome, nil
	}

	t.Divider()
	t.Println(h.fees.FormatPanel(*record))

	if record.FeesPaid == student.FeesPaid {
		t.Println("Your fee is already paid.")
		return term.PageMyProfile, nil
	}

	unlocked, next, err := h.captcha(t)
	if err != nil || !unlocked {
		return next, err
	}

	return h.payment(ctx, t, gateway)
}

// captcha runs the gate until the challenge is matched or the user backs out.
func (h *PayFee) captcha(t *term.Terminal) (unlocked bool, next string, err error) {
	gate := flow.NewCaptchaGate()

	for {
		t.Printf("Captcha: %s\n", gate.Challenge())

		input, err := t.Prompt("Enter captcha ('refresh' for a new one, 'back' to leave)")
		if err != nil {
			return false, term.PageExit, err
		}

		switch input {
		case "refresh":
			gate.Refresh()
			continue
		case "back":
			return false, term.PageMyProfile, nil
		}

		if err := gate.Submit(input); err != nil {
			// A mismatch regenerated the challenge; show the stored message.
			t.Println(gate.Err())
			continue
		}
		return true, "", nil
	}
}

// payment runs the method selection and card form to completion.
func (h *PayFee) payment(ctx context.Context, t *term.Terminal, gateway student.RecordGateway) (string, error) {
	pay := flow.NewPaymentFlow(gateway, t.Session, h.config)
	methods := flow.Methods()

	for {
		switch pay.State() {
		case flow.PaymentSelection:
			t.Println(h.fees.FormatMethods(methods))
			choice, err := t.Prompt("Method number ('back' to leave)")
			if err != nil {
				return term.PageExit, err
			}
			if choice == "back" {
				return term.PageMyProfile, nil
			}
			n, err := strconv.Atoi(choice)
			if err != nil || n < 1 || n > len(methods) {
				t.Println("Pick a number from the list.")
				continue
			}
			if err := pay.ChooseMethod(methods[n-1]); err != nil {
				return term.PageExit, err
			}

		case flow.PaymentForm:
			next, err := h.cardForm(ctx, t, pay)
			if err != nil || next != "" {
				return next, err
			}

		case flow.PaymentSuccess:
			t.Println("Payment successful. Your fee status is now paid.")
			return term.PageMyProfile, nil
		}
	}
}

// cardForm prompts the card fields and submits. Returns an empty next page to
// let the payment loop continue from the flow's new state.
func (h *PayFee) cardForm(ctx context.Context, t *term.Terminal, pay *flow.PaymentFlow) (string, error) {
	card := pay.Card()
	t.Printf("Paying with %s. Blank keeps the shown value; 'change' picks another method.\n", pay.Method())

	prompts := []struct {
		label   string
		current string
		set     func(*flow.CardDetails, string)
	}{
		{"Card number", card.CardNumber, func(c *flow.CardDetails, v string) { c.CardNumber = v }},
		{"Name on card", card.CardName, func(c *flow.CardDetails, v string) { c.CardName = v }},
		{"Expiry (MM / YY)", card.ExpiryDate, func(c *flow.CardDetails, v string) { c.ExpiryDate = v }},
		{"CVC", card.CVC, func(c *flow.CardDetails, v string) { c.CVC = v }},
	}
	for _, p := range prompts {
		value, err := t.Prompt(p.label + " [" + p.current + "]")
		if err != nil {
			return term.PageExit, err
		}
		if value == "change" {
			return "", pay.ChangeMethod()
		}
		if value != "" {
			p.set(&card, value)
		}
	}

	if err := pay.EditCard(card); err != nil {
		return term.PageExit, err
	}

	t.Println("Processing payment...")
	submitErr := pay.Submit(ctx)
	if submitErr == nil {
		return "", nil
	}
	if ctx.Err() != nil {
		return term.PageExit, ctx.Err()
	}

	var fieldErrs shared.FieldErrors
	if errors.As(submitErr, &fieldErrs) {
		t.Println(presenter.FormatFieldErrors(fieldErrs))
		return "", nil
	}
	if shared.IsIdentity(submitErr) {
		return term.PageLogin, nil
	}

	// Ack failure: back at the form with the card preserved.
	t.Println("Payment failed on the server. Your card details were kept; try again.")
	return "", nil
}
