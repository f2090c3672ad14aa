// Package flow contains the multi-step client processes that orchestrate
// domain operations: the captcha gate and the simulated card-payment flow.
// Each flow is a small state machine with explicit transitions and no
// hidden state.
package flow

import (
	"crypto/rand"
	"io"
	"math/big"
	mathrand "math/rand"
	"strings"

	"github.com/feehub/student-fee-portal/internal/domain/shared"
)

// captchaAlphabet and captchaLength match the challenge shown on the fee
// panel: six characters drawn from the alphanumeric alphabet.
const (
	captchaAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	captchaLength   = 6
)

// captchaMismatchMessage is the user-facing error on a failed attempt.
const captchaMismatchMessage = "Invalid captcha. Please try again."

// GenerateChallenge returns a fresh random challenge string. It is held only
// in view state, never persisted, and never sent to the server - verification
// is local string equality, case-insensitive.
func GenerateChallenge() string {
	return challengeFrom(rand.Reader)
}

// challengeFrom draws the challenge characters from the given entropy source.
// When the source is broken it falls back to math/rand/v2 per character, so
// the challenge stays unpredictable enough for a presence check instead of
// collapsing to a constant.
func challengeFrom(source io.Reader) string {
	var b strings.Builder
	b.Grow(captchaLength)
	max := big.NewInt(int64(len(captchaAlphabet)))
	for i := 0; i < captchaLength; i++ {
		n, err := rand.Int(source, max)
		if err != nil {
			b.WriteByte(captchaAlphabet[mathrand.Intn(len(captchaAlphabet))])
			continue
		}
		b.WriteByte(captchaAlphabet[n.Int64()])
	}
	return b.String()
}

// CaptchaGate is the human-presence check in front of the payment flow. It is
// independent of, and no substitute for, server-side authorization.
type CaptchaGate struct {
	challenge string
	unlocked  bool
	lastErr   string
}

// NewCaptchaGate creates a locked gate with its first challenge, generated on
// first display of the fees-due panel.
func NewCaptchaGate() *CaptchaGate {
	return &CaptchaGate{challenge: GenerateChallenge()}
}

// Challenge returns the current challenge text for display.
func (g *CaptchaGate) Challenge() string {
	return g.challenge
}

// Unlocked reports whether the gate has been passed.
func (g *CaptchaGate) Unlocked() bool {
	return g.unlocked
}

// Err returns the message from the last failed attempt, if any.
func (g *CaptchaGate) Err() string {
	return g.lastErr
}

// Submit compares the input to the challenge, case-insensitively. A mismatch
// discards the challenge: the same challenge is never reusable after a failed
// attempt, so the caller must also clear the user's input.
func (g *CaptchaGate) Submit(input string) error {
	if g.unlocked {
		return shared.NewDomainError("captcha", "Submit", shared.ErrStateTransition, "gate already unlocked")
	}

	if strings.EqualFold(input, g.challenge) {
		g.unlocked = true
		g.lastErr = ""
		return nil
	}

	g.challenge = GenerateChallenge()
	g.lastErr = captchaMismatchMessage
	return shared.NewDomainError("captcha", "Submit", shared.ErrCaptchaMismatch, captchaMismatchMessage)
}

// Refresh regenerates the challenge on user request and clears any error.
func (g *CaptchaGate) Refresh() {
	g.challenge = GenerateChallenge()
	g.lastErr = ""
}
