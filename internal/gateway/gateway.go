// Package gateway defines the two payment contracts and the adapter that
// bridges them. Calling code depends on CardPaymentPort, a single-call,
// record-based contract. The charging capability underneath is TokenService,
// a two-call, token-based contract. PaymentAdapter implements the former by
// delegating to the latter.
package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/yourorg/payment-adapter/internal/payment"
)

// ErrCardNumberTooShort is reported by TokenService implementations when the
// card number carries fewer than four characters and no token suffix can be
// taken from it. By the time this is reported the token generation
// announcement has already been written.
var ErrCardNumberTooShort = errors.New("card number has fewer than 4 characters")

// TokenService is the contract of the tokenized charging capability being
// adapted. It is deliberately primitive-based: callers hand over raw card
// fields, receive an opaque token, then charge against that token.
type TokenService interface {
	// CreateToken synthesizes an opaque token from the raw card fields.
	// Implementations fail with ErrCardNumberTooShort when cardNumber has
	// fewer than four characters; no other input validation is performed.
	CreateToken(ctx context.Context, cardNumber, expiry, cvv string) (string, error)

	// Charge charges the given amount against a previously created token.
	// Any token string and any amount, zero and negative included, are
	// accepted.
	Charge(ctx context.Context, token string, amount float64) error
}

// CardPaymentPort is the contract the calling code programs against: one
// call, one payment record, one receipt.
type CardPaymentPort interface {
	ProcessPayment(ctx context.Context, rec payment.Record) (Receipt, error)
}

// Receipt describes a completed charge.
type Receipt struct {
	PaymentID string            `json:"paymentId"`
	Token     string            `json:"token"`
	Amount    float64           `json:"amount"`
	ChargedAt time.Time         `json:"chargedAt"`
	LatencyMs int64             `json:"latencyMs"`
	Details   map[string]string `json:"details,omitempty"`
}
