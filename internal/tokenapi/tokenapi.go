// Package tokenapi contains the production TokenService: a tokenized
// charging backend that reports its activity as human-readable console
// lines.
package tokenapi

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/yourorg/payment-adapter/internal/gateway"
)

// TokenAPI implements gateway.TokenService. Tokens are synthesized locally
// by concatenating the last four characters of the card number with the
// expiry and CVV; charges always succeed. The transcript lines are written
// to out; structured diagnostics go to the logger only, never to out.
type TokenAPI struct {
	out    io.Writer
	logger *zap.Logger
}

var _ gateway.TokenService = (*TokenAPI)(nil)

// NewTokenAPI creates a TokenAPI writing its transcript to out. A nil out
// defaults to os.Stdout and a nil logger to a no-op logger.
func NewTokenAPI(out io.Writer, logger *zap.Logger) *TokenAPI {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenAPI{out: out, logger: logger}
}

// CreateToken announces token generation and returns
// "tok_" + last4(cardNumber) + expiry + cvv; the length check and the
// suffix count characters, not bytes. The announcement line is written
// before the card number length is inspected, so a short card number still
// produces the line and then gateway.ErrCardNumberTooShort.
func (t *TokenAPI) CreateToken(ctx context.Context, cardNumber, expiry, cvv string) (string, error) {
	fmt.Fprintln(t.out, "Generating Token....")

	chars := []rune(cardNumber)
	if len(chars) < 4 {
		t.logger.Warn("card number too short for token suffix",
			zap.Int("card_number_length", len(chars)),
		)
		return "", gateway.ErrCardNumberTooShort
	}

	token := "tok_" + string(chars[len(chars)-4:]) + expiry + cvv
	t.logger.Debug("token generated", zap.String("token", token))
	return token, nil
}

// Charge announces the charge and reports success. There is no failure
// branch: every token string and every amount, zero and negative included,
// charges successfully.
func (t *TokenAPI) Charge(ctx context.Context, token string, amount float64) error {
	fmt.Fprintf(t.out, "Charging $%s using token %s\n", formatAmount(amount), token)
	fmt.Fprintln(t.out, "Payment Successful")

	t.logger.Debug("charge reported successful",
		zap.String("token", token),
		zap.Float64("amount", amount),
	)
	return nil
}

// formatAmount renders the amount in the shortest decimal form the
// transcript expects: no trailing zeros, so 1533.50 prints as 1533.5 and
// 100.00 prints as 100.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
