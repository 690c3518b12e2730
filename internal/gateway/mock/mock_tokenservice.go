// Package mock provides a configurable TokenService for tests.
package mock

import (
	"context"
	"fmt"

	"github.com/yourorg/payment-adapter/internal/gateway"
)

// MockTokenService implements gateway.TokenService with per-test overridable
// behavior. Unset func fields fall back to a deterministic default that
// mirrors the production token format and always charges successfully. Call
// counters record how often each operation ran.
type MockTokenService struct {
	CreateTokenFunc func(ctx context.Context, cardNumber, expiry, cvv string) (string, error)
	ChargeFunc      func(ctx context.Context, token string, amount float64) error

	CreateTokenCalls int
	ChargeCalls      int
}

var _ gateway.TokenService = (*MockTokenService)(nil)

// NewMockTokenService creates a mock with default behavior.
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) CreateToken(ctx context.Context, cardNumber, expiry, cvv string) (string, error) {
	m.CreateTokenCalls++
	if m.CreateTokenFunc != nil {
		return m.CreateTokenFunc(ctx, cardNumber, expiry, cvv)
	}
	chars := []rune(cardNumber)
	if len(chars) < 4 {
		return "", gateway.ErrCardNumberTooShort
	}
	return fmt.Sprintf("tok_%s%s%s", string(chars[len(chars)-4:]), expiry, cvv), nil
}

func (m *MockTokenService) Charge(ctx context.Context, token string, amount float64) error {
	m.ChargeCalls++
	if m.ChargeFunc != nil {
		return m.ChargeFunc(ctx, token, amount)
	}
	return nil
}
