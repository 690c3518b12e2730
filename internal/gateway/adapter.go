package gateway

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/yourorg/payment-adapter/internal/payment"
)

// PaymentAdapter implements CardPaymentPort on top of a TokenService. It is a
// pure translator: every ProcessPayment call becomes exactly one CreateToken
// call followed, on success, by exactly one Charge call against the same
// injected service. It holds no state between calls and applies no retries.
type PaymentAdapter struct {
	tokens TokenService
	logger *zap.Logger
}

var _ CardPaymentPort = (*PaymentAdapter)(nil)

// NewPaymentAdapter creates a PaymentAdapter around the given TokenService.
// The same service instance serves both token creation and charging. A nil
// logger falls back to a no-op logger.
func NewPaymentAdapter(tokens TokenService, logger *zap.Logger) *PaymentAdapter {
	if tokens == nil {
		panic("token service cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentAdapter{tokens: tokens, logger: logger}
}

// ProcessPayment unpacks the record, creates a token from the card fields and
// charges the amount against it. Errors from the token service propagate to
// the caller unmodified: no wrapping, no translation, no fallback.
func (a *PaymentAdapter) ProcessPayment(ctx context.Context, rec payment.Record) (Receipt, error) {
	ctx, span := otel.Tracer("gateway").Start(ctx, "PaymentAdapter.ProcessPayment")
	defer span.End()

	start := time.Now()
	status := statusSucceeded
	defer func() {
		paymentsProcessedTotal.WithLabelValues(status).Inc()
		paymentProcessDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	token, err := a.tokens.CreateToken(ctx, rec.CardNumber, rec.Expiry, rec.CVV)
	if err != nil {
		status = statusFailed
		a.logger.Warn("token creation failed", zap.Error(err))
		return Receipt{}, err
	}

	if err := a.tokens.Charge(ctx, token, rec.Amount); err != nil {
		status = statusFailed
		a.logger.Warn("charge failed", zap.String("token", token), zap.Error(err))
		return Receipt{}, err
	}

	receipt := Receipt{
		PaymentID: uuid.NewString(),
		Token:     token,
		Amount:    rec.Amount,
		ChargedAt: time.Now().UTC(),
		LatencyMs: time.Since(start).Milliseconds(),
		Details:   make(map[string]string),
	}
	a.logger.Debug("payment processed",
		zap.String("payment_id", receipt.PaymentID),
		zap.String("token", token),
		zap.Float64("amount", rec.Amount),
	)
	return receipt, nil
}
