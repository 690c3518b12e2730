package gateway_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/payment-adapter/internal/gateway"
	"github.com/yourorg/payment-adapter/internal/gateway/mock"
	"github.com/yourorg/payment-adapter/internal/payment"
	"github.com/yourorg/payment-adapter/internal/tokenapi"
)

var sampleRecord = payment.Record{
	CardNumber: "1234567891011112",
	Expiry:     "02/26",
	CVV:        "123",
	Amount:     1533.50,
}

func TestNewPaymentAdapter_NilServicePanics(t *testing.T) {
	assert.Panics(t, func() {
		gateway.NewPaymentAdapter(nil, nil)
	})
}

func TestNewPaymentAdapter_NilLoggerAccepted(t *testing.T) {
	adapter := gateway.NewPaymentAdapter(mock.NewMockTokenService(), nil)
	require.NotNil(t, adapter)

	_, err := adapter.ProcessPayment(context.Background(), sampleRecord)
	assert.NoError(t, err)
}

func TestPaymentAdapter_ProcessPayment_CallsCreateTokenThenChargeOnce(t *testing.T) {
	svc := mock.NewMockTokenService()

	var calls []string
	var chargedToken string
	var chargedAmount float64
	svc.CreateTokenFunc = func(ctx context.Context, cardNumber, expiry, cvv string) (string, error) {
		calls = append(calls, "createToken")
		assert.Equal(t, sampleRecord.CardNumber, cardNumber)
		assert.Equal(t, sampleRecord.Expiry, expiry)
		assert.Equal(t, sampleRecord.CVV, cvv)
		return "tok_111202/26123", nil
	}
	svc.ChargeFunc = func(ctx context.Context, token string, amount float64) error {
		calls = append(calls, "charge")
		chargedToken = token
		chargedAmount = amount
		return nil
	}

	adapter := gateway.NewPaymentAdapter(svc, nil)
	receipt, err := adapter.ProcessPayment(context.Background(), sampleRecord)
	require.NoError(t, err)

	assert.Equal(t, []string{"createToken", "charge"}, calls, "token creation must precede the charge")
	assert.Equal(t, 1, svc.CreateTokenCalls)
	assert.Equal(t, 1, svc.ChargeCalls)
	assert.Equal(t, "tok_111202/26123", chargedToken, "the charge must use the token just created")
	assert.Equal(t, sampleRecord.Amount, chargedAmount)
	assert.Equal(t, "tok_111202/26123", receipt.Token)
}

func TestPaymentAdapter_ProcessPayment_ReceiptFields(t *testing.T) {
	adapter := gateway.NewPaymentAdapter(mock.NewMockTokenService(), nil)

	receipt, err := adapter.ProcessPayment(context.Background(), sampleRecord)
	require.NoError(t, err)

	_, parseErr := uuid.Parse(receipt.PaymentID)
	assert.NoError(t, parseErr, "PaymentID should be a UUID")
	assert.Equal(t, "tok_111202/26123", receipt.Token)
	assert.Equal(t, 1533.50, receipt.Amount)
	assert.False(t, receipt.ChargedAt.IsZero())
	assert.True(t, receipt.LatencyMs >= 0)
	assert.NotNil(t, receipt.Details)
}

func TestPaymentAdapter_ProcessPayment_DistinctPaymentIDs(t *testing.T) {
	adapter := gateway.NewPaymentAdapter(mock.NewMockTokenService(), nil)

	first, err := adapter.ProcessPayment(context.Background(), sampleRecord)
	require.NoError(t, err)
	second, err := adapter.ProcessPayment(context.Background(), sampleRecord)
	require.NoError(t, err)

	assert.NotEqual(t, first.PaymentID, second.PaymentID)
}

func TestPaymentAdapter_ProcessPayment_TokenErrorPropagatesUnmodified(t *testing.T) {
	svc := mock.NewMockTokenService()
	svc.CreateTokenFunc = func(ctx context.Context, cardNumber, expiry, cvv string) (string, error) {
		return "", gateway.ErrCardNumberTooShort
	}

	adapter := gateway.NewPaymentAdapter(svc, nil)
	receipt, err := adapter.ProcessPayment(context.Background(), payment.Record{CardNumber: "123"})

	require.Error(t, err)
	assert.Equal(t, gateway.ErrCardNumberTooShort, err, "the error must pass through without wrapping")
	assert.Equal(t, 0, svc.ChargeCalls, "a failed token creation must not be followed by a charge")
	assert.Equal(t, gateway.Receipt{}, receipt)
}

func TestPaymentAdapter_ProcessPayment_ChargeErrorPropagatesUnmodified(t *testing.T) {
	chargeErr := errors.New("charge declined by backend")
	svc := mock.NewMockTokenService()
	svc.ChargeFunc = func(ctx context.Context, token string, amount float64) error {
		return chargeErr
	}

	adapter := gateway.NewPaymentAdapter(svc, nil)
	receipt, err := adapter.ProcessPayment(context.Background(), sampleRecord)

	require.Error(t, err)
	assert.Equal(t, chargeErr, err, "the error must pass through without wrapping")
	assert.Equal(t, 1, svc.CreateTokenCalls)
	assert.Equal(t, gateway.Receipt{}, receipt)
}

func TestPaymentAdapter_WithTokenAPI_FullTranscript(t *testing.T) {
	var buf bytes.Buffer
	adapter := gateway.NewPaymentAdapter(tokenapi.NewTokenAPI(&buf, nil), nil)

	receipt, err := adapter.ProcessPayment(context.Background(), sampleRecord)
	require.NoError(t, err)

	want := "Generating Token....\n" +
		"Charging $1533.5 using token tok_111202/26123\n" +
		"Payment Successful\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, "tok_111202/26123", receipt.Token)
}

func TestPaymentAdapter_WithTokenAPI_ShortCard(t *testing.T) {
	var buf bytes.Buffer
	adapter := gateway.NewPaymentAdapter(tokenapi.NewTokenAPI(&buf, nil), nil)

	_, err := adapter.ProcessPayment(context.Background(), payment.Record{
		CardNumber: "123",
		Expiry:     "02/26",
		CVV:        "123",
		Amount:     10,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, gateway.ErrCardNumberTooShort)
	assert.Equal(t, "Generating Token....\n", buf.String(),
		"only the announcement line is written before the failure")
}
