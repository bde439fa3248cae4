package payments

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Gateway opens a card payment with the provider. CreateIntent returns the
// provider transaction ID; CancelIntent voids one that was never recorded.
type Gateway interface {
	CreateIntent(ctx context.Context, bookingID int64, amount decimal.Decimal) (string, error)
	CancelIntent(ctx context.Context, intentID string) error
}

// StripeGateway creates one PaymentIntent per card payment.
type StripeGateway struct {
	api      *client.API
	currency string
}

func NewStripeGateway(secretKey, currency string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &StripeGateway{api: api, currency: strings.ToLower(currency)}
}

// CreateIntent creates an unconfirmed PaymentIntent tagged with the booking.
func (g *StripeGateway) CreateIntent(ctx context.Context, bookingID int64, amount decimal.Decimal) (string, error) {
	cents, err := MinorUnits(amount)
	if err != nil {
		return "", err
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(cents),
		Currency: stripe.String(g.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_id", strconv.FormatInt(bookingID, 10))

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe payment intent: %w", err)
	}
	return pi.ID, nil
}

func (g *StripeGateway) CancelIntent(ctx context.Context, intentID string) error {
	params := &stripe.PaymentIntentCancelParams{
		CancellationReason: stripe.String(string(stripe.PaymentIntentCancellationReasonAbandoned)),
	}
	params.Context = ctx
	if _, err := g.api.PaymentIntents.Cancel(intentID, params); err != nil {
		return fmt.Errorf("stripe cancel payment intent: %w", err)
	}
	return nil
}

// MinorUnits converts a currency amount to cents, rounding half away from zero.
func MinorUnits(amount decimal.Decimal) (int64, error) {
	if !amount.IsPositive() {
		return 0, errors.New("amount must be positive")
	}
	return amount.Shift(2).Round(0).IntPart(), nil
}

var _ Gateway = (*StripeGateway)(nil)
