// Package stripe creates payment intents with Stripe so that a client can
// confirm a card payment before the parcel is marked as paid.
package stripe

import (
	"context"
	"errors"
	"net/http"

	"parcelhub/internal/pkg/errs"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

const defaultCurrency = "usd"

// PaymentGateway wraps the Stripe API client.
type PaymentGateway struct {
	sc       *client.API
	currency string
}

// NewPaymentGateway initialises the Stripe client with the secret key.
func NewPaymentGateway(secretKey string) *PaymentGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &PaymentGateway{sc: sc, currency: defaultCurrency}
}

func newPaymentGatewayWithBackends(secretKey string, backends *stripe.Backends) *PaymentGateway {
	sc := &client.API{}
	sc.Init(secretKey, backends)
	return &PaymentGateway{sc: sc, currency: defaultCurrency}
}

// CreatePaymentIntent asks Stripe for a card payment intent of amount
// minor units and returns its client secret.
//
// Returns:
//   - errs.ErrValueIsOutOfRange when amount is not positive
//   - errs.ErrValueIsInvalid when Stripe rejects the request
//   - errs.ErrUnavailable when Stripe cannot be reached or fails
func (g *PaymentGateway) CreatePaymentIntent(ctx context.Context, amount int64) (string, error) {
	if amount <= 0 {
		return "", errs.NewValueIsOutOfRangeError("amount", amount, 1, "max int64")
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		return "", mapStripeError(err)
	}
	return pi.ClientSecret, nil
}

func mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode > 0 && stripeErr.HTTPStatusCode < http.StatusInternalServerError {
		if stripeErr.HTTPStatusCode == http.StatusUnauthorized {
			return errs.NewUnavailableError("stripe", err)
		}
		return errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return errs.NewUnavailableError("stripe", err)
}
