package stripe

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *PaymentGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return newPaymentGatewayWithBackends("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
}

func TestPaymentGateway_CreatePaymentIntent(t *testing.T) {
	var form map[string][]string
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            "pi_1",
			"object":        "payment_intent",
			"amount":        1500,
			"currency":      "usd",
			"client_secret": "pi_1_secret_abc",
		})
	})

	secret, err := gateway.CreatePaymentIntent(t.Context(), 1500)

	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret_abc", secret)
	assert.Equal(t, []string{"1500"}, form["amount"])
	assert.Equal(t, []string{"usd"}, form["currency"])
	assert.Equal(t, []string{"card"}, form["payment_method_types[0]"])
}

func TestPaymentGateway_CreatePaymentIntent_Errors(t *testing.T) {
	stripeError := func(status int) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"type": "invalid_request_error", "message": "nope"},
			})
		}
	}

	t.Run("non-positive amount never reaches stripe", func(t *testing.T) {
		called := false
		gateway := newTestGateway(t, func(http.ResponseWriter, *http.Request) { called = true })

		_, err := gateway.CreatePaymentIntent(t.Context(), 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.False(t, called)
	})

	t.Run("rejected request is invalid", func(t *testing.T) {
		gateway := newTestGateway(t, stripeError(http.StatusBadRequest))

		_, err := gateway.CreatePaymentIntent(t.Context(), 100)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("provider failure is unavailable", func(t *testing.T) {
		gateway := newTestGateway(t, stripeError(http.StatusServiceUnavailable))

		_, err := gateway.CreatePaymentIntent(t.Context(), 100)

		require.ErrorIs(t, err, errs.ErrUnavailable)
	})
}
