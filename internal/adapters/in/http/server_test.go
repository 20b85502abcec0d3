package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"parcelhub/api"
	"parcelhub/internal/core/application/access"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// handlerFunc adapts a closure to Handler.
type handlerFunc[Q, R any] func(ctx context.Context, q Q) (R, error)

func (f handlerFunc[Q, R]) Handle(ctx context.Context, q Q) (R, error) { return f(ctx, q) }

// executorFunc adapts a closure to Executor.
type executorFunc[C any] func(ctx context.Context, c C) error

func (f executorFunc[C]) Handle(ctx context.Context, c C) error { return f(ctx, c) }

const (
	adminToken    = "admin-token"
	senderToken   = "sender-token"
	riderToken    = "rider-token"
	strangerToken = "stranger-token"

	adminEmail    = "boss@x.com"
	senderEmail   = "sender@x.com"
	riderEmail    = "karim@x.com"
	strangerEmail = "nobody@x.com"
)

type stubVerifier map[string]string

func (v stubVerifier) Verify(_ context.Context, token string) (access.Identity, error) {
	email, ok := v[token]
	if !ok {
		return access.Identity{}, errors.New("token rejected")
	}
	return access.Identity{UID: "uid-" + token, Email: email}, nil
}

type stubRoles map[string]user.Role

func (r stubRoles) LookupRole(_ context.Context, email string) (user.Role, error) {
	role, ok := r[email]
	if !ok {
		return user.RoleNone, nil
	}
	return role, nil
}

type stubPayments struct {
	secret string
	err    error
}

func (p stubPayments) CreatePaymentIntent(context.Context, int64) (string, error) {
	return p.secret, p.err
}

type fixture struct {
	echo     *echo.Echo
	metrics  *metrics.Metrics
	registry *prometheus.Registry
}

func newFixture(t *testing.T, useCases UseCases, payments PaymentIntents) fixture {
	t.Helper()

	gate := access.NewGate(
		stubVerifier{
			adminToken:    adminEmail,
			senderToken:   senderEmail,
			riderToken:    riderEmail,
			strangerToken: strangerEmail,
		},
		stubRoles{
			adminEmail:    user.RoleAdmin,
			senderEmail:   user.RoleUser,
			riderEmail:    user.RoleRider,
			strangerEmail: user.RoleUser,
		},
	)
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	doc, err := api.Load(t.Context())
	require.NoError(t, err)

	e, err := NewRouter(NewServer(useCases, gate, payments, m, nil), RouterConfig{
		Gate:     gate,
		Metrics:  m,
		Gatherer: registry,
		Document: doc,
	})
	require.NoError(t, err)

	return fixture{echo: e, metrics: m, registry: registry}
}

func (f fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload string
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = string(raw)
	}

	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[Error](t, rec).Error
}

func notCalled[Q, R any](t *testing.T) handlerFunc[Q, R] {
	return func(context.Context, Q) (R, error) {
		t.Errorf("handler must not be called")
		var zero R
		return zero, nil
	}
}

