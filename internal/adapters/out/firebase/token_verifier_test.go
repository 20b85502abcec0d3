package firebase

import (
	"context"
	"errors"
	"testing"

	"parcelhub/internal/core/application/access"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockIDTokenVerifier struct{ mock.Mock }

func (m *MockIDTokenVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Token), args.Error(1)
}

func TestTokenVerifier_Verify(t *testing.T) {
	ctx := t.Context()

	t.Run("reads uid and email claim", func(t *testing.T) {
		client := new(MockIDTokenVerifier)
		client.On("VerifyIDToken", ctx, "good").
			Return(&auth.Token{UID: "u1", Claims: map[string]interface{}{"email": "karim@x.com"}}, nil).Once()

		id, err := (&TokenVerifier{client: client}).Verify(ctx, "good")

		require.NoError(t, err)
		assert.Equal(t, access.Identity{UID: "u1", Email: "karim@x.com"}, id)
	})

	t.Run("missing email claim leaves email empty", func(t *testing.T) {
		client := new(MockIDTokenVerifier)
		client.On("VerifyIDToken", ctx, "anon").
			Return(&auth.Token{UID: "u2", Claims: map[string]interface{}{}}, nil).Once()

		id, err := (&TokenVerifier{client: client}).Verify(ctx, "anon")

		require.NoError(t, err)
		assert.Empty(t, id.Email)
	})

	t.Run("provider error is returned", func(t *testing.T) {
		client := new(MockIDTokenVerifier)
		client.On("VerifyIDToken", ctx, "bad").Return(nil, errors.New("id token has expired")).Once()

		_, err := (&TokenVerifier{client: client}).Verify(ctx, "bad")

		require.Error(t, err)
	})
}
