package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("parcel", "123")

		assert.Equal(t, "parcel", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: parcel 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("rider", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: rider, ID is: 123 (cause: database connection failed)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("id", cause)

		assert.Equal(t, "value is invalid: id (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("amount", -5, 1, 1000)

		assert.Equal(t, -5, err.Value)
		assert.Equal(t, "value is out of range: amount is -5, min value is 1, max value is 1000", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)

		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("status")

	assert.Equal(t, "value is required: status", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("status", errors.New("empty body"))
	assert.Equal(t, "value is required: status (cause: empty body)", withCause.Error())
}

func TestConflictError(t *testing.T) {
	err := errs.NewConflictError("parcel", "p-1", "already paid")

	assert.Equal(t, "conflict: parcel p-1: already paid", err.Error())
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestTransitionIsInvalidError(t *testing.T) {
	err := errs.NewTransitionIsInvalidError("parcel", "delivered", "in-transit")

	assert.Equal(t, `transition is invalid: parcel cannot move from "delivered" to "in-transit"`, err.Error())
	require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
}

func TestAccessErrors(t *testing.T) {
	unauthorized := errs.NewUnauthorizedError("no token")
	forbidden := errs.NewForbiddenError("admin role required")

	require.ErrorIs(t, unauthorized, errs.ErrUnauthorized)
	require.NotErrorIs(t, unauthorized, errs.ErrForbidden)
	require.ErrorIs(t, forbidden, errs.ErrForbidden)
	assert.Equal(t, "forbidden: admin role required", forbidden.Error())
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"required", errs.NewValueIsRequiredError("x"), true},
		{"invalid", errs.NewValueIsInvalidError("x"), true},
		{"out of range", errs.NewValueIsOutOfRangeError("x", 1, 2, 3), true},
		{"wrapped invalid", fmt.Errorf("parse: %w", errs.NewValueIsInvalidError("id")), true},
		{"joined", errors.Join(errors.New("other"), errs.NewValueIsRequiredError("x")), true},
		{"not found", errs.NewObjectNotFoundError("x", 1), false},
		{"conflict", errs.NewConflictError("x", 1, "y"), false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.IsValidation(tt.err))
		})
	}
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "conflict", errs.ErrConflict.Error())
	assert.Equal(t, "transition is invalid", errs.ErrTransitionIsInvalid.Error())
}

func TestUnavailableError(t *testing.T) {
	cause := errors.New("connection reset")
	err := errs.NewUnavailableError("stripe", cause)

	require.ErrorIs(t, err, errs.ErrUnavailable)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "dependency unavailable: stripe: connection reset", err.Error())
	assert.False(t, errs.IsValidation(err))

	assert.Equal(t, "dependency unavailable: kafka", errs.NewUnavailableError("kafka", nil).Error())
}
