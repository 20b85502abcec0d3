package guard_test

import (
	"errors"
	"sync"
	"testing"

	"parcelhub/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_supplied_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		// When
		err := g.Validate(expected)

		// Then
		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrNotConstructed, err)
	})
}

func TestConstructorGuard_EmbeddedInValue(t *testing.T) {
	type command struct {
		parcelID string
		guard    guard.ConstructorGuard
	}
	errNotConstructed := errors.New("command must be created via newCommand")

	newCommand := func(id string) (command, error) {
		if id == "" {
			return command{}, errors.New("parcel id is required")
		}
		return command{parcelID: id, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_is_valid", func(t *testing.T) {
		c, err := newCommand("p-1")
		require.NoError(t, err)

		assert.NoError(t, c.guard.Validate(errNotConstructed))
		assert.Equal(t, "p-1", c.parcelID)
	})

	t.Run("copy_keeps_constructed_state", func(t *testing.T) {
		c, err := newCommand("p-1")
		require.NoError(t, err)

		copied := c

		assert.NoError(t, copied.guard.Validate(errNotConstructed))
	})

	t.Run("literal_value_is_rejected", func(t *testing.T) {
		c := command{parcelID: "p-1"}

		assert.ErrorIs(t, c.guard.Validate(errNotConstructed), errNotConstructed)
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	notConstructed := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.NoError(t, g.Validate(notConstructed))
			}
		}()
	}
	wg.Wait()
}
