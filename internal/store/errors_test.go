package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(ErrUserNotFound))
	assert.True(t, IsNotFoundError(ErrAccountNotFound))
	assert.True(t, IsNotFoundError(ErrTransactionNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("lookup: %w", ErrAccountNotFound)))

	assert.False(t, IsNotFoundError(ErrDuplicate))
	assert.False(t, IsNotFoundError(errors.New("boom")))
	assert.False(t, IsNotFoundError(nil))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(ErrAccountNumberExists))

	assert.False(t, IsDuplicateError(ErrNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		inner := ErrAccountNotFound
		err := NewStoreError("account", "update", "row missing", inner)

		assert.Contains(t, err.Error(), "update operation on account failed")
		assert.ErrorIs(t, err, ErrAccountNotFound)
		assert.True(t, IsNotFoundError(err))
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewStoreError("transaction", "create", "validation failed", nil)

		assert.Equal(t, "create operation on transaction failed: validation failed", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})
}
