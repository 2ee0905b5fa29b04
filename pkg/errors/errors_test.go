package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundErrorUnwrap(t *testing.T) {
	err := NewProductNotFound("42")

	assert.True(t, errors.Is(err, ErrProductNotFound))
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), `product "42"`)

	var nf *NotFoundError
	wrapped := fmt.Errorf("render: %w", err)
	assert.True(t, errors.As(wrapped, &nf))
	assert.Equal(t, "42", nf.ID)
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(fmt.Errorf("checkout: %w", ErrIncompleteShipping)))
	assert.True(t, IsValidation(ErrUnknownView))
	assert.False(t, IsValidation(ErrOrderNotFound))
	assert.False(t, IsValidation(nil))
}
