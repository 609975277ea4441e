package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindPredicates(t *testing.T) {
	cause := errors.New("connection refused")

	assert.True(t, IsValidation(Validation("Title is required")))
	assert.True(t, IsNotFound(NotFound("Note not found")))
	assert.True(t, IsStorage(Storage("failed to list notes", cause)))

	assert.False(t, IsNotFound(Validation("Title is required")))
	assert.False(t, IsStorage(cause))
}

func TestWrappedError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("list notes: %w", Storage("failed to query notes", cause))

	assert.True(t, IsStorage(err))
	assert.ErrorIs(t, err, cause)

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindStorage, kind)
	assert.Equal(t, "list notes: failed to query notes: connection refused", err.Error())
}

func TestKindOfPlainError(t *testing.T) {
	_, ok := KindOf(errors.New("boom"))
	assert.False(t, ok)
}
