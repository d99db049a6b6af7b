package domain

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_WithCause(t *testing.T) {
	_, cause := strconv.Atoi("abc")
	err := NewDomainErrorWithCause(ErrCodeValidation, "page must be an integer", cause)

	assert.Equal(t, `[VALIDATION_ERROR] page must be an integer: strconv.Atoi: parsing "abc": invalid syntax`, err.Error())
	assert.ErrorIs(t, err, strconv.ErrSyntax)
	assert.Equal(t, ErrCodeValidation, CodeOf(fmt.Errorf("wrapped: %w", err)))
}

func TestDomainError_IsMatchesCodeAndMessage(t *testing.T) {
	wrapped := fmt.Errorf("%w: got %d", ErrInvalidPage, 0)

	assert.True(t, errors.Is(wrapped, ErrInvalidPage))
	assert.False(t, errors.Is(wrapped, ErrInvalidPageSize))
	assert.True(t, errors.Is(NewDomainError(ErrCodeNotFound, "content not found"), ErrContentNotFound))
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Empty(t, CodeOf(errors.New("boom")))
	assert.Empty(t, CodeOf(nil))
}
