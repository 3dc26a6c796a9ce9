package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sjperalta/frontdesk-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(notFound(ErrBillNotFound, "bill %s", "BL-1")))
	assert.Equal(t, KindValidation, KindOf(fmt.Errorf("wrapped: %w", invalid(ErrInvalidAmount, "got %s", "0"))))
	assert.Equal(t, KindConsistency, KindOf(inconsistent("total drifted")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestCreateFailed(t *testing.T) {
	dup := createFailed("create bill", "BL-42", fmt.Errorf("insert: %w", repository.ErrDuplicateNumber))
	assert.Equal(t, KindConsistency, KindOf(dup))
	assert.ErrorIs(t, dup, ErrConsistencyViolation)
	assert.Contains(t, dup.Error(), "BL-42 already exists")

	other := createFailed("create bill", "BL-43", errors.New("disk full"))
	assert.Equal(t, KindInternal, KindOf(other))
	assert.EqualError(t, other, "create bill: disk full")
}
