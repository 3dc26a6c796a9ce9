package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateCreateError(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "idx_bills_bill_no"}
	fk := &pgconn.PgError{Code: "23503"}

	assert.NoError(t, translateCreateError(nil))
	assert.ErrorIs(t, translateCreateError(fmt.Errorf("insert: %w", unique)), ErrDuplicateNumber)
	assert.ErrorIs(t, translateCreateError(gorm.ErrDuplicatedKey), ErrDuplicateNumber)

	err := translateCreateError(fk)
	assert.False(t, errors.Is(err, ErrDuplicateNumber))
	assert.Equal(t, fk, err)
}
