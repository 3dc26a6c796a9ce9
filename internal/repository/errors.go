package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateNumber is returned when a bill or receipt number is already taken
var ErrDuplicateNumber = errors.New("document number already in use")

const pgUniqueViolation = "23505"

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func translateCreateError(err error) error {
	if err != nil && isDuplicateKeyError(err) {
		return errors.Join(ErrDuplicateNumber, err)
	}
	return err
}
