package services

import (
	"errors"
	"fmt"

	"github.com/sjperalta/frontdesk-api/internal/repository"
)

// ErrorKind classifies ledger failures for callers
type ErrorKind string

const (
	KindNotFound    ErrorKind = "not_found"
	KindValidation  ErrorKind = "validation"
	KindConsistency ErrorKind = "consistency"
	KindInternal    ErrorKind = "internal"
)

// Common ledger errors
var (
	ErrBillNotFound           = errors.New("bill not found")
	ErrFolioNotFound          = errors.New("folio has no active stay")
	ErrOriginalBillNotFound   = errors.New("original bill not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidPaymentMode     = errors.New("invalid payment mode")
	ErrNoTransactionsSelected = errors.New("no transactions selected")
	ErrInvalidAmount          = errors.New("amount must be positive with at most two decimal places")
	ErrConsistencyViolation   = errors.New("ledger consistency violation")
)

// LedgerError carries a kind, the sentinel it wraps and a human-readable detail
type LedgerError struct {
	Kind   ErrorKind
	Err    error
	Detail string
}

func (e *LedgerError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Detail)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

func notFound(err error, format string, args ...any) error {
	return &LedgerError{Kind: KindNotFound, Err: err, Detail: fmt.Sprintf(format, args...)}
}

func invalid(err error, format string, args ...any) error {
	return &LedgerError{Kind: KindValidation, Err: err, Detail: fmt.Sprintf(format, args...)}
}

func inconsistent(format string, args ...any) error {
	return &LedgerError{Kind: KindConsistency, Err: ErrConsistencyViolation, Detail: fmt.Sprintf(format, args...)}
}

// createFailed reports a number collision as a consistency error
func createFailed(op, number string, err error) error {
	if errors.Is(err, repository.ErrDuplicateNumber) {
		return &LedgerError{Kind: KindConsistency, Err: ErrConsistencyViolation, Detail: fmt.Sprintf("%s: %s already exists", op, number)}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// KindOf returns the kind of a ledger error, or KindInternal for anything else
func KindOf(err error) ErrorKind {
	var le *LedgerError
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindInternal
}
