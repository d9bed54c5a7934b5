package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound      = errors.New("no results returned")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already exists")
	ErrUnimplemented = errors.New("not implemented")
)

// postgres unique_violation
const uniqueViolationCode = "23505"

// StoreError is returned whenever the database rejects or fails an operation.
// Op is what was being attempted e.g. "add employee" and the driver error is kept
// so callers can log it while still showing a short message to the user
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("unable to %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &StoreError{Op: op, Err: ErrNotFound}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return &StoreError{Op: op, Err: fmt.Errorf("%w: %s", ErrAlreadyExists, pgErr.Detail)}
	}
	return &StoreError{Op: op, Err: err}
}
