package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestStoreErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := storeError("get departments", cause)

	var storeErr *StoreError
	assert.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "get departments", storeErr.Op)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "unable to get departments: connection refused", err.Error())
}

func TestStoreErrorTranslations(t *testing.T) {
	assert.NoError(t, storeError("anything", nil))
	assert.ErrorIs(t, storeError("get employee", pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t,
		storeError("create user", &pgconn.PgError{Code: uniqueViolationCode, Detail: "Key (user_name)=(ada) already exists."}),
		ErrAlreadyExists,
	)
}

func TestGetManagersAlwaysFails(t *testing.T) {
	q := New(nil)
	managers, err := q.GetManagers(context.Background())
	assert.Nil(t, managers)
	assert.ErrorIs(t, err, ErrUnimplemented)
}
