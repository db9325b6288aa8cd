package persistence

import (
	"errors"
	"net"
	"syscall"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-service/internal/domain"
)

func TestTranslateError_Nil(t *testing.T) {
	assert.NoError(t, TranslateError(nil))
}

func TestTranslateError_NoRowsPassesThrough(t *testing.T) {
	err := TranslateError(pgx.ErrNoRows)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	var domainErr *domain.Error
	assert.False(t, errors.As(err, &domainErr))
}

func TestTranslateError_PreservesSQLState(t *testing.T) {
	pgErr := &pgconn.PgError{Code: CodeUniqueViolation, Message: "duplicate key value"}

	var domainErr *domain.Error
	require.ErrorAs(t, TranslateError(pgErr), &domainErr)
	assert.Equal(t, domain.ErrStorage, domainErr.Kind)
	assert.Equal(t, CodeUniqueViolation, domainErr.Code)
	assert.Equal(t, "duplicate key value", domainErr.Message)
}

func TestTranslateError_NetworkFailure(t *testing.T) {
	opErr := &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}

	var domainErr *domain.Error
	require.ErrorAs(t, TranslateError(opErr), &domainErr)
	assert.Equal(t, domain.ErrStorage, domainErr.Kind)
	assert.Equal(t, CodeConnectionFailure, domainErr.Code)
}

func TestTranslateError_GenericFailure(t *testing.T) {
	cause := errors.New("driver exploded")

	var domainErr *domain.Error
	require.ErrorAs(t, TranslateError(cause), &domainErr)
	assert.Equal(t, domain.ErrStorage, domainErr.Kind)
	assert.Empty(t, domainErr.Code)
	assert.ErrorIs(t, domainErr, cause)
}

func TestTranslateError_AlreadyTranslated(t *testing.T) {
	original := domain.NewStorageError(CodeNotNullViolation, "null value in column", nil)
	assert.Equal(t, original, TranslateError(original))
}
