package persistence

import (
	"errors"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/user-service/internal/domain"
)

// SQLSTATE codes the error middleware recognizes.
const (
	CodeUniqueViolation     = "23505"
	CodeNotNullViolation    = "23502"
	CodeForeignKeyViolation = "23503"
	CodeUndefinedColumn     = "42703"
	CodeConnectionRefused   = "08001"
	CodeConnectionFailure   = "08006"
	CodeInvalidAuthSpec     = "28000"
	CodeInvalidPassword     = "28P01"
)

// TranslateError converts a driver failure into a tagged storage error,
// preserving the SQLSTATE when the server reported one. pgx.ErrNoRows is
// returned unchanged; absence is not a failure.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return domain.NewStorageError(pgErr.Code, pgErr.Message, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return domain.NewStorageError(CodeConnectionRefused, "unable to connect to the database", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return domain.NewStorageError(CodeConnectionFailure, "database connection lost", err)
	}

	return domain.NewStorageError("", err.Error(), err)
}
