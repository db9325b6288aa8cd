package persistence

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool the data access layer needs. It is
// satisfied by *pgxpool.Pool and by test doubles.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB executes parameterized statements against the pool and translates every
// driver failure into a storage error. Absent rows (pgx.ErrNoRows) pass
// through untranslated so callers can distinguish absence from failure.
type DB struct {
	q Querier
}

// NewDB wraps a querier.
func NewDB(q Querier) *DB {
	return &DB{q: q}
}

// Exec runs a statement that returns no rows and reports affected-row metadata.
func (d *DB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	tag, err := d.q.Exec(ctx, sql, args...)
	if err != nil {
		return tag, TranslateError(err)
	}
	return tag, nil
}

// Query runs a statement returning multiple rows. The caller must close the
// rows and check rows.Err through TranslateError.
func (d *DB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	rows, err := d.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, TranslateError(err)
	}
	return rows, nil
}

// QueryRow runs a statement expected to return at most one row. Errors are
// reported by Scan on the returned Row.
func (d *DB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return Row{raw: d.q.QueryRow(ctx, sql, args...)}
}

// Row defers error translation until Scan, mirroring pgx.Row.
type Row struct {
	raw pgx.Row
}

// Scan copies the matched row into dest. A missing row surfaces as
// pgx.ErrNoRows; anything else is a storage error.
func (r Row) Scan(dest ...any) error {
	if err := r.raw.Scan(dest...); err != nil {
		return TranslateError(err)
	}
	return nil
}
