package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/persistence"
)

// UserRepository maps CRUD intents to statements over the users table.
// Absent rows are reported as a nil user with a nil error; storage failures
// propagate unchanged and are never retried here.
type UserRepository interface {
	Create(ctx context.Context, name, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id int64, name, email string) (*domain.User, error)
	Delete(ctx context.Context, id int64) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *persistence.DB
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db *persistence.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, created_at, updated_at`

// Create inserts the row and re-reads it by the generated id, so the returned
// timestamps are the server-assigned NOW() values.
func (r *userRepository) Create(ctx context.Context, name, email string) (*domain.User, error) {
	const query = `
        INSERT INTO users (name, email, created_at, updated_at)
        VALUES ($1, $2, NOW(), NOW())
        RETURNING id`

	var id int64
	if err := r.db.QueryRow(ctx, query, name, email).Scan(&id); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *userRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, persistence.TranslateError(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence.TranslateError(err)
	}
	return users, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users WHERE id = $1`

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// FindByEmail matches case-sensitively; callers normalize before calling.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users WHERE email = $1`

	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

// Update replaces name and email, refreshing updated_at. A zero-row match
// reports absence; otherwise the refreshed row is re-read and returned.
func (r *userRepository) Update(ctx context.Context, id int64, name, email string) (*domain.User, error) {
	const query = `
        UPDATE users SET name = $1, email = $2, updated_at = NOW()
        WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, name, email, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// Delete reads the row first so the pre-delete snapshot can be echoed back.
// When the row is absent no delete statement is issued.
func (r *userRepository) Delete(ctx context.Context, id int64) (*domain.User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *userRepository) scanOne(row persistence.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
