package domain

import "time"

// User is the single persisted entity. The id is assigned by the database on
// insert and never reused; email is stored trimmed and lowercased and is
// unique across all rows.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
