package dto

import (
	"time"

	"github.com/spec-kit/user-service/internal/domain"
)

// UserPayload is the body for create and update requests. Updates carry full
// replace semantics; both fields are always required.
type UserPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse is the wire shape of a user row.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse maps a domain user to its response shape.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ListMeta accompanies collection responses. Total is the table count; Count
// is the length of the returned sequence.
type ListMeta struct {
	Total int64 `json:"total"`
	Count int   `json:"count"`
}
