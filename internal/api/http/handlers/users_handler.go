package handlers

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UsersHandler exposes CRUD endpoints for the user resource. Handlers hold no
// cross-request state; every read goes to the backing store.
type UsersHandler struct {
	users repository.UserRepository
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users repository.UserRepository) *UsersHandler {
	return &UsersHandler{users: users}
}

// Create handles POST /api/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	name, email, err := parseUserPayload(c)
	if err != nil {
		return err
	}

	// Best-effort pre-check for a friendly conflict message; the unique
	// index remains the source of truth under concurrent writers.
	existing, err := h.users.FindByEmail(c.Context(), email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.NewConflictError("Email already exists")
	}

	user, err := h.users.Create(c.Context(), name, email)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    dto.NewUserResponse(user),
		"message": "User created successfully",
	})
}

// List handles GET /api/users. The whole table is returned; total and count
// only diverge if pagination is ever introduced.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.FindAll(c.Context())
	if err != nil {
		return err
	}
	total, err := h.users.Count(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
		"meta":    dto.ListMeta{Total: total, Count: len(items)},
	})
}

// Get handles GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	user, err := h.users.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NewNotFoundError("User not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewUserResponse(user),
	})
}

// Update handles PUT /api/users/:id with full replace semantics.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	name, email, err := parseUserPayload(c)
	if err != nil {
		return err
	}

	target, err := h.users.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.NewNotFoundError("User not found")
	}

	withEmail, err := h.users.FindByEmail(c.Context(), email)
	if err != nil {
		return err
	}
	if withEmail != nil && withEmail.ID != id {
		return domain.NewConflictError("Email already exists")
	}

	user, err := h.users.Update(c.Context(), id, name, email)
	if err != nil {
		return err
	}
	if user == nil {
		// The row vanished between the existence check and the update.
		return domain.NewNotFoundError("User not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewUserResponse(user),
		"message": "User updated successfully",
	})
}

// Delete handles DELETE /api/users/:id, echoing back the deleted id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	user, err := h.users.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NewNotFoundError("User not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deleted successfully",
		"data":    fiber.Map{"id": user.ID},
	})
}

func parseUserID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("Invalid user ID format")
	}
	return id, nil
}

// parseUserPayload validates the request body and returns the normalized
// (trimmed, lowercased email) fields.
func parseUserPayload(c *fiber.Ctx) (name, email string, err error) {
	var req dto.UserPayload
	if err := c.BodyParser(&req); err != nil {
		return "", "", domain.NewMalformedRequestError(err)
	}

	name = strings.TrimSpace(req.Name)
	email = strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" {
		return "", "", domain.NewValidationError("Name and email are required")
	}
	if !emailPattern.MatchString(email) {
		return "", "", domain.NewValidationError("Invalid email format")
	}
	return name, email, nil
}
