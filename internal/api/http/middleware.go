package http

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/observability"
	"github.com/spec-kit/user-service/internal/persistence"
)

// MiddlewareConfig bundles dependencies for the global middleware chain.
type MiddlewareConfig struct {
	Logger      *zap.Logger
	Metrics     *observability.Metrics
	Development bool
}

// RegisterMiddlewares attaches the global chain: request ids, request
// logging, then the terminal error stage closest to the handlers.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	app.Use(requestIDMiddleware())
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
	app.Use(errorHandlingMiddleware(cfg))
}

func requestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(observability.RequestIDKey, id)
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	}
}

type storageMapping struct {
	status  int
	message string
	details string
}

// Storage error codes with a fixed status/message pair. Unrecognized codes
// fall through to a generic 500.
var storageCodes = map[string]storageMapping{
	persistence.CodeUniqueViolation:     {http.StatusConflict, "Resource already exists", "Duplicate entry detected"},
	persistence.CodeNotNullViolation:    {http.StatusBadRequest, "Missing required field", "A required field is missing"},
	persistence.CodeForeignKeyViolation: {http.StatusBadRequest, "Invalid reference", "Referenced resource does not exist"},
	persistence.CodeUndefinedColumn:     {http.StatusBadRequest, "Invalid field", "Unknown column in field list"},
	persistence.CodeConnectionRefused:   {http.StatusServiceUnavailable, "Database connection failed", "Unable to connect to the database"},
	persistence.CodeConnectionFailure:   {http.StatusServiceUnavailable, "Database connection failed", "Unable to connect to the database"},
	persistence.CodeInvalidAuthSpec:     {http.StatusServiceUnavailable, "Database access denied", "Invalid database credentials"},
	persistence.CodeInvalidPassword:     {http.StatusServiceUnavailable, "Database access denied", "Invalid database credentials"},
}

// errorHandlingMiddleware is the single terminal stage for failures that
// reach the handler chain. Nothing re-throws past this point.
func errorHandlingMiddleware(cfg MiddlewareConfig) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				cfg.Logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()))
				err = domain.NewInternalError(fmt.Errorf("panic: %v", r))
			}
			if err == nil {
				return
			}
			respondError(c, cfg, err)
			err = nil
		}()
		return c.Next()
	}
}

// ErrorHandler renders failures raised by the server before the middleware
// chain runs, such as body-limit rejections. Install it via fiber.Config so
// those share the middleware's response shape instead of fiber's plain-text
// default.
func ErrorHandler(cfg MiddlewareConfig) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		respondError(c, cfg, err)
		return nil
	}
}

// respondError logs the failure with the request method, URL, and timestamp,
// then writes the JSON response.
func respondError(c *fiber.Ctx, cfg MiddlewareConfig, err error) {
	status, message, details := classify(cfg.Logger, err)

	cfg.Logger.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("url", c.OriginalURL()),
		zap.Time("timestamp", time.Now().UTC()),
		zap.Int("status", status),
		zap.Error(err))
	cfg.Metrics.RecordError(c.Method(), c.Path(), status)

	body := fiber.Map{
		"error":     message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"path":      c.OriginalURL(),
	}
	if details == "" && cfg.Development {
		details = err.Error()
	}
	if details != "" {
		body["details"] = details
	}

	c.Status(status)
	_ = c.JSON(body)
}

// classify decides the status and user-visible message for an error. 500
// bodies never carry the internal message.
func classify(logger *zap.Logger, err error) (status int, message, details string) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		switch domainErr.Kind {
		case domain.ErrStorage:
			if m, ok := storageCodes[domainErr.Code]; ok {
				return m.status, m.message, m.details
			}
			logger.Error("unhandled storage error code", zap.String("code", domainErr.Code))
			return http.StatusInternalServerError, "Internal server error", ""
		case domain.ErrValidation:
			return http.StatusBadRequest, domainErr.Message, ""
		case domain.ErrNotFound:
			return http.StatusNotFound, domainErr.Message, ""
		case domain.ErrConflict:
			return http.StatusConflict, domainErr.Message, ""
		case domain.ErrMalformedRequest:
			return http.StatusBadRequest, "Invalid JSON format", "Request body contains invalid JSON"
		default:
			return http.StatusInternalServerError, "Internal server error", ""
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code == http.StatusRequestEntityTooLarge {
			return http.StatusRequestEntityTooLarge, "Payload too large", "Request body exceeds size limit"
		}
		if fiberErr.Code != http.StatusInternalServerError {
			return fiberErr.Code, fiberErr.Message, ""
		}
	}

	return http.StatusInternalServerError, "Internal server error", ""
}
