package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		err  error
		kind ErrorKind
	}{
		{NewValidationError("Invalid email format"), ErrValidation},
		{NewNotFoundError("User not found"), ErrNotFound},
		{NewConflictError("Email already exists"), ErrConflict},
		{NewStorageError("23505", "duplicate key", nil), ErrStorage},
		{NewMalformedRequestError(errors.New("unexpected end of JSON input")), ErrMalformedRequest},
		{NewInternalError(errors.New("boom")), ErrInternal},
	}
	for _, tc := range cases {
		var e *Error
		require.ErrorAs(t, tc.err, &e)
		assert.Equal(t, tc.kind, e.Kind)
	}
}

func TestError_MessageAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError("08001", "database unreachable", cause)

	assert.Equal(t, "database unreachable: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewConflictError("Email already exists")
	assert.Equal(t, "Email already exists", bare.Error())
	assert.NoError(t, errors.Unwrap(bare))
}
