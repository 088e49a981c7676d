package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFound("profile", "42"), http.StatusBadRequest},
		{"invalid input", NewInvalidInput("bad body", nil), http.StatusBadRequest},
		{"conflict", NewConflict("User", "email", "a@x.com"), http.StatusBadRequest},
		{"internal", NewInternal("db down", errors.New("boom")), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("ctx: %w", NewNotFound("profile", "42")), http.StatusBadRequest},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToHTTPStatus(tt.err))
		})
	}
}

func TestAppError_UnwrapsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := NewAppError(ErrConflict, "User already exist", "", cause)

	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, cause)
}

func TestAppError_ToJSON(t *testing.T) {
	assert.Equal(t, gin.H{"msg": "profile not found"}, NewNotFound("profile", "42").ToJSON())
	assert.Equal(t,
		gin.H{"errors": []FieldError{{Msg: "User already exist"}}},
		NewConflict("User", "email", "a@x.com").ToJSON())
	assert.Equal(t,
		gin.H{"errors": []FieldError{{Msg: "Name is required", Param: "name", Location: "body"}}},
		NewInvalidInput("validation", nil, FieldError{Msg: "Name is required", Param: "name", Location: "body"}).ToJSON())
	assert.Equal(t, gin.H{"msg": ServerErrorMessage}, NewInternal("secret detail", errors.New("boom")).ToJSON())
}
