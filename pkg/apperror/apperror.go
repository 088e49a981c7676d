package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal server error")
)

// ServerErrorMessage is the only text a client sees for internal failures.
const ServerErrorMessage = "Server Error"

// FieldError is one entry of an {"errors": [...]} response body.
type FieldError struct {
	Value    any    `json:"value,omitempty"`
	Msg      string `json:"msg"`
	Param    string `json:"param,omitempty"`
	Location string `json:"location,omitempty"`
}

type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error
	Fields    []FieldError
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.BaseError, e.Err}
	}
	return []error{e.BaseError}
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewNotFound(resource, identifier string) *AppError {
	msg := fmt.Sprintf("%s not found", resource)
	details := fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier)
	return NewAppError(ErrNotFound, msg, details, nil)
}

func NewInvalidInput(details string, err error, fields ...FieldError) *AppError {
	e := NewAppError(ErrInvalidInput, "Invalid input provided", details, err)
	e.Fields = fields
	return e
}

// NewConflict renders as {"errors":[{"msg":"<Resource> already exist"}]}.
func NewConflict(resource, field, value string) *AppError {
	msg := fmt.Sprintf("%s already exist", resource)
	details := fmt.Sprintf("%s with %s '%s' already exists", resource, field, value)
	return NewAppError(ErrConflict, msg, details, nil)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, ServerErrorMessage, details, err)
}

// ToHTTPStatus follows the service contract: every client-side failure,
// including a missing record or a taken email, is a 400.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (e *AppError) ToJSON() gin.H {
	switch {
	case len(e.Fields) > 0:
		return gin.H{"errors": e.Fields}
	case errors.Is(e.BaseError, ErrConflict), errors.Is(e.BaseError, ErrInvalidInput):
		return gin.H{"errors": []FieldError{{Msg: e.Message}}}
	case errors.Is(e.BaseError, ErrNotFound):
		return gin.H{"msg": e.Message}
	}
	return gin.H{"msg": ServerErrorMessage}
}
