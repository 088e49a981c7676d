package http

import (
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/khoahotran/profile-api/pkg/apperror"
)

// fieldMessages maps a request struct field to the message reported when any
// of its rules fail.
type fieldMessages map[string]string

var registerMessages = fieldMessages{
	"Name":     "Name is required",
	"Email":    "Please write an valid email",
	"Password": "password shoud more than 6 characters",
}

var updateMessages = fieldMessages{
	"Name":     "username is required",
	"Email":    "email is required",
	"Password": "password is required",
}

// bindJSON decodes and validates the body into req. An empty body is
// validated as an empty object so every missing field is reported.
func bindJSON(c *gin.Context, req any, messages fieldMessages) error {
	err := c.ShouldBindJSON(req)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(req)
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewInvalidInput("invalid JSON body", err, apperror.FieldError{Msg: "invalid JSON body"})
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		item := apperror.FieldError{
			Msg:      messages[fe.StructField()],
			Param:    strings.ToLower(fe.StructField()),
			Location: "body",
		}
		if item.Msg == "" {
			item.Msg = fe.Error()
		}
		if fe.StructField() != "Password" {
			item.Value = fe.Value()
		}
		fields = append(fields, item)
	}
	return apperror.NewInvalidInput("request validation failed", err, fields...)
}
