// Package validation holds the credential input schemas shared by signup and
// login. It has no dependency on the HTTP layer.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	auth_errors "credential-auth/pkg/errors"

	"github.com/go-playground/validator/v10"
)

const (
	PasswordMinLen = 4
	PasswordMaxLen = 12
)

// LoginInput is the credential shape accepted by the credentials provider.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=12"`
}

// SignupInput extends LoginInput with a username.
type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=12"`
	Username string `json:"username" validate:"required"`
}

// Result is either a validated value (Errors empty) or the list of field
// failures.
type Result[T any] struct {
	Value  T
	Errors []auth_errors.FieldError
}

func (r Result[T]) OK() bool {
	return len(r.Errors) == 0
}

// Err returns nil for a valid result, otherwise a *ValidationError.
func (r Result[T]) Err() error {
	if r.OK() {
		return nil
	}
	return &auth_errors.ValidationError{Fields: r.Errors}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func ValidateLogin(in LoginInput) Result[LoginInput] {
	return check(in)
}

func ValidateSignup(in SignupInput) Result[SignupInput] {
	return check(in)
}

func check[T any](in T) Result[T] {
	err := validate.Struct(in)
	if err == nil {
		return Result[T]{Value: in}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result[T]{Errors: []auth_errors.FieldError{{Rule: "invalid", Message: err.Error()}}}
	}

	fields := make([]auth_errors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, auth_errors.FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return Result[T]{Errors: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must contain at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must contain at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
