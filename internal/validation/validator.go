// Package validation configures go-playground/validator for request binding
// and turns its errors into domain errors.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/cookbook/backend/internal/apperr"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.-]{1,20}$`)

// reserved usernames collide with routes under /users/
var reservedUsernames = map[string]bool{
	"me":            true,
	"subscriptions": true,
	"set_password":  true,
}

// IsValidUsername reports whether name may be used as a username.
func IsValidUsername(name string) bool {
	return usernamePattern.MatchString(name) && !reservedUsernames[strings.ToLower(name)]
}

// Register adds the custom rules and json field naming to v.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return IsValidUsername(fl.Field().String())
	})
}

var registerOnce sync.Once

// RegisterGinValidators installs the rules on gin's binding engine.
func RegisterGinValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		err = Register(v)
	})
	return err
}

// FromBindingError converts an error from gin's ShouldBind* into an
// InvalidInput domain error with per-field details.
func FromBindingError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, e := range validationErrs {
			fields[e.Field()] = friendlyMessage(e)
		}
		return apperr.InvalidInput("validation failed").WithDetails(fields)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperr.InvalidField(typeErr.Field, fmt.Sprintf("must be %s", typeErr.Type.String()))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return apperr.InvalidInput("malformed JSON body")
	}

	return apperr.InvalidInput(err.Error())
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "username":
		return "must start with a letter, contain only letters, digits and . _ - and be 2-21 characters long"
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "hexcolor":
		return "must be a hex color"
	default:
		return "is invalid"
	}
}
