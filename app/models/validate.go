package models

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is the sentinel wrapped by every ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a rejected form field with a message fit for
// showing inline to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// emailPattern is deliberately loose: something@something.something.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// fieldErrors runs the struct validator and returns its per-field failures.
// A non-validation error from the validator itself is returned as-is.
func fieldErrors(s interface{}) (validator.ValidationErrors, error) {
	err := validate.Struct(s)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs, nil
	}
	return nil, err
}

func firstWithTag(verrs validator.ValidationErrors, tag string) validator.FieldError {
	for _, fe := range verrs {
		if fe.Tag() == tag {
			return fe
		}
	}
	return nil
}
