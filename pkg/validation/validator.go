package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// URLPattern is the accepted bookmark URL shape.
var URLPattern = regexp.MustCompile(`^https?://.+`)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			if label := field.Tag.Get("label"); label != "" {
				return label
			}
			return field.Name
		})

		// Registration only fails on an empty tag or nil func.
		_ = v.RegisterValidation("notblank", notBlank)
		_ = v.RegisterValidation("httpurl", httpURL)

		validate = v
	})
	return validate
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.String {
		return strings.TrimSpace(field.String()) != ""
	}
	return !field.IsZero()
}

func httpURL(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return URLPattern.MatchString(field.String())
}

// Struct validates s and returns the message of the first failing field,
// or "" when s is valid.
func Struct(s interface{}) (string, error) {
	err := instance().Struct(s)
	if err == nil {
		return "", nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError: programming error, not bad input.
		return "", err
	}

	return Message(fieldErrs[0]), nil
}

func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "httpurl":
		return "Please provide a valid URL starting with http:// or https://"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
