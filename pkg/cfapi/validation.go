package cfapi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationResult is the ordered list of violations found in a request.
// An empty result means the request is valid.
type ValidationResult struct {
	Messages []string
}

// Valid reports whether the result carries no messages.
func (r ValidationResult) Valid() bool {
	return len(r.Messages) == 0
}

// Err returns a *ValidationError for an invalid result and nil otherwise.
func (r ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}

	return &ValidationError{Messages: r.Messages}
}

// Validatable is implemented by every request type.
type Validatable interface {
	Validate() ValidationResult
}

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

// fieldLabel names a field in messages: the label tag when present,
// otherwise the JSON name with underscores turned into spaces.
func fieldLabel(field reflect.StructField) string {
	if label := field.Tag.Get("label"); label != "" {
		return label
	}

	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return strings.ToLower(field.Name)
	}

	return strings.ReplaceAll(name, "_", " ")
}

func getValidator() *validator.Validate {
	structValidatorOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
		structValidator.RegisterTagNameFunc(fieldLabel)
	})

	return structValidator
}

// ValidateStruct checks the `validate` tags of a request struct and renders
// every failure as a message. Messages follow field declaration order.
func ValidateStruct(request any) ValidationResult {
	err := getValidator().Struct(request)
	if err == nil {
		return ValidationResult{}
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return ValidationResult{Messages: []string{err.Error()}}
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		messages = append(messages, validationMessage(fieldError))
	}

	return ValidationResult{Messages: messages}
}

func validationMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return fieldError.Field() + " must be specified"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fieldError.Field(), fieldError.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fieldError.Field(), fieldError.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fieldError.Field(), fieldError.Param())
	default:
		return fmt.Sprintf("%s is invalid", fieldError.Field())
	}
}
