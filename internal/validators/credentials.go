package validators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-realm/models"
)

// Field names accepted by [CredentialsValidator.Validate] for field-level
// scoping. They match the struct field names of [models.Credentials].
const (
	FieldUsername = "Username"
	FieldPassword = "Password"
)

// CredentialsValidator checks register and login request bodies using the
// `validate` struct tags of [models.Credentials].
type CredentialsValidator struct {
	v *validator.Validate
}

func NewCredentialsValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// registration of a static, well-formed tag cannot fail
	_ = v.RegisterValidation("nospace", noSpace)

	return &CredentialsValidator{v: v}
}

func (c *CredentialsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return c.validateCredentials(value, fields...)
	case *models.Credentials:
		if value == nil {
			return fmt.Errorf("%w: nil credentials", ErrInvalidCredentials)
		}
		return c.validateCredentials(*value, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (c *CredentialsValidator) validateCredentials(credentials models.Credentials, fields ...string) error {
	for _, field := range fields {
		if field != FieldUsername && field != FieldPassword {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	var err error
	if len(fields) > 0 {
		err = c.v.StructPartial(credentials, fields...)
	} else {
		err = c.v.Struct(credentials)
	}
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fieldError(fe))
	}

	return fmt.Errorf("%w: %s", ErrInvalidCredentials, strings.Join(messages, "; "))
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "nospace":
		return field + " must not contain whitespace"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func noSpace(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
}
