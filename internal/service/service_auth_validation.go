package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-realm/internal/validators"
	"github.com/MKhiriev/go-realm/models"
)

// AuthValidationService checks credential format before delegating to the
// wrapped AuthService.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewCredentialsValidator(),
	}
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}

func (v *AuthValidationService) RegisterUser(ctx context.Context, credentials models.Credentials) (models.User, error) {
	if err := v.validator.Validate(ctx, credentials); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.RegisterUser(ctx, credentials)
}

// Login checks presence only; format rules apply to registration.
func (v *AuthValidationService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	if credentials.Username == "" || credentials.Password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	return v.inner.Login(ctx, credentials)
}
