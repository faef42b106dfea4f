package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/internal/metrics"
	"github.com/MKhiriev/go-realm/internal/queue"
	"github.com/MKhiriev/go-realm/internal/store"
	"github.com/MKhiriev/go-realm/internal/utils"
	"github.com/MKhiriev/go-realm/models"
)

// publishTimeout bounds the best-effort event publish of a registration.
const publishTimeout = 5 * time.Second

// authService is the concrete implementation of AuthService.
// It persists accounts through a UserRepository, hashes passwords with bcrypt
// and announces new accounts through a queue.Publisher.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// publisher sends user_created events to the game service.
	publisher queue.Publisher

	// userCreatedQueue is the name of the durable user_created queue.
	userCreatedQueue string

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given UserRepository
// and Publisher. Events are published on userCreatedQueue.
func NewAuthService(userRepository store.UserRepository, publisher queue.Publisher, userCreatedQueue string, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:   userRepository,
		publisher:        publisher,
		userCreatedQueue: userCreatedQueue,
		now:              time.Now,
		logger:           logger,
	}
}

// RegisterUser creates a new account.
//
// Uniqueness of the username is enforced by the credential store, so two
// concurrent registrations of the same name cannot both succeed.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided if Username or Password is empty.
//   - A wrapped store.ErrUsernameTaken if the name is already registered.
//   - A wrapped storage error for any other failure.
//
// After the record is stored a user_created event is published. Publish
// errors are logged and swallowed; the game service repairs missing state on
// the user's first visit.
func (a *authService) RegisterUser(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("func", "authService.RegisterUser").Logger()

	if credentials.Username == "" || credentials.Password == "" {
		log.Error().Str("username", credentials.Username).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := utils.HashPassword(credentials.Password)
	if err != nil {
		log.Err(err).Str("username", credentials.Username).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     credentials.Username,
		PasswordHash: passwordHash,
		CreatedAt:    a.now().UTC(),
	})
	if err != nil {
		log.Err(err).Str("username", credentials.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	metrics.UsersRegisteredTotal.Inc()
	log.Info().Int64("user_id", registeredUser.UserID).Str("username", registeredUser.Username).Msg("user registered")

	a.publishUserCreated(ctx, registeredUser)

	return registeredUser, nil
}

// publishUserCreated announces a new account. The publish outlives
// cancellation of the request context but is bounded by publishTimeout.
func (a *authService) publishUserCreated(ctx context.Context, user models.User) {
	log := logger.FromContext(ctx)

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := models.UserCreatedEvent{UserID: user.UserID, Username: user.Username}
	if err := a.publisher.Publish(publishCtx, a.userCreatedQueue, event); err != nil {
		log.Err(err).
			Str("func", "authService.publishUserCreated").
			Int64("user_id", user.UserID).
			Str("queue", a.userCreatedQueue).
			Msg("failed to publish user_created event, game state will be created on first visit")
		return
	}

	log.Debug().Int64("user_id", user.UserID).Str("queue", a.userCreatedQueue).Msg("user_created event published")
}

// Login authenticates an existing user.
//
// An unknown username and a wrong password both yield ErrInvalidCredentials,
// so callers cannot probe which usernames exist.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("func", "authService.Login").Logger()

	if credentials.Username == "" || credentials.Password == "" {
		log.Error().Str("username", credentials.Username).Msg("invalid user data provided")
		metrics.LoginsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, credentials.Username)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		log.Warn().Str("username", credentials.Username).Msg("login attempt for unknown user")
		metrics.LoginsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	case err != nil:
		log.Err(err).Str("username", credentials.Username).Msg("user search by username failed")
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if err = utils.CheckPassword(foundUser.PasswordHash, credentials.Password); err != nil {
		log.Warn().Err(err).Int64("user_id", foundUser.UserID).Msg("wrong password")
		metrics.LoginsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	metrics.LoginsTotal.WithLabelValues(metrics.ResultOK).Inc()
	return foundUser, nil
}
