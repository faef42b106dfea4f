package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/internal/mock"
	"github.com/MKhiriev/go-realm/internal/store"
	"github.com/MKhiriev/go-realm/internal/utils"
	"github.com/MKhiriev/go-realm/models"
)

// newTestAuthSvc creates an authService backed by mocks with a fixed clock.
func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockUserRepository, *mock.MockPublisher) {
	t.Helper()
	repo := mock.NewMockUserRepository(ctrl)
	publisher := mock.NewMockPublisher(ctrl)

	svc := NewAuthService(repo, publisher, models.UserCreatedQueue, logger.Nop()).(*authService)
	svc.now = func() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC) }

	return svc, repo, publisher
}

// ── RegisterUser ──────────────────────────────────────────────────────────────

func TestAuthService_RegisterUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, publisher := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, "alice", u.Username)
				assert.NotEqual(t, "pw", u.PasswordHash, "password must be stored hashed")
				assert.NoError(t, utils.CheckPassword(u.PasswordHash, "pw"))
				assert.Equal(t, time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), u.CreatedAt)
				u.UserID = 1
				return u, nil
			},
		),
		publisher.EXPECT().
			Publish(gomock.Any(), models.UserCreatedQueue, models.UserCreatedEvent{UserID: 1, Username: "alice"}).
			Return(nil),
	)

	user, err := svc.RegisterUser(ctx, models.Credentials{Username: "alice", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.UserID)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthService_RegisterUser_PublishFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, publisher := newTestAuthSvc(t, ctrl)

	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{UserID: 2, Username: "bob"}, nil)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	user, err := svc.RegisterUser(context.Background(), models.Credentials{Username: "bob", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, int64(2), user.UserID)
}

func TestAuthService_RegisterUser_PublishOutlivesCancelledRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, publisher := newTestAuthSvc(t, ctrl)

	ctx, cancel := context.WithCancel(context.Background())

	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			cancel()
			u.UserID = 3
			return u, nil
		},
	)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ any) error {
			assert.NoError(t, ctx.Err())
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return nil
		},
	)

	_, err := svc.RegisterUser(ctx, models.Credentials{Username: "carol", Password: "pw"})
	require.NoError(t, err)
}

func TestAuthService_RegisterUser_UsernameTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestAuthSvc(t, ctrl)

	// no Publish expectation: a failed registration must not emit an event
	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUsernameTaken)

	_, err := svc.RegisterUser(context.Background(), models.Credentials{Username: "alice", Password: "pw"})

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_RegisterUser_EmptyFields(t *testing.T) {
	tests := []models.Credentials{
		{Username: "", Password: "pw"},
		{Username: "alice", Password: ""},
		{},
	}

	for _, credentials := range tests {
		ctrl := gomock.NewController(t)
		svc, _, _ := newTestAuthSvc(t, ctrl)

		_, err := svc.RegisterUser(context.Background(), credentials)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	}
}

// ── Login ─────────────────────────────────────────────────────────────────────

func TestAuthService_Login(t *testing.T) {
	hash, err := utils.HashPassword("pw")
	require.NoError(t, err)
	stored := models.User{UserID: 1, Username: "alice", PasswordHash: hash}

	tests := []struct {
		name        string
		credentials models.Credentials
		repoUser    models.User
		repoErr     error
		wantErr     error
	}{
		{name: "success", credentials: models.Credentials{Username: "alice", Password: "pw"}, repoUser: stored},
		{name: "wrong password", credentials: models.Credentials{Username: "alice", Password: "nope"}, repoUser: stored, wantErr: ErrInvalidCredentials},
		{name: "unknown user", credentials: models.Credentials{Username: "zed", Password: "pw"}, repoErr: store.ErrUserNotFound, wantErr: ErrInvalidCredentials},
		{name: "storage failure", credentials: models.Credentials{Username: "alice", Password: "pw"}, repoErr: store.ErrExecutingQuery, wantErr: store.ErrExecutingQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, repo, _ := newTestAuthSvc(t, ctrl)

			repo.EXPECT().FindUserByUsername(gomock.Any(), tt.credentials.Username).Return(tt.repoUser, tt.repoErr)

			user, err := svc.Login(context.Background(), tt.credentials)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, stored, user)
		})
	}
}

func TestAuthService_Login_StorageFailureIsNotInvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestAuthSvc(t, ctrl)

	repo.EXPECT().FindUserByUsername(gomock.Any(), "alice").Return(models.User{}, errors.New("db gone"))

	_, err := svc.Login(context.Background(), models.Credentials{Username: "alice", Password: "pw"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// ── AuthValidationService ─────────────────────────────────────────────────────

func TestAuthValidationService_RejectsBeforeDelegating(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mock.NewMockAuthService(ctrl)
	svc := NewAuthValidationService().Wrap(inner)

	_, err := svc.RegisterUser(context.Background(), models.Credentials{Username: "bad name", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Login(context.Background(), models.Credentials{Username: "alice"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthValidationService_Delegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mock.NewMockAuthService(ctrl)
	svc := NewAuthValidationService().Wrap(inner)
	credentials := models.Credentials{Username: "alice", Password: "pw"}

	inner.EXPECT().RegisterUser(gomock.Any(), credentials).Return(models.User{UserID: 1}, nil)
	inner.EXPECT().Login(gomock.Any(), credentials).Return(models.User{UserID: 1}, nil)

	_, err := svc.RegisterUser(context.Background(), credentials)
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), credentials)
	require.NoError(t, err)
}
