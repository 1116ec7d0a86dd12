package user

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naimbob95/ImbaSubVault/internal/lib/password"
	"github.com/naimbob95/ImbaSubVault/internal/models"
	"github.com/naimbob95/ImbaSubVault/internal/storage/repository"
)

// MockUserRepository - мок для UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUserProfile(ctx context.Context, userUID string, firstName, lastName *string) (*models.User, error) {
	args := m.Called(ctx, userUID, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUserPassword(ctx context.Context, userUID, passwordHash string) error {
	args := m.Called(ctx, userUID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

var _ UserRepository = (*MockUserRepository)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestGetProfile проверяет, что профиль не содержит секретных полей
func TestGetProfile(t *testing.T) {
	repo := new(MockUserRepository)
	first := "Alice"
	repo.On("GetUser", mock.Anything, "uid-1").Return(&models.User{
		UID:          "uid-1",
		Email:        "user@example.com",
		PasswordHash: "$2a$10$hash",
		FirstName:    &first,
	}, nil).Once()

	svc := NewUserService(repo, testLogger())
	profile, err := svc.GetProfile(context.Background(), "uid-1")
	require.NoError(t, err)

	assert.Equal(t, "uid-1", profile.ID)
	assert.Equal(t, "user@example.com", profile.Email)
	assert.Equal(t, "Alice", *profile.FirstName)
}

// TestGetProfile_NotFound проверяет проброс ошибки хранилища
func TestGetProfile_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetUser", mock.Anything, "ghost").Return(nil, repository.ErrUserNotFound).Once()

	svc := NewUserService(repo, testLogger())
	profile, err := svc.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.Nil(t, profile)
}

// TestChangePassword тестирует смену пароля
func TestChangePassword(t *testing.T) {
	hash, err := password.GetHash("oldsecret")
	require.NoError(t, err)

	t.Run("successful change", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUser", mock.Anything, "uid-1").
			Return(&models.User{UID: "uid-1", PasswordHash: hash}, nil).Once()
		repo.On("UpdateUserPassword", mock.Anything, "uid-1", mock.MatchedBy(func(newHash string) bool {
			return password.CompareHash(newHash, "newsecret") == nil
		})).Return(nil).Once()

		svc := NewUserService(repo, testLogger())
		require.NoError(t, svc.ChangePassword(context.Background(), "uid-1", "oldsecret", "newsecret"))
		repo.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUser", mock.Anything, "uid-1").
			Return(&models.User{UID: "uid-1", PasswordHash: hash}, nil).Once()

		svc := NewUserService(repo, testLogger())
		err := svc.ChangePassword(context.Background(), "uid-1", "wrong", "newsecret")
		assert.ErrorIs(t, err, ErrWrongPassword)
		repo.AssertNotCalled(t, "UpdateUserPassword", mock.Anything, mock.Anything, mock.Anything)
	})
}

// TestUpdateProfile проверяет частичное обновление имени
func TestUpdateProfile(t *testing.T) {
	repo := new(MockUserRepository)
	first := "Bob"
	repo.On("UpdateUserProfile", mock.Anything, "uid-1", &first, (*string)(nil)).
		Return(&models.User{UID: "uid-1", Email: "user@example.com", FirstName: &first}, nil).Once()

	svc := NewUserService(repo, testLogger())
	profile, err := svc.UpdateProfile(context.Background(), "uid-1", models.UpdateProfileInput{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Bob", *profile.FirstName)
	repo.AssertExpectations(t)
}

// TestDeleteAccount тестирует удаление аккаунта
func TestDeleteAccount(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("DeleteUser", mock.Anything, "uid-1").Return(nil).Once()

	svc := NewUserService(repo, testLogger())
	require.NoError(t, svc.DeleteAccount(context.Background(), "uid-1"))
	repo.AssertExpectations(t)
}
