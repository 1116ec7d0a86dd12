// Package user содержит бизнес-логику работы с профилем пользователя.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/naimbob95/ImbaSubVault/internal/lib/password"
	"github.com/naimbob95/ImbaSubVault/internal/models"
)

// ErrWrongPassword — текущий пароль не совпал при смене пароля.
var ErrWrongPassword = errors.New("current password is incorrect")

// UserRepository описывает методы хранилища, нужные профильным операциям.
type UserRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, userUID string, firstName, lastName *string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, userUID, passwordHash string) error
	DeleteUser(ctx context.Context, userUID string) error
}

// UserService реализует операции над профилем: чтение, обновление,
// смену пароля и удаление аккаунта.
type UserService struct {
	users UserRepository
	log   *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users UserRepository, log *slog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

// GetProfile возвращает профиль пользователя без секретных полей.
func (s *UserService) GetProfile(ctx context.Context, userUID string) (*models.UserProfile, error) {
	u, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	profile := u.Profile()
	return &profile, nil
}

// UpdateProfile обновляет имя и фамилию. Email не изменяется.
func (s *UserService) UpdateProfile(ctx context.Context, userUID string, input models.UpdateProfileInput) (*models.UserProfile, error) {
	u, err := s.users.UpdateUserProfile(ctx, userUID, input.FirstName, input.LastName)
	if err != nil {
		return nil, err
	}
	profile := u.Profile()
	return &profile, nil
}

// ChangePassword меняет пароль после проверки текущего.
func (s *UserService) ChangePassword(ctx context.Context, userUID, currentPassword, newPassword string) error {
	const op = "services.user.ChangePassword"

	u, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return err
	}
	if err := password.CompareHash(u.PasswordHash, currentPassword); err != nil {
		return ErrWrongPassword
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdateUserPassword(ctx, userUID, hashed); err != nil {
		return err
	}
	s.log.Info("password changed", slog.String("uid", userUID))
	return nil
}

// DeleteAccount жёстко удаляет пользователя и его подписки.
func (s *UserService) DeleteAccount(ctx context.Context, userUID string) error {
	if err := s.users.DeleteUser(ctx, userUID); err != nil {
		return err
	}
	s.log.Info("account deleted", slog.String("uid", userUID))
	return nil
}
