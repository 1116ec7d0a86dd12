// Package auth содержит бизнес-логику регистрации, входа и восстановления пароля.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/naimbob95/ImbaSubVault/internal/lib/jwt"
	"github.com/naimbob95/ImbaSubVault/internal/lib/password"
	"github.com/naimbob95/ImbaSubVault/internal/lib/sl"
	"github.com/naimbob95/ImbaSubVault/internal/models"
	"github.com/naimbob95/ImbaSubVault/internal/rabbitmq"
	"github.com/naimbob95/ImbaSubVault/internal/storage/repository"
)

// Время жизни токена сброса пароля.
const resetTokenTTL = time.Hour

// Ошибки бизнес-уровня аутентификации.
var (
	// ErrInvalidCredentials — единый ответ и на несуществующий email,
	// и на неверный пароль, чтобы не раскрывать, какой из них ошибочен.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidResetToken — токен сброса не найден или истёк.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SetResetToken(ctx context.Context, userUID, token string, expires time.Time) error
	ResetPasswordByToken(ctx context.Context, token, passwordHash string) error
}

// Notifier публикует почтовые уведомления в очередь. Публикация best-effort:
// ошибка логируется и никогда не откатывает операцию.
type Notifier interface {
	Publish(routingKey string, message any) error
}

// AuthService отвечает за регистрацию, вход, выпуск токенов и сброс пароля.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	notifier Notifier
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, notifier Notifier, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		notifier: notifier,
		log:      log,
	}
}

// Register создает нового пользователя и возвращает сессионный токен.
// Занятый email даёт repository.ErrUserExists. Приветственное письмо
// публикуется в очередь после успешной записи; его неудача не откатывает
// регистрацию.
func (s *AuthService) Register(ctx context.Context, email, rawPassword string, firstName, lastName *string) (string, error) {
	const op = "services.auth.Register"

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return "", repository.ErrUserExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: hashed,
		FirstName:    firstName,
		LastName:     lastName,
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("registered new user", slog.String("uid", uid))

	name := "User"
	if firstName != nil && *firstName != "" {
		name = *firstName
	}
	if err := s.notifier.Publish(rabbitmq.EmailRoutingKey, models.EmailNotification{
		Type:      models.NotificationWelcome,
		Email:     email,
		FirstName: name,
	}); err != nil {
		s.log.Warn("failed to publish welcome email", sl.Err(err))
	}

	return s.jwtMaker.GenerateToken(uid, email)
}

// Login проверяет учетные данные и возвращает сессионный токен.
// Несуществующий email и неверный пароль неразличимы для вызывающего.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.jwtMaker.GenerateToken(user.UID, user.Email)
}

// ForgotPassword запускает восстановление пароля. Возвращает nil и для
// несуществующего email: вызывающий всегда отдаёт один и тот же ответ.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	const op = "services.auth.ForgotPassword"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	expires := time.Now().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.UID, token, expires); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("issued password reset token", slog.String("uid", user.UID))

	if err := s.notifier.Publish(rabbitmq.EmailRoutingKey, models.EmailNotification{
		Type:       models.NotificationPasswordReset,
		Email:      user.Email,
		ResetToken: token,
	}); err != nil {
		s.log.Warn("failed to publish password reset email", sl.Err(err))
	}
	return nil
}

// ResetPassword меняет пароль по токену сброса. Токен и срок действия
// очищаются тем же UPDATE-ом, что и смена хэша.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	const op = "services.auth.ResetPassword"

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.ResetPasswordByToken(ctx, token, hashed); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// generateResetToken возвращает 32 случайных байта в hex-кодировке.
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
