// Package models содержит доменные структуры приложения: пользователей,
// категории расходов и подписки, а также DTO для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID                 string     // Уникальный идентификатор пользователя (uuid)
	Email               string     // Электронная почта (уникальная)
	PasswordHash        string     // Bcrypt-хэш пароля
	FirstName           *string    // Имя (опционально)
	LastName            *string    // Фамилия (опционально)
	ResetPasswordToken  *string    // Токен сброса пароля, nil если не запрошен
	ResetPasswordExpire *time.Time // Срок действия токена сброса, устанавливается вместе с токеном
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// UserProfile — представление пользователя для ответов API, без секретов.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName *string   `json:"firstName,omitempty"`
	LastName  *string   `json:"lastName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Profile конвертирует User в UserProfile.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:        u.UID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UpdateProfileInput используется для приёма данных обновления профиля.
// Email намеренно отсутствует: смена почты не поддерживается.
type UpdateProfileInput struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
}
