package models

// Типы исходящих почтовых уведомлений.
const (
	NotificationWelcome       = "welcome"
	NotificationPasswordReset = "password_reset"
)

// EmailNotification — сообщение для очереди уведомлений.
// Публикуется API-сервисом, потребляется notification-sender.
type EmailNotification struct {
	Type       string `json:"type"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name,omitempty"`
	ResetToken string `json:"reset_token,omitempty"`
}
