// Package sender реализует обработку почтовых уведомлений из очереди.
//
// Сообщения публикуются API-сервисом (welcome, password reset) и доставляются
// пользователю по SMTP. Отправка best-effort: неудача логируется и не влияет
// на породивший её запрос.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/naimbob95/ImbaSubVault/internal/lib/sl"
	"github.com/naimbob95/ImbaSubVault/internal/models"
)

// Mailer отправляет письмо получателю.
type Mailer interface {
	Send(to, subject, body string) error
}

// SenderService превращает сообщения очереди в письма.
type SenderService struct {
	mailer      Mailer
	frontendURL string
	log         *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
// frontendURL используется для сборки ссылок в письмах.
func NewSenderService(mailer Mailer, frontendURL string, log *slog.Logger) *SenderService {
	return &SenderService{
		mailer:      mailer,
		frontendURL: frontendURL,
		log:         log,
	}
}

// HandleMessage обрабатывает одно сообщение очереди уведомлений.
// Нечитаемое или неизвестное сообщение подтверждается без повтора,
// ошибка SMTP возвращается наружу для requeue.
func (s *SenderService) HandleMessage(body []byte) error {
	var msg models.EmailNotification
	if err := json.Unmarshal(body, &msg); err != nil {
		s.log.Error("failed to unmarshal notification", sl.Err(err))
		return nil
	}

	var subject, text string
	switch msg.Type {
	case models.NotificationWelcome:
		subject = "Welcome to ImbaSubVault!"
		text = s.welcomeBody(msg.FirstName)
	case models.NotificationPasswordReset:
		subject = "Password Reset Request - ImbaSubVault"
		text = s.passwordResetBody(msg.ResetToken)
	default:
		s.log.Error("unknown notification type", slog.String("type", msg.Type))
		return nil
	}

	if err := s.mailer.Send(msg.Email, subject, text); err != nil {
		s.log.Error("failed to send email", slog.String("to", msg.Email), sl.Err(err))
		return err
	}
	s.log.Info("email sent", slog.String("to", msg.Email), slog.String("type", msg.Type))
	return nil
}

func (s *SenderService) welcomeBody(firstName string) string {
	if firstName == "" {
		firstName = "User"
	}
	return fmt.Sprintf("Welcome to ImbaSubVault, %s! We're excited to have you on board. "+
		"Start managing your subscriptions today: %s/dashboard", firstName, s.frontendURL)
}

func (s *SenderService) passwordResetBody(resetToken string) string {
	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s", s.frontendURL, resetToken)
	return fmt.Sprintf("You have requested a password reset. "+
		"Please visit the following link to reset your password: %s. "+
		"This link will expire in 1 hour. "+
		"If you did not request this, please ignore this email.", resetURL)
}
