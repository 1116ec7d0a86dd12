// Package mailer отправляет письма по SMTP через gomail.
// Транспорт создаётся один раз при старте процесса и переиспользуется.
package mailer

import (
	"gopkg.in/gomail.v2"

	"github.com/naimbob95/ImbaSubVault/internal/config"
)

// Mailer хранит настройки SMTP и адрес отправителя.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New создает Mailer из конфигурации почты.
func New(cfg config.Email) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.EmailFrom,
	}
}

// Send отправляет письмо с plain-text телом.
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
