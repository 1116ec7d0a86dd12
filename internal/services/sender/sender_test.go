package sender

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naimbob95/ImbaSubVault/internal/models"
)

// MockMailer - мок для Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

var _ Mailer = (*MockMailer)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func marshal(t *testing.T, msg models.EmailNotification) []byte {
	t.Helper()
	body, err := json.Marshal(msg)
	require.NoError(t, err)
	return body
}

// TestHandleMessage_Welcome тестирует отправку приветственного письма
func TestHandleMessage_Welcome(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", "user@example.com", "Welcome to ImbaSubVault!", mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "Alice") && strings.Contains(body, "http://localhost:3000/dashboard")
	})).Return(nil).Once()

	svc := NewSenderService(mailer, "http://localhost:3000", testLogger())
	err := svc.HandleMessage(marshal(t, models.EmailNotification{
		Type:      models.NotificationWelcome,
		Email:     "user@example.com",
		FirstName: "Alice",
	}))
	require.NoError(t, err)
	mailer.AssertExpectations(t)
}

// TestHandleMessage_PasswordReset проверяет ссылку сброса с токеном
func TestHandleMessage_PasswordReset(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", "user@example.com", "Password Reset Request - ImbaSubVault",
		mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "http://localhost:3000/auth/reset-password?token=abc123") &&
				strings.Contains(body, "1 hour")
		})).Return(nil).Once()

	svc := NewSenderService(mailer, "http://localhost:3000", testLogger())
	err := svc.HandleMessage(marshal(t, models.EmailNotification{
		Type:       models.NotificationPasswordReset,
		Email:      "user@example.com",
		ResetToken: "abc123",
	}))
	require.NoError(t, err)
	mailer.AssertExpectations(t)
}

// TestHandleMessage_BadPayload проверяет, что мусорное сообщение
// подтверждается без повторной доставки.
func TestHandleMessage_BadPayload(t *testing.T) {
	mailer := new(MockMailer)
	svc := NewSenderService(mailer, "http://localhost:3000", testLogger())

	assert.NoError(t, svc.HandleMessage([]byte("{not json")))
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

// TestHandleMessage_UnknownType проверяет, что неизвестный тип не requeue-ится
func TestHandleMessage_UnknownType(t *testing.T) {
	mailer := new(MockMailer)
	svc := NewSenderService(mailer, "http://localhost:3000", testLogger())

	err := svc.HandleMessage(marshal(t, models.EmailNotification{
		Type:  "sms",
		Email: "user@example.com",
	}))
	assert.NoError(t, err)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

// TestHandleMessage_SMTPFailure проверяет, что ошибка SMTP возвращается наружу
func TestHandleMessage_SMTPFailure(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	svc := NewSenderService(mailer, "http://localhost:3000", testLogger())
	err := svc.HandleMessage(marshal(t, models.EmailNotification{
		Type:  models.NotificationWelcome,
		Email: "user@example.com",
	}))
	assert.Error(t, err)
}
