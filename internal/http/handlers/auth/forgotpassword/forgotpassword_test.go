package forgotpassword

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockService реализует интерфейс forgotpassword.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

const genericMessage = "If an account with that email exists, we have sent a password reset link."

// TestForgotPasswordHandler проверяет, что ответ одинаков для существующего
// и несуществующего email и даже при внутренней ошибке.
func TestForgotPasswordHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	tests := []struct {
		name      string
		setupMock func(*MockService)
	}{
		{
			name: "существующий email",
			setupMock: func(m *MockService) {
				m.On("ForgotPassword", mock.Anything, "user@example.com").Return(nil)
			},
		},
		{
			name: "внутренняя ошибка не меняет ответ",
			setupMock: func(m *MockService) {
				m.On("ForgotPassword", mock.Anything, "user@example.com").Return(assert.AnError)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/auth/forgot-password",
				strings.NewReader(`{"email":"user@example.com"}`))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), genericMessage)
			mockService.AssertExpectations(t)
		})
	}
}

// TestForgotPasswordHandler_Validation проверяет валидацию email
func TestForgotPasswordHandler_Validation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	handler := New(logger, new(MockService))

	req := httptest.NewRequest(http.MethodPost, "/auth/forgot-password",
		strings.NewReader(`{"email":"not-an-email"}`))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "field Email must be a valid email")
}
