// Package activecount реализует HTTP-обработчик подсчета активных подписок пользователя.
package activecount

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/naimbob95/ImbaSubVault/internal/http/middlewarectx"
	"github.com/naimbob95/ImbaSubVault/internal/http/response"
	"github.com/naimbob95/ImbaSubVault/internal/lib/sl"
)

// Response — ответ с числом активных подписок.
type Response struct {
	TotalActiveSubscriptions int `json:"totalActiveSubscriptions"`
}

// Handler обрабатывает HTTP-запросы на подсчет активных подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подсчета активных подписок.
type Service interface {
	ActiveCount(ctx context.Context, userUID string) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Число активных подписок
// @Description Возвращает количество активных подписок текущего пользователя.
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} Response "Число активных подписок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /dashboard/active-count [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.activecount"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	count, err := h.service.ActiveCount(r.Context(), userUID)
	if err != nil {
		log.Error("failed to count active subscriptions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to count active subscriptions"))
		return
	}

	log.Info("success to count active subscriptions", slog.Int("count", count))
	render.JSON(w, r, Response{TotalActiveSubscriptions: count})
}
