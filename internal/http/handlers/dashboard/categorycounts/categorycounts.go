// Package categorycounts реализует HTTP-обработчик распределения подписок по категориям.
package categorycounts

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

// Handler обрабатывает HTTP-запросы на подсчет подписок по категориям.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подсчета по категориям.
type Service interface {
	CountByCategory(ctx context.Context, userUID string) (map[string]int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подписки по категориям
// @Description Возвращает число активных подписок для каждой категории.
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} map[string]int "Число подписок по категориям"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /dashboard/category-counts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.categorycounts"
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

	counts, err := h.service.CountByCategory(r.Context(), userUID)
	if err != nil {
		log.Error("failed to count subscriptions by category", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to count subscriptions by category"))
		return
	}
	if counts == nil {
		counts = map[string]int{}
	}

	log.Info("success to count subscriptions by category", slog.Int("categories", len(counts)))
	render.JSON(w, r, counts)
}
