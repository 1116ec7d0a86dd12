// Package upcoming реализует HTTP-обработчик поиска подписок с ближайшими платежами.
//
// Горизонт поиска задается числом дней в пути запроса.
package upcoming

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/naimbob95/ImbaSubVault/internal/http/middlewarectx"
	"github.com/naimbob95/ImbaSubVault/internal/http/response"
	"github.com/naimbob95/ImbaSubVault/internal/lib/sl"
	"github.com/naimbob95/ImbaSubVault/internal/models"
)

// Handler обрабатывает HTTP-запросы на поиск ближайших платежей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска ближайших платежей.
type Service interface {
	FindUpcoming(ctx context.Context, userUID string, days int) ([]*models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Ближайшие платежи
// @Description Возвращает активные подписки с платежом в ближайшие N дней.
// @Tags Subscriptions
// @Produce  json
// @Param days path int true "Горизонт в днях"
// @Success 200 {array} models.Subscription "Подписки с ближайшими платежами"
// @Failure 400 {object} response.ErrorResponse "Некорректное число дней"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /subscriptions/upcoming/{days} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.upcoming"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	days, err := strconv.Atoi(chi.URLParam(r, "days"))
	if err != nil || days < 0 {
		log.Error("failed to decode days from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid number of days"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	subs, err := h.service.FindUpcoming(r.Context(), userUID, days)
	if err != nil {
		log.Error("failed to find upcoming payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to find upcoming payments"))
		return
	}
	if subs == nil {
		subs = []*models.Subscription{}
	}

	log.Info("success to find upcoming payments", slog.Int("count", len(subs)))
	render.JSON(w, r, subs)
}
