// Package list реализует HTTP-обработчик получения списка подписок пользователя.
//
// Необязательный query-параметр category сужает выборку до одной категории.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/naimbob95/ImbaSubVault/internal/http/middlewarectx"
	"github.com/naimbob95/ImbaSubVault/internal/http/response"
	"github.com/naimbob95/ImbaSubVault/internal/lib/sl"
	"github.com/naimbob95/ImbaSubVault/internal/models"
)

// Handler обрабатывает HTTP-запросы на получение списка подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка подписок.
type Service interface {
	ListByUser(ctx context.Context, userUID string) ([]*models.Subscription, error)
	ListByCategory(ctx context.Context, userUID, categoryID string) ([]*models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список подписок
// @Description Возвращает подписки текущего пользователя, при необходимости отфильтрованные по категории.
// @Tags Subscriptions
// @Produce  json
// @Param category query string false "ID категории для фильтрации"
// @Success 200 {array} models.Subscription "Список подписок"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID категории"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /subscriptions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"
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

	var (
		subs []*models.Subscription
		err  error
	)
	if categoryID := r.URL.Query().Get("category"); categoryID != "" {
		if _, parseErr := uuid.Parse(categoryID); parseErr != nil {
			log.Error("failed to decode category id from query", sl.Err(parseErr))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid category id"))
			return
		}
		subs, err = h.service.ListByCategory(r.Context(), userUID, categoryID)
	} else {
		subs, err = h.service.ListByUser(r.Context(), userUID)
	}
	if err != nil {
		log.Error("failed to list subscriptions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list subscriptions"))
		return
	}
	if subs == nil {
		subs = []*models.Subscription{}
	}

	log.Info("success to list subscriptions", slog.Int("count", len(subs)))
	render.JSON(w, r, subs)
}
