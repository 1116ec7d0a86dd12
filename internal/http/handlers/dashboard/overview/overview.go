// Package overview реализует HTTP-обработчик сводки дашборда.
//
// Сводка собирает в один ответ суммарные расходы, распределение по категориям,
// ближайшие платежи и крайние по стоимости подписки пользователя.
package overview

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/naimbob95/ImbaSubVault/internal/http/middlewarectx"
	"github.com/naimbob95/ImbaSubVault/internal/http/response"
	"github.com/naimbob95/ImbaSubVault/internal/lib/sl"
	"github.com/naimbob95/ImbaSubVault/internal/models"
)

// Handler обрабатывает HTTP-запросы на получение сводки дашборда.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сводки.
type Service interface {
	Overview(ctx context.Context, userUID string) (*models.DashboardOverview, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сводка дашборда
// @Description Возвращает агрегированную сводку по подпискам текущего пользователя.
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} models.DashboardOverview "Сводка"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /dashboard/overview [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.overview"
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

	overview, err := h.service.Overview(r.Context(), userUID)
	if err != nil {
		log.Error("failed to build dashboard overview", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to build dashboard overview"))
		return
	}

	log.Info("success to build dashboard overview", slog.String("user_uid", userUID))
	render.JSON(w, r, overview)
}
