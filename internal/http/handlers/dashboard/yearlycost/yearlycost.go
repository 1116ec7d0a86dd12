// Package yearlycost реализует HTTP-обработчик суммарной годовой стоимости подписок.
package yearlycost

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

// Response — ответ с суммарной годовой стоимостью.
type Response struct {
	TotalYearlyCost float64 `json:"totalYearlyCost"`
}

// Handler обрабатывает HTTP-запросы на расчет годовой стоимости.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расчета годовой стоимости.
type Service interface {
	TotalYearlyCost(ctx context.Context, userUID string) (float64, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Годовая стоимость
// @Description Возвращает суммарную годовую стоимость активных подписок.
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} Response "Годовая стоимость"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /dashboard/yearly-cost [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.yearlycost"
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

	total, err := h.service.TotalYearlyCost(r.Context(), userUID)
	if err != nil {
		log.Error("failed to calculate yearly cost", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to calculate yearly cost"))
		return
	}

	log.Info("success to calculate yearly cost", slog.Float64("total", total))
	render.JSON(w, r, Response{TotalYearlyCost: total})
}
