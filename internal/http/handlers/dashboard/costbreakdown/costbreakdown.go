// Package costbreakdown реализует HTTP-обработчик месячных расходов по категориям.
package costbreakdown

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

// Handler обрабатывает HTTP-запросы на расчет расходов по категориям.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расходов по категориям.
type Service interface {
	CostBreakdown(ctx context.Context, userUID string) (map[string]float64, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Расходы по категориям
// @Description Возвращает месячную стоимость активных подписок для каждой категории.
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} map[string]float64 "Месячные расходы по категориям"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /dashboard/cost-breakdown [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.costbreakdown"
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

	breakdown, err := h.service.CostBreakdown(r.Context(), userUID)
	if err != nil {
		log.Error("failed to calculate cost breakdown", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to calculate cost breakdown"))
		return
	}
	if breakdown == nil {
		breakdown = map[string]float64{}
	}

	log.Info("success to calculate cost breakdown", slog.Int("categories", len(breakdown)))
	render.JSON(w, r, breakdown)
}
