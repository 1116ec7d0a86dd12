// Package seed реализует HTTP-обработчик посева стандартного набора категорий.
//
// Операция идемпотентна: уже существующие категории пропускаются.
package seed

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/naimbob95/ImbaSubVault/internal/http/response"
	"github.com/naimbob95/ImbaSubVault/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы на посев категорий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики посева категорий.
type Service interface {
	Seed(ctx context.Context) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Посеять стандартные категории
// @Description Создает стандартный набор категорий, пропуская уже существующие.
// @Tags Categories
// @Produce  json
// @Success 200 {object} response.Message "Категории посеяны"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /categories/seed [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.category.seed"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.service.Seed(r.Context()); err != nil {
		log.Error("failed to seed categories", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to seed categories"))
		return
	}

	log.Info("categories seeded")
	render.JSON(w, r, response.OK("Categories seeded successfully"))
}
