// Package analytics реализует HTTP-обработчик снимка счётчиков лидов.
// Снимок рассчитывается заново на каждый запрос, без кеширования.
package analytics

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/grettaai/marketing-backend/internal/http/response"
	"github.com/grettaai/marketing-backend/internal/lib/sl"
	"github.com/grettaai/marketing-backend/internal/models"
)

// Handler управляет HTTP-запросами на аналитику.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс получения снимка счётчиков.
type Service interface {
	Analytics(ctx context.Context) (*models.Analytics, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить счётчики лидов
// @Description Возвращает текущее количество записей в каждой из четырёх коллекций.
// @Tags Analytics
// @Produce  json
// @Success 200 {object} models.Analytics "Снимок счётчиков"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /analytics [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	snapshot, err := h.service.Analytics(r.Context())
	if err != nil {
		log.Error("failed to get analytics", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get analytics"))
		return
	}

	render.JSON(w, r, snapshot)
}
