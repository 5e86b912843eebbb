// Package bookings реализует webhook-эндпоинт для внешних интеграций
// (HubSpot, Zapier): отдаёт последние демо-запросы, новые первыми.
package bookings

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

// Handler управляет HTTP-запросами webhook-интеграций.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс выборки последних демо-запросов.
type Service interface {
	RecentBookings(ctx context.Context) ([]models.BookingSummary, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить последние демо-запросы
// @Description Возвращает до 100 последних демо-запросов в формате для webhook-потребителей.
// @Tags Webhooks
// @Produce  json
// @Success 200 {array} models.BookingSummary "Список демо-запросов, новые первыми"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /webhook/bookings [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.webhook.bookings"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	summaries, err := h.service.RecentBookings(r.Context())
	if err != nil {
		log.Error("failed to fetch bookings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch bookings"))
		return
	}

	log.Info("bookings fetched", slog.Int("count", len(summaries)))
	render.JSON(w, r, summaries)
}
