// Package newsletter реализует HTTP-обработчик подписки на рассылку.
// Повторная подписка того же email не создаёт вторую запись и
// возвращает успех с сообщением о существующей подписке.
package newsletter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/grettaai/marketing-backend/internal/http/response"
	"github.com/grettaai/marketing-backend/internal/lib/sl"
	"github.com/grettaai/marketing-backend/internal/models"
)

// Handler управляет HTTP-запросами на подписку на рассылку.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики подписки.
type Service interface {
	SubscribeNewsletter(ctx context.Context, req models.NewsletterCreate) (*models.SubmitResult, error)
}

// Response — JSON-ответ на запрос подписки.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подписаться на рассылку
// @Description Добавляет email в список подписчиков. Повторная подписка — no-op с успешным ответом.
// @Tags Leads
// @Accept  json
// @Produce  json
// @Param request body models.NewsletterCreate true "Email подписчика"
// @Success 200 {object} Response "Подписка оформлена или уже существует"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /newsletter [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lead.newsletter"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.NewsletterCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	result, err := h.service.SubscribeNewsletter(r.Context(), req)
	if err != nil {
		log.Error("failed to subscribe to newsletter", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to subscribe to newsletter"))
		return
	}

	log.Info("newsletter subscription processed", slog.String("email", req.Email))
	render.JSON(w, r, Response{
		Success: true,
		Message: result.Message,
	})
}
