// Package contact реализует HTTP-обработчик отправки контактной формы.
//
// Handler принимает JSON-запрос, валидирует его, вызывает workflow приёма
// лида и возвращает результат с флагом синхронизации CRM. Ошибки хранилища
// не раскрываются клиенту — возвращается общее сообщение.
package contact

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

// Handler управляет HTTP-запросами на отправку контактной формы.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики приёма контактной формы.
type Service interface {
	SubmitContact(ctx context.Context, req models.ContactCreate) (*models.SubmitResult, error)
}

// Response — JSON-ответ на успешную отправку контактной формы.
type Response struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	HubspotSynced bool   `json:"hubspot_synced"`
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
// @Summary Отправить контактную форму
// @Description Сохраняет сообщение контактной формы и синхронизирует отправителя с CRM.
// @Tags Leads
// @Accept  json
// @Produce  json
// @Param request body models.ContactCreate true "Данные контактной формы"
// @Success 200 {object} Response "Сообщение принято"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contact [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lead.contact"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ContactCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	result, err := h.service.SubmitContact(r.Context(), req)
	if err != nil {
		log.Error("failed to submit contact request", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to submit contact request"))
		return
	}

	log.Info("contact request submitted", slog.Bool("hubspot_synced", result.HubspotSynced))
	render.JSON(w, r, Response{
		Success:       true,
		Message:       result.Message,
		HubspotSynced: result.HubspotSynced,
	})
}
