// Package demorequest реализует HTTP-обработчик запроса демонстрации.
// Помимо сохранения запись синхронизируется с CRM и для неё бронируется
// ближайший свободный слот календаря; оба шага best-effort и отражаются
// в ответе булевыми флагами.
package demorequest

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

// Handler управляет HTTP-запросами на демонстрацию продукта.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики приёма демо-запроса.
type Service interface {
	SubmitDemoRequest(ctx context.Context, req models.DemoRequestCreate) (*models.SubmitResult, error)
}

// Response — JSON-ответ на успешный демо-запрос с эхом сохранённых полей
// для внешних webhook-потребителей.
type Response struct {
	Success           bool                    `json:"success"`
	Message           string                  `json:"message"`
	HubspotSynced     bool                    `json:"hubspot_synced"`
	CalBookingCreated bool                    `json:"cal_booking_created"`
	Data              *models.DemoRequestData `json:"data"`
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
// @Summary Запросить демонстрацию
// @Description Сохраняет демо-запрос, синхронизирует контакт с CRM и бронирует слот в календаре.
// @Tags Leads
// @Accept  json
// @Produce  json
// @Param request body models.DemoRequestCreate true "Данные демо-запроса"
// @Success 200 {object} Response "Запрос принят"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /demo-request [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lead.demorequest"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DemoRequestCreate
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

	result, err := h.service.SubmitDemoRequest(r.Context(), req)
	if err != nil {
		log.Error("failed to submit demo request", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to submit demo request"))
		return
	}

	log.Info("demo request submitted",
		slog.Bool("hubspot_synced", result.HubspotSynced),
		slog.Bool("cal_booking_created", result.CalBookingCreated))
	render.JSON(w, r, Response{
		Success:           true,
		Message:           result.Message,
		HubspotSynced:     result.HubspotSynced,
		CalBookingCreated: result.CalBookingCreated,
		Data:              result.Data,
	})
}
