// Package trialsignup реализует HTTP-обработчик заявки на пробный период.
// Повторная заявка с тем же email не создаёт вторую запись. Для новой заявки
// контакт синхронизируется с CRM и создаётся сделка.
package trialsignup

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

// Handler управляет HTTP-запросами на пробный период.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики приёма заявки.
type Service interface {
	SubmitTrialSignup(ctx context.Context, req models.TrialSignupCreate) (*models.SubmitResult, error)
}

// Response — JSON-ответ на заявку на пробный период.
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
// @Summary Оформить пробный период
// @Description Сохраняет заявку, синхронизирует контакт с CRM и создаёт сделку. Повторная заявка — no-op.
// @Tags Leads
// @Accept  json
// @Produce  json
// @Param request body models.TrialSignupCreate true "Данные заявки"
// @Success 200 {object} Response "Заявка принята или уже существует"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /trial-signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lead.trialsignup"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.TrialSignupCreate
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

	result, err := h.service.SubmitTrialSignup(r.Context(), req)
	if err != nil {
		log.Error("failed to sign up for trial", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to sign up for trial"))
		return
	}

	log.Info("trial signup processed", slog.Bool("hubspot_synced", result.HubspotSynced))
	render.JSON(w, r, Response{
		Success:       true,
		Message:       result.Message,
		HubspotSynced: result.HubspotSynced,
	})
}
