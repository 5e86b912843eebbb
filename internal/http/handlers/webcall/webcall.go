// Package webcall реализует HTTP-обработчик создания голосовой сессии
// Retell AI. Это единственный коннектор без деградированного режима:
// его ошибка поднимается до клиента, а не превращается в флаг.
package webcall

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/grettaai/marketing-backend/internal/http/response"
	"github.com/grettaai/marketing-backend/internal/lib/sl"
	"github.com/grettaai/marketing-backend/internal/retell"
)

// Handler управляет HTTP-запросами на создание web-звонка.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс создания голосовой сессии.
type Service interface {
	CreateWebCall(ctx context.Context) (*retell.WebCallSession, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Создать web-звонок
// @Description Создаёт голосовую сессию Retell AI и возвращает access token, call id и agent id.
// @Tags Voice
// @Produce  json
// @Success 200 {object} retell.WebCallSession "Данные голосовой сессии"
// @Failure 502 {object} response.ErrorResponse "Голосовой сервис недоступен или не настроен"
// @Router /retell/web-call [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.webcall"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	session, err := h.service.CreateWebCall(r.Context())
	if err != nil {
		log.Error("failed to create retell web call", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to create web call"))
		return
	}

	log.Info("created retell web call", slog.String("call_id", session.CallID))
	render.JSON(w, r, session)
}
