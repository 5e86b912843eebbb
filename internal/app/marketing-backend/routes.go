package marketingbackend

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/grettaai/marketing-backend/internal/http/handlers/analytics"
	"github.com/grettaai/marketing-backend/internal/http/handlers/health"
	"github.com/grettaai/marketing-backend/internal/http/handlers/lead/contact"
	"github.com/grettaai/marketing-backend/internal/http/handlers/lead/demorequest"
	"github.com/grettaai/marketing-backend/internal/http/handlers/lead/newsletter"
	"github.com/grettaai/marketing-backend/internal/http/handlers/lead/trialsignup"
	"github.com/grettaai/marketing-backend/internal/http/handlers/webcall"
	"github.com/grettaai/marketing-backend/internal/http/handlers/webhook/bookings"
	"github.com/grettaai/marketing-backend/internal/http/middlewarectx"
	"github.com/grettaai/marketing-backend/internal/retell"
	leadservice "github.com/grettaai/marketing-backend/internal/services/lead"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, leadService *leadservice.LeadService, retellClient *retell.Client) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	// Формы отправляются напрямую с маркетингового сайта
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/", health.New(logger).ServeHTTP)
		r.Get("/analytics", analytics.New(logger, leadService).ServeHTTP)
		r.Get("/webhook/bookings", bookings.New(logger, leadService).ServeHTTP)

		// Лид-формы под rate limit
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, 5, 10))
			r.Post("/contact", contact.New(logger, leadService).ServeHTTP)
			r.Post("/newsletter", newsletter.New(logger, leadService).ServeHTTP)
			r.Post("/demo-request", demorequest.New(logger, leadService).ServeHTTP)
			r.Post("/trial-signup", trialsignup.New(logger, leadService).ServeHTTP)
			r.Post("/retell/web-call", webcall.New(logger, retellClient).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
