// Package marketingbackend собирает приложение маркетингового бэкенда:
// хранилище, клиенты внешних сервисов, workflow приёма лидов и HTTP-сервер.
// Все зависимости создаются один раз при старте и передаются явно.
package marketingbackend

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/grettaai/marketing-backend/internal/calcom"
	"github.com/grettaai/marketing-backend/internal/config"
	"github.com/grettaai/marketing-backend/internal/hubspot"
	"github.com/grettaai/marketing-backend/internal/migrations"
	"github.com/grettaai/marketing-backend/internal/retell"
	leadservice "github.com/grettaai/marketing-backend/internal/services/lead"
	"github.com/grettaai/marketing-backend/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	hubspotClient := hubspot.NewClient(cfg.Hubspot.AccessToken, logger)
	calcomClient := calcom.NewClient(cfg.Calcom.APIKey, logger)
	retellClient := retell.NewClient(cfg.Retell.APIKey, cfg.Retell.AgentID)

	leadService := leadservice.New(db, hubspotClient, calcomClient,
		leadservice.CalendarOptions{
			EventTypeSlug: cfg.Calcom.EventTypeSlug,
			Username:      cfg.Calcom.Username,
		}, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, leadService, retellClient)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
