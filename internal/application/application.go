package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/psds-microservice/support-ticket-api/internal/config"
	"github.com/psds-microservice/support-ticket-api/internal/database"
	"github.com/psds-microservice/support-ticket-api/internal/handler"
	"github.com/psds-microservice/support-ticket-api/internal/kafka"
	"github.com/psds-microservice/support-ticket-api/internal/logger"
	"github.com/psds-microservice/support-ticket-api/internal/router"
	"github.com/psds-microservice/support-ticket-api/internal/service"
)

// API приложение: HTTP-сервер (режим api).
type API struct {
	cfg      *config.Config
	log      *slog.Logger
	httpSrv  *http.Server
	producer *kafka.Producer
}

// NewAPI создаёт приложение: валидирует конфиг, применяет миграции,
// открывает базу и собирает сервисы, хендлеры и роутер.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log := logger.New(cfg.LogLevel)

	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	producer := kafka.NewProducer(kafka.ParseBrokers(cfg.KafkaBrokers), cfg.KafkaTopic, log)

	ticketSvc := service.NewTicketService(db)
	commentSvc := service.NewCommentService(db)
	ticketHandler := handler.NewTicketHandler(ticketSvc, producer, log)
	commentHandler := handler.NewCommentHandler(commentSvc, producer, log)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(ticketHandler, commentHandler),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{
		cfg:      cfg,
		log:      log,
		httpSrv:  httpSrv,
		producer: producer,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены ctx.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	a.log.Info("HTTP server listening", "addr", a.httpSrv.Addr)
	a.log.Info("endpoints",
		"swagger", base+"/swagger",
		"health", base+"/health",
		"ready", base+"/ready",
		"api", base+"/api/tickets")

	errCh := make(chan error, 1)
	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := a.producer.Close(); err != nil {
		a.log.Error("kafka: close producer", "error", err)
	}
	return nil
}
