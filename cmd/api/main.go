// @title Cultural Events API
// @version 1.0
// @description Event lifecycle and role-constrained participation for cultural events.
// @BasePath /
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"culturalevents/config"
	_ "culturalevents/docs"
	"culturalevents/internal/adapters/email"
	"culturalevents/internal/clock"
	deliveryhttp "culturalevents/internal/delivery/http"
	"culturalevents/internal/delivery/http/controllers"
	"culturalevents/internal/domain"
	"culturalevents/internal/observability"
	"culturalevents/internal/repository/sqlstore"
	"culturalevents/internal/services"
)

const (
	startupTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
	serviceVersion  = "1.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	// .env may set GO_ENV and LOG_LEVEL, so the logger is built after Load.
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	store, err := sqlstore.Open(startupCtx, cfg.DBDriver, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.AutoMigrate {
		if err := store.Migrate(startupCtx); err != nil {
			return err
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	clk := clock.NewSystemIn(loc)

	providers, err := observability.SetupProviders(startupCtx, observability.ProviderConfig{
		Exporter:       cfg.Telemetry.Exporter,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: serviceVersion,
		MetricInterval: cfg.Telemetry.MetricInterval,
	})
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			logger.Warn("telemetry shutdown failed", "err", err)
		}
	}()
	metrics := observability.NewMetricsRecorder()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mail.AWSRegion,
			AccessKeyID:     cfg.Mail.AWSAccessKeyID,
			SecretAccessKey: cfg.Mail.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		return err
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return err
	}
	emailSvc := services.NewEmailService(mailer, renderer, logger)

	eventRepo := sqlstore.NewEventRepository(store)
	personRepo := sqlstore.NewPersonRepository(store)
	participationRepo := sqlstore.NewParticipationRepository(store)

	rules := domain.EventRules{MaxDurationDays: cfg.MaxEventDurationDays}
	timeout := cfg.RequestTimeout

	eventSvc := services.NewEventService(eventRepo, participationRepo, personRepo, store, clk, rules, timeout)
	lifecycleSvc := services.NewLifecycleService(eventRepo, participationRepo, personRepo, store, emailSvc, clk, metrics, logger, timeout)
	participationSvc := services.NewParticipationService(eventRepo, personRepo, participationRepo, store, clk, metrics, timeout)
	personSvc := services.NewPersonService(personRepo, participationRepo, eventRepo, store, clk, timeout)
	schedulerSvc := services.NewSchedulerService(eventRepo, clk, metrics, logger, timeout)

	handler := deliveryhttp.NewHandler(logger, cfg.CORSAllowedOrigins, deliveryhttp.Controllers{
		Events:         controllers.NewEventController(logger, eventSvc),
		Lifecycle:      controllers.NewLifecycleController(logger, lifecycleSvc),
		Participations: controllers.NewParticipationController(logger, participationSvc),
		Persons:        controllers.NewPersonController(logger, personSvc),
		Calendar:       controllers.NewCalendarController(logger, eventSvc, schedulerSvc),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Catch up on statuses that changed while the server was down.
	if changed, err := schedulerSvc.RunAutoTransitionSweep(startupCtx); err != nil {
		logger.Warn("startup sweep failed", "err", err)
	} else if len(changed) > 0 {
		logger.Info("startup sweep", "changed", len(changed))
	}

	logger.Info("api listening", "port", cfg.Port, "env", cfg.Environment, "db_driver", cfg.DBDriver,
		"telemetry", cfg.Telemetry.Exporter)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}
