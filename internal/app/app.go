// Package app assembles configuration, storage, services, the scheduler and
// the HTTP server into one runnable unit with a graceful shutdown path.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"eventlistings/config"
	"eventlistings/internal/adapters/email"
	"eventlistings/internal/adapters/icsimport"
	"eventlistings/internal/adapters/telegram"
	deliveryhttp "eventlistings/internal/delivery/http"
	"eventlistings/internal/delivery/http/controllers"
	"eventlistings/internal/delivery/http/middleware"
	"eventlistings/internal/metrics"
	"eventlistings/internal/repository/mongodb"
	"eventlistings/internal/scheduler"
	"eventlistings/internal/services"
)

// App holds the long-lived pieces of the service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      *mongodb.Store
	httpServer *http.Server
	scheduler  *scheduler.Scheduler
}

// New builds the full application graph. It connects to the store and fails
// fast when any dependency cannot be constructed.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: config.NewLogger(),
	}

	metrics.Register()

	if err := a.initStore(); err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	if err := a.initServices(); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	return a, nil
}

func (a *App) initStore() error {
	store := mongodb.NewStore(a.cfg.MongoURI, a.cfg.MongoDatabase, a.cfg.RequestTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := store.Connect(ctx); err != nil {
		return fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	a.store = store
	a.logger.Info("mongodb connected", "database", a.cfg.MongoDatabase)
	return nil
}

func (a *App) initServices() error {
	eventRepo := mongodb.NewEventRepo(a.store)
	bookingRepo := mongodb.NewBookingRepo(a.store)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    a.cfg.Email.Provider,
		FromAddress: a.cfg.Email.FromAddress,
		FromName:    a.cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             a.cfg.Email.SESRegion,
			AccessKeyID:        a.cfg.Email.SESAccessKeyID,
			SecretAccessKey:    a.cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: a.cfg.Email.SESInsecureSkipVerify,
		},
	}, a.logger)
	if err != nil {
		return fmt.Errorf("init mailer: %w", err)
	}

	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("init template renderer: %w", err)
	}
	emailService := services.NewEmailService(mailer, renderer, a.logger)

	notifier, err := telegram.NewNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.logger)
	if err != nil {
		return fmt.Errorf("init telegram notifier: %w", err)
	}

	fetcher := icsimport.NewHTTPFetcher(nil)

	eventService := services.NewEventService(eventRepo, fetcher, a.logger, a.cfg.RequestTimeout)
	bookingService := services.NewBookingService(bookingRepo, eventRepo, emailService, notifier, a.logger, a.cfg.RequestTimeout)
	integrityService := services.NewIntegrityService(bookingRepo, eventRepo, a.logger, a.cfg.RequestTimeout)

	a.scheduler = scheduler.New(integrityService, a.logger, a.cfg.RequestTimeout)

	eventController := controllers.NewEventController(a.logger, eventService)
	bookingController := controllers.NewBookingController(a.logger, bookingService)
	feedController := controllers.NewFeedController(a.logger, eventService)

	mux := deliveryhttp.NewRouter(eventController, bookingController, feedController)

	var handler http.Handler = mux
	handler = middleware.CORS(a.cfg.AllowedOrigins, handler)
	handler = middleware.Recovery(a.logger, handler)
	handler = middleware.LoggingMiddleware(a.logger, handler)
	handler = middleware.RequestID(handler)

	a.httpServer = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	return nil
}

// Run starts the integrity sweep and the HTTP server, then blocks until a
// shutdown signal arrives or the server fails.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One sweep at startup so the dangling bookings gauge is populated
	// before the first scheduled tick.
	go a.scheduler.RunOnce(ctx)

	if err := a.scheduler.Start(a.cfg.SweepCron); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.httpServer.Addr, "env", a.cfg.Environment)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.logger.Info("http server stopped")

	a.scheduler.Stop()
	a.logger.Info("scheduler stopped")

	if err := a.store.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect store: %w", err)
	}
	a.logger.Info("store disconnected")

	return nil
}
