package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventrsvp/rsvp-api/internal/api"
	"github.com/eventrsvp/rsvp-api/internal/api/handler"
	"github.com/eventrsvp/rsvp-api/internal/core/ports"
	"github.com/eventrsvp/rsvp-api/internal/core/service"
	"github.com/eventrsvp/rsvp-api/internal/infrastructure/config"
	"github.com/eventrsvp/rsvp-api/internal/infrastructure/db/mongo"
	"github.com/eventrsvp/rsvp-api/internal/infrastructure/db/redis"
	"github.com/eventrsvp/rsvp-api/internal/infrastructure/mail"
	"github.com/eventrsvp/rsvp-api/internal/infrastructure/queue"
	"github.com/eventrsvp/rsvp-api/internal/infrastructure/token"
	"github.com/eventrsvp/rsvp-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       Event RSVP API
// @version                     1.0
// @description                 Event management and RSVP backend.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT token.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "rsvp-api",
	})

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	accounts := mongo.NewAccountRepository(db)
	events := mongo.NewEventRepository(db)
	images := mongo.NewImageStore(db)
	if err := mongo.EnsureIndexes(ctx, accounts, events); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
		Timeout:  cfg.Redis.Timeout,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// Workers are stopped only after the HTTP server has shut down.
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, mailSender(cfg, log), redis.NewDedupChecker(rdb), log)
	dispatcher.Start(workerCtx)
	defer func() {
		cancelWorkers()
		dispatcher.Wait()
	}()

	signer := token.NewSigner(cfg.JWTSecret, cfg.TokenTTL)
	serviceLog := logger.Component(log, "service")

	e := api.NewRouter(api.Dependencies{
		Auth:     service.NewAuthService(accounts, signer, dispatcher, serviceLog),
		Events:   service.NewEventService(events, images, cfg.Upload.MaxBytes, serviceLog),
		RSVPs:    service.NewRSVPService(events, accounts, dispatcher, serviceLog),
		Admin:    service.NewAdminService(accounts, events, serviceLog),
		Images:   images,
		Tokens:   signer,
		Accounts: accounts,
		HealthChecks: map[string]handler.HealthCheck{
			"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Log:        logger.Component(log, "http"),
		CORSOrigin: cfg.CORSOrigin,
		BodyLimit:  bodyLimit(cfg.Upload.MaxBytes),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}

func mailSender(cfg *config.Config, log zerolog.Logger) ports.MailSender {
	if cfg.SMTP.Host == "" {
		return mail.NewLogSender(log)
	}
	return mail.NewSMTPSender(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.Sender,
	})
}

// bodyLimit leaves room for multipart overhead and inline base64 images on
// top of the upload cap.
func bodyLimit(maxUpload int64) string {
	const overhead = 2 << 20
	if maxUpload <= 0 {
		return ""
	}
	return fmt.Sprintf("%dB", maxUpload+overhead)
}
