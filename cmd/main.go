package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/paladino/propiedades-web/internal/api"
	"github.com/paladino/propiedades-web/internal/cache"
	"github.com/paladino/propiedades-web/internal/config"
	"github.com/paladino/propiedades-web/internal/contact"
	"github.com/paladino/propiedades-web/internal/gateway"
	"github.com/paladino/propiedades-web/internal/logger"
	"github.com/paladino/propiedades-web/internal/mailer"
	"github.com/paladino/propiedades-web/internal/middleware"
	"github.com/paladino/propiedades-web/internal/storage"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	logOutput := cfg.LogFile
	if logOutput == "" {
		logOutput = "stdout"
	}
	logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: logOutput,
		Pretty: cfg.IsDevelopment(),
	})

	log := logger.Get()
	log.Info().
		Str("env", cfg.Env).
		Str("content_api", cfg.ContentAPIURL).
		Bool("mock_data", cfg.UseMockData).
		Msg("Starting application...")

	// Dedup store: redis when configured, in-process otherwise
	var store cache.Store
	if cfg.RedisURL != "" {
		redisStore, err := cache.NewRedisStore(cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis client")
		}
		store = redisStore
	} else {
		log.Warn().Msg("REDIS_URL not set, contact de-duplication is per instance")
		store = cache.NewMemoryStore()
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing dedup store")
		}
	}()

	archive, err := storage.NewStorage(cfg.InquiryPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize inquiry storage")
	}

	sender, err := newSender(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize email provider")
	}

	gw := gateway.New(cfg.GatewayOptions())
	contactSvc := contact.NewService(contact.Config{
		FromAddress:    cfg.MailFrom,
		FromName:       cfg.MailFromName,
		Recipient:      cfg.MailTo,
		DedupTTL:       cfg.ContactDedupTTL,
		RequireCaptcha: cfg.ContactRequireCaptcha,
	}, gw, sender, store, archive)

	// Create Fiber app with custom config
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})

	api.SetupRoutes(app, api.NewHandlers(cfg, gw, contactSvc))

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newSender(cfg *config.Config) (mailer.Sender, error) {
	switch cfg.MailProvider {
	case "ses":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return mailer.NewSES(ctx, cfg.AWSRegion)
	default:
		if cfg.ZeptoToken == "" {
			logger.Get().Warn().Msg("ZEPTO_SMTP_TOKEN not set, contact emails will fail")
		}
		return mailer.NewZeptoMail(cfg.ZeptoAPIURL, cfg.ZeptoToken, cfg.HTTPTimeout), nil
	}
}
