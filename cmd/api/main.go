package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/landing-api/internal/config"
	"github.com/octobees/landing-api/internal/database"
	"github.com/octobees/landing-api/internal/handler"
	middlewarepkg "github.com/octobees/landing-api/internal/middleware"
	"github.com/octobees/landing-api/internal/notify"
	"github.com/octobees/landing-api/internal/repository"
	"github.com/octobees/landing-api/internal/router"
	"github.com/octobees/landing-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	contactsRepo := repository.NewPGXContactsRepository(pool)
	subscribersRepo := repository.NewPGXSubscribersRepository(pool)
	waitlistRepo := repository.NewPGXWaitlistRepository(pool)

	emailService := notify.NewEmailService(cfg.Email)
	slackService := notify.NewSlackService(cfg.Slack)

	contactService := service.NewContactService(contactsRepo, emailService, slackService)
	newsletterService := service.NewNewsletterService(subscribersRepo, emailService, slackService)
	waitlistService := service.NewWaitlistService(waitlistRepo)

	handlers := router.Handlers{
		Health:     handler.NewHealthHandler(cfg.Env),
		Contact:    handler.NewContactHandler(contactService),
		Newsletter: handler.NewNewsletterHandler(newsletterService),
		Waitlist:   handler.NewWaitlistHandler(waitlistService),
		Slack:      handler.NewSlackHandler(cfg.Slack, slackService),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(cfg)

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowCredentials: true,
	}))

	router.Register(e, cfg, handlers)

	log.Printf("listening on port %s env=%s", cfg.Port, cfg.Env)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

// errorHandler renders unhandled errors in the shared envelope. Internal
// details are redacted in production.
func errorHandler(cfg *config.Config) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "An error occurred"

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		}

		if status >= http.StatusInternalServerError {
			log.Printf("request failed: %v", err)
			if !cfg.Production() {
				message = err.Error()
			} else {
				message = "An error occurred"
			}
		}

		if writeErr := handler.Error(c, status, message); writeErr != nil {
			log.Printf("error response failed: %v", writeErr)
		}
	}
}
