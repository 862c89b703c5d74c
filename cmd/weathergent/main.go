package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/nimbuslab/weathergent/components"
	httpapi "github.com/nimbuslab/weathergent/internal/api/http"
	"github.com/nimbuslab/weathergent/internal/chat"
	"github.com/nimbuslab/weathergent/internal/config"
	"github.com/nimbuslab/weathergent/tools"
	"github.com/nimbuslab/weathergent/tools/openweather"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load("")
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	// Shared HTTP client for outbound capability calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Missing credentials leave the backend nil; the chat service then answers
	// every message with the maintenance notice instead of partially working.
	var llm components.LLM
	if cfg.LLM.APIKey != "" {
		switch cfg.LLM.Provider {
		case "anthropic":
			llm = components.NewAnthropic(cfg.LLM.APIKey)
		default:
			llm = components.NewOpenAI(cfg.LLM.APIKey, cfg.LLM.BaseURL)
		}
	} else {
		log.Error("assistant credential missing, chat service marked unavailable")
	}

	var executor tools.Executor
	if cfg.OpenWeatherAPIKey != "" {
		executor = openweather.NewCurrentWeather(cfg.OpenWeatherAPIKey, openweather.WithHTTPClient(httpClient))
	} else {
		log.Error("weather credential missing, chat service marked unavailable")
	}

	svc := chat.NewService(llm, executor, chat.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:               "weathergent",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())

	httpapi.RegisterRoutes(app, svc)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Error("fiber server stopped")
		}
	}()
	log.WithField("port", cfg.Port).Info("weathergent started")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
}
