// Package chat exposes the single caller-facing operation: one free-text
// message in, one composed reply out.
package chat

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/nimbuslab/weathergent/agents"
	"github.com/nimbuslab/weathergent/components"
	"github.com/nimbuslab/weathergent/components/systemprompt/simple"
	"github.com/nimbuslab/weathergent/extract"
	"github.com/nimbuslab/weathergent/report"
	"github.com/nimbuslab/weathergent/tools"
)

// User-visible strings are fixed; diagnostic detail goes to the log only.
const (
	fetchingNotice = "⏳ Fetching live weather data..."
	unavailableMsg = "⚠️ Service temporarily unavailable. Please try again later."
	maintenanceMsg = "🔧 Weather service is currently undergoing maintenance. Please check back later."
)

const systemPrompt = `You're an AI weather assistant. Use tools to get real weather data.
When presenting weather data, use the following format:

[Location]
- Temperature: X°C (Feels like Y°C)
- Conditions: [Description]
- Humidity: Z%
- Wind: A m/s from B direction
- Sunrise/Sunset: HH:MM / HH:MM

Add brief recommendations based on conditions. Keep responses concise but professional.
Say 'TERMINATE' when done.`

// Config carries the assistant backend settings, established once at startup.
type Config struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// Service runs one bounded exchange per caller message. It shares no mutable
// state between requests beyond the read-only configuration.
type Service struct {
	llm       components.LLM
	executor  tools.Executor
	cfg       Config
	log       *logrus.Logger
	available *atomic.Bool
}

// NewService returns a chat service. A missing backend or executor marks the
// service unavailable instead of failing: every reply becomes the maintenance
// message.
func NewService(llm components.LLM, executor tools.Executor, cfg Config, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		llm:       llm,
		executor:  executor,
		cfg:       cfg,
		log:       log,
		available: atomic.NewBool(llm != nil && executor != nil),
	}
}

// Available reports whether the service initialized with a usable backend.
func (s *Service) Available() bool {
	return s.available.Load()
}

// Chat handles one caller message. History is accepted for interface
// compatibility and ignored: every message starts a fresh transcript.
func (s *Service) Chat(ctx context.Context, message string, history []string) string {
	if !s.available.Load() {
		return maintenanceMsg
	}

	logger := s.log.WithField("session_id", uuid.NewString())

	// A fresh agent per exchange keeps concurrent requests independent.
	agent := agents.NewToolAgent(s.executor,
		agents.WithClient(s.llm),
		agents.WithModel(s.cfg.Model),
		agents.WithTemperature(s.cfg.Temperature),
		agents.WithMaxTokens(s.cfg.MaxTokens),
		agents.WithSystemPromptGenerator(simple.New(systemPrompt)),
		agents.WithName("Weather_Assistant"),
	)

	reply, err := agent.Run(ctx, message)
	if err != nil {
		logger.WithError(err).Warn("exchange failed")
		return unavailableMsg
	}

	outcome := extract.Extract(reply)
	switch outcome.Kind {
	case extract.PendingToolCall:
		return fetchingNotice
	case extract.StructuredPayload:
		return report.Render(outcome.Reading)
	default:
		return outcome.Text
	}
}
