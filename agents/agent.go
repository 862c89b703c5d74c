package agents

import (
	"errors"

	"github.com/nimbuslab/weathergent/components"
	"github.com/nimbuslab/weathergent/components/systemprompt"
)

// ErrServiceUnavailable is returned when the assistant backend cannot be
// reached. The whole exchange fails; no partial transcript is surfaced.
var ErrServiceUnavailable = errors.New("assistant backend unavailable")

// Config represents general agents configuration
type Config struct {
	// client for interacting with the language model
	client components.LLM
	// memory holds the transcript of the current exchange
	memory *components.Memory
	// systemPromptGenerator produces the assistant persona
	systemPromptGenerator systemprompt.Generator
	// model llm model
	model string
	// temperature for response generation, typically ranging from 0 to 1
	temperature float32
	// maxTokens maximum number of tokens allowed in the response
	maxTokens int
	// name is the agent name presentation
	name string
}

func (c *Config) SetClient(clt components.LLM) {
	c.client = clt
}

func (c *Config) SetMemory(m *components.Memory) {
	c.memory = m
}

func (c *Config) SetSystemPromptGenerator(g systemprompt.Generator) {
	c.systemPromptGenerator = g
}

func (c *Config) SetModel(model string) {
	c.model = model
}

func (c *Config) SetTemperature(temperature float32) {
	c.temperature = temperature
}

func (c *Config) SetMaxTokens(maxTokens int) {
	c.maxTokens = maxTokens
}

func (c Config) Name() string {
	return c.name
}

func (c *Config) SetName(name string) {
	c.name = name
}

// SystemPrompt returns the generated system prompt
func (c Config) SystemPrompt() string {
	if c.systemPromptGenerator == nil {
		return ""
	}
	return c.systemPromptGenerator.Generate()
}
