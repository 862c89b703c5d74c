package agents

import (
	"github.com/nimbuslab/weathergent/components"
	"github.com/nimbuslab/weathergent/components/systemprompt"
)

type Option func(a *Config)

func WithClient(clt components.LLM) Option {
	return func(c *Config) {
		c.SetClient(clt)
	}
}

func WithMemory(m *components.Memory) Option {
	return func(c *Config) {
		c.SetMemory(m)
	}
}

func WithSystemPromptGenerator(g systemprompt.Generator) Option {
	return func(c *Config) {
		c.SetSystemPromptGenerator(g)
	}
}

func WithModel(model string) Option {
	return func(c *Config) {
		c.SetModel(model)
	}
}

func WithTemperature(temperature float32) Option {
	return func(c *Config) {
		c.SetTemperature(temperature)
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		c.SetMaxTokens(maxTokens)
	}
}

func WithName(name string) Option {
	return func(c *Config) {
		c.SetName(name)
	}
}
