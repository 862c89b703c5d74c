package tools

import (
	"context"

	"github.com/nimbuslab/weathergent/schema"
)

// Executor is a named external capability offered to the assistant role. The
// orchestrator advertises it through the capability definition and invokes it
// with the raw argument payload the assistant produced.
type Executor interface {
	Title() string
	Description() string
	// Parameters returns a JSON schema object describing the capability arguments.
	Parameters() any
	// Execute performs the capability. Provider failures are returned as data
	// inside the schema; the error covers unusable arguments only.
	Execute(ctx context.Context, arguments []byte) (schema.Schema, error)
}

// Config class for tools
type Config struct {
	// title the default title of the tool
	title string
	// description the default description of the tool
	description string
}

func (c *Config) SetTitle(v string) {
	c.title = v
}

func (c Config) Title() string {
	return c.title
}

func (c *Config) SetDescription(v string) {
	c.description = v
}

func (c Config) Description() string {
	return c.description
}

type Option func(c *Config)

func WithTitle(title string) Option {
	return func(c *Config) {
		c.SetTitle(title)
	}
}

func WithDescription(desc string) Option {
	return func(c *Config) {
		c.SetDescription(desc)
	}
}
