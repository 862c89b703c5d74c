package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/nimbuslab/weathergent/components"
	"github.com/nimbuslab/weathergent/components/systemprompt/simple"
	"github.com/nimbuslab/weathergent/schema"
	"github.com/nimbuslab/weathergent/tools"
)

const (
	// DefaultMaxTurns bounds an exchange to one decision round plus at most
	// one capability round. Reaching the limit is a normal terminal state.
	DefaultMaxTurns = 2
	// DefaultTerminationToken ends the exchange when it appears in an
	// assistant reply.
	DefaultTerminationToken = "TERMINATE"
)

// ToolAgent drives a bounded exchange between the assistant role and the
// executor role. Each decision round the assistant either answers (possibly
// with the termination token) or requests a capability invocation; the
// executor performs the invocation and its result is appended to the
// transcript as an executor turn.
type ToolAgent struct {
	Config
	executor         tools.Executor
	maxTurns         int
	terminationToken string
}

// NewToolAgent returns a new ToolAgent instance
func NewToolAgent(executor tools.Executor, options ...Option) *ToolAgent {
	ret := &ToolAgent{
		executor:         executor,
		maxTurns:         DefaultMaxTurns,
		terminationToken: DefaultTerminationToken,
	}
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.memory == nil {
		ret.memory = components.NewMemory(0)
	}
	if ret.systemPromptGenerator == nil {
		ret.systemPromptGenerator = simple.New("You are a helpful assistant.")
	}
	return ret
}

// SetMaxTurns overrides the exchange turn limit.
func (a *ToolAgent) SetMaxTurns(n int) *ToolAgent {
	if n > 0 {
		a.maxTurns = n
	}
	return a
}

// SetTerminationToken overrides the termination token.
func (a *ToolAgent) SetTerminationToken(token string) *ToolAgent {
	if token != "" {
		a.terminationToken = token
	}
	return a
}

// History returns the transcript of the last exchange.
func (a *ToolAgent) History() []components.Message {
	return a.memory.History()
}

// Run executes one bounded exchange seeded with the caller's message and
// returns the final transcript entry with the termination token stripped.
// The transcript is reset first: every call starts a fresh exchange.
func (a *ToolAgent) Run(ctx context.Context, input string) (string, error) {
	a.memory.Reset()
	a.memory.NewTurn()
	a.memory.NewMessage(components.UserRole, schema.NewString(input))

	var last string
	for turn := 0; turn < a.maxTurns; turn++ {
		req := &components.CompletionRequest{
			Model:       a.model,
			System:      a.systemPromptGenerator.Generate(),
			Messages:    a.memory.History(),
			Temperature: a.temperature,
			MaxTokens:   a.maxTokens,
		}
		if a.executor != nil {
			req.Tools = []components.ToolDefinition{{
				Name:        a.executor.Title(),
				Description: a.executor.Description(),
				Parameters:  a.executor.Parameters(),
			}}
		}
		resp, err := a.client.CreateCompletion(ctx, req)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		}

		if len(resp.ToolCalls) > 0 && a.executor != nil {
			call := resp.ToolCalls[0]
			content := resp.Content
			if content == "" {
				content = fmt.Sprintf("Suggested tool call: %s(%s)", call.Name, call.Arguments)
			}
			a.memory.AppendMessage(components.NewMessage(components.AssistantRole, schema.NewString(content)).
				SetToolCalls(resp.ToolCalls))

			out, err := a.executor.Execute(ctx, []byte(call.Arguments))
			if err != nil {
				// Unusable arguments are reported back to the assistant as
				// failure data, same as a provider failure.
				out = schema.NewString(fmt.Sprintf(`{"error": %q}`, err.Error()))
			}
			a.memory.AppendMessage(components.NewMessage(components.ExecutorRole, out).
				SetToolCallID(call.ID))
			last = schema.Stringify(out)
			continue
		}

		a.memory.NewMessage(components.AssistantRole, schema.NewString(resp.Content))
		last = resp.Content
		if strings.Contains(resp.Content, a.terminationToken) {
			break
		}
	}
	// Hitting the turn limit without the token is not an error: the last
	// transcript entry is the reply.
	return strings.TrimSpace(strings.ReplaceAll(last, a.terminationToken, "")), nil
}
