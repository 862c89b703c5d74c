package components

import "context"

// LLM is a provider-neutral chat-completion client. Implementations translate
// the transcript and tool definitions to their wire format and back.
type LLM interface {
	CreateCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}

// ToolDefinition describes a capability offered to the assistant role.
type ToolDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Parameters is a JSON schema object describing the capability arguments.
	Parameters any `json:"parameters,omitempty"`
}

// ToolCall is a capability invocation requested by the assistant role.
type ToolCall struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

// CompletionRequest is a single chat-completion round.
type CompletionRequest struct {
	Model       string
	System      string
	Messages    []Message
	Tools       []ToolDefinition
	Temperature float32
	MaxTokens   int
}

// CompletionResponse is the assistant reply for one round: freeform text,
// requested tool calls, or both.
type CompletionResponse struct {
	ID        string     `json:"id,omitempty"`
	Model     string     `json:"model,omitempty"`
	Content   string     `json:"content,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	Usage     LLMUsage   `json:"usage"`
}

type LLMUsage struct {
	InputTokens  int64 `json:"input_tokens,omitempty"`
	OutputTokens int64 `json:"output_tokens,omitempty"`
}

func (u *LLMUsage) Merge(v *LLMUsage) {
	if v == nil {
		return
	}
	u.InputTokens += v.InputTokens
	u.OutputTokens += v.OutputTokens
}
