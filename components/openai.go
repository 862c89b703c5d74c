package components

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI is an LLM backed by an OpenAI-compatible chat-completion endpoint.
// A custom base URL selects compatible gateways such as Groq.
type OpenAI struct {
	clt *openai.Client
}

var _ LLM = (*OpenAI)(nil)

// NewOpenAI returns a new OpenAI client. baseURL may be empty for the default
// endpoint.
func NewOpenAI(apiKey string, baseURL string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAI{
		clt: openai.NewClientWithConfig(cfg),
	}
}

func (c *OpenAI) CreateCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.System != "" {
		chatReq.Messages = append(chatReq.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, msg := range req.Messages {
		v := new(openai.ChatCompletionMessage)
		msg.ToOpenAI(v)
		chatReq.Messages = append(chatReq.Messages, *v)
	}
	for _, tool := range req.Tools {
		chatReq.Tools = append(chatReq.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}
	res, err := c.clt.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, err
	}
	ret := &CompletionResponse{
		ID:    res.ID,
		Model: res.Model,
		Usage: LLMUsage{
			InputTokens:  int64(res.Usage.PromptTokens),
			OutputTokens: int64(res.Usage.CompletionTokens),
		},
	}
	if len(res.Choices) > 0 {
		msg := res.Choices[0].Message
		ret.Content = msg.Content
		for _, call := range msg.ToolCalls {
			ret.ToolCalls = append(ret.ToolCalls, ToolCall{
				ID:        call.ID,
				Name:      call.Function.Name,
				Arguments: call.Function.Arguments,
			})
		}
	}
	return ret, nil
}
