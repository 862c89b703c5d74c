package components

import (
	"context"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// Anthropic is an LLM backed by the Anthropic messages endpoint.
type Anthropic struct {
	clt *anthropic.Client
}

var _ LLM = (*Anthropic)(nil)

// NewAnthropic returns a new Anthropic client.
func NewAnthropic(apiKey string) *Anthropic {
	return &Anthropic{
		clt: anthropic.NewClient(apiKey),
	}
}

func (c *Anthropic) CreateCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}
	temperature := req.Temperature
	chatReq := anthropic.MessagesRequest{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	}
	if req.System != "" {
		chatReq.System = req.System
	}
	for _, msg := range req.Messages {
		v := new(anthropic.Message)
		msg.ToAnthropic(v)
		chatReq.Messages = append(chatReq.Messages, *v)
	}
	for _, tool := range req.Tools {
		chatReq.Tools = append(chatReq.Tools, anthropic.ToolDefinition{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.Parameters,
		})
	}
	res, err := c.clt.CreateMessages(ctx, chatReq)
	if err != nil {
		return nil, err
	}
	ret := &CompletionResponse{
		ID:    res.ID,
		Model: string(res.Model),
		Usage: LLMUsage{
			InputTokens:  int64(res.Usage.InputTokens),
			OutputTokens: int64(res.Usage.OutputTokens),
		},
	}
	var sb strings.Builder
	for _, block := range res.Content {
		switch block.Type {
		case anthropic.MessagesContentTypeText:
			if block.Text != nil {
				sb.WriteString(*block.Text)
			}
		case anthropic.MessagesContentTypeToolUse:
			if use := block.MessageContentToolUse; use != nil {
				ret.ToolCalls = append(ret.ToolCalls, ToolCall{
					ID:        use.ID,
					Name:      use.Name,
					Arguments: string(use.Input),
				})
			}
		}
	}
	ret.Content = sb.String()
	return ret, nil
}
