package components

import (
	"encoding/json"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/rs/xid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/nimbuslab/weathergent/schema"
)

// NewTurnID returns a new turn ID.
func NewTurnID() string {
	return xid.New().String()
}

// MessageRole is the role of the message sender.
type MessageRole = string

const (
	SystemRole    MessageRole = "system"
	UserRole      MessageRole = "user"
	AssistantRole MessageRole = "assistant"
	// ExecutorRole marks turns produced by the capability executor. It maps to
	// the provider-level tool role on the wire.
	ExecutorRole MessageRole = "tool"
)

// Message represents a single turn in a transcript.
type Message struct {
	content schema.Schema
	// role is the role of the message sender (e.g. 'user', 'assistant', 'tool')
	role MessageRole
	// turnID is the identifier of the exchange turn this message belongs to.
	turnID string
	// toolCalls holds capability invocations requested by an assistant turn.
	toolCalls []ToolCall
	// toolCallID links an executor turn back to the invocation it resolves.
	toolCallID string
}

// NewMessage returns a new Message
func NewMessage(role MessageRole, content schema.Schema) *Message {
	return &Message{
		role:    role,
		content: content,
	}
}

// SetTurnID set message turnID
func (m *Message) SetTurnID(turnID string) *Message {
	m.turnID = turnID
	return m
}

// SetToolCalls records the capability invocations requested in this turn.
func (m *Message) SetToolCalls(calls []ToolCall) *Message {
	m.toolCalls = calls
	return m
}

// SetToolCallID links this turn to the invocation it resolves.
func (m *Message) SetToolCallID(id string) *Message {
	m.toolCallID = id
	return m
}

// Role returns message role
func (m Message) Role() MessageRole {
	return m.role
}

// Content returns message content
func (m Message) Content() schema.Schema {
	return m.content
}

// StringifiedContent returns the textual form of the message content.
func (m Message) StringifiedContent() string {
	return schema.Stringify(m.content)
}

// ToolCalls returns the capability invocations requested in this turn.
func (m Message) ToolCalls() []ToolCall {
	return m.toolCalls
}

// ToolCallID returns the invocation ID this turn resolves.
func (m Message) ToolCallID() string {
	return m.toolCallID
}

// TurnID returns message turnID
func (m Message) TurnID() string {
	return m.turnID
}

type messageJSON struct {
	Role       MessageRole `json:"role"`
	Content    string      `json:"content"`
	TurnID     string      `json:"turn_id,omitempty"`
	ToolCalls  []ToolCall  `json:"tool_calls,omitempty"`
	ToolCallID string      `json:"tool_call_id,omitempty"`
}

func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(messageJSON{
		Role:       m.role,
		Content:    schema.Stringify(m.content),
		TurnID:     m.turnID,
		ToolCalls:  m.toolCalls,
		ToolCallID: m.toolCallID,
	})
}

func (m *Message) UnmarshalJSON(bs []byte) error {
	var v messageJSON
	if err := json.Unmarshal(bs, &v); err != nil {
		return err
	}
	m.role = v.Role
	m.content = schema.String(v.Content)
	m.turnID = v.TurnID
	m.toolCalls = v.ToolCalls
	m.toolCallID = v.ToolCallID
	return nil
}

// ToOpenAI convert message to openai ChatCompletionMessage
func (m Message) ToOpenAI(dist *openai.ChatCompletionMessage) {
	switch m.role {
	case ExecutorRole:
		dist.Role = openai.ChatMessageRoleTool
		dist.Content = schema.Stringify(m.content)
		dist.ToolCallID = m.toolCallID
	default:
		dist.Role = m.role
		dist.Content = schema.Stringify(m.content)
		for _, call := range m.toolCalls {
			dist.ToolCalls = append(dist.ToolCalls, openai.ToolCall{
				ID:   call.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      call.Name,
					Arguments: call.Arguments,
				},
			})
		}
	}
}

// ToAnthropic convert message to anthropic Message
func (m Message) ToAnthropic(dist *anthropic.Message) {
	switch m.role {
	case ExecutorRole:
		dist.Role = anthropic.RoleUser
		dist.Content = []anthropic.MessageContent{
			anthropic.NewToolResultMessageContent(m.toolCallID, schema.Stringify(m.content), false),
		}
	case AssistantRole:
		dist.Role = anthropic.RoleAssistant
		contents := make([]anthropic.MessageContent, 0, len(m.toolCalls)+1)
		if txt := schema.Stringify(m.content); txt != "" {
			contents = append(contents, anthropic.NewTextMessageContent(txt))
		}
		for _, call := range m.toolCalls {
			contents = append(contents, anthropic.NewToolUseMessageContent(call.ID, call.Name, []byte(call.Arguments)))
		}
		dist.Content = contents
	default:
		dist.Role = anthropic.RoleUser
		dist.Content = []anthropic.MessageContent{
			anthropic.NewTextMessageContent(schema.Stringify(m.content)),
		}
	}
}
