package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbuslab/weathergent/components"
	"github.com/nimbuslab/weathergent/schema"
)

// scriptedLLM replays canned completion responses in order.
type scriptedLLM struct {
	responses []*components.CompletionResponse
	requests  []*components.CompletionRequest
	err       error
}

func (s *scriptedLLM) CreateCompletion(_ context.Context, req *components.CompletionRequest) (*components.CompletionResponse, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.responses) == 0 {
		return &components.CompletionResponse{}, nil
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

type fakeExecutor struct {
	calls  int
	result schema.Schema
	err    error
}

func (f *fakeExecutor) Title() string       { return "get_current_weather" }
func (f *fakeExecutor) Description() string { return "fake weather capability" }
func (f *fakeExecutor) Parameters() any {
	return map[string]any{"type": "object"}
}

func (f *fakeExecutor) Execute(context.Context, []byte) (schema.Schema, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestRunTerminatesOnFirstDecision(t *testing.T) {
	llm := &scriptedLLM{responses: []*components.CompletionResponse{
		{Content: "It looks sunny today. TERMINATE"},
	}}
	executor := &fakeExecutor{result: schema.NewString("{}")}
	agent := NewToolAgent(executor, WithClient(llm), WithModel("test-model"))

	reply, err := agent.Run(context.Background(), "weather in Tokyo?")
	require.NoError(t, err)
	assert.Equal(t, "It looks sunny today.", reply)
	assert.Equal(t, 0, executor.calls)
	assert.Len(t, llm.requests, 1)
	// user turn plus a single assistant turn
	assert.Len(t, agent.History(), 2)
}

func TestRunToolCallThenTerminate(t *testing.T) {
	llm := &scriptedLLM{responses: []*components.CompletionResponse{
		{ToolCalls: []components.ToolCall{{ID: "call_1", Name: "get_current_weather", Arguments: `{"lat":35.68,"lon":139.69}`}}},
		{Content: "Tokyo is warm and clear. TERMINATE"},
	}}
	executor := &fakeExecutor{result: schema.NewString(`{"name":"Tokyo"}`)}
	agent := NewToolAgent(executor, WithClient(llm))

	reply, err := agent.Run(context.Background(), "weather in Tokyo?")
	require.NoError(t, err)
	assert.Equal(t, "Tokyo is warm and clear.", reply)
	assert.Equal(t, 1, executor.calls)
	assert.Len(t, llm.requests, 2)

	history := agent.History()
	require.Len(t, history, 4)
	assert.Equal(t, components.UserRole, history[0].Role())
	assert.Equal(t, components.AssistantRole, history[1].Role())
	assert.Equal(t, components.ExecutorRole, history[2].Role())
	assert.Equal(t, "call_1", history[2].ToolCallID())
	assert.Equal(t, components.AssistantRole, history[3].Role())
}

func TestRunTurnLimitIsNotAnError(t *testing.T) {
	llm := &scriptedLLM{responses: []*components.CompletionResponse{
		{ToolCalls: []components.ToolCall{{ID: "call_1", Name: "get_current_weather", Arguments: `{}`}}},
		{Content: "still gathering data"},
	}}
	executor := &fakeExecutor{result: schema.NewString(`{"name":"Tokyo"}`)}
	agent := NewToolAgent(executor, WithClient(llm))

	reply, err := agent.Run(context.Background(), "weather?")
	require.NoError(t, err)
	assert.Equal(t, "still gathering data", reply)
	assert.Len(t, llm.requests, 2)
}

func TestRunBackendFailureIsServiceUnavailable(t *testing.T) {
	llm := &scriptedLLM{err: errors.New("connection refused")}
	agent := NewToolAgent(&fakeExecutor{}, WithClient(llm))

	_, err := agent.Run(context.Background(), "weather?")
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestRunExecutorArgumentErrorRecordedAsData(t *testing.T) {
	llm := &scriptedLLM{responses: []*components.CompletionResponse{
		{ToolCalls: []components.ToolCall{{ID: "call_1", Name: "get_current_weather", Arguments: `not json`}}},
		{Content: "Sorry, I could not fetch the weather. TERMINATE"},
	}}
	executor := &fakeExecutor{err: errors.New("invalid weather arguments")}
	agent := NewToolAgent(executor, WithClient(llm))

	reply, err := agent.Run(context.Background(), "weather?")
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I could not fetch the weather.", reply)

	history := agent.History()
	require.Len(t, history, 4)
	assert.Contains(t, history[2].StringifiedContent(), `"error"`)
}

func TestRunResetsTranscriptBetweenExchanges(t *testing.T) {
	llm := &scriptedLLM{responses: []*components.CompletionResponse{
		{Content: "first TERMINATE"},
		{Content: "second TERMINATE"},
	}}
	agent := NewToolAgent(&fakeExecutor{}, WithClient(llm))

	_, err := agent.Run(context.Background(), "one")
	require.NoError(t, err)
	reply, err := agent.Run(context.Background(), "two")
	require.NoError(t, err)
	assert.Equal(t, "second", reply)
	assert.Len(t, agent.History(), 2)
}

func TestRunAdvertisesCapability(t *testing.T) {
	llm := &scriptedLLM{responses: []*components.CompletionResponse{
		{Content: "done TERMINATE"},
	}}
	agent := NewToolAgent(&fakeExecutor{}, WithClient(llm))

	_, err := agent.Run(context.Background(), "weather?")
	require.NoError(t, err)
	require.Len(t, llm.requests, 1)
	require.Len(t, llm.requests[0].Tools, 1)
	assert.Equal(t, "get_current_weather", llm.requests[0].Tools[0].Name)
}
