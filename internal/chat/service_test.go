package chat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbuslab/weathergent/components"
	"github.com/nimbuslab/weathergent/tools/openweather"
)

type scriptedLLM struct {
	responses []*components.CompletionResponse
	err       error
}

func (s *scriptedLLM) CreateCompletion(_ context.Context, _ *components.CompletionRequest) (*components.CompletionResponse, error) {
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

func newWeatherTool(t *testing.T, payload string) *openweather.CurrentWeather {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return openweather.NewCurrentWeather("test-key", openweather.WithBaseURL(srv.URL))
}

func TestChatUnavailableWithoutBackend(t *testing.T) {
	svc := NewService(nil, nil, Config{}, nil)
	assert.False(t, svc.Available())
	reply := svc.Chat(context.Background(), "weather in Tokyo?", nil)
	assert.Equal(t, maintenanceMsg, reply)
}

func TestChatBackendFailureIsStableMessage(t *testing.T) {
	svc := NewService(&scriptedLLM{err: errors.New("dial tcp: refused")}, newWeatherTool(t, `{}`), Config{}, nil)
	reply := svc.Chat(context.Background(), "weather?", nil)
	assert.Equal(t, unavailableMsg, reply)
}

func TestChatPlainProsePassesThrough(t *testing.T) {
	llm := &scriptedLLM{responses: []*components.CompletionResponse{
		{Content: "It looks sunny today. TERMINATE"},
	}}
	svc := NewService(llm, newWeatherTool(t, `{}`), Config{Model: "test-model"}, nil)
	reply := svc.Chat(context.Background(), "weather?", nil)
	assert.Equal(t, "It looks sunny today.", reply)
}

func TestChatPendingToolCallShowsFetchingNotice(t *testing.T) {
	llm := &scriptedLLM{responses: []*components.CompletionResponse{
		{Content: "Suggested tool call: get_current_weather(lat, lon) TERMINATE"},
	}}
	svc := NewService(llm, newWeatherTool(t, `{}`), Config{}, nil)
	reply := svc.Chat(context.Background(), "weather?", nil)
	assert.Equal(t, fetchingNotice, reply)
}

func TestChatRendersStructuredFinalReply(t *testing.T) {
	llm := &scriptedLLM{responses: []*components.CompletionResponse{
		{ToolCalls: []components.ToolCall{{ID: "call_1", Name: openweather.ToolName, Arguments: `{"lat":35.68,"lon":139.69}`}}},
		{Content: `Result: {"name":"Tokyo","main":{"temp":30,"humidity":80},"weather":[{"main":"Clear","description":"clear sky"}],"wind":{"speed":3,"deg":90},"clouds":{"all":10}} TERMINATE`},
	}}
	tool := newWeatherTool(t, `{"name":"Tokyo","main":{"temp":30}}`)
	svc := NewService(llm, tool, Config{Model: "test-model"}, nil)

	reply := svc.Chat(context.Background(), "weather in Tokyo?", nil)
	require.Contains(t, reply, "Current Weather in Tokyo")
	assert.Contains(t, reply, "(E)")
	assert.Contains(t, reply, "🥤 Stay hydrated in the heat")
	assert.Equal(t, int64(1), tool.Calls())
}

func TestChatHistoryIsIgnored(t *testing.T) {
	llm := &scriptedLLM{responses: []*components.CompletionResponse{
		{Content: "fresh answer TERMINATE"},
	}}
	svc := NewService(llm, newWeatherTool(t, `{}`), Config{}, nil)
	reply := svc.Chat(context.Background(), "weather?", []string{"old turn", "older turn"})
	assert.Equal(t, "fresh answer", reply)
}
