package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
	"name": "Tokyo",
	"coord": {"lat": 35.68, "lon": 139.69},
	"dt": 1700000000,
	"main": {"temp": 21.5, "feels_like": 20.9, "temp_min": 19.2, "temp_max": 23.1, "humidity": 60, "pressure": 1012},
	"wind": {"speed": 3.4, "deg": 90},
	"clouds": {"all": 10},
	"visibility": 10000,
	"weather": [{"main": "Clear", "description": "clear sky"}],
	"sys": {"sunrise": 1699999000, "sunset": 1700039000}
}`

func newTestTool(t *testing.T, handler http.HandlerFunc) *CurrentWeather {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewCurrentWeather("test-key", WithBaseURL(srv.URL))
}

func TestFetchSuccess(t *testing.T) {
	var query string
	tool := newTestTool(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(samplePayload))
	})

	result := tool.Fetch(context.Background(), &Input{Latitude: 35.68, Longitude: 139.69})
	require.False(t, result.Failed())

	reading := result.Reading()
	require.NotNil(t, reading)
	assert.Equal(t, "Tokyo", reading.Name)
	require.NotNil(t, reading.Main)
	require.NotNil(t, reading.Main.Temp)
	assert.InDelta(t, 21.5, *reading.Main.Temp, 0.001)
	assert.Contains(t, query, "appid=test-key")
	assert.Contains(t, query, "units=metric")
	assert.Equal(t, int64(1), tool.Calls())
}

func TestFetchNon2xxIsFailure(t *testing.T) {
	tool := newTestTool(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	result := tool.Fetch(context.Background(), &Input{Latitude: 1, Longitude: 2})
	assert.True(t, result.Failed())
	assert.Nil(t, result.Reading())
	assert.Contains(t, result.Message(), "401")
}

func TestFetchMalformedPayloadIsFailure(t *testing.T) {
	tool := newTestTool(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})
	result := tool.Fetch(context.Background(), &Input{Latitude: 1, Longitude: 2})
	assert.True(t, result.Failed())
}

func TestFetchToleratesMissingFields(t *testing.T) {
	tool := newTestTool(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "Nowhere"}`))
	})
	result := tool.Fetch(context.Background(), &Input{Latitude: 1, Longitude: 2})
	require.False(t, result.Failed())
	reading := result.Reading()
	require.NotNil(t, reading)
	assert.Nil(t, reading.Main)
	assert.Nil(t, reading.Wind)
	assert.Nil(t, reading.Visibility)
}

func TestFetchFallsBackToRequestedLocationLabel(t *testing.T) {
	tool := newTestTool(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	result := tool.Fetch(context.Background(), &Input{Latitude: 1, Longitude: 2, Location: "Paris"})
	require.False(t, result.Failed())
	assert.Equal(t, "Paris", result.Reading().Name)
}

func TestExecuteRejectsInvalidArguments(t *testing.T) {
	tool := NewCurrentWeather("test-key")

	_, err := tool.Execute(context.Background(), []byte("not json"))
	assert.Error(t, err)

	_, err = tool.Execute(context.Background(), []byte(`{"lat": 123.0, "lon": 0}`))
	assert.Error(t, err)
}

func TestExecuteReturnsResultSchema(t *testing.T) {
	tool := newTestTool(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePayload))
	})
	out, err := tool.Execute(context.Background(), []byte(`{"lat": 35.68, "lon": 139.69}`))
	require.NoError(t, err)
	result, ok := out.(*Result)
	require.True(t, ok)
	assert.False(t, result.Failed())
	assert.Contains(t, result.String(), `"name":"Tokyo"`)
}

func TestResultMarshalFailure(t *testing.T) {
	result := Failure("boom")
	assert.JSONEq(t, `{"error":"boom"}`, result.String())
}
