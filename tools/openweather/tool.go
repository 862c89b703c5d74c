package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"
	"go.uber.org/atomic"

	"github.com/nimbuslab/weathergent/schema"
	"github.com/nimbuslab/weathergent/tools"
)

// ToolName is the capability name advertised to the assistant role.
const ToolName = "get_current_weather"

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	defaultUnits   = "metric"
	// fetchTimeout bounds a single invocation. A timeout is treated the same
	// as any other transport failure.
	fetchTimeout = 10 * time.Second
)

var validate = validator.New()

type Config struct {
	tools.Config
	apiKey     string
	baseURL    string
	units      string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
}

// CurrentWeather fetches current conditions for a coordinate from the
// OpenWeather API. A single attempt per invocation; retries are the caller's
// responsibility.
type CurrentWeather struct {
	Config
	calls atomic.Int64
}

var _ tools.Executor = (*CurrentWeather)(nil)

// NewCurrentWeather returns a new CurrentWeather tool.
func NewCurrentWeather(apiKey string, opts ...Option) *CurrentWeather {
	ret := new(CurrentWeather)
	ret.apiKey = apiKey
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle(ToolName)
	}
	if ret.Description() == "" {
		ret.SetDescription("Get current weather by coordinates. Returns: temperature(°C), conditions, humidity(%), wind speed(m/s)")
	}
	if ret.baseURL == "" {
		ret.baseURL = defaultBaseURL
	}
	if ret.units == "" {
		ret.units = defaultUnits
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{Timeout: fetchTimeout}
	}
	if ret.circuit == nil {
		ret.circuit = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "openweather",
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		})
	}
	return ret
}

// Parameters returns the argument schema advertised to the assistant role.
func (t *CurrentWeather) Parameters() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"lat": map[string]any{
				"type":        "number",
				"description": "Latitude",
			},
			"lon": map[string]any{
				"type":        "number",
				"description": "Longitude",
			},
			"location": map[string]any{
				"type":        "string",
				"description": "Display name for the location",
			},
		},
		"required": []string{"lat", "lon"},
	}
}

// Calls returns the number of invocations performed so far.
func (t *CurrentWeather) Calls() int64 {
	return t.calls.Load()
}

// Execute implements tools.Executor. Arguments that do not bind to a valid
// coordinate are an error; provider failures come back as Failure data.
func (t *CurrentWeather) Execute(ctx context.Context, arguments []byte) (schema.Schema, error) {
	var input Input
	if err := json.Unmarshal(arguments, &input); err != nil {
		return nil, fmt.Errorf("invalid weather arguments: %w", err)
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid coordinate: %w", err)
	}
	return t.Fetch(ctx, &input), nil
}

// Fetch performs a single bounded attempt against the provider. It never
// surfaces a transport error: any failure is returned as data.
func (t *CurrentWeather) Fetch(ctx context.Context, input *Input) *Result {
	t.calls.Inc()

	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(input.Latitude, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(input.Longitude, 'f', -1, 64))
	values.Set("appid", t.apiKey)
	values.Set("units", t.units)
	reqURL := fmt.Sprintf("%s?%s", t.baseURL, values.Encode())

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Failure(err.Error())
	}

	result, err := t.circuit.Execute(func() (interface{}, error) {
		resp, err := t.httpClient.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status code from weather provider: %d", resp.StatusCode)
		}
		var reading Reading
		if err := json.NewDecoder(resp.Body).Decode(&reading); err != nil {
			return nil, fmt.Errorf("malformed provider payload: %v", err)
		}
		return &reading, nil
	})
	if err != nil {
		return Failure(err.Error())
	}

	reading, ok := result.(*Reading)
	if !ok {
		return Failure("unexpected result type from weather provider")
	}
	if reading.Name == "" && input.Location != "" {
		reading.Name = input.Location
	}
	return Success(reading)
}
