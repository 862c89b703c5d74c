package openweather

import (
	"net/http"

	"github.com/sony/gobreaker"
)

type Option func(*Config)

func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.baseURL = baseURL
	}
}

func WithUnits(units string) Option {
	return func(c *Config) {
		c.units = units
	}
}

func WithHTTPClient(clt *http.Client) Option {
	return func(c *Config) {
		c.httpClient = clt
	}
}

func WithCircuitBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(c *Config) {
		c.circuit = cb
	}
}
