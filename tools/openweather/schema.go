package openweather

import (
	"encoding/json"

	"github.com/nimbuslab/weathergent/schema"
)

// Input is the argument schema for the current-conditions capability.
// The coordinate is pre-resolved by the assistant; location is display only.
type Input struct {
	schema.Base
	// Latitude in decimal degrees.
	Latitude float64 `json:"lat" jsonschema:"title=lat,description=Latitude" validate:"latitude"`
	// Longitude in decimal degrees.
	Longitude float64 `json:"lon" jsonschema:"title=lon,description=Longitude" validate:"longitude"`
	// Location optional display label for the coordinate.
	Location string `json:"location,omitempty" jsonschema:"title=location,description=Display name for the location"`
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Coordinate echoes the request coordinate in the provider payload.
type Coordinate struct {
	Latitude  *float64 `json:"lat,omitempty"`
	Longitude *float64 `json:"lon,omitempty"`
}

// Main is the thermal block of a reading.
type Main struct {
	Temp      *float64 `json:"temp,omitempty"`
	FeelsLike *float64 `json:"feels_like,omitempty"`
	TempMin   *float64 `json:"temp_min,omitempty"`
	TempMax   *float64 `json:"temp_max,omitempty"`
	Humidity  *int     `json:"humidity,omitempty"`
	Pressure  *int     `json:"pressure,omitempty"`
}

// Wind is the wind block of a reading.
type Wind struct {
	Speed *float64 `json:"speed,omitempty"`
	Deg   *float64 `json:"deg,omitempty"`
}

// Clouds is the cloud-cover block of a reading.
type Clouds struct {
	All *int `json:"all,omitempty"`
}

// Sys carries sun times. Zero means unknown.
type Sys struct {
	Sunrise int64 `json:"sunrise,omitempty"`
	Sunset  int64 `json:"sunset,omitempty"`
}

// Condition is one weather condition entry.
type Condition struct {
	Main        string `json:"main,omitempty"`
	Description string `json:"description,omitempty"`
}

// Reading is a structured weather snapshot in the provider wire shape.
// Every field is optional; absent fields render as "N/A" downstream.
type Reading struct {
	schema.Base
	Name       string      `json:"name,omitempty"`
	Coord      *Coordinate `json:"coord,omitempty"`
	Dt         int64       `json:"dt,omitempty"`
	Main       *Main       `json:"main,omitempty"`
	Wind       *Wind       `json:"wind,omitempty"`
	Clouds     *Clouds     `json:"clouds,omitempty"`
	Visibility *int        `json:"visibility,omitempty"`
	Weather    []Condition `json:"weather,omitempty"`
	Sys        *Sys        `json:"sys,omitempty"`
}

func (r Reading) String() string {
	bs, _ := json.Marshal(r)
	return string(bs)
}

// Result is the outcome of one capability invocation: a reading or a failure
// message, never both.
type Result struct {
	reading *Reading
	err     string
}

var _ schema.Schema = (*Result)(nil)

// Success wraps a reading into a successful result.
func Success(reading *Reading) *Result {
	return &Result{reading: reading}
}

// Failure wraps a failure message into a result. Transport and payload errors
// stay inside the capability boundary as data.
func Failure(msg string) *Result {
	return &Result{err: msg}
}

// Reading returns the reading of a successful result, nil on failure.
func (r Result) Reading() *Reading {
	return r.reading
}

// Failed reports whether the invocation failed.
func (r Result) Failed() bool {
	return r.err != ""
}

// Message returns the failure message, empty on success.
func (r Result) Message() string {
	return r.err
}

func (r Result) MarshalJSON() ([]byte, error) {
	if r.err != "" {
		return json.Marshal(map[string]string{"error": r.err})
	}
	return json.Marshal(r.reading)
}

func (r Result) String() string {
	bs, _ := r.MarshalJSON()
	return string(bs)
}
