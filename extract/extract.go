// Package extract classifies the final message of a bounded exchange: an
// unresolved tool-call notice, an embedded structured reading, or plain prose.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nimbuslab/weathergent/tools/openweather"
)

// Kind classifies the final transcript message.
type Kind int

const (
	PlainText Kind = iota
	PendingToolCall
	StructuredPayload
)

// pendingMarker shows up when a capability invocation was suggested but the
// exchange ended before it resolved.
const pendingMarker = "Suggested tool call"

// Outcome is the extraction result. Reading is set only for StructuredPayload.
type Outcome struct {
	Kind    Kind
	Text    string
	Reading *openweather.Reading
}

// Extract inspects the final transcript message. It never fails: a span that
// does not parse as a reading degrades to plain text.
//
// The structured span is the first '{' through the last '}'. Unrelated nested
// braces can defeat this; the parse failure then falls through to plain text,
// which is the accepted behavior.
func Extract(text string) Outcome {
	if strings.Contains(text, pendingMarker) {
		return Outcome{Kind: PendingToolCall, Text: text}
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		var reading openweather.Reading
		if err := json.Unmarshal([]byte(text[start:end+1]), &reading); err == nil {
			return Outcome{Kind: StructuredPayload, Text: text, Reading: &reading}
		} else {
			logrus.WithError(err).Debug("embedded payload did not parse, passing text through")
		}
	}
	return Outcome{Kind: PlainText, Text: text}
}
