package submit

import (
	"bytes"
	"encoding/json"
	"errors"
)

// DefaultFallbackMessage is shown when a failure carries no usable message.
const DefaultFallbackMessage = "submission failed"

var (
	// ErrSubmissionInFlight is returned when a submission is triggered while
	// another one is still waiting for its response.
	ErrSubmissionInFlight = errors.New("submit: submission already in flight")
	// ErrNilView is returned by New when no view is supplied.
	ErrNilView = errors.New("submit: view is nil")
	// ErrNilTrigger is returned by Bind when no trigger is supplied.
	ErrNilTrigger = errors.New("submit: trigger is nil")
)

// ErrorMessage extracts the "error" string from a JSON object body. Bodies
// that are empty, not JSON objects, lack the key, or hold a non-string value
// yield fallback.
func ErrorMessage(body []byte, fallback string) string {
	if len(body) == 0 {
		return fallback
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fallback
	}
	raw, ok := envelope["error"]
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return fallback
	}
	var message string
	if err := json.Unmarshal(raw, &message); err != nil {
		return fallback
	}
	return message
}
