package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidPayload is returned when decoding a payload that is not a flat
// JSON object of string values.
var ErrInvalidPayload = errors.New("model: payload must be a JSON object of strings")

// Payload maps field names to their submitted values. Keys keep insertion
// order so the encoded object mirrors the field set that produced it.
type Payload struct {
	names  []string
	values map[string]string
}

// NewPayload returns an empty payload sized for n fields.
func NewPayload(n int) *Payload {
	return &Payload{
		names:  make([]string, 0, n),
		values: make(map[string]string, n),
	}
}

// Set stores value under name. Existing names keep their original position.
func (p *Payload) Set(name, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, exists := p.values[name]; !exists {
		p.names = append(p.names, name)
	}
	p.values[name] = value
}

// Get returns the value stored under name.
func (p *Payload) Get(name string) (string, bool) {
	if p == nil || p.values == nil {
		return "", false
	}
	value, ok := p.values[name]
	return value, ok
}

// Names lists the keys in insertion order.
func (p *Payload) Names() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.names...)
}

// Len reports the number of keys.
func (p *Payload) Len() int {
	if p == nil {
		return 0
	}
	return len(p.names)
}

// Map returns an unordered copy of the payload.
func (p *Payload) Map() map[string]string {
	out := make(map[string]string, p.Len())
	if p == nil {
		return out
	}
	for name, value := range p.values {
		out[name] = value
	}
	return out
}

// MarshalJSON encodes the payload as a JSON object in insertion order.
// HTML characters are left unescaped so values reach the server verbatim.
func (p *Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if p != nil {
		for idx, name := range p.names {
			if idx > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(&buf, name); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err := writeJSONString(&buf, p.values[name]); err != nil {
				return nil, err
			}
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat object of strings, preserving key order.
func (p *Payload) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrInvalidPayload
	}

	decoded := NewPayload(0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return ErrInvalidPayload
		}
		valueTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		value, ok := valueTok.(string)
		if !ok {
			return fmt.Errorf("%w: key %q", ErrInvalidPayload, key)
		}
		decoded.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	*p = *decoded
	return nil
}

func writeJSONString(buf *bytes.Buffer, value string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
