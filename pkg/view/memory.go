package view

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-formsubmit/pkg/model"
)

// Memory is an in-process View and Trigger. It is safe for concurrent use
// and is the adapter used by tests and headless hosts.
type Memory struct {
	mu       sync.RWMutex
	order    []string
	values   map[string]string
	status   string
	handlers []func()
}

var (
	_ View    = (*Memory)(nil)
	_ Trigger = (*Memory)(nil)
)

// NewMemory creates a view exposing every field in set with an empty value.
func NewMemory(set model.FieldSet) *Memory {
	m := &Memory{
		order:  set.Names(),
		values: make(map[string]string, set.Len()),
	}
	for _, name := range m.order {
		m.values[name] = ""
	}
	return m
}

// FieldValue implements View.
func (m *Memory) FieldValue(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	return value, nil
}

// SetFieldValue implements View.
func (m *Memory) SetFieldValue(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[name]; !ok {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	m.values[name] = value
	return nil
}

// SetStatus implements View.
func (m *Memory) SetStatus(text string) error {
	m.mu.Lock()
	m.status = text
	m.mu.Unlock()
	return nil
}

// Status returns the current status text.
func (m *Memory) Status() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Values returns a copy of all field values.
func (m *Memory) Values() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.values))
	for name, value := range m.values {
		out[name] = value
	}
	return out
}

// Fill assigns several fields at once. Unknown names fail the whole call
// and leave every field unchanged.
func (m *Memory) Fill(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name := range values {
		if _, ok := m.values[name]; !ok {
			return fmt.Errorf("%w: %q", ErrFieldNotFound, name)
		}
	}
	for name, value := range values {
		m.values[name] = value
	}
	return nil
}

// OnSubmit implements Trigger.
func (m *Memory) OnSubmit(handler func()) {
	if handler == nil {
		return
	}
	m.mu.Lock()
	m.handlers = append(m.handlers, handler)
	m.mu.Unlock()
}

// Click runs every registered submit handler synchronously, like a user
// clicking the submit control once.
func (m *Memory) Click() {
	m.mu.RLock()
	handlers := append([]func(){}, m.handlers...)
	m.mu.RUnlock()
	for _, handler := range handlers {
		handler()
	}
}

// HandlerCount reports how many submit handlers are attached.
func (m *Memory) HandlerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers)
}
