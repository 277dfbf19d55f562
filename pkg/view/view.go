// Package view defines the form-view capability a submission controller
// drives. Adapters implement View for a concrete surface (terminal, browser
// DOM, memory) and Trigger for whatever fires a submission.
package view

import "errors"

var (
	// ErrFieldNotFound is returned when a view has no element for a field.
	ErrFieldNotFound = errors.New("view: field not found")
	// ErrStatusNotFound is returned when a view has no status slot.
	ErrStatusNotFound = errors.New("view: status element not found")
)

// View reads and writes the values of named fields and the status text.
type View interface {
	FieldValue(name string) (string, error)
	SetFieldValue(name, value string) error
	SetStatus(text string) error
}

// Trigger fires handler whenever the user asks to submit.
type Trigger interface {
	OnSubmit(handler func())
}

// TriggerFunc adapts a function to the Trigger interface.
type TriggerFunc func(handler func())

// OnSubmit calls f(handler).
func (f TriggerFunc) OnSubmit(handler func()) {
	f(handler)
}
