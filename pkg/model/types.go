package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyFieldName is returned when a field set declares a blank name.
	ErrEmptyFieldName = errors.New("model: field name is empty")
	// ErrDuplicateField is returned when a field set declares a name twice.
	ErrDuplicateField = errors.New("model: duplicate field name")
	// ErrNoFields is returned when a field set declares no fields at all.
	ErrNoFields = errors.New("model: field set has no fields")
)

// Field is a single named text input. The name doubles as the JSON key in
// the submitted payload and as the element identifier in view adapters.
type Field struct {
	Name      string `json:"name" yaml:"name"`
	Label     string `json:"label,omitempty" yaml:"label,omitempty"`
	Multiline bool   `json:"multiline,omitempty" yaml:"multiline,omitempty"`
}

// DisplayLabel returns the configured label or one derived from the name.
func (f Field) DisplayLabel() string {
	return f.LabelWith(DefaultLabeler)
}

// LabelWith returns the configured label or labeler(f.Name). A nil labeler
// falls back to DefaultLabeler.
func (f Field) LabelWith(labeler Labeler) string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	if labeler == nil {
		labeler = DefaultLabeler
	}
	return labeler(f.Name)
}

// FieldSet is the ordered list of fields read on every submission.
type FieldSet struct {
	Name   string  `json:"name,omitempty" yaml:"name,omitempty"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// NewFieldSet builds a set from plain field names.
func NewFieldSet(name string, fields ...string) FieldSet {
	set := FieldSet{Name: name, Fields: make([]Field, 0, len(fields))}
	for _, field := range fields {
		set.Fields = append(set.Fields, Field{Name: field})
	}
	return set
}

// Names lists the field names in declaration order.
func (s FieldSet) Names() []string {
	names := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Len reports the number of declared fields.
func (s FieldSet) Len() int {
	return len(s.Fields)
}

// Field returns the declaration for name.
func (s FieldSet) Field(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Has reports whether name is declared.
func (s FieldSet) Has(name string) bool {
	_, ok := s.Field(name)
	return ok
}

// Validate checks the set is usable for submissions: at least one field,
// no blank names and no duplicates.
func (s FieldSet) Validate() error {
	if len(s.Fields) == 0 {
		return ErrNoFields
	}
	seen := make(map[string]struct{}, len(s.Fields))
	for idx, field := range s.Fields {
		if strings.TrimSpace(field.Name) == "" {
			return fmt.Errorf("%w (index %d)", ErrEmptyFieldName, idx)
		}
		if _, exists := seen[field.Name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateField, field.Name)
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}

// Clone returns a copy that does not share the Fields slice.
func (s FieldSet) Clone() FieldSet {
	cloned := s
	if s.Fields != nil {
		cloned.Fields = append([]Field(nil), s.Fields...)
	}
	return cloned
}
