package model

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// VariantBase collects name and content.
	VariantBase = "base"
	// VariantEmail collects name, email and content.
	VariantEmail = "email"
)

// ErrUnknownVariant is returned by Variant for unrecognised names.
var ErrUnknownVariant = errors.New("model: unknown field set variant")

// BaseFields returns the {name, content} field set.
func BaseFields() FieldSet {
	return FieldSet{
		Name: VariantBase,
		Fields: []Field{
			{Name: "name", Label: "Name"},
			{Name: "content", Label: "Content", Multiline: true},
		},
	}
}

// EmailFields returns the {name, email, content} field set.
func EmailFields() FieldSet {
	return FieldSet{
		Name: VariantEmail,
		Fields: []Field{
			{Name: "name", Label: "Name"},
			{Name: "email", Label: "Email"},
			{Name: "content", Label: "Content", Multiline: true},
		},
	}
}

// Variant resolves a built-in field set by name. Matching is case-insensitive
// and an empty name selects the base variant.
func Variant(name string) (FieldSet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", VariantBase:
		return BaseFields(), nil
	case VariantEmail:
		return EmailFields(), nil
	default:
		return FieldSet{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
}
