// Package model defines the field sets a submission controller collects and
// the payload it sends. A FieldSet is an ordered list of named text inputs;
// a Payload maps each field name to the value read at submit time and keeps
// field-set order when encoded as JSON, so the request body lists keys in
// the same order the form declares them. Two built-in sets are provided
// (BaseFields and EmailFields); others can be loaded from YAML or JSON files
// with LoadFieldSet or derived from an OpenAPI operation via pkg/openapi.
package model
