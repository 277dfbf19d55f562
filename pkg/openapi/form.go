package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/goliatone/go-formsubmit/pkg/model"
)

// multilineThreshold is the maxLength above which a string property is
// rendered as a multi-line input.
const multilineThreshold = 200

var (
	// ErrOperationNotFound is returned when the document lacks the operation.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrUnsupportedMethod is returned for operations that are not POSTs.
	ErrUnsupportedMethod = errors.New("openapi: operation is not a POST")
	// ErrNoTextFields is returned when the request body has no string
	// properties to collect.
	ErrNoTextFields = errors.New("openapi: request body has no string properties")
)

// Form is a field set together with where it should be submitted.
type Form struct {
	OperationID string
	Method      string
	Endpoint    string
	Fields      model.FieldSet
}

// FormFor maps the flat string properties of op's request body to fields.
// Required properties come first in the order the schema lists them; the
// rest follow alphabetically. Non-string properties are ignored.
func FormFor(op Operation) (Form, error) {
	if op.Method != "" && !strings.EqualFold(op.Method, http.MethodPost) {
		return Form{}, fmt.Errorf("%w: %s %s", ErrUnsupportedMethod, op.Method, op.ID)
	}
	body := op.RequestBody
	if len(body.Properties) == 0 {
		return Form{}, fmt.Errorf("%w: %s", ErrNoTextFields, op.ID)
	}

	ordered := make([]string, 0, len(body.Properties))
	seen := make(map[string]struct{}, len(body.Properties))
	for _, name := range body.Required {
		if _, ok := body.Properties[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		ordered = append(ordered, name)
	}
	rest := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	ordered = append(ordered, rest...)

	set := model.FieldSet{Name: op.ID}
	for _, name := range ordered {
		prop := body.Properties[name]
		if !isTextSchema(prop) {
			continue
		}
		set.Fields = append(set.Fields, model.Field{
			Name:      name,
			Label:     strings.TrimSpace(prop.Title),
			Multiline: isMultiline(prop),
		})
	}
	if err := set.Validate(); err != nil {
		if errors.Is(err, model.ErrNoFields) {
			return Form{}, fmt.Errorf("%w: %s", ErrNoTextFields, op.ID)
		}
		return Form{}, fmt.Errorf("openapi: %s: %w", op.ID, err)
	}

	return Form{
		OperationID: op.ID,
		Method:      op.Method,
		Endpoint:    op.Path,
		Fields:      set,
	}, nil
}

// LoadForm loads src, parses it and builds the form for operationID.
func LoadForm(ctx context.Context, loader Loader, parser Parser, src Source, operationID string) (Form, error) {
	if loader == nil || parser == nil {
		return Form{}, errors.New("openapi: loader and parser are required")
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return Form{}, err
	}
	operations, err := parser.Operations(ctx, doc)
	if err != nil {
		return Form{}, err
	}
	op, ok := operations[operationID]
	if !ok {
		return Form{}, fmt.Errorf("%w: %q in %s", ErrOperationNotFound, operationID, doc.Location())
	}
	return FormFor(op)
}

func isTextSchema(s Schema) bool {
	switch s.Type {
	case "", "string":
		return len(s.Properties) == 0
	default:
		return false
	}
}

func isMultiline(s Schema) bool {
	if strings.EqualFold(s.Format, "textarea") {
		return true
	}
	return s.MaxLength != nil && *s.MaxLength > multilineThreshold
}
