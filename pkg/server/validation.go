package server

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goliatone/go-formsubmit/pkg/model"
)

const (
	maxLineRunes      = 200
	maxMultilineRunes = 2000
)

var placeholderPattern = regexp.MustCompile(`{[a-z]+}`)

// fieldRules returns the checks for one declared field. The comment fields
// keep their fixed limits; any other field is required and bounded by
// whether it is single or multi line.
func fieldRules(field model.Field) []validation.Rule {
	required := validation.Required.Error("is required")
	between := "must be between {min} and {max} characters"

	switch field.Name {
	case "name":
		return []validation.Rule{
			required,
			validation.RuneLength(5, 20).Error(between),
			is.PrintableASCII.Error("must contain printable ASCII characters only"),
		}
	case "email":
		return []validation.Rule{
			required,
			validation.RuneLength(5, 40).Error(between),
			is.Email.Error("must be a valid email address"),
		}
	case "content":
		return []validation.Rule{
			required,
			validation.RuneLength(5, 50).Error(between),
		}
	}
	limit := maxLineRunes
	if field.Multiline {
		limit = maxMultilineRunes
	}
	return []validation.Rule{
		required,
		validation.RuneLength(1, limit).Error(between),
	}
}

// validateSubmission checks every declared field of fields against values.
// Keys outside the field set are ignored.
func validateSubmission(fields model.FieldSet, values *model.Payload) error {
	errs := validation.Errors{}
	for _, field := range fields.Fields {
		value, _ := values.Get(field.Name)
		if err := validation.Validate(value, fieldRules(field)...); err != nil {
			errs[field.Name] = err
		}
	}
	return errs.Filter()
}

// validationMessage fills {param} placeholders from each rule's parameters
// and formats the result with the library's "field: message; ..." layout.
func validationMessage(errs validation.Errors) string {
	for key, err := range errs {
		verr, ok := err.(validation.Error)
		if !ok {
			continue
		}
		params := verr.Params()
		message := placeholderPattern.ReplaceAllStringFunc(verr.Message(), func(s string) string {
			value, ok := params[strings.Trim(s, "{}")]
			if !ok {
				return s
			}
			return fmt.Sprint(value)
		})
		errs[key] = verr.SetMessage(message)
	}
	return errs.Error()
}
