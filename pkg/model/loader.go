package model

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFieldSet reads a field set definition from fsys. Files may be JSON or
// YAML; the result is validated before it is returned.
func LoadFieldSet(fsys fs.FS, path string) (FieldSet, error) {
	if fsys == nil {
		return FieldSet{}, fmt.Errorf("model: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return FieldSet{}, fmt.Errorf("model: read %s: %w", path, err)
	}
	return ParseFieldSet(data, path)
}

// ParseFieldSet decodes a JSON or YAML field set definition. source is only
// used in error messages.
func ParseFieldSet(data []byte, source string) (FieldSet, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return FieldSet{}, fmt.Errorf("model: file %s is empty", source)
	}

	var set FieldSet
	if err := json.Unmarshal(data, &set); err != nil {
		set = FieldSet{}
		if err := yaml.Unmarshal(data, &set); err != nil {
			return FieldSet{}, fmt.Errorf("model: parse %s: invalid JSON or YAML", source)
		}
	}

	for idx := range set.Fields {
		set.Fields[idx].Name = strings.TrimSpace(set.Fields[idx].Name)
	}
	if err := set.Validate(); err != nil {
		return FieldSet{}, fmt.Errorf("model: %s: %w", source, err)
	}
	return set, nil
}
