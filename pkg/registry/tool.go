package registry

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ToolSpec describes one invokable external tool and its expected inputs.
type ToolSpec struct {
	ID          int         `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Script      string      `yaml:"script"`
	Fields      []FieldSpec `yaml:"inputs"`
}

// Validate implements validation.Validatable.
func (s ToolSpec) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ID, validation.Required, validation.Min(1)),
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Script, validation.Required),
		validation.Field(&s.Fields, validation.By(uniqueFieldNames)),
	)
}

// Validate implements validation.Validatable.
func (f FieldSpec) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Prompt, validation.Required),
		validation.Field(&f.Type, validation.By(knownFieldType)),
	)
}

func uniqueFieldNames(value any) error {
	fields, _ := value.([]FieldSpec)
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			return fmt.Errorf("duplicate field name %q", f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

func knownFieldType(value any) error {
	t, ok := value.(FieldType)
	if !ok || !t.Valid() {
		return errors.New("must be one of string, bool, int, float")
	}
	return nil
}

// Field returns the named field spec.
func (s ToolSpec) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Check verifies that inputs holds exactly the tool's fields, each with a
// value of the declared type. It is the last gate before a tool is launched.
func (s ToolSpec) Check(inputs *InputMap) error {
	if inputs == nil {
		return fmt.Errorf("%w: no inputs collected for %s", ErrInvalidValue, s.Name)
	}
	for _, f := range s.Fields {
		v, ok := inputs.Get(f.Name)
		if !ok {
			return fmt.Errorf("%w: missing field %q", ErrInvalidValue, f.Name)
		}
		if !f.Type.Conforms(v) {
			return fmt.Errorf("%w: field %q holds %T, want %s", ErrInvalidValue, f.Name, v, f.Type)
		}
	}
	if inputs.Len() != len(s.Fields) {
		for _, name := range inputs.Keys() {
			if _, ok := s.Field(name); !ok {
				return fmt.Errorf("%w: unexpected field %q", ErrInvalidValue, name)
			}
		}
	}
	return nil
}

func (s ToolSpec) clone() ToolSpec {
	out := s
	out.Fields = append([]FieldSpec(nil), s.Fields...)
	return out
}
