package registry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidValue is returned when raw input cannot be coerced to a field's type.
var ErrInvalidValue = errors.New("invalid field value")

// FieldType is the closed set of input types a tool may declare.
type FieldType uint8

// Field types. The zero value is invalid; a missing type tag fails validation.
const (
	fieldTypeUnknown FieldType = iota
	FieldString
	FieldBool
	FieldInt
	FieldFloat
)

// FieldTypes lists every valid field type.
var FieldTypes = []FieldType{FieldString, FieldBool, FieldInt, FieldFloat}

// truthy is the accepted set for boolean fields. Anything else is false.
var truthy = map[string]bool{
	"y":    true,
	"yes":  true,
	"true": true,
	"1":    true,
}

// ParseFieldType maps a registry type tag to a FieldType.
func ParseFieldType(tag string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "string", "str":
		return FieldString, nil
	case "bool", "boolean":
		return FieldBool, nil
	case "int", "integer":
		return FieldInt, nil
	case "float":
		return FieldFloat, nil
	default:
		return fieldTypeUnknown, fmt.Errorf("unknown field type %q", tag)
	}
}

func (t FieldType) String() string {
	switch t {
	case FieldString:
		return "string"
	case FieldBool:
		return "boolean"
	case FieldInt:
		return "integer"
	case FieldFloat:
		return "float"
	default:
		return fmt.Sprintf("FieldType(%d)", uint8(t))
	}
}

// Valid reports whether t is one of FieldTypes.
func (t FieldType) Valid() bool {
	switch t {
	case FieldString, FieldBool, FieldInt, FieldFloat:
		return true
	default:
		return false
	}
}

// UnmarshalYAML decodes a type tag such as "int" or "bool".
func (t *FieldType) UnmarshalYAML(node *yaml.Node) error {
	var tag string
	if err := node.Decode(&tag); err != nil {
		return err
	}
	parsed, err := ParseFieldType(tag)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*t = parsed
	return nil
}

// Coerce converts one line of user input into the field's Go value:
// string, bool, int64 or float64. Booleans and strings never fail.
func (t FieldType) Coerce(raw string) (any, error) {
	switch t {
	case FieldString:
		return raw, nil
	case FieldBool:
		return truthy[strings.ToLower(raw)], nil
	case FieldInt:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a valid %s", ErrInvalidValue, raw, t)
		}
		return n, nil
	case FieldFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %q is not a valid %s", ErrInvalidValue, raw, t)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unknown field type %d", uint8(t))
	}
}

// Conforms reports whether v is a value Coerce could have produced for t.
func (t FieldType) Conforms(v any) bool {
	switch t {
	case FieldString:
		_, ok := v.(string)
		return ok
	case FieldBool:
		_, ok := v.(bool)
		return ok
	case FieldInt:
		_, ok := v.(int64)
		return ok
	case FieldFloat:
		f, ok := v.(float64)
		return ok && !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return false
	}
}

// FieldSpec is one named, typed input of a tool.
type FieldSpec struct {
	Name   string    `yaml:"name"`
	Prompt string    `yaml:"prompt"`
	Type   FieldType `yaml:"type"`
}
