// Package registry holds the static table of tools the menu can launch.
//
// A Registry is built once at startup and is read-only afterwards; there is
// no registration API. Lookups of unknown ids return ErrNotFound.
package registry

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by Lookup for ids that are not in the registry.
var ErrNotFound = errors.New("tool not found")

//go:embed tools.yaml
var defaultDocument []byte

// Registry maps tool ids to their specs.
type Registry struct {
	tools []ToolSpec
	byID  map[int]int
}

type document struct {
	Tools []ToolSpec `yaml:"tools"`
}

// New validates specs and builds a registry ordered by id.
func New(specs ...ToolSpec) (*Registry, error) {
	r := &Registry{
		tools: make([]ToolSpec, 0, len(specs)),
		byID:  make(map[int]int, len(specs)),
	}

	for i := range specs {
		spec := specs[i].clone()
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("tool %d (%s): %w", spec.ID, spec.Name, err)
		}
		if _, dup := r.byID[spec.ID]; dup {
			return nil, fmt.Errorf("duplicate tool id %d", spec.ID)
		}
		r.byID[spec.ID] = -1
		r.tools = append(r.tools, spec)
	}

	sort.Slice(r.tools, func(i, j int) bool { return r.tools[i].ID < r.tools[j].ID })
	for i, spec := range r.tools {
		r.byID[spec.ID] = i
	}
	return r, nil
}

// Load parses a YAML registry document.
func Load(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse tool registry: %w", err)
	}
	return New(doc.Tools...)
}

// Default returns the built-in registry.
func Default() (*Registry, error) {
	return Load(defaultDocument)
}

// List returns every tool ordered by id.
func (r *Registry) List() []ToolSpec {
	out := make([]ToolSpec, len(r.tools))
	for i, spec := range r.tools {
		out[i] = spec.clone()
	}
	return out
}

// Lookup returns the tool with the given id.
func (r *Registry) Lookup(id int) (ToolSpec, error) {
	i, ok := r.byID[id]
	if !ok {
		return ToolSpec{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return r.tools[i].clone(), nil
}

// Len returns the number of tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// MaxID returns the largest tool id, or 0 for an empty registry.
func (r *Registry) MaxID() int {
	if len(r.tools) == 0 {
		return 0
	}
	return r.tools[len(r.tools)-1].ID
}
