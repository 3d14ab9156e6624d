package state

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jenconf/jenconf/pkg/mutators"
)

// Resource is one declarative entry in the state file.
type Resource struct {
	// Name identifies the resource; for adminemail it doubles as the
	// address to set.
	Name string `yaml:"name" validate:"required"`

	// Type selects the registered mutator (e.g. "dockercloud").
	Type string `yaml:"type" validate:"required"`

	// Conffile is the logical config file to mutate; empty means the
	// mutator's default.
	Conffile string `yaml:"conffile"`

	// Params is the mutator-specific parameter block, decoded by the
	// mutator factory.
	Params yaml.Node `yaml:"params"`
}

// File is a parsed state file.
type File struct {
	Resources []Resource `yaml:"resources" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Load reads and validates the state file at path. Unknown fields and
// unknown resource types are rejected here so every resource handed to
// the reconciler can be built.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a state file from raw YAML bytes.
func Parse(raw []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("state file is empty")
		}
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid state file: %w", err)
	}
	for _, r := range f.Resources {
		if !mutators.Known(r.Type) {
			return nil, fmt.Errorf("resource %q: unknown type %q (known: %v)",
				r.Name, r.Type, mutators.Types())
		}
	}
	return &f, nil
}

// Mutator builds the mutator for one resource.
func (r *Resource) Mutator() (mutators.Mutator, error) {
	params := r.Params
	return mutators.New(r.Type, r.Name, &params)
}
