package mutators

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/beevik/etree"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Mutator is one domain mutation of a Jenkins config document. The
// reconciler checks RootTag against the loaded document before Mutate
// runs; a mutator never touches the filesystem itself.
type Mutator interface {
	// Name is the resource name from the state file.
	Name() string

	// RootTag is the document root tag this mutator requires.
	RootTag() string

	// DefaultConffile is the logical config file mutated when the
	// resource does not name one.
	DefaultConffile() string

	// Describe returns the human comment for a completed mutation of
	// the given config file.
	Describe(conffile string) string

	// Mutate applies the change to the in-memory document.
	Mutate(doc *etree.Document) error
}

// Factory builds a mutator from a resource name and its raw params node.
// A nil params node means the resource carried no params block.
type Factory func(name string, params *yaml.Node) (Mutator, error)

// validate checks mutator parameter structs; shared across factories.
var validate = validator.New()

var registry = map[string]Factory{
	"dockercloud": newDockerCloudFromParams,
	"adminemail":  newAdminEmailFromParams,
}

// New builds the mutator registered for the given resource type.
func New(typ, name string, params *yaml.Node) (Mutator, error) {
	factory, ok := registry[typ]
	if !ok {
		return nil, fmt.Errorf("unknown resource type %q (known: %v)", typ, Types())
	}
	return factory(name, params)
}

// Known reports whether a resource type is registered.
func Known(typ string) bool {
	_, ok := registry[typ]
	return ok
}

// Types lists the registered resource types in sorted order.
func Types() []string {
	types := make([]string, 0, len(registry))
	for typ := range registry {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// decodeParams fills out from the raw params node, tolerating an absent
// block, then validates the result. Unknown param keys are rejected so a
// typo in the state file fails instead of being dropped.
func decodeParams(params *yaml.Node, out any) error {
	if params != nil && params.Kind != 0 {
		raw, err := yaml.Marshal(params)
		if err != nil {
			return fmt.Errorf("decode params: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("decode params: %w", err)
		}
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}
