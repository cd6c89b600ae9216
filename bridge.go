// bridge.go
//
// The extraction bridge: the only path by which host-owned field values
// become Variants and go back. Each host component type registers a Codec,
// a bundle of capabilities keyed by an opaque, stable TypeKey. Component
// values are never structurally inspected by the engine; cloning,
// equality, rendering, and field access all go through the codec.
//
// Name resolution for "get component by name" is three-staged: exact
// case-insensitive identifier match, then subsequence fuzzy match on the
// identifier, then subsequence fuzzy match on the fully-qualified key.
// Zero matches is "not found" and more than one is "ambiguous"; neither is
// ever silently guessed.
package fyfth

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// TypeKey is the stable, fully-qualified identity of a host component
// type, e.g. "demo::Transform".
type TypeKey string

// Ident returns the short identifier: the part after the last path
// separator.
func (k TypeKey) Ident() string {
	s := string(k)
	if i := strings.LastIndexAny(s, ":./"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Codec is the per-type capability table of the extraction bridge.
type Codec interface {
	// Key is the stable type identity; Ident its short spelling.
	Key() TypeKey
	Ident() string

	// New constructs the type's default value.
	New() any

	// Clone deep-copies a host value; Equal compares two of them.
	Clone(v any) any
	Equal(a, b any) bool

	// Render produces the deterministic display form.
	Render(v any) string

	// FromHost converts an arbitrary host-reflected value into a
	// Variant, reporting false when the value is not of this type.
	FromHost(v any) (Variant, bool)

	// Field reads a named field as a Variant; SetField returns a new
	// host value with the named field replaced.
	Field(reg *Registry, v any, name string) (Variant, error)
	SetField(v any, name string, val Variant) (any, error)

	// Extract pulls the component off a live handle; Insert attaches a
	// value to one.
	Extract(w World, id EntityID) (any, bool)
	Insert(w World, id EntityID, v any) error
}

// Component is an opaque, cloneable, equality-comparable handle to a host
// field-bag. It is only obtained through the bridge.
type Component struct {
	codec Codec
	value any
}

// NewComponent wraps a host value in a bridge handle. The value is cloned
// so the handle never aliases live host state.
func NewComponent(c Codec, v any) *Component {
	return &Component{codec: c, value: c.Clone(v)}
}

func (c *Component) Codec() Codec { return c.codec }
func (c *Component) Value() any   { return c.value }

func (c *Component) Clone() *Component {
	return &Component{codec: c.codec, value: c.codec.Clone(c.value)}
}

func (c *Component) Equal(o *Component) bool {
	if c.codec.Key() != o.codec.Key() {
		return false
	}
	return c.codec.Equal(c.value, o.value)
}

func (c *Component) String() string { return c.codec.Render(c.value) }

// Field reads a named field of the component as a Variant.
func (c *Component) Field(reg *Registry, name string) (Variant, error) {
	return c.codec.Field(reg, c.value, name)
}

// WithField returns a new component whose named field holds val. The
// receiver is not modified.
func (c *Component) WithField(name string, val Variant) (*Component, error) {
	nv, err := c.codec.SetField(c.codec.Clone(c.value), name, val)
	if err != nil {
		return nil, err
	}
	return &Component{codec: c.codec, value: nv}, nil
}

// Registry is the ordered codec table for one host configuration.
type Registry struct {
	codecs []Codec
	byKey  map[TypeKey]Codec
}

func NewRegistry() *Registry {
	return &Registry{byKey: map[TypeKey]Codec{}}
}

// Add registers a codec. Re-registering a TypeKey is an error.
func (r *Registry) Add(c Codec) error {
	if _, exists := r.byKey[c.Key()]; exists {
		return &ConflictError{Msg: fmt.Sprintf("component type %q registered twice", c.Key())}
	}
	r.codecs = append(r.codecs, c)
	r.byKey[c.Key()] = c
	return nil
}

// Lookup finds a codec by exact key.
func (r *Registry) Lookup(key TypeKey) (Codec, bool) {
	c, ok := r.byKey[key]
	return c, ok
}

// Codecs returns the registration-ordered codec list.
func (r *Registry) Codecs() []Codec { return r.codecs }

// Resolve maps a user-supplied name to exactly one codec, or fails with a
// DomainError ("not found" or "ambiguous", listing the candidates).
func (r *Registry) Resolve(name string) (Codec, error) {
	stages := []func(c Codec) bool{
		func(c Codec) bool { return strings.EqualFold(c.Ident(), name) },
		func(c Codec) bool { return fuzzy.MatchFold(name, c.Ident()) },
		func(c Codec) bool { return fuzzy.MatchFold(name, string(c.Key())) },
	}

	for _, match := range stages {
		var hits []Codec
		for _, c := range r.codecs {
			if match(c) {
				hits = append(hits, c)
			}
		}
		switch len(hits) {
		case 0:
			continue
		case 1:
			return hits[0], nil
		default:
			keys := make([]string, len(hits))
			for i, c := range hits {
				keys[i] = string(c.Key())
			}
			return nil, domainf("multiple component types fit the name %q: %s", name, strings.Join(keys, ", "))
		}
	}
	return nil, domainf("could not find component type %q in the registry", name)
}

// VariantFromHost converts an arbitrary host-reflected value into a
// Variant: scalars and math types directly, registered component types
// through their codec.
func (r *Registry) VariantFromHost(v any) (Variant, bool) {
	if out, ok := scalarFromHost(v); ok {
		return out, true
	}
	for _, c := range r.codecs {
		if out, ok := c.FromHost(v); ok {
			return out, true
		}
	}
	return Nil, false
}
