// memworld.go
//
// An in-memory World implementation plus a reflection-based Codec for
// plain component structs. MemWorld backs the standalone REPL and the
// test suite; embedding hosts with their own object stores implement
// World themselves and can still reuse StructCodec for ordinary structs
// of scalar, vector, and handle fields.
package fyfth

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// scalarFromHost converts host scalars and math types into Variants.
// Component types are not handled here; Registry.VariantFromHost layers
// codec lookup on top.
func scalarFromHost(v any) (Variant, bool) {
	switch x := v.(type) {
	case Variant:
		return x, true
	case bool:
		return Bool(x), true
	case string:
		return Lit(x), true
	case float32:
		return Num(x), true
	case float64:
		return Num(float32(x)), true
	case int:
		return Num(float32(x)), true
	case int8:
		return Num(float32(x)), true
	case int16:
		return Num(float32(x)), true
	case int32:
		return Num(float32(x)), true
	case int64:
		return Num(float32(x)), true
	case uint:
		return Num(float32(x)), true
	case uint8:
		return Num(float32(x)), true
	case uint16:
		return Num(float32(x)), true
	case uint32:
		return Num(float32(x)), true
	case uint64:
		return Num(float32(x)), true
	case EntityID:
		return Ent(x), true
	case mgl32.Vec2:
		return Vec2Of(x), true
	case mgl32.Vec3:
		return Vec3Of(x), true
	case mgl32.Quat:
		return QuatOf(x), true
	default:
		return Nil, false
	}
}

//--------------------------------------------------
// StructCodec
//--------------------------------------------------

// StructCodec adapts a plain struct type T into a bridge Codec using
// reflection. Fields must hold scalars, strings, EntityIDs, or mgl32
// math types; nested structs, slices, and maps are not supported and
// read as "unsupported type" errors.
type StructCodec[T any] struct {
	key TypeKey
}

// NewStructCodec builds the codec for T under the given stable key.
func NewStructCodec[T any](key TypeKey) *StructCodec[T] {
	return &StructCodec[T]{key: key}
}

func (c *StructCodec[T]) Key() TypeKey  { return c.key }
func (c *StructCodec[T]) Ident() string { return c.key.Ident() }

func (c *StructCodec[T]) New() any {
	var zero T
	return zero
}

// Clone relies on T's value semantics; the supported field types are all
// plain values.
func (c *StructCodec[T]) Clone(v any) any { return v.(T) }

func (c *StructCodec[T]) Equal(a, b any) bool { return reflect.DeepEqual(a, b) }

func (c *StructCodec[T]) Render(v any) string {
	rv := reflect.ValueOf(v.(T))
	rt := rv.Type()

	var b strings.Builder
	b.WriteString(c.Ident())
	b.WriteString(" { ")
	for i := 0; i < rt.NumField(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(rt.Field(i).Name)
		b.WriteString(": ")
		if !rt.Field(i).IsExported() {
			b.WriteString("_")
			continue
		}
		if fv, ok := scalarFromHost(rv.Field(i).Interface()); ok {
			Format(&b, fv, nil, nil)
		} else {
			fmt.Fprintf(&b, "%v", rv.Field(i).Interface())
		}
	}
	b.WriteString(" }")
	return b.String()
}

func (c *StructCodec[T]) FromHost(v any) (Variant, bool) {
	t, ok := v.(T)
	if !ok {
		return Nil, false
	}
	return Comp(NewComponent(c, t)), true
}

func (c *StructCodec[T]) Field(reg *Registry, v any, name string) (Variant, error) {
	rv := reflect.ValueOf(v.(T))
	fv := rv.FieldByName(name)
	if !fv.IsValid() || !fv.CanInterface() {
		return Nil, domainf("component `%s` does not have a field `%s`", c.key, name)
	}

	if reg != nil {
		if out, ok := reg.VariantFromHost(fv.Interface()); ok {
			return out, nil
		}
	} else if out, ok := scalarFromHost(fv.Interface()); ok {
		return out, nil
	}
	return Nil, domainf("field `%s` of component `%s` has an unsupported type", name, c.key)
}

func (c *StructCodec[T]) SetField(v any, name string, val Variant) (any, error) {
	t := v.(T)
	rv := reflect.ValueOf(&t).Elem()
	fv := rv.FieldByName(name)
	if !fv.IsValid() || !fv.CanSet() {
		return nil, domainf("component `%s` does not have a field `%s`", c.key, name)
	}

	if err := setReflectField(fv, val); err != nil {
		return nil, domainf("failed to set field `%s` of component `%s` to value `%s`",
			name, c.key, val.String())
	}
	return t, nil
}

func (c *StructCodec[T]) Extract(w World, id EntityID) (any, bool) {
	return w.Component(id, c.key)
}

func (c *StructCodec[T]) Insert(w World, id EntityID, v any) error {
	return w.SetComponent(id, c.key, v.(T))
}

// setReflectField writes val into a struct field, coercing numbers to
// the field's width. Integer targets reject NaN, infinities, and
// out-of-range values; in-range values truncate toward zero.
func setReflectField(fv reflect.Value, val Variant) error {
	switch val.Tag {
	case VTBool:
		if fv.Kind() != reflect.Bool {
			return typef("bool into %s", fv.Type())
		}
		fv.SetBool(val.Data.(bool))
		return nil

	case VTLit:
		if fv.Kind() != reflect.String {
			return typef("literal into %s", fv.Type())
		}
		fv.SetString(val.Data.(string))
		return nil

	case VTEntity:
		if fv.Type() != reflect.TypeOf(EntityID(0)) {
			return typef("Entity into %s", fv.Type())
		}
		fv.Set(reflect.ValueOf(val.Data.(EntityID)))
		return nil

	case VTVec2, VTVec3, VTQuat:
		dv := reflect.ValueOf(val.Data)
		if fv.Type() != dv.Type() {
			return typef("%s into %s", FormatType(val), fv.Type())
		}
		fv.Set(dv)
		return nil

	case VTNum:
		f := float64(val.Data.(float32))
		switch fv.Kind() {
		case reflect.Float32, reflect.Float64:
			fv.SetFloat(f)
			return nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return typef("non-finite num into %s", fv.Type())
			}
			n := int64(f)
			if fv.OverflowInt(n) {
				return typef("out-of-range num into %s", fv.Type())
			}
			fv.SetInt(n)
			return nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
				return typef("negative or non-finite num into %s", fv.Type())
			}
			n := uint64(f)
			if fv.OverflowUint(n) {
				return typef("out-of-range num into %s", fv.Type())
			}
			fv.SetUint(n)
			return nil
		}
		return typef("num into %s", fv.Type())

	default:
		return typef("%s into %s", FormatType(val), fv.Type())
	}
}

//--------------------------------------------------
// MemWorld
//--------------------------------------------------

// MemWorld is a self-contained World: entities are spawned handles with
// optional names, component values live in per-entity maps, and markers
// are bare string tags.
type MemWorld struct {
	reg     *Registry
	nextID  EntityID
	order   []EntityID
	names   map[EntityID]string
	comps   map[EntityID]map[TypeKey]any
	markers map[string]map[EntityID]bool
}

func NewMemWorld(reg *Registry) *MemWorld {
	return &MemWorld{
		reg:     reg,
		nextID:  1,
		names:   map[EntityID]string{},
		comps:   map[EntityID]map[TypeKey]any{},
		markers: map[string]map[EntityID]bool{},
	}
}

// Spawn creates a live handle. An empty name leaves the entity nameless.
func (w *MemWorld) Spawn(name string) EntityID {
	id := w.nextID
	w.nextID++
	w.order = append(w.order, id)
	w.comps[id] = map[TypeKey]any{}
	if name != "" {
		w.names[id] = name
	}
	return id
}

// Despawn removes a handle and everything attached to it.
func (w *MemWorld) Despawn(id EntityID) {
	for i, e := range w.order {
		if e == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	delete(w.names, id)
	delete(w.comps, id)
	for _, set := range w.markers {
		delete(set, id)
	}
}

func (w *MemWorld) alive(id EntityID) bool {
	_, ok := w.comps[id]
	return ok
}

func (w *MemWorld) Entities() []EntityID {
	return append([]EntityID(nil), w.order...)
}

func (w *MemWorld) Name(id EntityID) (string, bool) {
	name, ok := w.names[id]
	return name, ok
}

func (w *MemWorld) Registry() *Registry { return w.reg }

func (w *MemWorld) Component(id EntityID, key TypeKey) (any, bool) {
	store, ok := w.comps[id]
	if !ok {
		return nil, false
	}
	v, ok := store[key]
	return v, ok
}

func (w *MemWorld) SetComponent(id EntityID, key TypeKey, v any) error {
	store, ok := w.comps[id]
	if !ok {
		return domainf("entity (%s) no longer exists", id)
	}
	if codec, ok := w.reg.Lookup(key); ok {
		v = codec.Clone(v)
	}
	store[key] = v
	return nil
}

func (w *MemWorld) AddMarker(id EntityID, marker string) error {
	if !w.alive(id) {
		return domainf("entity (%s) no longer exists", id)
	}
	set, ok := w.markers[marker]
	if !ok {
		set = map[EntityID]bool{}
		w.markers[marker] = set
	}
	set[id] = true
	return nil
}

func (w *MemWorld) RemoveMarker(id EntityID, marker string) error {
	if !w.alive(id) {
		return domainf("entity (%s) no longer exists", id)
	}
	delete(w.markers[marker], id)
	return nil
}

func (w *MemWorld) Marked(marker string) []EntityID {
	set := w.markers[marker]
	out := make([]EntityID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
