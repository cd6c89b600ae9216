// builtin_host.go
//
// The vocabulary that touches the host world: enumerating entities,
// reading names, and moving component values across the bridge. `get` and
// `set` are deliberately polymorphic; their entity arms go through the
// registry's name resolution so scripts can abbreviate component types.
package fyfth

import "github.com/go-gl/mathgl/mgl32"

func worldOf(ctx *Context, op string) (World, error) {
	if ctx.World == nil {
		return nil, domainf("the operation `%s` requires an attached world", op)
	}
	return ctx.World, nil
}

func cmdEntities(ctx *Context, args []Variant) (*Variant, error) {
	w, err := worldOf(ctx, "entities")
	if err != nil {
		return nil, err
	}
	ids := w.Entities()
	out := make([]Variant, len(ids))
	for i, id := range ids {
		out[i] = Ent(id)
	}
	return ret(IterOf(out)), nil
}

func cmdName(ctx *Context, args []Variant) (*Variant, error) {
	switch args[0].Tag {
	case VTEntity:
		w, err := worldOf(ctx, "name")
		if err != nil {
			return nil, err
		}
		if name, ok := w.Name(args[0].Data.(EntityID)); ok {
			return ret(Lit(name)), nil
		}
		return ret(Nil), nil
	case VTComp:
		return ret(Lit(string(args[0].Data.(*Component).Codec().Key()))), nil
	default:
		return nil, syntaxf("the operation `name` needs to operate on `Entity`")
	}
}

func cmdGet(ctx *Context, args []Variant) (*Variant, error) {
	lhs, rhs := args[0], args[1]
	switch {
	case lhs.Tag == VTIter && rhs.Tag == VTNum:
		xs := lhs.Data.([]Variant)
		i, ok := iterIndex(xs, rhs.Data.(float32))
		if !ok {
			return nil, domainf("`get` tried getting index %d of an iter of length %d", i, len(xs))
		}
		return ret(xs[i].Clone()), nil

	case lhs.Tag == VTVec2 && rhs.Tag == VTLit:
		v := lhs.Data.(mgl32.Vec2)
		switch rhs.Data.(string) {
		case "x":
			return ret(Num(v.X())), nil
		case "y":
			return ret(Num(v.Y())), nil
		}
		return nil, domainf("vec2 has no `%s` component", rhs.Data.(string))

	case lhs.Tag == VTVec3 && rhs.Tag == VTLit:
		v := lhs.Data.(mgl32.Vec3)
		switch rhs.Data.(string) {
		case "x":
			return ret(Num(v.X())), nil
		case "y":
			return ret(Num(v.Y())), nil
		case "z":
			return ret(Num(v.Z())), nil
		}
		return nil, domainf("vec3 has no `%s` component", rhs.Data.(string))

	case lhs.Tag == VTQuat && rhs.Tag == VTLit:
		q := lhs.Data.(mgl32.Quat)
		switch rhs.Data.(string) {
		case "x":
			return ret(Num(q.X())), nil
		case "y":
			return ret(Num(q.Y())), nil
		case "z":
			return ret(Num(q.Z())), nil
		case "w":
			return ret(Num(q.W)), nil
		}
		return nil, domainf("quat has no `%s` component", rhs.Data.(string))

	case lhs.Tag == VTEntity && rhs.Tag == VTLit:
		w, err := worldOf(ctx, "get")
		if err != nil {
			return nil, err
		}
		codec, err := w.Registry().Resolve(rhs.Data.(string))
		if err != nil {
			return nil, err
		}
		id := lhs.Data.(EntityID)
		raw, ok := codec.Extract(w, id)
		if !ok {
			return nil, domainf("entity (%s) does not contain component `%s`", id, codec.Key())
		}
		return ret(Comp(NewComponent(codec, raw))), nil

	case lhs.Tag == VTComp && rhs.Tag == VTLit:
		var reg *Registry
		if ctx.World != nil {
			reg = ctx.World.Registry()
		}
		val, err := lhs.Data.(*Component).Field(reg, rhs.Data.(string))
		if err != nil {
			return nil, err
		}
		return ret(val), nil

	default:
		return nil, syntaxf("the operation `get` is incompatible with types `%s`", formatTypes(lhs, rhs))
	}
}

func cmdSet(ctx *Context, args []Variant) (*Variant, error) {
	lhs, mhs, rhs := args[0], args[1], args[2]
	switch {
	case lhs.Tag == VTIter && mhs.Tag == VTNum:
		xs := lhs.Data.([]Variant)
		i, ok := iterIndex(xs, mhs.Data.(float32))
		if !ok {
			return nil, domainf("`set` tried setting index %d of an iter of length %d", i, len(xs))
		}
		out := make([]Variant, len(xs))
		for j, v := range xs {
			out[j] = v.Clone()
		}
		out[i] = rhs.Clone()
		return ret(IterOf(out)), nil

	case lhs.Tag == VTComp && mhs.Tag == VTLit:
		updated, err := lhs.Data.(*Component).WithField(mhs.Data.(string), rhs)
		if err != nil {
			return nil, err
		}
		return ret(Comp(updated)), nil

	default:
		return nil, syntaxf("the operation `set` is incompatible with types `%s`", formatTypes(lhs, mhs, rhs))
	}
}
