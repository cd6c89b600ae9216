// builtin_math.go
//
// Arithmetic, trigonometry, and the vector/quaternion constructors. The
// binary operators pattern-match over their argument shapes: `add` also
// concatenates literals and attaches components to entities, `mul` covers
// scalar/vector/quaternion combinations, and `mod` keeps its historical
// quirk of yielding nil for a non-numeric left operand.
package fyfth

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func cmdAdd(ctx *Context, args []Variant) (*Variant, error) {
	lhs, rhs := args[0], args[1]
	switch {
	case lhs.Tag == VTNum && rhs.Tag == VTNum:
		return ret(Num(lhs.Data.(float32) + rhs.Data.(float32))), nil
	case lhs.Tag == VTVec2 && rhs.Tag == VTVec2:
		return ret(Vec2Of(lhs.Data.(mgl32.Vec2).Add(rhs.Data.(mgl32.Vec2)))), nil
	case lhs.Tag == VTVec3 && rhs.Tag == VTVec3:
		return ret(Vec3Of(lhs.Data.(mgl32.Vec3).Add(rhs.Data.(mgl32.Vec3)))), nil
	case lhs.Tag == VTLit && rhs.Tag == VTNum:
		return ret(Lit(lhs.Data.(string) + formatNum(rhs.Data.(float32)))), nil
	case lhs.Tag == VTLit && rhs.Tag == VTLit:
		return ret(Lit(lhs.Data.(string) + rhs.Data.(string))), nil
	case lhs.Tag == VTEntity && rhs.Tag == VTComp:
		w, err := worldOf(ctx, "add")
		if err != nil {
			return nil, err
		}
		comp := rhs.Data.(*Component)
		if err := comp.Codec().Insert(w, lhs.Data.(EntityID), comp.Value()); err != nil {
			return nil, err
		}
		return nil, nil
	default:
		return nil, syntaxf("the operation `add` is incompatible with types `%s`", formatTypes(lhs, rhs))
	}
}

func cmdSub(ctx *Context, args []Variant) (*Variant, error) {
	lhs, rhs := args[0], args[1]
	if lhs.Tag == VTNum && rhs.Tag == VTNum {
		return ret(Num(lhs.Data.(float32) - rhs.Data.(float32))), nil
	}
	return nil, syntaxf("the operation `sub` is incompatible with types `%s`", formatTypes(lhs, rhs))
}

func cmdMul(ctx *Context, args []Variant) (*Variant, error) {
	lhs, rhs := args[0], args[1]
	switch {
	case lhs.Tag == VTNum && rhs.Tag == VTNum:
		return ret(Num(lhs.Data.(float32) * rhs.Data.(float32))), nil
	case lhs.Tag == VTVec2 && rhs.Tag == VTNum:
		return ret(Vec2Of(lhs.Data.(mgl32.Vec2).Mul(rhs.Data.(float32)))), nil
	case lhs.Tag == VTVec3 && rhs.Tag == VTNum:
		return ret(Vec3Of(lhs.Data.(mgl32.Vec3).Mul(rhs.Data.(float32)))), nil
	case lhs.Tag == VTNum && rhs.Tag == VTVec2:
		return ret(Vec2Of(rhs.Data.(mgl32.Vec2).Mul(lhs.Data.(float32)))), nil
	case lhs.Tag == VTNum && rhs.Tag == VTVec3:
		return ret(Vec3Of(rhs.Data.(mgl32.Vec3).Mul(lhs.Data.(float32)))), nil
	case lhs.Tag == VTVec2 && rhs.Tag == VTVec2:
		a, b := lhs.Data.(mgl32.Vec2), rhs.Data.(mgl32.Vec2)
		return ret(Vec2(a.X()*b.X(), a.Y()*b.Y())), nil
	case lhs.Tag == VTVec3 && rhs.Tag == VTVec3:
		a, b := lhs.Data.(mgl32.Vec3), rhs.Data.(mgl32.Vec3)
		return ret(Vec3(a.X()*b.X(), a.Y()*b.Y(), a.Z()*b.Z())), nil
	case lhs.Tag == VTQuat && rhs.Tag == VTQuat:
		return ret(QuatOf(lhs.Data.(mgl32.Quat).Mul(rhs.Data.(mgl32.Quat)))), nil
	default:
		return nil, syntaxf("the operation `mul` cannot work on types `%s`", formatTypes(lhs, rhs))
	}
}

func cmdDiv(ctx *Context, args []Variant) (*Variant, error) {
	lhs, rhs := args[0], args[1]
	switch {
	case lhs.Tag == VTNum && rhs.Tag == VTNum:
		return ret(Num(lhs.Data.(float32) / rhs.Data.(float32))), nil
	case lhs.Tag == VTVec2 && rhs.Tag == VTNum:
		return ret(Vec2Of(lhs.Data.(mgl32.Vec2).Mul(1 / rhs.Data.(float32)))), nil
	case lhs.Tag == VTVec3 && rhs.Tag == VTNum:
		return ret(Vec3Of(lhs.Data.(mgl32.Vec3).Mul(1 / rhs.Data.(float32)))), nil
	case lhs.Tag == VTVec2 && rhs.Tag == VTVec2:
		a, b := lhs.Data.(mgl32.Vec2), rhs.Data.(mgl32.Vec2)
		return ret(Vec2(a.X()/b.X(), a.Y()/b.Y())), nil
	case lhs.Tag == VTVec3 && rhs.Tag == VTVec3:
		a, b := lhs.Data.(mgl32.Vec3), rhs.Data.(mgl32.Vec3)
		return ret(Vec3(a.X()/b.X(), a.Y()/b.Y(), a.Z()/b.Z())), nil
	default:
		return nil, syntaxf("the operation `div` cannot work on types `%s`", formatTypes(lhs, rhs))
	}
}

// cmdMod works on truncated integer operands. A non-numeric left operand
// with a numeric right one yields nil rather than an error, so broadcasts
// over mixed iters keep going.
func cmdMod(ctx *Context, args []Variant) (*Variant, error) {
	lhs, rhs := args[0], args[1]
	switch {
	case lhs.Tag == VTNum && rhs.Tag == VTNum:
		return ret(Num(float32(int32(lhs.Data.(float32)) % int32(rhs.Data.(float32))))), nil
	case rhs.Tag == VTNum:
		return ret(Nil), nil
	default:
		return nil, syntaxf("the operation `mod` needs to operate on `X num`")
	}
}

func cmdVec2(ctx *Context, args []Variant) (*Variant, error) {
	if args[0].Tag != VTNum || args[1].Tag != VTNum {
		return nil, syntaxf("the operation `vec2` needs to operate on `num num`")
	}
	return ret(Vec2(args[0].Data.(float32), args[1].Data.(float32))), nil
}

func cmdVec3(ctx *Context, args []Variant) (*Variant, error) {
	for _, a := range args {
		if a.Tag != VTNum {
			return nil, syntaxf("the operation `vec3` needs to operate on `num num num`")
		}
	}
	return ret(Vec3(args[0].Data.(float32), args[1].Data.(float32), args[2].Data.(float32))), nil
}

func cmdQuat(ctx *Context, args []Variant) (*Variant, error) {
	for _, a := range args {
		if a.Tag != VTNum {
			return nil, syntaxf("the operation `quat` needs to operate on `num num num num`")
		}
	}
	return ret(Quat(
		args[0].Data.(float32),
		args[1].Data.(float32),
		args[2].Data.(float32),
		args[3].Data.(float32),
	)), nil
}

func cmdSin(ctx *Context, args []Variant) (*Variant, error) {
	if args[0].Tag != VTNum {
		return nil, syntaxf("the operation `sin` needs to operate on `num`")
	}
	return ret(Num(float32(math.Sin(float64(args[0].Data.(float32)))))), nil
}

func cmdCos(ctx *Context, args []Variant) (*Variant, error) {
	if args[0].Tag != VTNum {
		return nil, syntaxf("the operation `cos` needs to operate on `num`")
	}
	return ret(Num(float32(math.Cos(float64(args[0].Data.(float32)))))), nil
}

func cmdTan(ctx *Context, args []Variant) (*Variant, error) {
	if args[0].Tag != VTNum {
		return nil, syntaxf("the operation `tan` needs to operate on `num`")
	}
	return ret(Num(float32(math.Tan(float64(args[0].Data.(float32)))))), nil
}

func cmdAtan(ctx *Context, args []Variant) (*Variant, error) {
	if args[0].Tag != VTNum {
		return nil, syntaxf("the operation `atan` needs to operate on `num`")
	}
	return ret(Num(float32(math.Atan(float64(args[0].Data.(float32)))))), nil
}

func cmdAtan2(ctx *Context, args []Variant) (*Variant, error) {
	if args[0].Tag != VTNum || args[1].Tag != VTNum {
		return nil, syntaxf("the operation `atan2` needs to operate on `num num`")
	}
	y := float64(args[0].Data.(float32))
	x := float64(args[1].Data.(float32))
	return ret(Num(float32(math.Atan2(y, x)))), nil
}
