// types.go
//
// The runtime value model: a closed tagged union called Variant. Every slot
// of the stack, the queue, and the variable environment holds a Variant.
//
// The union has two partitions:
//
//   - Value variants (VT*): data. When the run loop pops one off the queue
//     it is pushed onto the stack unchanged.
//   - Control variants (CT*): instructions. They are consumed by the run
//     loop to mutate stack/queue structure or to dispatch a registered
//     command. A control variant never ends up inside a container: macro
//     bodies hold them only as raw, unexecuted queue entries.
//
// The tag determines the concrete type of Data:
//
//	VTNil     nil
//	VTBool    bool
//	VTNum     float32
//	VTLit     string (immutable; concatenation builds a new one)
//	VTIter    []Variant (ordered, possibly heterogeneous)
//	VTEntity  EntityID (opaque host handle; equality by identity)
//	VTVec2    mgl32.Vec2
//	VTVec3    mgl32.Vec3
//	VTQuat    mgl32.Quat
//	VTComp    *Component (opaque host field-bag; clone/equality via codec)
//	CTCommand int (index into the Language command table)
//	other CT* nil
package fyfth

import (
	"github.com/go-gl/mathgl/mgl32"
)

// VariantTag enumerates every kind a Variant may hold.
type VariantTag int

const (
	VTNil    VariantTag = iota // nil (no payload)
	VTBool                     // bool
	VTNum                      // float32
	VTLit                      // string
	VTIter                     // []Variant
	VTEntity                   // EntityID
	VTVec2                     // mgl32.Vec2
	VTVec3                     // mgl32.Vec3
	VTQuat                     // mgl32.Quat
	VTComp                     // *Component

	CTIter    // collect the whole stack into one iter
	CTMacro   // capture the following queue span as a named macro
	CTLineEnd // statement terminator `;`, discarded when executed
	CTQueue   // splice the top-of-stack iter onto the queue front
	CTPush    // append the top-of-stack iter's elements to the stack
	CTDup     // duplicate top of stack
	CTSwap    // exchange the top two stack values
	CTSwapN   // swap top with the element N below it
	CTRotR    // move top to position S-from-top
	CTRotL    // move the element at position S-from-top to the top
	CTCommand // dispatch a registered command (Data: int index)
)

// Variant is the universal runtime carrier.
type Variant struct {
	Tag  VariantTag
	Data any
}

// Nil is the singleton nil Variant.
var Nil = Variant{Tag: VTNil}

// Primitive constructors.
func Bool(b bool) Variant          { return Variant{Tag: VTBool, Data: b} }
func Num(f float32) Variant        { return Variant{Tag: VTNum, Data: f} }
func Lit(s string) Variant         { return Variant{Tag: VTLit, Data: s} }
func IterOf(xs []Variant) Variant  { return Variant{Tag: VTIter, Data: xs} }
func Ent(id EntityID) Variant      { return Variant{Tag: VTEntity, Data: id} }
func Comp(c *Component) Variant    { return Variant{Tag: VTComp, Data: c} }
func Command(index int) Variant    { return Variant{Tag: CTCommand, Data: index} }
func Vec2(x, y float32) Variant    { return Variant{Tag: VTVec2, Data: mgl32.Vec2{x, y}} }
func Vec3(x, y, z float32) Variant { return Variant{Tag: VTVec3, Data: mgl32.Vec3{x, y, z}} }

// Quat builds a normalized quaternion value from xyzw components.
func Quat(x, y, z, w float32) Variant {
	q := mgl32.Quat{W: w, V: mgl32.Vec3{x, y, z}}.Normalize()
	return Variant{Tag: VTQuat, Data: q}
}

// Wrappers for already-built payloads.
func Vec2Of(v mgl32.Vec2) Variant { return Variant{Tag: VTVec2, Data: v} }
func Vec3Of(v mgl32.Vec3) Variant { return Variant{Tag: VTVec3, Data: v} }
func QuatOf(q mgl32.Quat) Variant { return Variant{Tag: VTQuat, Data: q} }

// Control singletons used by the parser and by prefix expansions.
var (
	CtrlIter    = Variant{Tag: CTIter}
	CtrlMacro   = Variant{Tag: CTMacro}
	CtrlLineEnd = Variant{Tag: CTLineEnd}
	CtrlQueue   = Variant{Tag: CTQueue}
	CtrlPush    = Variant{Tag: CTPush}
	CtrlDup     = Variant{Tag: CTDup}
	CtrlSwap    = Variant{Tag: CTSwap}
	CtrlSwapN   = Variant{Tag: CTSwapN}
	CtrlRotR    = Variant{Tag: CTRotR}
	CtrlRotL    = Variant{Tag: CTRotL}
)

// IsControl reports whether v belongs to the control partition. Control
// variants are executed by the run loop; value variants are pushed.
func (v Variant) IsControl() bool { return v.Tag >= CTIter }

// Checked payload accessors.

func (v Variant) AsBool() (bool, bool) {
	b, ok := v.Data.(bool)
	return b, ok && v.Tag == VTBool
}

func (v Variant) AsNum() (float32, bool) {
	f, ok := v.Data.(float32)
	return f, ok && v.Tag == VTNum
}

func (v Variant) AsLit() (string, bool) {
	s, ok := v.Data.(string)
	return s, ok && v.Tag == VTLit
}

func (v Variant) AsIter() ([]Variant, bool) {
	xs, ok := v.Data.([]Variant)
	return xs, ok && v.Tag == VTIter
}

// Clone produces a deep copy. Iters are cloned element-wise and components
// go through their codec; every other payload is an immutable value type.
func (v Variant) Clone() Variant {
	switch v.Tag {
	case VTIter:
		src := v.Data.([]Variant)
		dst := make([]Variant, len(src))
		for i, el := range src {
			dst[i] = el.Clone()
		}
		return IterOf(dst)
	case VTComp:
		return Comp(v.Data.(*Component).Clone())
	default:
		return v
	}
}

// Equal is deep structural equality. Entities compare by handle identity,
// components through their codec's equality hook.
func (v Variant) Equal(o Variant) bool {
	if v.Tag != o.Tag {
		return false
	}
	switch v.Tag {
	case VTNil, CTIter, CTMacro, CTLineEnd, CTQueue, CTPush, CTDup, CTSwap, CTSwapN, CTRotR, CTRotL:
		return true
	case VTBool:
		return v.Data.(bool) == o.Data.(bool)
	case VTNum:
		return v.Data.(float32) == o.Data.(float32)
	case VTLit:
		return v.Data.(string) == o.Data.(string)
	case VTEntity:
		return v.Data.(EntityID) == o.Data.(EntityID)
	case VTVec2:
		return v.Data.(mgl32.Vec2) == o.Data.(mgl32.Vec2)
	case VTVec3:
		return v.Data.(mgl32.Vec3) == o.Data.(mgl32.Vec3)
	case VTQuat:
		return v.Data.(mgl32.Quat) == o.Data.(mgl32.Quat)
	case VTIter:
		a, b := v.Data.([]Variant), o.Data.([]Variant)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case VTComp:
		return v.Data.(*Component).Equal(o.Data.(*Component))
	case CTCommand:
		return v.Data.(int) == o.Data.(int)
	default:
		return false
	}
}

// String renders a world- and language-independent debug representation.
// Diagnostics that can reach the host use Format instead.
func (v Variant) String() string {
	return FormatString(v, nil, nil)
}
