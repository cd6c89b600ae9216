// printer.go
//
// Deterministic textual rendering of Variants, used for diagnostics and
// for "show current state" displays. Rendering an entity consults the
// world for its display name; rendering a command index consults the
// language for its keyword. Both may be nil, in which case the fallback
// forms are used.
package fyfth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

func formatNum(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

// Format appends the rendering of v to buf.
func Format(buf *strings.Builder, v Variant, world World, lang *Language) {
	switch v.Tag {
	case VTNil:
		buf.WriteString("nil")
	case VTBool:
		fmt.Fprintf(buf, "%v", v.Data.(bool))
	case VTNum:
		buf.WriteString(formatNum(v.Data.(float32)))
	case VTLit:
		buf.WriteByte('"')
		buf.WriteString(v.Data.(string))
		buf.WriteByte('"')
	case VTEntity:
		id := v.Data.(EntityID)
		if world != nil {
			if name, ok := world.Name(id); ok {
				fmt.Fprintf(buf, "(%s - %q)", id, name)
				return
			}
		}
		fmt.Fprintf(buf, "(%s)", id)
	case VTIter:
		xs := v.Data.([]Variant)
		fmt.Fprintf(buf, "[%d items; ", len(xs))
		for i, el := range xs {
			if i > 0 {
				buf.WriteString(", ")
			}
			Format(buf, el, world, lang)
		}
		buf.WriteByte(']')
	case VTVec2:
		val := v.Data.(mgl32.Vec2)
		fmt.Fprintf(buf, "vec2(%s %s)", formatNum(val.X()), formatNum(val.Y()))
	case VTVec3:
		val := v.Data.(mgl32.Vec3)
		fmt.Fprintf(buf, "vec3(%s %s %s)", formatNum(val.X()), formatNum(val.Y()), formatNum(val.Z()))
	case VTQuat:
		val := v.Data.(mgl32.Quat)
		fmt.Fprintf(buf, "quat(%s %s %s %s)",
			formatNum(val.X()), formatNum(val.Y()), formatNum(val.Z()), formatNum(val.W))
	case VTComp:
		buf.WriteString(v.Data.(*Component).String())
	case CTIter:
		buf.WriteString("iter")
	case CTMacro:
		buf.WriteString("macro")
	case CTLineEnd:
		buf.WriteString(";")
	case CTQueue:
		buf.WriteString("queue")
	case CTPush:
		buf.WriteString("push")
	case CTDup:
		buf.WriteString("dup")
	case CTSwap:
		buf.WriteString("swap")
	case CTSwapN:
		buf.WriteString("swap_n")
	case CTRotR:
		buf.WriteString("rotr")
	case CTRotL:
		buf.WriteString("rotl")
	case CTCommand:
		id := v.Data.(int)
		if lang != nil && lang.Keyword(id) != "" {
			buf.WriteString(lang.Keyword(id))
		} else {
			fmt.Fprintf(buf, "func#%d", id)
		}
	}
}

// FormatString is Format into a fresh string.
func FormatString(v Variant, world World, lang *Language) string {
	var buf strings.Builder
	Format(&buf, v, world, lang)
	return buf.String()
}

// FormatType renders the type name of v, as shown in type-mismatch
// diagnostics and returned by the `type` command.
func FormatType(v Variant) string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		return "bool"
	case VTNum:
		return "num"
	case VTLit:
		return "literal"
	case VTEntity:
		return "Entity"
	case VTIter:
		return "iter"
	case VTVec2:
		return "vec2"
	case VTVec3:
		return "vec3"
	case VTQuat:
		return "quat"
	case VTComp:
		return v.Data.(*Component).Codec().Ident()
	case CTMacro, CTLineEnd:
		return "special"
	default:
		return "func"
	}
}

func formatTypes(args ...Variant) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = FormatType(a)
	}
	return strings.Join(parts, " ")
}

// FormatStackState renders the whole stack, delimiter-separated, bottom
// first. This is what interactive front ends display after a run.
func (it *Interp) FormatStackState(world World, delimiter string) string {
	var buf strings.Builder
	for i, v := range it.stack {
		if i > 0 {
			buf.WriteString(delimiter)
		}
		Format(&buf, v, world, it.lang)
	}
	return buf.String()
}
