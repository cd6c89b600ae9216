// builtin_iter.go
//
// Iter plumbing: indexing, ranges, length, concatenation, and reversal.
// Negative indices count from the end. `index` deliberately ignores
// broadcasting on its iter argument so it can pluck a single element out
// of an iter that would otherwise fan out.
package fyfth

func iterIndex(xs []Variant, index float32) (int, bool) {
	i := int(index)
	if index < 0 {
		i = len(xs) + i
	}
	return i, i >= 0 && i < len(xs)
}

func cmdIndex(ctx *Context, args []Variant) (*Variant, error) {
	lhs, rhs := args[0], args[1]
	if lhs.Tag != VTIter || rhs.Tag != VTNum {
		return nil, syntaxf("the operation `index` needs to operate on `iter num`")
	}
	xs := lhs.Data.([]Variant)
	i, ok := iterIndex(xs, rhs.Data.(float32))
	if !ok {
		return nil, domainf("index `%d` out of range for an iterator of length %d", i, len(xs))
	}
	return ret(xs[i].Clone()), nil
}

const maxEnumRange = 1_000_000

// cmdEnum yields the index range of an iter, or 0..n for a num.
func cmdEnum(ctx *Context, args []Variant) (*Variant, error) {
	switch args[0].Tag {
	case VTIter:
		xs := args[0].Data.([]Variant)
		out := make([]Variant, len(xs))
		for i := range xs {
			out[i] = Num(float32(i))
		}
		return ret(IterOf(out)), nil
	case VTNum:
		n := args[0].Data.(float32)
		if n < 0 || n > maxEnumRange {
			return nil, domainf("%s is not a valid `enum` range", formatNum(n))
		}
		out := make([]Variant, int(n))
		for i := range out {
			out[i] = Num(float32(i))
		}
		return ret(IterOf(out)), nil
	default:
		return nil, syntaxf("the operation `enum` needs to operate on `iter` or `num`")
	}
}

func cmdLen(ctx *Context, args []Variant) (*Variant, error) {
	if args[0].Tag != VTIter {
		return nil, syntaxf("the operation `len` needs to operate on `iter`")
	}
	return ret(Num(float32(len(args[0].Data.([]Variant))))), nil
}

func cmdAppend(ctx *Context, args []Variant) (*Variant, error) {
	lhs, rhs := args[0], args[1]
	if lhs.Tag != VTIter {
		return nil, syntaxf("the operation `append` needs to operate on `iter X`")
	}
	xs := lhs.Data.([]Variant)
	out := make([]Variant, 0, len(xs)+1)
	out = append(out, xs...)
	out = append(out, rhs.Clone())
	return ret(IterOf(out)), nil
}

func cmdExtend(ctx *Context, args []Variant) (*Variant, error) {
	lhs, rhs := args[0], args[1]
	if lhs.Tag != VTIter || rhs.Tag != VTIter {
		return nil, syntaxf("the operation `extend` needs to operate on two `iter` types")
	}
	a, b := lhs.Data.([]Variant), rhs.Data.([]Variant)
	out := make([]Variant, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return ret(IterOf(out)), nil
}

func cmdReverse(ctx *Context, args []Variant) (*Variant, error) {
	if args[0].Tag != VTIter {
		return nil, syntaxf("the operation `reverse` needs to operate on `iter`")
	}
	xs := args[0].Data.([]Variant)
	out := make([]Variant, len(xs))
	for i, v := range xs {
		out[len(xs)-1-i] = v.Clone()
	}
	return ret(IterOf(out)), nil
}
