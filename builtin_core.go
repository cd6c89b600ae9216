// builtin_core.go
//
// Core vocabulary: printing, the variable environment, comparisons, and
// the conditional combinators. Every command here is pure with respect to
// the host world; none of them touch entities or components.
package fyfth

import (
	"fmt"
	"sort"
)

// ret is sugar for command results.
func ret(v Variant) *Variant { return &v }

func cmdPrint(ctx *Context, args []Variant) (*Variant, error) {
	Format(ctx.Out, args[0], ctx.World, ctx.Lang)
	return nil, nil
}

func cmdPrintVars(ctx *Context, args []Variant) (*Variant, error) {
	idents := make([]string, 0, len(ctx.Vars))
	for ident := range ctx.Vars {
		idents = append(idents, ident)
	}
	sort.Strings(idents)
	for _, ident := range idents {
		fmt.Fprintf(ctx.Out, "%q : ", ident)
		Format(ctx.Out, ctx.Vars[ident], ctx.World, ctx.Lang)
		ctx.Out.WriteByte('\n')
	}
	return nil, nil
}

func cmdStore(ctx *Context, args []Variant) (*Variant, error) {
	val, name := args[0], args[1]
	if name.Tag != VTLit {
		return nil, syntaxf("the operation `store` needs to operate on `X literal`")
	}
	ctx.Vars[name.Data.(string)] = val.Clone()
	return nil, nil
}

func cmdLoad(ctx *Context, args []Variant) (*Variant, error) {
	name := args[0]
	if name.Tag != VTLit {
		return nil, syntaxf("the operation `load` needs to operate on `literal`")
	}
	val, ok := ctx.Vars[name.Data.(string)]
	if !ok {
		return nil, domainf("no variable of the name `%s` found", name.Data.(string))
	}
	return ret(val.Clone()), nil
}

func cmdPop(ctx *Context, args []Variant) (*Variant, error) {
	return nil, nil
}

func cmdType(ctx *Context, args []Variant) (*Variant, error) {
	return ret(Lit(FormatType(args[0]))), nil
}

// cmdEq backs both `eq` (broadcasting) and `eqq` (whole-value).
func cmdEq(ctx *Context, args []Variant) (*Variant, error) {
	return ret(Bool(args[0].Equal(args[1]))), nil
}

func cmdNot(ctx *Context, args []Variant) (*Variant, error) {
	if args[0].Tag != VTBool {
		return nil, syntaxf("the operation `not` needs to operate on `bool`")
	}
	return ret(Bool(!args[0].Data.(bool))), nil
}

func cmdGeq(ctx *Context, args []Variant) (*Variant, error) {
	if args[0].Tag != VTNum || args[1].Tag != VTNum {
		return nil, syntaxf("the operation `geq` needs to operate on two `num` types")
	}
	return ret(Bool(args[0].Data.(float32) >= args[1].Data.(float32))), nil
}

func cmdLeq(ctx *Context, args []Variant) (*Variant, error) {
	if args[0].Tag != VTNum || args[1].Tag != VTNum {
		return nil, syntaxf("the operation `leq` needs to operate on two `num` types")
	}
	return ret(Bool(args[0].Data.(float32) <= args[1].Data.(float32))), nil
}

// cmdFilter keeps its value argument when the paired condition is true
// and produces nothing otherwise; under broadcasting the nothings vanish
// from the collected iter.
func cmdFilter(ctx *Context, args []Variant) (*Variant, error) {
	val, cond := args[0], args[1]
	keep, ok := cond.AsBool()
	if !ok {
		return nil, syntaxf("the operation `filter` needs to operate on `X bool`")
	}
	if !keep {
		return nil, nil
	}
	return ret(val), nil
}

func cmdSelect(ctx *Context, args []Variant) (*Variant, error) {
	cond, thenVal, elseVal := args[0], args[1], args[2]
	if cond.Tag != VTBool {
		return nil, syntaxf("the operation `select` needs to operate on `bool X Y`")
	}
	if cond.Data.(bool) {
		return ret(thenVal), nil
	}
	return ret(elseVal), nil
}
