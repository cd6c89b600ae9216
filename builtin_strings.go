// builtin_strings.go
//
// String matching: case-folded subsequence matching for quick interactive
// filtering, and full regular expressions with named-capture binding into
// the variable environment.
package fyfth

import (
	"regexp"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// cmdFuzzy reports whether the right literal is a case-insensitive
// subsequence of the left one. A non-literal left operand is simply no
// match, so broadcasts over mixed iters behave like a filter predicate.
func cmdFuzzy(ctx *Context, args []Variant) (*Variant, error) {
	lhs, rhs := args[0], args[1]
	switch {
	case lhs.Tag == VTLit && rhs.Tag == VTLit:
		return ret(Bool(fuzzy.MatchFold(rhs.Data.(string), lhs.Data.(string)))), nil
	case rhs.Tag == VTLit:
		return ret(Bool(false)), nil
	default:
		return nil, syntaxf("the operation `fuzzy` needs to operate on `X literal`")
	}
}

// cmdRegex matches the left literal against the right pattern. On a match
// every named capture group is bound in the variable environment: one hit
// binds a literal, several bind an iter of literals.
func cmdRegex(ctx *Context, args []Variant) (*Variant, error) {
	lhs, rhs := args[0], args[1]
	switch {
	case lhs.Tag == VTLit && rhs.Tag == VTLit:
		re, err := regexp.Compile(rhs.Data.(string))
		if err != nil {
			return nil, domainf("failed to parse regex: %v", err)
		}
		subject := lhs.Data.(string)
		if !re.MatchString(subject) {
			return ret(Bool(false)), nil
		}

		names := re.SubexpNames()
		matches := re.FindAllStringSubmatch(subject, -1)
		for gi, name := range names {
			if name == "" {
				continue
			}
			var captures []Variant
			for _, m := range matches {
				if gi < len(m) && m[gi] != "" {
					captures = append(captures, Lit(m[gi]))
				}
			}
			switch len(captures) {
			case 0:
			case 1:
				ctx.Vars[name] = captures[0]
			default:
				ctx.Vars[name] = IterOf(captures)
			}
		}
		return ret(Bool(true)), nil
	case rhs.Tag == VTLit:
		return ret(Bool(false)), nil
	default:
		return nil, syntaxf("the operation `regex` needs to operate on `X literal`")
	}
}
