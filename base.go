// base.go
//
// The base vocabulary and its prefix shorthands. BaseLanguage builds the
// standard extension; hosts that bring their own vocabulary start from
// NewLanguage and Merge this one in, or skip it entirely.
//
// Prefix shorthands:
//
//	*word   load the variable `word`
//	$word   load the variable `word` and splice it onto the queue,
//	        i.e. run it as a macro
//	@word   run the `fuzzent` macro on `word` and take the first hit:
//	        entity lookup by fuzzy name
package fyfth

func BaseLanguage() *Language {
	lang := NewLanguage()

	lang.Register("entities", cmdEntities).
		Register("get", cmdGet, MayIter, MayIter).
		Register("set", cmdSet, MayIter, MayIter, MayIter).
		Register("add", cmdAdd, MayIter, MayIter).
		Register("sub", cmdSub, MayIter, MayIter).
		Register("mul", cmdMul, MayIter, MayIter).
		Register("div", cmdDiv, MayIter, MayIter).
		Register("print", cmdPrint, IgnoreIter).
		Register("store", cmdStore, IgnoreIter, IgnoreIter).
		Register("load", cmdLoad, MayIter).
		Register("print_vars", cmdPrintVars).
		Register("geq", cmdGeq, MayIter, MayIter).
		Register("leq", cmdLeq, MayIter, MayIter).
		Register("eq", cmdEq, MayIter, MayIter).
		Register("eqq", cmdEq, IgnoreIter, IgnoreIter).
		Register("not", cmdNot, MayIter).
		Register("name", cmdName, MayIter).
		Register("pop", cmdPop, IgnoreIter).
		Register("index", cmdIndex, IgnoreIter, MayIter).
		Register("enum", cmdEnum, IgnoreIter).
		Register("len", cmdLen, IgnoreIter).
		Register("type", cmdType, IgnoreIter).
		Register("append", cmdAppend, IgnoreIter, IgnoreIter).
		Register("extend", cmdExtend, IgnoreIter, IgnoreIter).
		Register("reverse", cmdReverse, IgnoreIter).
		Register("filter", cmdFilter, MayIter, MayIter).
		Register("select", cmdSelect, MayIter, MayIter, MayIter).
		Register("mod", cmdMod, MayIter, MayIter).
		Register("vec2", cmdVec2, MayIter, MayIter).
		Register("vec3", cmdVec3, MayIter, MayIter, MayIter).
		Register("quat", cmdQuat, MayIter, MayIter, MayIter, MayIter).
		Register("fuzzy", cmdFuzzy, MayIter, MayIter).
		Register("regex", cmdRegex, MayIter, MayIter).
		Register("sin", cmdSin, MayIter).
		Register("cos", cmdCos, MayIter).
		Register("tan", cmdTan, MayIter).
		Register("atan", cmdAtan, MayIter).
		Register("atan2", cmdAtan2, MayIter, MayIter)

	lang.RegisterPrefix('*', prefixLoad)
	lang.RegisterPrefix('$', prefixRunMacro)
	lang.RegisterPrefix('@', prefixFuzzyEntity)

	return lang
}

func prefixLoad(word string, lang *Language) ([]Variant, error) {
	load, ok := lang.CommandID("load")
	if !ok {
		return nil, syntaxf("the `*` prefix requires a `load` command")
	}
	return []Variant{Lit(word), Command(load)}, nil
}

func prefixRunMacro(word string, lang *Language) ([]Variant, error) {
	load, ok := lang.CommandID("load")
	if !ok {
		return nil, syntaxf("the `$` prefix requires a `load` command")
	}
	return []Variant{Lit(word), Command(load), CtrlQueue}, nil
}

func prefixFuzzyEntity(word string, lang *Language) ([]Variant, error) {
	load, okLoad := lang.CommandID("load")
	index, okIndex := lang.CommandID("index")
	if !okLoad || !okIndex {
		return nil, syntaxf("the `@` prefix requires `load` and `index` commands")
	}
	return []Variant{
		Lit(word),
		Lit("fuzzent"),
		Command(load),
		CtrlQueue,
		Num(0),
		Command(index),
	}, nil
}
