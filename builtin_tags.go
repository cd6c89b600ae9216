// builtin_tags.go
//
// The tagging extension: a small optional vocabulary for flagging
// entities with named markers and querying them back. It ships as its own
// Language so hosts opt in via Merge.
package fyfth

func TagLanguage() *Language {
	lang := NewLanguage()
	lang.Register("tag", cmdTag, MayIter, IgnoreIter).
		Register("untag", cmdUntag, MayIter, IgnoreIter).
		Register("tagged", cmdTagged, IgnoreIter)
	return lang
}

func cmdTag(ctx *Context, args []Variant) (*Variant, error) {
	ent, marker := args[0], args[1]
	if ent.Tag != VTEntity || marker.Tag != VTLit {
		return nil, syntaxf("the operation `tag` needs to operate on `Entity literal`")
	}
	w, err := worldOf(ctx, "tag")
	if err != nil {
		return nil, err
	}
	return nil, w.AddMarker(ent.Data.(EntityID), marker.Data.(string))
}

func cmdUntag(ctx *Context, args []Variant) (*Variant, error) {
	ent, marker := args[0], args[1]
	if ent.Tag != VTEntity || marker.Tag != VTLit {
		return nil, syntaxf("the operation `untag` needs to operate on `Entity literal`")
	}
	w, err := worldOf(ctx, "untag")
	if err != nil {
		return nil, err
	}
	return nil, w.RemoveMarker(ent.Data.(EntityID), marker.Data.(string))
}

func cmdTagged(ctx *Context, args []Variant) (*Variant, error) {
	marker := args[0]
	if marker.Tag != VTLit {
		return nil, syntaxf("the operation `tagged` needs to operate on `literal`")
	}
	w, err := worldOf(ctx, "tagged")
	if err != nil {
		return nil, err
	}
	ids := w.Marked(marker.Data.(string))
	out := make([]Variant, len(ids))
	for i, id := range ids {
		out[i] = Ent(id)
	}
	return ret(IterOf(out)), nil
}
