package fyfth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func constCmd(v Variant) CommandFunc {
	return func(ctx *Context, args []Variant) (*Variant, error) {
		return ret(v), nil
	}
}

func TestRegisterAndLookup(t *testing.T) {
	lang := NewLanguage()
	lang.Register("one", constCmd(Num(1))).
		Register("two", constCmd(Num(2)))

	id, ok := lang.CommandID("one")
	require.True(t, ok)
	require.Equal(t, 0, id)
	require.Equal(t, "two", lang.Keyword(1))
	require.Equal(t, 2, lang.NumCommands())

	_, ok = lang.CommandID("three")
	require.False(t, ok)
	require.Equal(t, "", lang.Keyword(99))
}

func TestMergeRenumbersCommands(t *testing.T) {
	base := NewLanguage()
	base.Register("one", constCmd(Num(1)))

	ext := NewLanguage()
	ext.Register("two", constCmd(Num(2)))
	ext.RegisterPrefix('%', func(word string, lang *Language) ([]Variant, error) {
		return []Variant{Lit(word)}, nil
	})

	require.NoError(t, base.Merge(ext))

	id, ok := base.CommandID("two")
	require.True(t, ok)
	require.Equal(t, 1, id, "absorbed command ids must shift past the base table")

	// dispatch through the merged language actually reaches the function
	it := NewInterp(base)
	runSrc(t, it, nil, `one two %three`)
	wantStack(t, it, Num(1), Num(2), Lit("three"))
}

func TestMergeKeywordConflict(t *testing.T) {
	a := NewLanguage()
	a.Register("dupe", constCmd(Nil))
	b := NewLanguage()
	b.Register("dupe", constCmd(Nil))

	err := a.Merge(b)
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
}

func TestMergePrefixConflict(t *testing.T) {
	pfx := func(word string, lang *Language) ([]Variant, error) {
		return []Variant{Lit(word)}, nil
	}

	a := NewLanguage()
	a.RegisterPrefix('%', pfx)
	b := NewLanguage()
	b.RegisterPrefix('%', pfx)

	err := a.Merge(b)
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
}

func TestMergeBaseAndTagsIsClean(t *testing.T) {
	lang := BaseLanguage()
	require.NoError(t, lang.Merge(TagLanguage()))
	_, ok := lang.CommandID("tagged")
	require.True(t, ok)
}

func TestRegisterPrefixPanics(t *testing.T) {
	pfx := func(word string, lang *Language) ([]Variant, error) { return nil, nil }

	require.Panics(t, func() {
		NewLanguage().RegisterPrefix('"', pfx)
	})
	require.Panics(t, func() {
		lang := NewLanguage()
		lang.RegisterPrefix('%', pfx)
		lang.RegisterPrefix('%', pfx)
	})
}
