package fyfth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintHasNoTrailingNewline(t *testing.T) {
	// literals render quoted, and print adds no newline of its own
	it := newTestInterp(t, nil)
	out := runSrc(t, it, nil, `"hi" print`)
	require.Equal(t, `"hi"`, out)
	wantStack(t, it)
}

func TestPrintFormatsValues(t *testing.T) {
	it := newTestInterp(t, nil)
	out := runSrc(t, it, nil, `1 2 3 iter print`)
	require.Equal(t, "[3 items; 1, 2, 3]", out)
}

func TestPrintVarsSortedByName(t *testing.T) {
	it := newTestInterp(t, nil)
	out := runSrc(t, it, nil, `2 "b" store 1 "a" store print_vars`)
	require.Contains(t, out, "\"a\" : 1\n")
	require.Contains(t, out, "\"b\" : 2\n")
	require.Less(t, strings.Index(out, `"a"`), strings.Index(out, `"b"`))
}

func TestStoreAndLoad(t *testing.T) {
	it := newTestInterp(t, nil)
	runSrc(t, it, nil, `42 "answer" store "answer" load`)
	wantStack(t, it, Num(42))
}

func TestStoreClonesValue(t *testing.T) {
	it := newTestInterp(t, nil)
	runSrc(t, it, nil, `1 2 iter "xs" store "xs" load 3 append "xs" load`)
	wantStack(t, it,
		IterOf([]Variant{Num(1), Num(2), Num(3)}),
		IterOf([]Variant{Num(1), Num(2)}))
}

func TestLoadMissingVariable(t *testing.T) {
	it := newTestInterp(t, nil)
	_, err := it.RunScript(`"nope" load`, nil)
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
	require.Contains(t, err.Error(), "no variable of the name `nope` found")
}

func TestPopDiscards(t *testing.T) {
	it := newTestInterp(t, nil)
	runSrc(t, it, nil, `1 2 pop`)
	wantStack(t, it, Num(1))
}

func TestType(t *testing.T) {
	it := newTestInterp(t, nil)
	runSrc(t, it, nil, `1 type "x" type nil type`)
	wantStack(t, it, Lit("num"), Lit("literal"), Lit("nil"))
}

func TestNotRequiresBool(t *testing.T) {
	it := newTestInterp(t, nil)
	_, err := it.RunScript(`1 not`, nil)
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
}

func TestFilterScalar(t *testing.T) {
	it := newTestInterp(t, nil)
	runSrc(t, it, nil, `7 true filter`)
	wantStack(t, it, Num(7))
}
