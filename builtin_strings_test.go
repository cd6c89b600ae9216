package fyfth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFuzzyMatchesSubsequences(t *testing.T) {
	it := newTestInterp(t, nil)
	runSrc(t, it, nil, `"wooden crate" "crate" fuzzy "wooden crate" "wdnct" fuzzy "Street Lamp" "lamp" fuzzy`)
	wantStack(t, it, Bool(true), Bool(true), Bool(true))
}

func TestFuzzyRejectsNonSubsequence(t *testing.T) {
	it := newTestInterp(t, nil)
	runSrc(t, it, nil, `"crate" "lamp" fuzzy`)
	wantStack(t, it, Bool(false))
}

func TestFuzzyNonLiteralNeedleIsNoMatch(t *testing.T) {
	it := newTestInterp(t, nil)
	runSrc(t, it, nil, `nil "crate" fuzzy 7 "crate" fuzzy`)
	wantStack(t, it, Bool(false), Bool(false))
}

func TestFuzzyBroadcastFiltersMixedIter(t *testing.T) {
	it := newTestInterp(t, nil)
	runSrc(t, it, nil, `"crate" nil "create" iter "crate" fuzzy`)
	wantStack(t, it, IterOf([]Variant{Bool(true), Bool(false), Bool(true)}))
}

func TestRegexMatch(t *testing.T) {
	it := newTestInterp(t, nil)
	runSrc(t, it, nil, `"abc123" "[a-z]+[0-9]+" regex "abc" "^[0-9]+$" regex`)
	wantStack(t, it, Bool(true), Bool(false))
}

func TestRegexBindsNamedCaptures(t *testing.T) {
	it := newTestInterp(t, nil)
	runSrc(t, it, nil, `"item42" "(?P<id>[0-9]+)" regex`)
	wantStack(t, it, Bool(true))

	v, ok := it.Var("id")
	require.True(t, ok)
	require.True(t, Lit("42").Equal(v))
}

func TestRegexBindsRepeatedCapturesAsIter(t *testing.T) {
	it := newTestInterp(t, nil)
	runSrc(t, it, nil, `"a1 b2 c3" "(?P<n>[0-9])" regex`)

	v, ok := it.Var("n")
	require.True(t, ok)
	require.True(t, IterOf([]Variant{Lit("1"), Lit("2"), Lit("3")}).Equal(v))
}

func TestRegexInvalidPattern(t *testing.T) {
	it := newTestInterp(t, nil)
	_, err := it.RunScript(`"abc" "[unclosed" regex`, nil)
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
}

func TestRegexNonLiteralSubjectIsNoMatch(t *testing.T) {
	it := newTestInterp(t, nil)
	runSrc(t, it, nil, `7 "x" regex`)
	wantStack(t, it, Bool(false))
}
