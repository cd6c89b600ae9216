package fyfth

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

type testTransform struct {
	Pos   mgl32.Vec3
	Rot   mgl32.Quat
	Scale float32
}

type testHealth struct {
	Current float32
	Max     float32
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.Add(NewStructCodec[testTransform]("demo::Transform")))
	require.NoError(t, reg.Add(NewStructCodec[testHealth]("demo::Health")))
	return reg
}

// newTestWorld spawns player (1), wooden crate (2), street lamp (3), and a
// nameless entity (4); the crate carries a transform.
func newTestWorld(t *testing.T) *MemWorld {
	t.Helper()
	w := NewMemWorld(newTestRegistry(t))
	w.Spawn("player")
	crate := w.Spawn("wooden crate")
	w.Spawn("street lamp")
	w.Spawn("")
	require.NoError(t, w.SetComponent(crate, "demo::Transform", testTransform{
		Pos:   mgl32.Vec3{1, 2, 3},
		Rot:   mgl32.QuatIdent(),
		Scale: 1,
	}))
	return w
}

func TestEntities(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	runSrc(t, it, w, `entities`)
	wantStack(t, it, IterOf([]Variant{Ent(1), Ent(2), Ent(3), Ent(4)}))
}

func TestEntitiesRequiresWorld(t *testing.T) {
	it := newTestInterp(t, nil)
	_, err := it.RunScript(`entities`, nil)
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
}

func TestNameBroadcastsOverEntities(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	runSrc(t, it, w, `entities name`)
	wantStack(t, it, IterOf([]Variant{
		Lit("player"), Lit("wooden crate"), Lit("street lamp"), Nil,
	}))
}

func TestNameOfComponentIsItsKey(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	runSrc(t, it, w, `@crate "transform" get name`)
	wantStack(t, it, Lit("demo::Transform"))
}

func TestFuzzentMacroFiltersByName(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	runSrc(t, it, w, `"lamp" $fuzzent`)
	wantStack(t, it, IterOf([]Variant{Ent(3)}))
}

func TestAtPrefixPicksFirstMatch(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	runSrc(t, it, w, `@crate`)
	wantStack(t, it, Ent(2))
}

func TestAtPrefixNoMatchIsIndexError(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	_, err := it.RunScript(`@dragon`, w)
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
}

func TestGetVectorComponents(t *testing.T) {
	it := newTestInterp(t, nil)
	runSrc(t, it, nil, `1 2 vec2 "y" get 1 2 3 vec3 "z" get 0 0 0 1 quat "w" get`)
	wantStack(t, it, Num(2), Num(3), Num(1))
}

func TestGetUnknownVectorComponent(t *testing.T) {
	it := newTestInterp(t, nil)
	_, err := it.RunScript(`1 2 vec2 "z" get`, nil)
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
}

func TestGetComponentFieldChain(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	runSrc(t, it, w, `@crate "transform" get "Pos" get "z" get`)
	wantStack(t, it, Num(3))
}

func TestGetMissingComponent(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	_, err := it.RunScript(`@player "transform" get`, w)
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
	require.Contains(t, err.Error(), "does not contain component `demo::Transform`")
}

func TestGetAmbiguousComponentName(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	// "a" is a subsequence of both Transform and Health
	_, err := it.RunScript(`@crate "a" get`, w)
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
	require.Contains(t, err.Error(), "multiple component types fit")
}

func TestGetUnknownComponentName(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	_, err := it.RunScript(`@crate "velocity" get`, w)
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
	require.Contains(t, err.Error(), "could not find component type")
}

func TestGetMissingField(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	_, err := it.RunScript(`@crate "transform" get "Nope" get`, w)
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
}

func TestSetFieldAndInsertComponent(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	runSrc(t, it, w, `@crate dup "transform" get "Scale" 5 set add`)
	wantStack(t, it)

	raw, ok := w.Component(2, "demo::Transform")
	require.True(t, ok)
	require.Equal(t, float32(5), raw.(testTransform).Scale)
}

func TestSetFieldDoesNotMutateWorldCopy(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	runSrc(t, it, w, `@crate "transform" get "Scale" 9 set pop`)

	raw, ok := w.Component(2, "demo::Transform")
	require.True(t, ok)
	require.Equal(t, float32(1), raw.(testTransform).Scale,
		"a component handle is a copy until added back")
}

func TestInsertComponentOntoAnotherEntity(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	runSrc(t, it, w, `@player @crate "transform" get add @player "transform" get "Scale" get`)
	wantStack(t, it, Num(1))
}

func TestTagAndTagged(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	runSrc(t, it, w, `@crate "loot" tag @lamp "loot" tag "loot" tagged`)
	wantStack(t, it, IterOf([]Variant{Ent(2), Ent(3)}))
}

func TestUntag(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	runSrc(t, it, w, `@crate "loot" tag @crate "loot" untag "loot" tagged`)
	wantStack(t, it, IterOf(nil))
}

func TestTagBroadcastsOverEntities(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	// the broadcast collects an (empty) result iter; discard it
	runSrc(t, it, w, `entities "all" tag pop "all" tagged len`)
	wantStack(t, it, Num(4))
}

func TestTagDespawnedEntity(t *testing.T) {
	w := newTestWorld(t)
	w.Despawn(2)
	err := w.AddMarker(2, "loot")
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
	require.Contains(t, err.Error(), "no longer exists")
}

func TestPrintEntityUsesWorldName(t *testing.T) {
	w := newTestWorld(t)
	it := newTestInterp(t, w)
	out := runSrc(t, it, w, `@crate print`)
	require.Equal(t, `(2 - "wooden crate")`, out)
}
