package fyfth

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestTypeKeyIdent(t *testing.T) {
	require.Equal(t, "Transform", TypeKey("demo::Transform").Ident())
	require.Equal(t, "Sprite", TypeKey("game.render.Sprite").Ident())
	require.Equal(t, "Mesh", TypeKey("assets/Mesh").Ident())
	require.Equal(t, "Bare", TypeKey("Bare").Ident())
}

func TestRegistryRejectsDuplicateKeys(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(NewStructCodec[testHealth]("demo::Health")))

	err := reg.Add(NewStructCodec[testHealth]("demo::Health"))
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
}

func TestResolveExactIdentBeatsFuzzy(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(NewStructCodec[testTransform]("demo::Position")))
	require.NoError(t, reg.Add(NewStructCodec[testTransform]("demo::PositionOffset")))

	c, err := reg.Resolve("position")
	require.NoError(t, err)
	require.Equal(t, TypeKey("demo::Position"), c.Key())
}

func TestResolveFuzzyIdent(t *testing.T) {
	reg := newTestRegistry(t)
	c, err := reg.Resolve("trnsfrm")
	require.NoError(t, err)
	require.Equal(t, TypeKey("demo::Transform"), c.Key())
}

func TestResolveFallsBackToFullKey(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(NewStructCodec[testTransform]("ui::Sprite")))
	require.NoError(t, reg.Add(NewStructCodec[testTransform]("fx::Sprite")))

	// "Sprite" alone is ambiguous at the ident stage
	_, err := reg.Resolve("sprite")
	require.Error(t, err)
	require.Contains(t, err.Error(), "multiple component types fit")

	// qualifying by the key prefix disambiguates at the key stage
	c, err := reg.Resolve("uisprite")
	require.NoError(t, err)
	require.Equal(t, TypeKey("ui::Sprite"), c.Key())
}

func TestResolveNotFound(t *testing.T) {
	reg := newTestRegistry(t)
	_, err := reg.Resolve("zzz")
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
	require.Contains(t, err.Error(), "could not find component type")
}

func TestStructCodecRender(t *testing.T) {
	c := NewStructCodec[testHealth]("demo::Health")
	require.Equal(t, "Health { Current: 5, Max: 10 }",
		c.Render(testHealth{Current: 5, Max: 10}))
}

func TestStructCodecFromHost(t *testing.T) {
	c := NewStructCodec[testHealth]("demo::Health")
	v, ok := c.FromHost(testHealth{Current: 1, Max: 2})
	require.True(t, ok)
	require.Equal(t, VTComp, v.Tag)

	_, ok = c.FromHost("not a health")
	require.False(t, ok)
}

func TestRegistryVariantFromHost(t *testing.T) {
	reg := newTestRegistry(t)

	v, ok := reg.VariantFromHost(float64(2.5))
	require.True(t, ok)
	require.True(t, Num(2.5).Equal(v))

	v, ok = reg.VariantFromHost(testHealth{Current: 3, Max: 4})
	require.True(t, ok)
	require.Equal(t, VTComp, v.Tag)

	_, ok = reg.VariantFromHost(struct{ X int }{1})
	require.False(t, ok)
}

type testRig struct {
	Count  int32
	Byte   uint8
	Label  string
	Flag   bool
	Target EntityID
	Dir    mgl32.Vec3
}

func rigComponent() *Component {
	c := NewStructCodec[testRig]("demo::Rig")
	return NewComponent(c, testRig{})
}

func TestSetFieldCoercions(t *testing.T) {
	comp := rigComponent()

	out, err := comp.WithField("Count", Num(3.9))
	require.NoError(t, err)
	require.Equal(t, int32(3), out.Value().(testRig).Count, "truncates toward zero")

	out, err = comp.WithField("Count", Num(-3.9))
	require.NoError(t, err)
	require.Equal(t, int32(-3), out.Value().(testRig).Count)

	out, err = comp.WithField("Label", Lit("hi"))
	require.NoError(t, err)
	require.Equal(t, "hi", out.Value().(testRig).Label)

	out, err = comp.WithField("Flag", Bool(true))
	require.NoError(t, err)
	require.True(t, out.Value().(testRig).Flag)

	out, err = comp.WithField("Target", Ent(7))
	require.NoError(t, err)
	require.Equal(t, EntityID(7), out.Value().(testRig).Target)

	out, err = comp.WithField("Dir", Vec3(1, 2, 3))
	require.NoError(t, err)
	require.Equal(t, mgl32.Vec3{1, 2, 3}, out.Value().(testRig).Dir)
}

func TestSetFieldRejections(t *testing.T) {
	comp := rigComponent()

	cases := []struct {
		field string
		val   Variant
	}{
		{"Count", Num(float32(math.NaN()))},
		{"Count", Num(float32(math.Inf(1)))},
		{"Byte", Num(300)},
		{"Byte", Num(-1)},
		{"Count", Lit("nope")},
		{"Label", Num(1)},
		{"Dir", Vec2(1, 2)},
		{"Missing", Num(1)},
	}
	for _, tc := range cases {
		_, err := comp.WithField(tc.field, tc.val)
		var derr *DomainError
		require.ErrorAs(t, err, &derr, "field %s value %s", tc.field, tc.val.String())
	}
}

func TestWithFieldDoesNotMutateReceiver(t *testing.T) {
	comp := rigComponent()
	out, err := comp.WithField("Count", Num(5))
	require.NoError(t, err)

	require.Equal(t, int32(0), comp.Value().(testRig).Count)
	require.Equal(t, int32(5), out.Value().(testRig).Count)
	require.False(t, comp.Equal(out))
	require.True(t, comp.Equal(comp.Clone()))
}

func TestComponentEqualAcrossTypes(t *testing.T) {
	a := NewComponent(NewStructCodec[testHealth]("demo::Health"), testHealth{})
	b := NewComponent(NewStructCodec[testHealth]("other::Health"), testHealth{})
	require.False(t, a.Equal(b), "same shape under different keys is not equal")
}

func TestFieldReadsThroughRegistry(t *testing.T) {
	c := NewStructCodec[testRig]("demo::Rig")
	comp := NewComponent(c, testRig{Count: 2, Dir: mgl32.Vec3{1, 2, 3}})

	v, err := comp.Field(nil, "Count")
	require.NoError(t, err)
	require.True(t, Num(2).Equal(v))

	v, err = comp.Field(nil, "Dir")
	require.NoError(t, err)
	require.True(t, Vec3(1, 2, 3).Equal(v))

	_, err = comp.Field(nil, "Missing")
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
}
