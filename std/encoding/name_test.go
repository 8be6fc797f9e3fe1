package encoding_test

import (
	"testing"

	enc "github.com/named-data/ndnfw/std/encoding"
	tu "github.com/named-data/ndnfw/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestComponentFromStrBasic(t *testing.T) {
	tu.SetT(t)

	comp := tu.NoErr(enc.ComponentFromStr("aa"))
	require.Equal(t, enc.Component{Typ: enc.TypeGenericNameComponent, Val: []byte("aa")}, comp)

	comp = tu.NoErr(enc.ComponentFromStr("a%20a"))
	require.Equal(t, enc.Component{Typ: enc.TypeGenericNameComponent, Val: []byte("a a")}, comp)

	comp = tu.NoErr(enc.ComponentFromStr("v=10"))
	require.Equal(t, enc.Component{Typ: enc.TypeVersionNameComponent, Val: []byte{0x0a}}, comp)

	comp = tu.NoErr(enc.ComponentFromStr("params-sha256=3d319b48"))
	require.Equal(t, enc.Component{Typ: enc.TypeParametersSha256DigestComponent,
		Val: []byte{0x3d, 0x31, 0x9b, 0x48}}, comp)

	comp = tu.NoErr(enc.ComponentFromStr("9=xyz"))
	require.Equal(t, enc.TLNum(9), comp.Typ)
	require.Equal(t, "9=xyz", comp.String())

	tu.Err(enc.ComponentFromStr("a=b=c"))
	tu.Err(enc.ComponentFromStr("unknown=1"))
	tu.Err(enc.ComponentFromStr("0=zero"))
	tu.Err(enc.ComponentFromStr("bad%2"))
}

func TestComponentString(t *testing.T) {
	require.Equal(t, "foo%25bar", enc.NewGenericComponent("foo%bar").String())
	require.Equal(t, "v=5", enc.NewVersionComponent(5).String())
	require.Equal(t, "seg=300", enc.NewSegmentComponent(300).String())
	require.Equal(t, uint64(300), enc.NewSegmentComponent(300).NumberVal())
}

func TestNameFromStr(t *testing.T) {
	tu.SetT(t)

	name := tu.NoErr(enc.NameFromStr("/a/b/v=1"))
	require.Equal(t, 3, len(name))
	require.Equal(t, "/a/b/v=1", name.String())

	require.Equal(t, 0, len(tu.NoErr(enc.NameFromStr("/"))))
	require.Equal(t, "/", enc.Name{}.String())
	require.Equal(t, "/a/b", tu.NoErr(enc.NameFromStr("ndn:/a/b/")).String())
}

func TestNamePrefix(t *testing.T) {
	tu.SetT(t)

	a := tu.Name("/a")
	ab := tu.Name("/a/b")
	ac := tu.Name("/a/c")

	require.True(t, a.IsPrefix(ab))
	require.True(t, ab.IsPrefix(ab))
	require.False(t, ab.IsPrefix(a))
	require.False(t, ab.IsPrefix(ac))
	require.True(t, enc.Name{}.IsPrefix(ab))

	require.Equal(t, -1, ab.Compare(ac))
	require.Equal(t, 1, ab.Compare(a))
	require.Equal(t, 0, ab.Compare(ab.Clone()))
	require.Equal(t, "/a", ab.Prefix(-1).String())
	require.Equal(t, "b", ab.At(-1).String())
}

func TestNameHash(t *testing.T) {
	tu.SetT(t)

	ab := tu.Name("/a/b")
	require.Equal(t, ab.Hash(), ab.Clone().Hash())
	require.NotEqual(t, ab.Hash(), tu.Name("/a/c").Hash())
	require.NotEqual(t, ab.Hash(), tu.Name("/ab").Hash())

	ph := ab.PrefixHash()
	require.Equal(t, 3, len(ph))
	require.Equal(t, enc.Name{}.Hash(), ph[0])
	require.Equal(t, tu.Name("/a").Hash(), ph[1])
	require.Equal(t, ab.Hash(), ph[2])
}

func TestNameAppend(t *testing.T) {
	tu.SetT(t)

	base := tu.Name("/a")
	x := base.Append(enc.NewGenericComponent("x"))
	y := base.Append(enc.NewGenericComponent("y"))
	require.Equal(t, "/a/x", x.String())
	require.Equal(t, "/a/y", y.String())
	require.Equal(t, "/a", base.String())
}
