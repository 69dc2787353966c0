package defines_test

import (
	"testing"

	"github.com/dcrockford/pioasm/defines"
	"github.com/dcrockford/pioasm/pioasmerr"
	"github.com/stretchr/testify/require"
)

func TestDefine_DuplicateFails(t *testing.T) {
	tab := defines.New()
	require.Nil(t, tab.Define("x", 1, false))
	err := tab.Define("x", 2, false)
	require.NotNil(t, err)
	require.Equal(t, pioasmerr.AlreadyDefined, err.Kind)
}

func TestDeclareThenAssign(t *testing.T) {
	tab := defines.New()
	require.Nil(t, tab.Declare("start", true))
	v, err := tab.Resolve("start")
	require.NotNil(t, err)
	require.Equal(t, pioasmerr.ValueNotAssigned, err.Kind)

	require.Nil(t, tab.Assign("start", 3))
	v, err = tab.Resolve("start")
	require.Nil(t, err)
	require.Equal(t, int32(3), v)

	err = tab.Assign("start", 4)
	require.NotNil(t, err)
	require.Equal(t, pioasmerr.AlreadyAssigned, err.Kind)
}

func TestAssign_NotDeclared(t *testing.T) {
	tab := defines.New()
	err := tab.Assign("nope", 1)
	require.NotNil(t, err)
	require.Equal(t, pioasmerr.NotDeclared, err.Kind)
}

func TestResolve_NotDefined(t *testing.T) {
	tab := defines.New()
	_, err := tab.Resolve("missing")
	require.NotNil(t, err)
	require.Equal(t, pioasmerr.NotDefined, err.Kind)
}

func TestCopy_PublicOnly(t *testing.T) {
	tab := defines.New()
	require.Nil(t, tab.Define("pub", 1, true))
	require.Nil(t, tab.Define("priv", 2, false))

	c, err := tab.Copy(true)
	require.Nil(t, err)
	require.Equal(t, 1, c.Len())
	v, rerr := c.Resolve("pub")
	require.Nil(t, rerr)
	require.Equal(t, int32(1), v)
	require.False(t, c.Contains("priv"))
}

func TestCopy_FailsOnUnassigned(t *testing.T) {
	tab := defines.New()
	require.Nil(t, tab.Declare("fwd", true))
	_, err := tab.Copy(true)
	require.NotNil(t, err)
	require.Equal(t, pioasmerr.ValueNotAssigned, err.Kind)
}

func TestInsertionOrderPreserved(t *testing.T) {
	tab := defines.New()
	require.Nil(t, tab.Define("b", 1, false))
	require.Nil(t, tab.Define("a", 2, false))
	entries := tab.Entries()
	require.Equal(t, "b", entries[0].Name)
	require.Equal(t, "a", entries[1].Name)
}
