package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvDefineGet(t *testing.T) {
	s := NewEnvStore()
	root := s.NewEnv(NoEnv)

	_, ok := s.Get(root, "a")
	require.False(t, ok)

	s.Define(root, "a", Number(1))
	v, ok := s.Get(root, "a")
	require.True(t, ok)
	assert.Equal(t, Number(1), v)

	// define overwrites in place
	s.Define(root, "a", String("x"))
	v, _ = s.Get(root, "a")
	assert.Equal(t, String("x"), v)
}

func TestEnvChainLookup(t *testing.T) {
	s := NewEnvStore()
	root := s.NewEnv(NoEnv)
	child := s.NewEnv(root)
	grandchild := s.NewEnv(child)

	s.Define(root, "a", Number(1))
	v, ok := s.Get(grandchild, "a")
	require.True(t, ok)
	assert.Equal(t, Number(1), v)

	// shadowing: the innermost frame wins
	s.Define(child, "a", Number(2))
	v, _ = s.Get(grandchild, "a")
	assert.Equal(t, Number(2), v)
	v, _ = s.Get(root, "a")
	assert.Equal(t, Number(1), v)
}

func TestEnvAssign(t *testing.T) {
	s := NewEnvStore()
	root := s.NewEnv(NoEnv)
	child := s.NewEnv(root)

	// assignment never creates a binding
	require.False(t, s.Assign(child, "a", Number(1)))

	// assignment replaces in the defining frame, not the current one
	s.Define(root, "a", Number(1))
	require.True(t, s.Assign(child, "a", Number(2)))
	v, _ := s.Get(root, "a")
	assert.Equal(t, Number(2), v)
	_, ok := s.frames[child].vars.Get("a")
	assert.False(t, ok, "child frame must not gain a binding")

	// with a shadowing binding, assignment stops at the innermost frame
	s.Define(child, "a", Number(10))
	require.True(t, s.Assign(child, "a", Number(11)))
	v, _ = s.Get(child, "a")
	assert.Equal(t, Number(11), v)
	v, _ = s.Get(root, "a")
	assert.Equal(t, Number(2), v)
}

func TestEnvSharedParent(t *testing.T) {
	// two sibling frames over the same parent alias the parent's bindings,
	// as closures over a shared enclosing scope do
	s := NewEnvStore()
	root := s.NewEnv(NoEnv)
	s.Define(root, "x", Number(0))

	left := s.NewEnv(root)
	right := s.NewEnv(root)

	require.True(t, s.Assign(left, "x", Number(1)))
	v, _ := s.Get(right, "x")
	assert.Equal(t, Number(1), v)
}

func TestEnvFramesOutliveScope(t *testing.T) {
	// frames are owned by the store, creating new frames does not
	// invalidate previously handed out handles
	s := NewEnvStore()
	root := s.NewEnv(NoEnv)
	captured := s.NewEnv(root)
	s.Define(captured, "n", Number(7))

	for i := 0; i < 100; i++ {
		s.NewEnv(root)
	}
	require.Equal(t, 102, s.Len())

	v, ok := s.Get(captured, "n")
	require.True(t, ok)
	assert.Equal(t, Number(7), v)
}
