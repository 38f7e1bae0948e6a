package interp

import (
	"github.com/dolthub/swiss"
)

// EnvRef is a stable handle on an environment frame owned by an EnvStore.
type EnvRef int32

// NoEnv is the invalid environment reference, the parent of the global
// frame.
const NoEnv EnvRef = -1

// frame is a single lexical scope: a name to value mapping plus the handle
// of the enclosing frame.
type frame struct {
	vars   *swiss.Map[string, Value]
	parent EnvRef
}

// EnvStore owns every environment frame created during an interpreter's
// lifetime and hands out stable EnvRef handles to them. Frames are never
// destroyed: a closure may capture a frame and outlive the block that
// created it, and sibling closures may share an enclosing frame, so frame
// lifetimes are not bound to lexical scope. Parent links are handles into
// the same store, forming a forest rooted at the global frame.
type EnvStore struct {
	frames []frame
}

// NewEnvStore returns an empty environment store.
func NewEnvStore() *EnvStore {
	return &EnvStore{}
}

// NewEnv creates a fresh frame whose parent is the provided environment
// (NoEnv for the root) and returns its handle.
func (s *EnvStore) NewEnv(parent EnvRef) EnvRef {
	s.frames = append(s.frames, frame{
		vars:   swiss.NewMap[string, Value](8),
		parent: parent,
	})
	return EnvRef(len(s.frames) - 1)
}

// Define unconditionally binds name to v in env's own frame, overwriting
// any same-name binding there. It never touches enclosing frames, so a
// definition shadows any outer binding of the same name.
func (s *EnvStore) Define(env EnvRef, name string, v Value) {
	s.frames[env].vars.Put(name, v)
}

// Assign walks from env toward the root and replaces the binding of name in
// the first frame that contains it. It reports false if no enclosing frame
// binds name; assignment never creates a new binding.
func (s *EnvStore) Assign(env EnvRef, name string, v Value) bool {
	for e := env; e != NoEnv; e = s.frames[e].parent {
		if s.frames[e].vars.Has(name) {
			s.frames[e].vars.Put(name, v)
			return true
		}
	}
	return false
}

// Get walks from env toward the root and returns the value bound to name in
// the first frame that contains it.
func (s *EnvStore) Get(env EnvRef, name string) (Value, bool) {
	for e := env; e != NoEnv; e = s.frames[e].parent {
		if v, ok := s.frames[e].vars.Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Len returns the number of frames owned by the store.
func (s *EnvStore) Len() int {
	return len(s.frames)
}
