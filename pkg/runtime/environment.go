package runtime

import "sort"

// Environment is one frame of the lexical scope chain. Frames are shared by
// pointer: every snapshot taken from a frame observes later Set calls on it.
// Not safe for concurrent use.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil for the root frame).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Get retrieves the nearest binding for name, searching outward through the
// scope chain.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set inserts or overwrites a binding in the current frame only.
func (e *Environment) Set(name string, value Value) {
	e.values[name] = value
}

// Snapshot enters a new empty frame whose parent is this frame. It does not
// copy bindings, so it is O(1).
func (e *Environment) Snapshot() *Environment {
	return NewEnvironment(e)
}

// Bindings returns a copy of the current frame's bindings.
func (e *Environment) Bindings() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Keys returns the current frame's names in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Depth counts the frames between e and the root, inclusive.
func (e *Environment) Depth() int {
	depth := 0
	for env := e; env != nil; env = env.parent {
		depth++
	}
	return depth
}
