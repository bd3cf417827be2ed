package object

// Environment is one lexical scope: a local mapping plus a shared link to
// the enclosing scope. Lookups walk the chain outward; Define writes only
// the local map, so child bindings shadow without leaking upward. Child
// creation references the parent, it never copies it.
type Environment struct {
	outer *Environment
	store map[string]Value
}

func NewEnvironment(outer *Environment) *Environment {
	return &Environment{
		outer: outer,
		store: make(map[string]Value),
	}
}

func (e *Environment) Resolve(name string) (Value, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		return e.outer.Resolve(name)
	}
	return obj, ok
}

// Define binds or rebinds name in this scope. Top-level sequential lets
// rely on rebinding being allowed.
func (e *Environment) Define(name string, val Value) {
	e.store[name] = val
}
