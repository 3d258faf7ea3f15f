package runtime

// Environment is a single flat mapping from name to value. There is no
// scope chain: function calls swap the live environment for a copy of the
// callee's closure and restore the caller's afterwards.
type Environment struct {
	values map[string]Value
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// Get looks up a variable.
func (e *Environment) Get(name string) (Value, bool) {
	val, exists := e.values[name]
	return val, exists
}

// Set binds a variable, overwriting any prior binding of the same name.
func (e *Environment) Set(name string, value Value) {
	e.values[name] = value
}

// Delete removes a binding if present.
func (e *Environment) Delete(name string) {
	delete(e.values, name)
}

// Snapshot returns an independent copy of the environment. Closures hold an
// owned snapshot taken at definition time, never a shared reference.
func (e *Environment) Snapshot() *Environment {
	values := make(map[string]Value, len(e.values))
	for name, val := range e.values {
		values[name] = val
	}
	return &Environment{values: values}
}

// Len returns the number of bindings.
func (e *Environment) Len() int {
	return len(e.values)
}
