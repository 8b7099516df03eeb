package interp

import (
	"io"
	"os"
)

// FunctionPrefix namespaces every callable binding (user-declared or
// native) so that ordinary identifiers can never shadow or collide with
// a callable by accident.
const FunctionPrefix = "__fc_"

// Environment is a single stack of (name, value) bindings. Entering a
// nested scope records the stack's current length; leaving it truncates
// back to that length. This is a deliberate departure from the
// chain-of-outer-environments pattern: lookup always scans the one
// stack from the top down. Assigning to a name that already exists
// anywhere on the stack (Assign) updates that binding's value in place,
// so an accumulator declared in an enclosing scope survives the
// truncation of a loop or conditional body; only a genuinely new name
// (Define) pushes a fresh entry, which is what makes function
// parameters and block-local declarations shadow and then unwind
// correctly.
type Environment struct {
	names  []string
	values []Value

	// Output is where the print/println built-ins write. It defaults to
	// os.Stdout; tests and the REPL may redirect it.
	Output io.Writer
}

// NewEnvironment returns an empty environment with no bindings, writing
// print/println output to os.Stdout by default.
func NewEnvironment() *Environment {
	return &Environment{Output: os.Stdout}
}

// PushScope records the current stack length as a scope boundary.
func (e *Environment) PushScope() int {
	return len(e.names)
}

// PopScope truncates the stack back to a boundary previously returned
// by PushScope.
func (e *Environment) PopScope(mark int) {
	e.names = e.names[:mark]
	e.values = e.values[:mark]
}

// Define pushes a new binding unconditionally, even if the name already
// exists further down the stack — the new entry shadows the older one
// until the current scope is popped. Used for function-parameter
// binding and function declarations, where each call/declaration must
// create a genuinely fresh slot rather than reach through to an outer
// binding of the same name.
func (e *Environment) Define(name string, value Value) {
	e.names = append(e.names, name)
	e.values = append(e.values, value)
}

// Assign updates an existing binding's value in place, searching from
// the top of the stack down, and reports whether a matching name was
// found. It never pushes: a plain-assignment expression uses Assign
// first and only falls back to Define when the name is genuinely new,
// so that reassigning a variable declared in an enclosing scope (an
// accumulator mutated from inside a loop or if-body, for instance)
// updates that one binding instead of creating a throwaway shadow that
// the enclosing scope's PopScope would discard.
func (e *Environment) Assign(name string, value Value) bool {
	for i := len(e.names) - 1; i >= 0; i-- {
		if e.names[i] == name {
			e.values[i] = value
			return true
		}
	}
	return false
}

// Lookup scans from the top of the stack down and returns the first
// matching binding.
func (e *Environment) Lookup(name string) (Value, bool) {
	for i := len(e.names) - 1; i >= 0; i-- {
		if e.names[i] == name {
			return e.values[i], true
		}
	}
	return nil, false
}

// Len reports the current stack length, chiefly for tests asserting the
// scope-length invariant.
func (e *Environment) Len() int { return len(e.names) }
