// Package interp walks the AST against a lexical environment, producing
// runtime values.
package interp

import (
	"fmt"
	"strings"

	"github.com/cwbudde/minilang/internal/ast"
)

// ValueType names a runtime value's type tag.
type ValueType string

const (
	NullType           ValueType = "null"
	IntegerType        ValueType = "integer"
	BooleanType        ValueType = "boolean"
	FloatType          ValueType = "float"
	StringType         ValueType = "string"
	ListType           ValueType = "list"
	FunctionType       ValueType = "function"
	NativeFunctionType ValueType = "nfunction"
	VoidType           ValueType = "void"
)

// Value is implemented by every runtime value. Inspect renders the
// type-tagged REPL form (e.g. integer(42)); String renders the plain
// form used for file-mode output and string concatenation.
type Value interface {
	Type() ValueType
	Inspect() string
	String() string
}

// IntegerValue is a 32-bit signed integer. Arithmetic on it wraps on
// overflow, matching Go's native int32 semantics.
type IntegerValue struct{ Value int32 }

func (v *IntegerValue) Type() ValueType { return IntegerType }
func (v *IntegerValue) Inspect() string { return fmt.Sprintf("integer(%d)", v.Value) }
func (v *IntegerValue) String() string  { return fmt.Sprintf("%d", v.Value) }

// FloatValue is a 32-bit floating point number.
type FloatValue struct{ Value float32 }

func (v *FloatValue) Type() ValueType { return FloatType }
func (v *FloatValue) Inspect() string { return fmt.Sprintf("float(%v)", v.Value) }
func (v *FloatValue) String() string  { return fmt.Sprintf("%v", v.Value) }

// BooleanValue is true or false.
type BooleanValue struct{ Value bool }

func (v *BooleanValue) Type() ValueType { return BooleanType }
func (v *BooleanValue) Inspect() string { return fmt.Sprintf("boolean(%v)", v.Value) }
func (v *BooleanValue) String() string  { return fmt.Sprintf("%v", v.Value) }

// StringValue is a text string.
type StringValue struct{ Value string }

func (v *StringValue) Type() ValueType { return StringType }
func (v *StringValue) Inspect() string { return fmt.Sprintf("string(%q)", v.Value) }
func (v *StringValue) String() string  { return v.Value }

// NullValue is the single null value.
type NullValue struct{}

func (v *NullValue) Type() ValueType { return NullType }
func (v *NullValue) Inspect() string { return "null" }
func (v *NullValue) String() string  { return "null" }

// VoidValue is produced by statements with no result; never user
// constructible.
type VoidValue struct{}

func (v *VoidValue) Type() ValueType { return VoidType }
func (v *VoidValue) Inspect() string { return "void" }
func (v *VoidValue) String() string  { return "void" }

// ListValue is an ordered, eagerly-evaluated sequence of values.
//
// The original source borrows list values as a pointer into the parse
// tree's literal expression list; here the elements are evaluated once
// at construction time into an owned []Value. Go's garbage collector
// makes this strictly simpler than a borrow into the AST and is no less
// correct, since list literals are evaluated exactly once regardless.
type ListValue struct{ Elements []Value }

func (v *ListValue) Type() ValueType { return ListType }
func (v *ListValue) Inspect() string { return fmt.Sprintf("list(%d)", len(v.Elements)) }
func (v *ListValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, el := range v.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FunctionValue is a user-declared function, a borrow into the
// immutable parse tree that produced it.
type FunctionValue struct{ Decl *ast.FunctionDeclaration }

func (v *FunctionValue) Type() ValueType { return FunctionType }
func (v *FunctionValue) Inspect() string { return "function" }
func (v *FunctionValue) String() string  { return "function" }

// NativeFunc is the signature every built-in handler implements.
type NativeFunc func(env *Environment, args []Value) (Value, error)

// NativeFunctionValue wraps a host-implemented built-in.
type NativeFunctionValue struct {
	Name string
	Fn   NativeFunc
}

func (v *NativeFunctionValue) Type() ValueType { return NativeFunctionType }
func (v *NativeFunctionValue) Inspect() string { return "nfunction" }
func (v *NativeFunctionValue) String() string  { return "nfunction" }

func valuesEqual(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch av := a.(type) {
	case *IntegerValue:
		return av.Value == b.(*IntegerValue).Value
	case *FloatValue:
		return av.Value == b.(*FloatValue).Value
	case *BooleanValue:
		return av.Value == b.(*BooleanValue).Value
	case *StringValue:
		return av.Value == b.(*StringValue).Value
	case *NullValue:
		return true
	case *VoidValue:
		return true
	case *ListValue:
		bv := b.(*ListValue)
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !valuesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *FunctionValue:
		return av.Decl == b.(*FunctionValue).Decl
	case *NativeFunctionValue:
		return av.Name == b.(*NativeFunctionValue).Name
	}
	return false
}
