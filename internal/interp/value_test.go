package interp

import "testing"

func TestInspectIsTypeTaggedForm(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{&IntegerValue{Value: 42}, "integer(42)"},
		{&BooleanValue{Value: true}, "boolean(true)"},
		{&StringValue{Value: "hi"}, `string("hi")`},
		{&NullValue{}, "null"},
		{&ListValue{Elements: []Value{&IntegerValue{Value: 1}, &IntegerValue{Value: 2}}}, "list(2)"},
	}
	for _, c := range cases {
		if got := c.v.Inspect(); got != c.want {
			t.Errorf("Inspect() = %q, want %q", got, c.want)
		}
	}
}

func TestStringIsPlainFormWithFullListElements(t *testing.T) {
	list := &ListValue{Elements: []Value{&IntegerValue{Value: 1}, &StringValue{Value: "a"}}}
	want := `[1, a]`
	if got := list.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNativeFunctionTypeNameMatchesOriginal(t *testing.T) {
	nf := &NativeFunctionValue{Name: "print"}
	if nf.Type() != "nfunction" {
		t.Errorf("expected type tag %q, got %q", "nfunction", nf.Type())
	}
}

func TestValuesEqualComparesListsStructurally(t *testing.T) {
	a := &ListValue{Elements: []Value{&IntegerValue{Value: 1}, &IntegerValue{Value: 2}}}
	b := &ListValue{Elements: []Value{&IntegerValue{Value: 1}, &IntegerValue{Value: 2}}}
	c := &ListValue{Elements: []Value{&IntegerValue{Value: 1}, &IntegerValue{Value: 3}}}
	if !valuesEqual(a, b) {
		t.Error("expected structurally identical lists to be equal")
	}
	if valuesEqual(a, c) {
		t.Error("expected lists differing in an element to be unequal")
	}
}

func TestValuesEqualRequiresMatchingTypeTag(t *testing.T) {
	if valuesEqual(&IntegerValue{Value: 1}, &FloatValue{Value: 1}) {
		t.Error("expected an integer and a float with the same numeric value to be unequal")
	}
}
