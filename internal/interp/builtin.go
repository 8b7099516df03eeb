package interp

import (
	"fmt"
	"time"
)

// RegisterBuiltins installs the native function table into env under
// the reserved call-name prefix. Arity is permissive throughout: a
// missing argument binds to null rather than raising an error, mirroring
// the original's native-function pattern of defaulting absent
// arguments instead of rejecting the call.
func RegisterBuiltins(env *Environment) {
	register := func(name string, fn NativeFunc) {
		env.Define(FunctionPrefix+name, &NativeFunctionValue{Name: name, Fn: fn})
	}

	register("print", func(env *Environment, args []Value) (Value, error) {
		fmt.Fprint(env.Output, arg(args, 0).String())
		return &VoidValue{}, nil
	})

	register("println", func(env *Environment, args []Value) (Value, error) {
		fmt.Fprintln(env.Output, arg(args, 0).String())
		return &VoidValue{}, nil
	})

	register("typeof", func(_ *Environment, args []Value) (Value, error) {
		return &StringValue{Value: string(arg(args, 0).Type())}, nil
	})

	register("sleep", func(_ *Environment, args []Value) (Value, error) {
		ms, ok := arg(args, 0).(*IntegerValue)
		if !ok {
			return nil, errType(arg(args, 0).Type(), IntegerType)
		}
		if ms.Value > 0 {
			time.Sleep(time.Duration(ms.Value) * time.Millisecond)
		}
		return &VoidValue{}, nil
	})

	register("len", func(_ *Environment, args []Value) (Value, error) {
		switch v := arg(args, 0).(type) {
		case *StringValue:
			return &IntegerValue{Value: int32(len([]rune(v.Value)))}, nil
		case *ListValue:
			return &IntegerValue{Value: int32(len(v.Elements))}, nil
		default:
			return nil, errType(v.Type(), StringType, ListType)
		}
	})

	register("string", func(_ *Environment, args []Value) (Value, error) {
		return &StringValue{Value: arg(args, 0).String()}, nil
	})

	register("int", func(_ *Environment, args []Value) (Value, error) {
		switch v := arg(args, 0).(type) {
		case *IntegerValue:
			return v, nil
		case *FloatValue:
			return &IntegerValue{Value: int32(v.Value)}, nil
		default:
			return nil, errType(v.Type(), IntegerType, FloatType)
		}
	})

	register("float", func(_ *Environment, args []Value) (Value, error) {
		switch v := arg(args, 0).(type) {
		case *FloatValue:
			return v, nil
		case *IntegerValue:
			return &FloatValue{Value: float32(v.Value)}, nil
		default:
			return nil, errType(v.Type(), IntegerType, FloatType)
		}
	})

	register("push", func(_ *Environment, args []Value) (Value, error) {
		list, ok := arg(args, 0).(*ListValue)
		if !ok {
			return nil, errType(arg(args, 0).Type(), ListType)
		}
		elems := make([]Value, len(list.Elements)+1)
		copy(elems, list.Elements)
		elems[len(list.Elements)] = arg(args, 1)
		return &ListValue{Elements: elems}, nil
	})

	register("exit", func(_ *Environment, args []Value) (Value, error) {
		code := int32(0)
		if iv, ok := arg(args, 0).(*IntegerValue); ok {
			code = iv.Value
		}
		return nil, &ExitError{Code: int(code)}
	})
}

// arg returns the i'th argument or null if it was omitted, implementing
// the permissive-arity policy uniformly across built-ins.
func arg(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return &NullValue{}
}

// ExitError is a sentinel error returned by the `exit` built-in so the
// CLI front end can translate it into a process exit code without the
// evaluator itself knowing about processes.
type ExitError struct{ Code int }

func (e *ExitError) Error() string { return "exit" }
