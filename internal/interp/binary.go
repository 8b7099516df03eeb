package interp

import "math"

// applyBinary implements the operator matrix described for binary
// expressions: arithmetic with integer/float promotion and string
// concatenation, comparisons on matching numeric/string types, and
// equality within a single type tag.
func applyBinary(op string, left, right Value) (Value, error) {
	switch op {
	case "+", "-", "*", "/", "%", "^":
		return applyArithmetic(op, left, right)
	case "<", "<=", ">", ">=":
		return applyCompare(op, left, right)
	case "==", "!=":
		eq := valuesEqual(left, right)
		if left.Type() != right.Type() {
			eq = false
		}
		if op == "==" {
			return &BooleanValue{Value: eq}, nil
		}
		return &BooleanValue{Value: !eq}, nil
	case "&&", "||":
		lb, ok := left.(*BooleanValue)
		if !ok {
			return nil, errType(left.Type(), BooleanType)
		}
		rb, ok := right.(*BooleanValue)
		if !ok {
			return nil, errType(right.Type(), BooleanType)
		}
		if op == "&&" {
			return &BooleanValue{Value: lb.Value && rb.Value}, nil
		}
		return &BooleanValue{Value: lb.Value || rb.Value}, nil
	}
	return nil, errExpr("unsupported operator " + op)
}

func applyArithmetic(op string, left, right Value) (Value, error) {
	// '+' concatenates whenever either side is a string, stringifying
	// the other operand via its plain (non-type-tagged) form.
	if op == "+" {
		if ls, ok := left.(*StringValue); ok {
			return &StringValue{Value: ls.Value + right.String()}, nil
		}
		if rs, ok := right.(*StringValue); ok {
			return &StringValue{Value: left.String() + rs.Value}, nil
		}
	}

	li, lIsInt := left.(*IntegerValue)
	ri, rIsInt := right.(*IntegerValue)
	lf, lIsFloat := left.(*FloatValue)
	rf, rIsFloat := right.(*FloatValue)

	switch {
	case lIsInt && rIsInt:
		return integerArith(op, li.Value, ri.Value)
	case lIsFloat && rIsFloat:
		return floatArith(op, lf.Value, rf.Value)
	case lIsFloat && rIsInt:
		return floatArith(op, lf.Value, float32(ri.Value))
	case lIsInt && rIsFloat:
		return floatArith(op, float32(li.Value), rf.Value)
	}
	return nil, errType(right.Type(), IntegerType, FloatType)
}

func integerArith(op string, a, b int32) (Value, error) {
	switch op {
	case "+":
		return &IntegerValue{Value: a + b}, nil
	case "-":
		return &IntegerValue{Value: a - b}, nil
	case "*":
		return &IntegerValue{Value: a * b}, nil
	case "/":
		if b == 0 {
			return nil, errExpr("division by zero")
		}
		return &IntegerValue{Value: a / b}, nil
	case "%":
		if b == 0 {
			return nil, errExpr("division by zero")
		}
		return &IntegerValue{Value: a % b}, nil
	case "^":
		return &IntegerValue{Value: intPow(a, b)}, nil
	}
	return nil, errExpr("unsupported operator " + op)
}

func intPow(base, exp int32) int32 {
	if exp < 0 {
		return 0
	}
	var result int32 = 1
	for i := int32(0); i < exp; i++ {
		result *= base
	}
	return result
}

func floatArith(op string, a, b float32) (Value, error) {
	switch op {
	case "+":
		return &FloatValue{Value: a + b}, nil
	case "-":
		return &FloatValue{Value: a - b}, nil
	case "*":
		return &FloatValue{Value: a * b}, nil
	case "/":
		return &FloatValue{Value: a / b}, nil
	case "%":
		return &FloatValue{Value: float32(math.Mod(float64(a), float64(b)))}, nil
	case "^":
		return &FloatValue{Value: floatPow(a, b)}, nil
	}
	return nil, errExpr("unsupported operator " + op)
}

func floatPow(base, exp float32) float32 {
	result := float32(1)
	neg := exp < 0
	n := exp
	if neg {
		n = -n
	}
	for i := float32(0); i < n; i++ {
		result *= base
	}
	if neg {
		return 1 / result
	}
	return result
}

func applyCompare(op string, left, right Value) (Value, error) {
	if ls, ok := left.(*StringValue); ok {
		rs, ok := right.(*StringValue)
		if !ok {
			return nil, errType(right.Type(), StringType)
		}
		return &BooleanValue{Value: compareStrings(op, ls.Value, rs.Value)}, nil
	}

	lf, lIsNum, err := asFloat(left)
	if err != nil {
		return nil, err
	}
	rf, rIsNum, err := asFloat(right)
	if err != nil {
		return nil, err
	}
	if !lIsNum || !rIsNum {
		return nil, errType(right.Type(), IntegerType, FloatType, StringType)
	}
	return &BooleanValue{Value: compareFloats(op, lf, rf)}, nil
}

func asFloat(v Value) (float64, bool, error) {
	switch n := v.(type) {
	case *IntegerValue:
		return float64(n.Value), true, nil
	case *FloatValue:
		return float64(n.Value), true, nil
	}
	return 0, false, nil
}

func compareFloats(op string, a, b float64) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	return false
}

func compareStrings(op string, a, b string) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	return false
}
