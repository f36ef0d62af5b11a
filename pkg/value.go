package slant

import "strconv"

type ValueKind int

const (
	KindNumber ValueKind = iota
	KindString
	KindBool
	KindFunction
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value is a runtime value: a primitive or a function. A nil Value means
// "no value", which only arises from a call whose body never evaluated a
// non-assignment statement.
type Value interface {
	Kind() ValueKind
	String() string
}

type Number float64

func (Number) Kind() ValueKind {
	return KindNumber
}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

type String string

func (String) Kind() ValueKind {
	return KindString
}

func (s String) String() string {
	return string(s)
}

type Bool bool

func (Bool) Kind() ValueKind {
	return KindBool
}

func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}

// Function wraps a function literal as a first-class value. It captures no
// environment: calls resolve names through the chain active at the call
// site.
type Function struct {
	Def *FuncLit
}

func (*Function) Kind() ValueKind {
	return KindFunction
}

func (f *Function) String() string {
	return FormatExpr(f.Def)
}

func isFunction(v Value) bool {
	_, ok := v.(*Function)
	return ok
}

// kindName names a value's kind for error messages, tolerating absent
// values.
func kindName(v Value) string {
	if v == nil {
		return "no value"
	}

	return v.Kind().String()
}
