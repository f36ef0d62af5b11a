package slant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func evalProgram(t *testing.T, source string) (Value, error) {
	t.Helper()

	stmts, err := Parse(source)
	assert.NoError(t, err)

	return NewInterpreter().Execute(stmts)
}

func TestExecuteExpressions(t *testing.T) {
	cases := []struct {
		source string
		expect Value
	}{
		{"1 + 2", Number(3)},
		{"1 + 2 * 3", Number(7)},
		{"(1 + 2) * 3", Number(9)},
		{"10 - 2 - 3", Number(5)},
		{"7 % 3", Number(1)},
		{"-3.5 * 2", Number(-7)},
		{"\"1\" + \"2\"", String("12")},
		{"2 < 3", Bool(true)},
		{"2 > 3", Bool(false)},
		{"\"abc\" < \"abd\"", Bool(true)},
		{"1 == 1", Bool(true)},
		{"1 != 2", Bool(true)},
		{"1 == \"1\"", Bool(false)}, // No coercion between kinds
		{"\"a\" == \"a\"", Bool(true)},
	}

	for _, c := range cases {
		got, err := evalProgram(t, c.source)
		assert.NoError(t, err, c.source)
		assert.Equal(t, c.expect, got, c.source)
	}
}

func TestDivisionByZero(t *testing.T) {
	got, err := evalProgram(t, "1 / 0")
	assert.NoError(t, err)
	assert.True(t, math.IsInf(float64(got.(Number)), 1))

	got, err = evalProgram(t, "0 / 0")
	assert.NoError(t, err)
	assert.True(t, math.IsNaN(float64(got.(Number))))
}

func TestAssignment(t *testing.T) {
	got, err := evalProgram(t, "a != 1; b != a + 1; b")
	assert.NoError(t, err)
	assert.Equal(t, Number(2), got)
}

func TestAssignmentResultIsNotAValue(t *testing.T) {
	// A program of only assignments has no final value
	got, err := evalProgram(t, "a != 1")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestFunctionCall(t *testing.T) {
	got, err := evalProgram(t, `
		sum != \(x, y) { x + y }
		sum(1, 2)
	`)
	assert.NoError(t, err)
	assert.Equal(t, Number(3), got)
}

func TestFunctionResultIsLastStatement(t *testing.T) {
	got, err := evalProgram(t, `
		f != \() { a != 1; a + 1; "last" }
		f()
	`)
	assert.NoError(t, err)
	assert.Equal(t, String("last"), got)
}

func TestEmptyFunctionHasNoResult(t *testing.T) {
	got, err := evalProgram(t, `
		f != \() {}
		f()
	`)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestArityErrors(t *testing.T) {
	_, err := evalProgram(t, `
		f != \(x, y) { x + y }
		f(1)
	`)

	var tooFew *TooFewArgumentsError
	assert.ErrorAs(t, err, &tooFew)
	assert.Equal(t, 2, tooFew.Want)
	assert.Equal(t, 1, tooFew.Got)

	_, err = evalProgram(t, `
		f != \(x) { x }
		f(1, 2)
	`)

	var tooMany *TooManyArgumentsError
	assert.ErrorAs(t, err, &tooMany)
}

func TestCallErrors(t *testing.T) {
	_, err := evalProgram(t, "nope(1)")

	var unbound *UnboundNameError
	assert.ErrorAs(t, err, &unbound)
	assert.Equal(t, "nope", unbound.Name)

	_, err = evalProgram(t, "x != 1; x(1)")

	var notFn *NotAFunctionError
	assert.ErrorAs(t, err, &notFn)
	assert.Equal(t, "x", notFn.Name)
}

func TestTypeMismatch(t *testing.T) {
	_, err := evalProgram(t, "1 + \"2\"")

	var mismatch *TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)
	assert.Equal(t, BinaryAddition, mismatch.Operation)

	_, err = evalProgram(t, "1 < \"2\"")
	assert.ErrorAs(t, err, &mismatch)

	_, err = evalProgram(t, "\"a\" - \"b\"")
	assert.ErrorAs(t, err, &mismatch)

	// Booleans have no ordering
	_, err = evalProgram(t, `
		t != \() { 1 == 1 }
		t() < t()
	`)
	assert.ErrorAs(t, err, &mismatch)
}

func TestFunctionOperandIsCalculationError(t *testing.T) {
	_, err := evalProgram(t, `
		f != \() { 1 }
		f + 1
	`)

	var calc *CalculationError
	assert.ErrorAs(t, err, &calc)
	assert.Equal(t, BinaryAddition, calc.Operation)
}

func TestUndefinedAssignment(t *testing.T) {
	_, err := evalProgram(t, `
		f != \() {}
		a != f()
	`)

	var undef *UndefinedAssignmentError
	assert.ErrorAs(t, err, &undef)
	assert.Equal(t, "a", undef.Name)
}

func TestAssignmentRebindsOuterFrame(t *testing.T) {
	// An assignment inside a call overwrites a binding that lives in an
	// enclosing frame instead of creating a local shadow
	got, err := evalProgram(t, `
		x != 1
		set != \() { x != 2 }
		set()
		x
	`)
	assert.NoError(t, err)
	assert.Equal(t, Number(2), got)
}

func TestNewNamesStayLocal(t *testing.T) {
	_, err := evalProgram(t, `
		mk != \() { y != 5; y }
		mk()
		y
	`)

	var unbound *UnboundNameError
	assert.ErrorAs(t, err, &unbound)
	assert.Equal(t, "y", unbound.Name)
}

func TestDynamicScoping(t *testing.T) {
	// Name resolution walks the chain active at the call site, not the
	// one in effect where the function was defined: the parameter x of
	// wrap is visible inside get
	got, err := evalProgram(t, `
		x != 1
		get != \() { x }
		wrap != \(x) { get() }
		wrap(9)
	`)
	assert.NoError(t, err)
	assert.Equal(t, Number(9), got)
}

func TestDuplicateParametersShadow(t *testing.T) {
	got, err := evalProgram(t, `
		pick != \(x, x) { x }
		pick(1, 2)
	`)
	assert.NoError(t, err)
	assert.Equal(t, Number(2), got)
}

func TestTrailingBlockIsNotEvaluated(t *testing.T) {
	// The block after the argument list parses but never runs, so the
	// unbound call inside it cannot fail
	got, err := evalProgram(t, `
		f != \() { 1 }
		f() { boom() }
	`)
	assert.NoError(t, err)
	assert.Equal(t, Number(1), got)
}

func TestRecursionLimit(t *testing.T) {
	_, err := evalProgram(t, `
		loop != \() { loop() }
		loop()
	`)

	var limit *RecursionLimitError
	assert.ErrorAs(t, err, &limit)
}

func TestBoundedRecursion(t *testing.T) {
	got, err := evalProgram(t, `
		count != \(n) { step(n) }
		step != \(n) { n + 0 * dive(n) }
		dive != \(n) { n }
		count(3)
	`)
	assert.NoError(t, err)
	assert.Equal(t, Number(3), got)
}

func TestInterpreterDefine(t *testing.T) {
	ip := NewInterpreter()
	ip.Define("answer", Number(40))

	got, err := ip.EvalSource("answer + 2")
	assert.NoError(t, err)
	assert.Equal(t, Number(42), got)
}

func TestInterpreterStatePersists(t *testing.T) {
	ip := NewInterpreter()

	_, err := ip.EvalSource("a != 40")
	assert.NoError(t, err)

	got, err := ip.EvalSource("a + 2")
	assert.NoError(t, err)
	assert.Equal(t, Number(42), got)
}

func TestExecuteSameChainFramesAreEphemeral(t *testing.T) {
	// Each call gets a fresh local frame; locals never leak between calls
	got, err := evalProgram(t, `
		f != \(n) { local != n; local }
		f(1)
		f(2)
	`)
	assert.NoError(t, err)
	assert.Equal(t, Number(2), got)
}
