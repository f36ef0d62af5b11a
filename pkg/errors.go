package slant

import "fmt"

// ParseError is the single parse-time failure type. Expected carries a
// human-readable description of the construct the parser was looking for.
type ParseError struct {
	Loc      *Location
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s parse error: %s", e.Loc, e.Expected)
}

// The runtime error kinds below are disjoint and never recovered
// internally; the first one raised unwinds the whole execution.

type UnboundNameError struct {
	Name string
}

func (e *UnboundNameError) Error() string {
	return fmt.Sprintf("unbound name: %s", e.Name)
}

type NotAFunctionError struct {
	Name string
}

func (e *NotAFunctionError) Error() string {
	return fmt.Sprintf("'%s' is not a function", e.Name)
}

type TooFewArgumentsError struct {
	Name string
	Want int
	Got  int
}

func (e *TooFewArgumentsError) Error() string {
	return fmt.Sprintf("too few arguments in call to '%s': want %d, got %d", e.Name, e.Want, e.Got)
}

type TooManyArgumentsError struct {
	Name string
	Want int
	Got  int
}

func (e *TooManyArgumentsError) Error() string {
	return fmt.Sprintf("too many arguments in call to '%s': want %d, got %d", e.Name, e.Want, e.Got)
}

type UndefinedAssignmentError struct {
	Name string
}

func (e *UndefinedAssignmentError) Error() string {
	return fmt.Sprintf("cannot assign '%s': expression has no value", e.Name)
}

type TypeMismatchError struct {
	Operation BinaryOp
	Lhs       string
	Rhs       string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("operator '%s' is not defined for %s and %s", e.Operation, e.Lhs, e.Rhs)
}

// CalculationError reports a function value used as an operand where a
// primitive was required.
type CalculationError struct {
	Operation BinaryOp
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("operator '%s' cannot be applied to a function", e.Operation)
}

type RecursionLimitError struct {
	Limit int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("call depth exceeds limit of %d", e.Limit)
}
