package slant

import (
	"fmt"
	"math"
)

// maxCallDepth bounds nested calls so runaway recursion surfaces as a
// RecursionLimitError instead of exhausting the host stack.
const maxCallDepth = 1000

// Interpreter executes parsed statements against a persistent root frame.
// It is single-threaded: parsing and evaluation are plain recursive
// traversals with no suspension points.
type Interpreter struct {
	root  *Scope
	depth int
}

func NewInterpreter() *Interpreter {
	return &Interpreter{
		root: NewScope(),
	}
}

// Define pre-seeds a binding in the root frame, so hosts can expose values
// to programs before running them.
func (ip *Interpreter) Define(name string, v Value) {
	ip.root.Define(name, v)
}

// Execute runs a statement sequence against the root frame and returns the
// final value: the value of the last non-assignment statement, or nil if
// none ran. Bindings survive across calls to Execute.
func (ip *Interpreter) Execute(stmts []Expr) (Value, error) {
	return ip.exec(stmts, ScopeChain{ip.root})
}

// EvalSource parses and executes source against the root frame.
func (ip *Interpreter) EvalSource(source string) (Value, error) {
	stmts, err := Parse(source)
	if err != nil {
		return nil, err
	}

	return ip.Execute(stmts)
}

func (ip *Interpreter) exec(stmts []Expr, chain ScopeChain) (Value, error) {
	var result Value
	for _, stmt := range stmts {
		if assign, ok := stmt.(*Assign); ok {
			// Assignments never touch the running result
			v, err := ip.eval(assign.Value, chain)
			if err != nil {
				return nil, err
			}

			if v == nil {
				return nil, &UndefinedAssignmentError{Name: assign.Name}
			}

			chain.Assign(assign.Name, v)
			continue
		}

		v, err := ip.eval(stmt, chain)
		if err != nil {
			return nil, err
		}

		result = v
	}

	return result, nil
}

func (ip *Interpreter) eval(e Expr, chain ScopeChain) (Value, error) {
	switch e := e.(type) {
	case *NumberLit:
		return Number(e.Value), nil
	case *StringLit:
		return String(e.Value), nil
	case *Identifier:
		v, ok := chain.Lookup(e.Name)
		if !ok {
			return nil, &UnboundNameError{Name: e.Name}
		}

		return v, nil
	case *BinaryExpr:
		return ip.evalBinary(e, chain)
	case *FuncLit:
		return &Function{Def: e}, nil
	case *FuncCall:
		return ip.evalCall(e, chain)
	default:
		return nil, fmt.Errorf("cannot evaluate %T node", e)
	}
}

func (ip *Interpreter) evalBinary(e *BinaryExpr, chain ScopeChain) (Value, error) {
	lhs, err := ip.eval(e.Op1, chain)
	if err != nil {
		return nil, err
	}

	rhs, err := ip.eval(e.Op2, chain)
	if err != nil {
		return nil, err
	}

	if isFunction(lhs) || isFunction(rhs) {
		return nil, &CalculationError{Operation: e.Operation}
	}

	if lhs == nil || rhs == nil {
		return nil, ip.mismatch(e.Operation, lhs, rhs)
	}

	switch e.Operation {
	case BinaryAddition:
		if l, ok := lhs.(Number); ok {
			if r, ok := rhs.(Number); ok {
				return l + r, nil
			}
		}

		if l, ok := lhs.(String); ok {
			if r, ok := rhs.(String); ok {
				return l + r, nil
			}
		}

		return nil, ip.mismatch(e.Operation, lhs, rhs)
	case BinarySubtraction, BinaryMultiplication, BinaryDivision, BinaryModulo:
		l, lok := lhs.(Number)
		r, rok := rhs.(Number)
		if !lok || !rok {
			return nil, ip.mismatch(e.Operation, lhs, rhs)
		}

		switch e.Operation {
		case BinarySubtraction:
			return l - r, nil
		case BinaryMultiplication:
			return l * r, nil
		case BinaryDivision:
			// IEEE-754 semantics: dividing by zero yields ±Inf or NaN
			return l / r, nil
		default:
			return Number(math.Mod(float64(l), float64(r))), nil
		}
	case BinaryLess, BinaryGreater:
		return ip.evalOrdering(e.Operation, lhs, rhs)
	case BinaryEquals:
		return Bool(valuesEqual(lhs, rhs)), nil
	case BinaryNotEquals:
		return Bool(!valuesEqual(lhs, rhs)), nil
	default:
		return nil, fmt.Errorf("unknown operator '%s'", e.Operation)
	}
}

func (ip *Interpreter) evalOrdering(op BinaryOp, lhs, rhs Value) (Value, error) {
	if l, ok := lhs.(Number); ok {
		if r, ok := rhs.(Number); ok {
			if op == BinaryLess {
				return Bool(l < r), nil
			}

			return Bool(l > r), nil
		}
	}

	if l, ok := lhs.(String); ok {
		if r, ok := rhs.(String); ok {
			if op == BinaryLess {
				return Bool(l < r), nil
			}

			return Bool(l > r), nil
		}
	}

	return nil, ip.mismatch(op, lhs, rhs)
}

func (ip *Interpreter) mismatch(op BinaryOp, lhs, rhs Value) error {
	return &TypeMismatchError{
		Operation: op,
		Lhs:       kindName(lhs),
		Rhs:       kindName(rhs),
	}
}

// valuesEqual compares primitives structurally, without coercion: values
// of different kinds are simply unequal.
func valuesEqual(lhs, rhs Value) bool {
	switch l := lhs.(type) {
	case Number:
		r, ok := rhs.(Number)
		return ok && l == r
	case String:
		r, ok := rhs.(String)
		return ok && l == r
	case Bool:
		r, ok := rhs.(Bool)
		return ok && l == r
	default:
		return false
	}
}

func (ip *Interpreter) evalCall(call *FuncCall, chain ScopeChain) (Value, error) {
	callee, ok := chain.Lookup(call.Name)
	if !ok {
		return nil, &UnboundNameError{Name: call.Name}
	}

	fn, ok := callee.(*Function)
	if !ok {
		return nil, &NotAFunctionError{Name: call.Name}
	}

	// Arguments are call-by-value: evaluated eagerly, left to right, in
	// the caller's full chain.
	args := make([]Value, 0, len(call.Args))
	for _, arg := range call.Args {
		v, err := ip.eval(arg, chain)
		if err != nil {
			return nil, err
		}

		args = append(args, v)
	}

	if len(args) < len(fn.Def.Params) {
		return nil, &TooFewArgumentsError{Name: call.Name, Want: len(fn.Def.Params), Got: len(args)}
	}

	if len(args) > len(fn.Def.Params) {
		return nil, &TooManyArgumentsError{Name: call.Name, Want: len(fn.Def.Params), Got: len(args)}
	}

	local := NewScope()
	for i, param := range fn.Def.Params {
		// A duplicate parameter name shadows the earlier binding
		local.Define(param, args[i])
	}

	if ip.depth >= maxCallDepth {
		return nil, &RecursionLimitError{Limit: maxCallDepth}
	}

	ip.depth++
	defer func() { ip.depth-- }()

	// The local frame extends the chain visible at the call site, not a
	// captured definition-site environment: scoping is dynamic. The
	// trailing block of the call, if any, is never run.
	return ip.exec(fn.Def.Body, chain.push(local))
}
