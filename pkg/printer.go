package slant

import (
	"strconv"
	"strings"
)

// Format renders a statement sequence back to source, one statement per
// line. Re-parsing the output of a successfully parsed program yields an
// equivalent AST: compound operands are parenthesised so the default
// precedence cannot regroup them.
func Format(stmts []Expr) string {
	parts := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		parts = append(parts, FormatExpr(stmt))
	}

	return strings.Join(parts, "\n")
}

func FormatExpr(e Expr) string {
	switch e := e.(type) {
	case *NumberLit:
		return strconv.FormatFloat(e.Value, 'f', -1, 64)
	case *StringLit:
		// The grammar has no escapes, so pick whichever quote the
		// content doesn't contain
		if strings.Contains(e.Value, `"`) {
			return "'" + e.Value + "'"
		}

		return `"` + e.Value + `"`
	case *Identifier:
		return e.Name
	case *BinaryExpr:
		return formatOperand(e.Op1) + " " + string(e.Operation) + " " + formatOperand(e.Op2)
	case *FuncLit:
		return `\(` + strings.Join(e.Params, ", ") + ") " + formatBlock(e.Body)
	case *FuncCall:
		args := make([]string, 0, len(e.Args))
		for _, arg := range e.Args {
			args = append(args, FormatExpr(arg))
		}

		out := e.Name + "(" + strings.Join(args, ", ") + ")"
		if len(e.Block) > 0 {
			out += " " + formatBlock(e.Block)
		}

		return out
	case *Assign:
		return e.Name + " != " + FormatExpr(e.Value)
	case *BadExpr:
		return "// bad expression: " + e.Reason
	default:
		return ""
	}
}

func formatOperand(e Expr) string {
	if _, ok := e.(*BinaryExpr); ok {
		return "(" + FormatExpr(e) + ")"
	}

	return FormatExpr(e)
}

func formatBlock(stmts []Expr) string {
	if len(stmts) == 0 {
		return "{}"
	}

	parts := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		parts = append(parts, FormatExpr(stmt))
	}

	return "{ " + strings.Join(parts, "; ") + " }"
}
