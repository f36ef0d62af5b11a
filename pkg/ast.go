package slant

type AST struct {
	Statements []Expr
	Errors     []*BadExpr
}

// Expr is the closed set of AST nodes. The marker method keeps the
// evaluator's type switches exhaustive over nodes defined in this package.
type Expr interface {
	exprNode()
}

type BadExpr struct {
	Location *Location
	Reason   string
}

// NumberLit holds a numeric constant. An optional leading sign is folded
// into Value by the parser.
type NumberLit struct {
	Value float64
}

// StringLit holds a quoted constant with the quotes stripped. The source
// may use either '"' or '\''; no escape sequences exist.
type StringLit struct {
	Value string
}

type Identifier struct {
	Name string
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
	BinaryModulo         BinaryOp = "%"
	BinaryLess           BinaryOp = "<"
	BinaryGreater        BinaryOp = ">"
	BinaryEquals         BinaryOp = "=="
	BinaryNotEquals      BinaryOp = "!="
)

type BinaryExpr struct {
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
}

// FuncLit is an anonymous function literal. Parameter names need not be
// unique; during argument binding a later duplicate shadows an earlier one.
type FuncLit struct {
	Params []string
	Body   []Expr
}

// FuncCall invokes a named binding. Block is the optional trailing
// brace-delimited statement sequence after the argument list; the grammar
// accepts and stores it, the evaluator ignores it.
type FuncCall struct {
	Name  string
	Args  []Expr
	Block []Expr
}

// Assign binds a name. It is only valid as a statement, never nested
// inside an expression.
type Assign struct {
	Name  string
	Value Expr
}

func (*BadExpr) exprNode()    {}
func (*NumberLit) exprNode()  {}
func (*StringLit) exprNode()  {}
func (*Identifier) exprNode() {}
func (*BinaryExpr) exprNode() {}
func (*FuncLit) exprNode()    {}
func (*FuncCall) exprNode()   {}
func (*Assign) exprNode()     {}
