package slant

import (
	"fmt"
	"strconv"
	"strings"
)

// Tokenizer feeds the parser. Do is expected to run in its own goroutine
// and Get to block until the next token is available.
type Tokenizer interface {
	Do()
	Get() Token
}

type Parser struct {
	tokenizer Tokenizer
	buf       *Token
}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
	}
}

// Parse tokenizes and parses a whole source text, returning the top-level
// statement sequence. The first malformed construct aborts the parse and is
// reported as a *ParseError.
func Parse(source string) ([]Expr, error) {
	p := NewParser(NewLexer(strings.NewReader(source)))

	ast := p.Run()
	if len(ast.Errors) > 0 {
		bad := ast.Errors[0]
		return nil, &ParseError{
			Loc:      bad.Location,
			Expected: bad.Reason,
		}
	}

	return ast.Statements, nil
}

func (p *Parser) Run() *AST {
	go p.tokenizer.Do()

	ast := &AST{}
	for tok := p.peek(); tok.Typ != TokenEOF; tok = p.peek() {
		if tok.Typ == TokenSemicolon {
			p.next()
			continue
		}

		if tok.Typ == TokenError {
			ast.Statements = append(ast.Statements, p.errorf(tok.Loc, "%s", tok.Value))
			break
		}

		stmt := p.statement()
		ast.Statements = append(ast.Statements, stmt)

		if containsBadExpr(stmt) {
			// The statement already failed; anything after it is suspect
			break
		}
	}

	// Drain remaining tokens so a streaming tokenizer can finish
	for tok := p.peek(); tok.isValid(); tok = p.peek() {
		p.next()
	}

	for _, stmt := range ast.Statements {
		collectBadExprs(stmt, &ast.Errors)
	}

	return ast
}

func containsBadExpr(e Expr) bool {
	var bad []*BadExpr
	collectBadExprs(e, &bad)

	return len(bad) > 0
}

func collectBadExprs(e Expr, out *[]*BadExpr) {
	switch e := e.(type) {
	case *BadExpr:
		*out = append(*out, e)
	case *BinaryExpr:
		collectBadExprs(e.Op1, out)
		collectBadExprs(e.Op2, out)
	case *FuncLit:
		for _, stmt := range e.Body {
			collectBadExprs(stmt, out)
		}
	case *FuncCall:
		for _, arg := range e.Args {
			collectBadExprs(arg, out)
		}
		for _, stmt := range e.Block {
			collectBadExprs(stmt, out)
		}
	case *Assign:
		collectBadExprs(e.Value, out)
	}
}

func (p *Parser) peek() Token {
	if p.buf == nil {
		temp := p.next()
		p.buf = &temp
	}

	return *p.buf
}

func (p *Parser) next() Token {
	if p.buf != nil {
		if !p.buf.isValid() {
			// If an invalid token is buffered, don't try to get more tokens
			return *p.buf
		}

		temp := p.buf
		p.buf = nil

		return *temp
	}

	tok := p.tokenizer.Get()
	if !tok.isValid() {
		// If a token is invalid (such as Error or EOF) keep it buffered since no more valid tokens are expected
		p.buf = &tok
	}

	if tok.isComment() {
		return p.next()
	}

	return tok
}

func (p *Parser) expect(typ TokenType) *Token {
	tok := p.next()
	if tok.Typ != typ {
		return nil
	}

	return &tok
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Typ == typ
}

func (p *Parser) consume(typ TokenType) bool {
	tok := p.next()
	if tok.Typ != typ {
		return false
	}

	return true
}

func (p *Parser) errorf(l *Location, format string, args ...interface{}) Expr {
	return &BadExpr{l, fmt.Sprintf(format, args...)}
}

// statement parses one top-level or block-level statement. At this level a
// '!=' after a bare identifier is the assignment operator; everywhere else
// it is the not-equal comparison.
func (p *Parser) statement() Expr {
	if p.check(TokenLambda) {
		return p.funcLit()
	}

	lhs := p.additiveExpr()

	if id, ok := lhs.(*Identifier); ok && p.check(TokenNotEquals) {
		p.next() // Skip !=

		return &Assign{
			Name:  id.Name,
			Value: p.expr(),
		}
	}

	return p.comparisonTail(lhs)
}

func (p *Parser) expr() Expr {
	if p.check(TokenLambda) {
		return p.funcLit()
	}

	return p.comparisonTail(p.additiveExpr())
}

// comparisonTail attaches at most one comparison operator to lhs.
// Comparisons do not chain.
func (p *Parser) comparisonTail(lhs Expr) Expr {
	switch tok := p.peek(); tok.Typ {
	case TokenLess, TokenGreater, TokenEquals, TokenNotEquals:
		p.next()

		return &BinaryExpr{
			Operation: BinaryOp(tok.Value),
			Op1:       lhs,
			Op2:       p.additiveExpr(),
		}
	}

	return lhs
}

func (p *Parser) additiveExpr() Expr {
	lhs := p.multiplicativeExpr()

	for {
		if tok := p.peek(); tok.Typ == TokenPlus || tok.Typ == TokenMinus {
			// Chained operands (for example 1 - 3 + 1). Fold left to right
			p.next()

			rhs := p.multiplicativeExpr()
			lhs = &BinaryExpr{
				Operation: BinaryOp(tok.Value),
				Op1:       lhs,
				Op2:       rhs,
			}

			continue
		}

		return lhs
	}
}

func (p *Parser) multiplicativeExpr() Expr {
	lhs := p.primary()

	for {
		if tok := p.peek(); tok.Typ == TokenMulti || tok.Typ == TokenDiv || tok.Typ == TokenModulo {
			// Chained operands (for example 1 / 3 * 1). Fold left to right
			p.next()

			rhs := p.primary()
			lhs = &BinaryExpr{
				Operation: BinaryOp(tok.Value),
				Op1:       lhs,
				Op2:       rhs,
			}

			continue
		}

		return lhs
	}
}

func (p *Parser) primary() Expr {
	switch tok := p.peek(); tok.Typ {
	case TokenOpenParentheses:
		return p.parenthesisedExpression()
	case TokenPlus, TokenMinus:
		return p.signedNumber()
	case TokenIdentifier:
		id := p.identifier()

		if ident, ok := id.(*Identifier); ok && p.check(TokenOpenParentheses) {
			return p.funcCall(ident)
		}

		return id
	}

	return p.literal()
}

func (p *Parser) parenthesisedExpression() Expr {
	if tok := p.next(); tok.Typ != TokenOpenParentheses {
		return p.errorf(tok.Loc, "expected opening parenthesis")
	}

	exp := p.additiveExpr()

	if tok := p.next(); tok.Typ != TokenCloseParentheses {
		return p.errorf(tok.Loc, "expected closing parenthesis")
	}

	return exp
}

// signedNumber folds a leading '+' or '-' into the literal itself, so that
// -3.5 parses as a single NumberLit. The sign is only recognised when a
// number follows immediately; there is no general unary minus.
func (p *Parser) signedNumber() Expr {
	sign := p.next()

	tok := p.expect(TokenNumber)
	if tok == nil {
		return p.errorf(sign.Loc, "expected number after '%s'", sign.Value)
	}

	value, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return p.errorf(tok.Loc, "malformed number '%s'", tok.Value)
	}

	if sign.Typ == TokenMinus {
		value = -value
	}

	return &NumberLit{Value: value}
}

func (p *Parser) identifier() Expr {
	tok := p.next()
	if tok.Typ != TokenIdentifier {
		return p.errorf(tok.Loc, "expected an identifier")
	}

	return &Identifier{
		Name: tok.Value,
	}
}

func (p *Parser) literal() Expr {
	switch tok := p.peek(); tok.Typ {
	case TokenNumber:
		value, err := strconv.ParseFloat(p.next().Value, 64)
		if err != nil {
			return p.errorf(tok.Loc, "malformed number '%s'", tok.Value)
		}

		return &NumberLit{Value: value}
	case TokenString:
		return &StringLit{
			Value: p.next().Value,
		}
	case TokenError:
		p.next()
		return p.errorf(tok.Loc, "%s", tok.Value)
	default:
		p.next() // Skip errored token
		return p.errorf(tok.Loc, "invalid symbol '%s'", tok.Value)
	}
}

// funcLit parses \ (params) { body }.
func (p *Parser) funcLit() Expr {
	start := p.next() // Lambda marker

	if !p.consume(TokenOpenParentheses) {
		return p.errorf(start.Loc, "expected parameter list")
	}

	var params []string
	for tok := p.peek(); tok.isValid() && tok.Typ != TokenCloseParentheses; tok = p.peek() {
		id := p.expect(TokenIdentifier)
		if id == nil {
			return p.errorf(tok.Loc, "expected parameter name")
		}

		params = append(params, id.Value)

		if !p.check(TokenComma) {
			break
		}

		p.next() // Skip the comma
	}

	if !p.consume(TokenCloseParentheses) {
		return p.errorf(start.Loc, "unclosed parameter list")
	}

	return &FuncLit{
		Params: params,
		Body:   p.blockStmt(),
	}
}

func (p *Parser) funcCall(id *Identifier) Expr {
	if !p.consume(TokenOpenParentheses) {
		return p.errorf(nil, "bad function call")
	}

	var args []Expr
	for tok := p.peek(); tok.isValid() && tok.Typ != TokenCloseParentheses; tok = p.peek() {
		args = append(args, p.expr())

		if !p.check(TokenComma) {
			break
		}

		p.next() // Skip the comma
	}

	if !p.consume(TokenCloseParentheses) {
		return p.errorf(nil, "bad function call")
	}

	call := &FuncCall{
		Name: id.Name,
		Args: args,
	}

	if p.check(TokenOpenCurly) {
		call.Block = p.blockStmt()
	}

	return call
}

func (p *Parser) blockStmt() []Expr {
	if tok := p.expect(TokenOpenCurly); tok == nil {
		return []Expr{p.errorf(nil, "invalid block statement")}
	}

	var exprs []Expr
	for tok := p.peek(); tok.isValid() && tok.Typ != TokenCloseCurly; tok = p.peek() {
		if tok.Typ == TokenSemicolon {
			p.next()
			continue
		}

		exprs = append(exprs, p.statement())
	}

	switch closer := p.next(); closer.Typ {
	case TokenCloseCurly:
		return exprs
	case TokenError:
		return append(exprs, p.errorf(closer.Loc, "invalid block statement"))
	case TokenEOF:
		return append(exprs, p.errorf(closer.Loc, "unclosed block statement"))
	default:
		return append(exprs, p.errorf(closer.Loc, "unexpected token in block statement"))
	}
}
