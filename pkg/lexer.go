package slant

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

//go:generate stringer -type=TokenType -trimprefix=Token
const (
	EOF rune = 0

	TokenError TokenType = iota
	TokenEOF
	TokenNumber
	TokenString
	TokenIdentifier

	TokenPlus
	TokenMinus
	TokenMulti
	TokenDiv
	TokenModulo
	TokenLess
	TokenGreater
	TokenEquals
	TokenNotEquals
	TokenLambda
	TokenComma
	TokenSemicolon
	TokenLineComment
	TokenOpenParentheses
	TokenCloseParentheses
	TokenOpenCurly
	TokenCloseCurly
)

var operatorTable = map[string]TokenType{
	"+":  TokenPlus,
	"-":  TokenMinus,
	"*":  TokenMulti,
	"/":  TokenDiv,
	"%":  TokenModulo,
	"<":  TokenLess,
	">":  TokenGreater,
	"==": TokenEquals,
	"!=": TokenNotEquals,
	"\\": TokenLambda,
	",":  TokenComma,
	";":  TokenSemicolon,
	"//": TokenLineComment,
	"(":  TokenOpenParentheses,
	")":  TokenCloseParentheses,
	"{":  TokenOpenCurly,
	"}":  TokenCloseCurly,
}

// Location is a 1-based line/column source position.
type Location struct {
	Line int
	Col  int
}

func (l *Location) String() string {
	if l == nil {
		return "?:?"
	}

	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

type Token struct {
	Typ   TokenType
	Value string
	Loc   *Location
}

func (t Token) isValid() bool {
	return t.Typ != TokenError && t.Typ != TokenEOF
}

func (t Token) isComment() bool {
	return t.Typ == TokenLineComment
}

type Lexer struct {
	reader *bufio.Reader
	done   chan Token
	line   int
	col    int
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		done:   make(chan Token),
		line:   1,
		col:    1,
	}
}

func (l *Lexer) Chan() chan Token {
	return l.done
}

func (l *Lexer) Do() {
	l.Run()
}

func (l *Lexer) Get() Token {
	return <-l.done
}

func (l *Lexer) Run() {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	close(l.done)
}

func (l *Lexer) RunBlocking() ([]Token, error) {
	go l.Run()

	var tokens []Token
	for t := range l.Chan() {
		if t.Typ == TokenEOF {
			return tokens, nil
		}

		if t.Typ == TokenError {
			return nil, errors.New(t.Value)
		}

		tokens = append(tokens, t)
	}

	return tokens, nil
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func defaultState(l *Lexer) stateFunc {
	for {
		switch r := l.peek(); {
		case r == EOF:
			l.emitValue(TokenEOF, "")
			return nil
		case unicode.IsSpace(r):
			l.next()
			continue
		case isDigit(r):
			return numberState
		case r == '"' || r == '\'':
			return stringState
		case isLetter(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	loc := l.loc()

	var num strings.Builder
	for r := l.peek(); isDigit(r); r = l.peek() {
		num.WriteRune(l.next())
	}

	if l.peek() == '.' {
		num.WriteRune(l.next())

		if !isDigit(l.peek()) {
			return l.errorf(loc, "malformed number '%s'", num.String())
		}

		for r := l.peek(); isDigit(r); r = l.peek() {
			num.WriteRune(l.next())
		}
	}

	return l.emitValueAt(TokenNumber, num.String(), loc)
}

func stringState(l *Lexer) stateFunc {
	loc := l.loc()
	quote := l.next() // Either " or '

	var str strings.Builder
	for r := l.next(); r != quote; r = l.next() {
		if r == EOF {
			return l.errorf(loc, "unclosed string: %s", str.String())
		}

		str.WriteRune(r)
	}

	return l.emitValueAt(TokenString, str.String(), loc)
}

func identifierState(l *Lexer) stateFunc {
	loc := l.loc()

	var id strings.Builder
	for r := l.peek(); isLetter(r) || isDigit(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	return l.emitValueAt(TokenIdentifier, id.String(), loc)
}

func operatorState(l *Lexer) stateFunc {
	loc := l.loc()

	r := l.next()
	if r == '=' || r == '!' || r == '/' { // Some operators can be two runes
		op := string(r) + string(l.peek())
		if tok, ok := operatorTable[op]; ok {
			l.next() // Skip

			if tok == TokenLineComment {
				return lineCommentState
			}

			return l.emitValueAt(tok, op, loc)
		}
	}

	if tok, ok := operatorTable[string(r)]; ok {
		return l.emitValueAt(tok, string(r), loc)
	}

	return l.errorf(loc, "invalid symbol '%c'", r)
}

func lineCommentState(l *Lexer) stateFunc {
	loc := l.loc()

	var comment strings.Builder
	for r := l.peek(); r != '\n' && r != EOF; r = l.peek() {
		comment.WriteRune(l.next())
	}

	return l.emitValueAt(TokenLineComment, comment.String(), loc)
}

func (l *Lexer) errorf(loc *Location, format string, args ...interface{}) stateFunc {
	l.done <- Token{
		Typ:   TokenError,
		Value: fmt.Sprintf(format, args...),
		Loc:   loc,
	}

	return nil
}

func (l *Lexer) emitValue(t TokenType, val string) stateFunc {
	return l.emitValueAt(t, val, l.loc())
}

func (l *Lexer) emitValueAt(t TokenType, val string, loc *Location) stateFunc {
	l.done <- Token{
		Typ:   t,
		Value: val,
		Loc:   loc,
	}

	return defaultState
}

func (l *Lexer) loc() *Location {
	return &Location{
		Line: l.line,
		Col:  l.col,
	}
}

func (l *Lexer) peek() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}

	_ = l.reader.UnreadRune()

	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}
