package slant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.slant.dev/internal/test"
)

func TestLexer(t *testing.T) {
	cases := []struct {
		data   string
		fail   bool
		expect []Token
	}{
		{
			"a != b + 1",
			false,
			[]Token{
				{TokenIdentifier, "a", nil},
				{TokenNotEquals, "!=", nil},
				{TokenIdentifier, "b", nil},
				{TokenPlus, "+", nil},
				{TokenNumber, "1", nil},
			},
		},
		{
			"//this is a comment\n",
			false,
			[]Token{
				{TokenLineComment, "this is a comment", nil},
			},
		},
		{
			"\\ (x, y) {\n// this is a comment \n}",
			false,
			[]Token{
				{TokenLambda, "\\", nil},
				{TokenOpenParentheses, "(", nil},
				{TokenIdentifier, "x", nil},
				{TokenComma, ",", nil},
				{TokenIdentifier, "y", nil},
				{TokenCloseParentheses, ")", nil},
				{TokenOpenCurly, "{", nil},
				{TokenLineComment, " this is a comment ", nil},
				{TokenCloseCurly, "}", nil},
			},
		},
		{
			"12.5 % 2 == 0.5",
			false,
			[]Token{
				{TokenNumber, "12.5", nil},
				{TokenModulo, "%", nil},
				{TokenNumber, "2", nil},
				{TokenEquals, "==", nil},
				{TokenNumber, "0.5", nil},
			},
		},
		{
			"a < b; b > c",
			false,
			[]Token{
				{TokenIdentifier, "a", nil},
				{TokenLess, "<", nil},
				{TokenIdentifier, "b", nil},
				{TokenSemicolon, ";", nil},
				{TokenIdentifier, "b", nil},
				{TokenGreater, ">", nil},
				{TokenIdentifier, "c", nil},
			},
		},
		{
			"identifier != \"string\"",
			false,
			[]Token{
				{TokenIdentifier, "identifier", nil},
				{TokenNotEquals, "!=", nil},
				{TokenString, "string", nil},
			},
		},
		{
			"'single quoted with \"'",
			false,
			[]Token{
				{TokenString, "single quoted with \"", nil},
			},
		},
		{
			"\"\"",
			false,
			[]Token{
				{TokenString, "", nil},
			},
		},
		{
			"\"unclosed string",
			true,
			nil,
		},
		{
			"3.",
			true,
			nil,
		},
		{
			"@",
			true,
			nil,
		},
		{
			"único", // Identifiers are ASCII only
			true,
			nil,
		},
	}

	for _, c := range cases {
		r := strings.NewReader(c.data)
		l := NewLexer(r)

		toks, err := l.RunBlocking()
		if c.fail {
			assert.Error(t, err)
		}

		for i := range toks {
			toks[i].Loc = nil
		}

		assert.Equal(t, c.expect, toks)
	}
}

func TestLexerLocations(t *testing.T) {
	l := NewLexer(strings.NewReader("a != 1\nbb != 22"))

	toks, err := l.RunBlocking()
	assert.NoError(t, err)

	locs := make([]Location, 0, len(toks))
	for _, tok := range toks {
		locs = append(locs, *tok.Loc)
	}

	assert.Equal(t, []Location{
		{1, 1},
		{1, 3},
		{1, 6},
		{2, 1},
		{2, 4},
		{2, 7},
	}, locs)
}

// Use a package-level variable to avoid compiler optimisation
var benchResult []Token

func benchmarkLexer(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		// Setup
		b.StopTimer()
		data := test.GetRandomTokens(size)
		r := strings.NewReader(data)
		l := NewLexer(r)

		var err error
		b.StartTimer()

		benchResult, err = l.RunBlocking()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLexer100(b *testing.B) {
	benchmarkLexer(100, b)
}

func BenchmarkLexer1000(b *testing.B) {
	benchmarkLexer(1000, b)
}

func BenchmarkLexer10000(b *testing.B) {
	benchmarkLexer(10000, b)
}

func BenchmarkLexer100000(b *testing.B) {
	benchmarkLexer(100000, b)
}
