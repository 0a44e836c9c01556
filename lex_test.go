package texpr

import (
	"strings"
	"testing"
)

func intTok(text string, pos int, v int64) token {
	return token{kind: tokenNumber, text: text, pos: pos, num: number{i: v, isInt: true}}
}

func floatTok(text string, pos int, v float64) token {
	return token{kind: tokenNumber, text: text, pos: pos, num: number{f: v}}
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		src  string
		want []token
	}{
		// spaces
		{"", nil},
		{" \t \r\n ", nil},
		// integers
		{"0", []token{intTok("0", 0, 0)}},
		{"9876543210", []token{intTok("9876543210", 0, 9876543210)}},
		{"1 0", []token{intTok("1", 0, 1), intTok("0", 2, 0)}},
		// decimals commit floating values from the full literal
		{"1.5", []token{floatTok("1.5", 0, 1.5)}},
		{"3.25", []token{floatTok("3.25", 0, 3.25)}},
		{".5", []token{floatTok(".5", 0, 0.5)}},
		{"1.2.3", []token{floatTok("1.2", 0, 1.2), floatTok(".3", 3, 0.3)}},
		// exponent forms are always floating
		{"1e3", []token{floatTok("1e3", 0, 1e3)}},
		{"1E3", []token{floatTok("1E3", 0, 1e3)}},
		{"1e-3", []token{floatTok("1e-3", 0, 1e-3)}},
		{"2.5e2", []token{floatTok("2.5e2", 0, 250)}},
		{".5e1", []token{floatTok(".5e1", 0, 5)}},
		// int64 overflow degrades to floating
		{"99999999999999999999", []token{floatTok("99999999999999999999", 0, 1e20)}},
		// identifiers
		{"x", []token{{kind: tokenIdent, text: "x", pos: 0}}},
		{"abc", []token{{kind: tokenIdent, text: "abc", pos: 0}}},
		{"x2", []token{{kind: tokenIdent, text: "x2", pos: 0}}},
		{"x y", []token{{kind: tokenIdent, text: "x", pos: 0}, {kind: tokenIdent, text: "y", pos: 2}}},
		// a digit starts a number, so 2x is two tokens
		{"2x", []token{intTok("2", 0, 2), {kind: tokenIdent, text: "x", pos: 1}}},
		// commands keep the backslash position but drop it from the text
		{`\frac`, []token{{kind: tokenCommand, text: "frac", pos: 0}}},
		{`2\pi`, []token{intTok("2", 0, 2), {kind: tokenCommand, text: "pi", pos: 1}}},
		{`\sin x`, []token{{kind: tokenCommand, text: "sin", pos: 0}, {kind: tokenIdent, text: "x", pos: 5}}},
		// factorial marker lexes as an identifier
		{"3!", []token{intTok("3", 0, 3), {kind: tokenIdent, text: "!", pos: 1}}},
		// punctuation
		{"{", []token{{kind: tokenLBrace, text: "{", pos: 0}}},
		{"}", []token{{kind: tokenRBrace, text: "}", pos: 0}}},
		{"()", []token{{kind: tokenLParen, text: "(", pos: 0}, {kind: tokenRParen, text: ")", pos: 1}}},
		{"[]", []token{{kind: tokenLBracket, text: "[", pos: 0}, {kind: tokenRBracket, text: "]", pos: 1}}},
		{",+-*/^_=", []token{
			{kind: tokenComma, text: ",", pos: 0},
			{kind: tokenPlus, text: "+", pos: 1},
			{kind: tokenMinus, text: "-", pos: 2},
			{kind: tokenStar, text: "*", pos: 3},
			{kind: tokenSlash, text: "/", pos: 4},
			{kind: tokenCaret, text: "^", pos: 5},
			{kind: tokenUnderscore, text: "_", pos: 6},
			{kind: tokenEquals, text: "=", pos: 7},
		}},
		// tokens committed at the sentinel still get an End token after them
		{"1+2", []token{intTok("1", 0, 1), {kind: tokenPlus, text: "+", pos: 1}, intTok("2", 2, 2)}},
		{`\frac{1}{2}`, []token{
			{kind: tokenCommand, text: "frac", pos: 0},
			{kind: tokenLBrace, text: "{", pos: 5},
			intTok("1", 6, 1),
			{kind: tokenRBrace, text: "}", pos: 7},
			{kind: tokenLBrace, text: "{", pos: 8},
			intTok("2", 9, 2),
			{kind: tokenRBrace, text: "}", pos: 10},
		}},
	}
	for _, c := range cases {
		got, err := tokenize(c.src)
		if err != nil {
			t.Errorf("scanning %q: unexpected error %v", c.src, err)
			continue
		}
		want := append(append([]token{}, c.want...), token{kind: tokenEnd, pos: len(c.src)})
		if len(got) != len(want) {
			t.Errorf("scanning %q: want %v tokens, got %v: %v", c.src, len(want), len(got), got)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("scanning %q token %d: want %v, got %v", c.src, i, want[i], got[i])
			}
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		src  string
		kind string
		pos  int
	}{
		{"$", "", 0},
		{"a $", "", 2},
		{"#1", "", 0},
		{".", "number", 0},
		{"1.", "number", 0},
		{"1. 5", "number", 0},
		{"1e", "number", 0},
		{"1e+3", "number", 0}, // only '-' may sign an exponent
		{"1e-", "number", 0},
		{"2 + 3.", "number", 4},
		{`\sqrt{.}`, "number", 6},
	}
	for _, c := range cases {
		toks, err := tokenize(c.src)
		if err == nil {
			t.Errorf("scanning %q: no error, tokens %v", c.src, toks)
			continue
		}
		lerr, ok := err.(*LexError)
		if !ok {
			t.Errorf("scanning %q: error %v is %T, not *LexError", c.src, err, err)
			continue
		}
		if lerr.Kind != c.kind {
			t.Errorf("scanning %q: error kind %q, want %q", c.src, lerr.Kind, c.kind)
		}
		if lerr.Pos != c.pos {
			t.Errorf("scanning %q: error pos %d, want %d", c.src, lerr.Pos, c.pos)
		}
	}
}

// TestTokenizeCoverage checks that every committed token's text is exactly
// the input slice at its offset, and that the End token sits at len(src), so
// tokens tile the input.
func TestTokenizeCoverage(t *testing.T) {
	srcs := []string{
		"2 + 3 * 4",
		`\frac{1}{2} \cdot \sqrt{9}`,
		`\operatorname{max}(1, 2.5, \pi)`,
		"-x^2! = 1e-3",
		`\left( a + b \right)`,
	}
	for _, src := range srcs {
		toks, err := tokenize(src)
		if err != nil {
			t.Fatalf("scanning %q: %v", src, err)
		}
		end := toks[len(toks)-1]
		if !end.is(tokenEnd) || end.pos != len(src) {
			t.Errorf("scanning %q: final token %v is not End at %d", src, end, len(src))
		}
		for _, tok := range toks[:len(toks)-1] {
			text := tok.text
			if tok.is(tokenCommand) {
				text = `\` + text
			}
			if !strings.HasPrefix(src[tok.pos:], text) {
				t.Errorf("scanning %q: token %v does not match input at %d", src, tok, tok.pos)
			}
		}
	}
}
