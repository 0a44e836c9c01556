package texpr

import "strconv"

// lexState is a state of the tokenizer's finite-state machine.
type lexState int8

const (
	stateStart lexState = iota
	stateNumber
	stateNumberFracMark
	stateNumberFrac
	stateNumberExpMark
	stateNumberExpSign
	stateNumberExp
	stateIdent
	stateCommand
)

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isAlnum(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// punct maps single-character punctuation to its token kind, or tokenNone.
func punct(c byte) tokenKind {
	switch c {
	case '{':
		return tokenLBrace
	case '}':
		return tokenRBrace
	case '(':
		return tokenLParen
	case ')':
		return tokenRParen
	case '[':
		return tokenLBracket
	case ']':
		return tokenRBracket
	case ',':
		return tokenComma
	case '+':
		return tokenPlus
	case '-':
		return tokenMinus
	case '*':
		return tokenStar
	case '/':
		return tokenSlash
	case '^':
		return tokenCaret
	case '_':
		return tokenUnderscore
	case '=':
		return tokenEquals
	}
	return tokenNone
}

// tokenize scans src into a token sequence terminated by an End token at
// len(src). A virtual NUL past the last character drains any in-progress
// token, so every commit site is reached uniformly. On error the returned
// tokens are meaningless and must be discarded.
func tokenize(src string) ([]token, error) {
	toks := make([]token, 0, len(src)/2+1)
	state := stateStart
	start := 0
	for i := 0; i <= len(src); {
		var c byte // NUL sentinel at i == len(src)
		if i < len(src) {
			c = src[i]
		}
		switch state {
		case stateStart:
			switch {
			case c == 0:
				toks = append(toks, token{kind: tokenEnd, pos: len(src)})
				return toks, nil
			case isSpace(c):
			case isDigit(c):
				state, start = stateNumber, i
			case c == '.':
				state, start = stateNumberFracMark, i
			case c == '\\':
				state, start = stateCommand, i
			case isAlnum(c):
				state, start = stateIdent, i
			case c == '!':
				// The factorial marker is an ordinary identifier token; the
				// parser decides whether it is postfix.
				toks = append(toks, token{kind: tokenIdent, text: "!", pos: i})
			default:
				if k := punct(c); k != tokenNone {
					toks = append(toks, token{kind: k, text: src[i : i+1], pos: i})
					break
				}
				return nil, &LexError{Text: src[i : i+1], Pos: i}
			}
			i++
		case stateNumber:
			switch {
			case isDigit(c):
				i++
			case c == '.':
				state = stateNumberFracMark
				i++
			case c == 'e' || c == 'E':
				state = stateNumberExpMark
				i++
			default:
				toks = append(toks, intToken(src[start:i], start))
				state = stateStart
			}
		case stateNumberFracMark:
			// A fraction mark must be followed by at least one digit.
			if !isDigit(c) {
				return nil, numError(src, start, i, c)
			}
			state = stateNumberFrac
			i++
		case stateNumberFrac:
			if isDigit(c) {
				i++
				break
			}
			toks = append(toks, floatToken(src[start:i], start))
			state = stateStart
		case stateNumberExpMark:
			switch {
			case isDigit(c):
				state = stateNumberExp
				i++
			case c == '-':
				state = stateNumberExpSign
				i++
			default:
				return nil, numError(src, start, i, c)
			}
		case stateNumberExpSign:
			if !isDigit(c) {
				return nil, numError(src, start, i, c)
			}
			state = stateNumberExp
			i++
		case stateNumberExp:
			if isDigit(c) {
				i++
				break
			}
			toks = append(toks, floatToken(src[start:i], start))
			state = stateStart
		case stateIdent:
			if isAlnum(c) {
				i++
				break
			}
			toks = append(toks, token{kind: tokenIdent, text: src[start:i], pos: start})
			state = stateStart
		case stateCommand:
			if isAlnum(c) {
				i++
				break
			}
			// The literal drops the leading backslash; pos keeps it.
			toks = append(toks, token{kind: tokenCommand, text: src[start+1 : i], pos: start})
			state = stateStart
		}
	}
	// Unreachable: the Start state returns at the sentinel, and every other
	// state either consumes it as an error or hands back to Start.
	panic("texpr: tokenizer fell off the input")
}

// intToken commits an exact-integer literal. Literals too large for int64
// degrade to floating values rather than failing the whole scan.
func intToken(text string, pos int) token {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return floatToken(text, pos)
	}
	return token{kind: tokenNumber, text: text, pos: pos, num: number{i: v, isInt: true}}
}

// floatToken commits a floating literal from its full text, including any
// fractional digits and exponent.
func floatToken(text string, pos int) token {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// The FSM only commits digit strings with at most one mark of each
		// kind, all of which ParseFloat accepts.
		panic("texpr: unparseable number literal " + strconv.Quote(text))
	}
	return token{kind: tokenNumber, text: text, pos: pos, num: number{f: v}}
}

// numError builds the error for an incomplete numeric literal, including the
// terminating character when it is a real one.
func numError(src string, start, i int, c byte) error {
	if c != 0 {
		i++
	}
	return &LexError{Text: src[start:i], Kind: "number", Pos: start}
}

// LexError indicates an input that does not match any lexical rule, or a
// numeric literal left incomplete. It implements InputError.
type LexError struct {
	// Text is the text scanned for the offending token, including the
	// character that made it invalid when there is one.
	Text string
	// Kind is the type of token being scanned, currently "number" or the
	// empty string if no token had started.
	Kind string
	// Pos is the byte offset at which the offending token started.
	Pos int
}

func (err *LexError) Error() string {
	pos := "offset " + strconv.Itoa(err.Pos)
	if err.Kind == "" {
		return "invalid character at " + pos + ": " + strconv.Quote(err.Text)
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + strconv.Quote(err.Text)
}

func (err *LexError) Offset() int {
	return err.Pos
}
