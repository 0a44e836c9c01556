package texpr

import "strconv"

// number is the numeric value attached to a Number token. Exact integers and
// floating values are kept apart so that the parser can preserve exactness
// for integer literals.
type number struct {
	f     float64
	i     int64
	isInt bool
}

type token struct {
	kind tokenKind
	text string
	// pos is the byte offset of the token's first character, except for the
	// End token, which sits at len(input).
	pos int
	num number
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

func (t token) is(k tokenKind) bool {
	return t.kind == k
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenEnd marks the end of the input.
	tokenEnd
	// tokenNumber is an integer or floating literal.
	tokenNumber
	// tokenIdent is a run of alphanumerics, or the factorial marker "!".
	tokenIdent
	// tokenCommand is a backslash command name, without the backslash.
	tokenCommand

	tokenLBrace
	tokenRBrace
	tokenLParen
	tokenRParen
	tokenLBracket
	tokenRBracket

	tokenComma
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenCaret
	tokenUnderscore
	tokenEquals
)

var tokenKindNames = [...]string{
	tokenNone:       "None",
	tokenEnd:        "End",
	tokenNumber:     "Number",
	tokenIdent:      "Ident",
	tokenCommand:    "Command",
	tokenLBrace:     "LBrace",
	tokenRBrace:     "RBrace",
	tokenLParen:     "LParen",
	tokenRParen:     "RParen",
	tokenLBracket:   "LBracket",
	tokenRBracket:   "RBracket",
	tokenComma:      "Comma",
	tokenPlus:       "Plus",
	tokenMinus:      "Minus",
	tokenStar:       "Star",
	tokenSlash:      "Slash",
	tokenCaret:      "Caret",
	tokenUnderscore: "Underscore",
	tokenEquals:     "Equals",
}

func (k tokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "tokenKind(" + strconv.Itoa(int(k)) + ")"
}
