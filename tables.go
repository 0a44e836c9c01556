package texpr

// infixInfo is the binding-power pair for an infix operator. Higher binds
// tighter; leftBP >= rightBP groups left, leftBP < rightBP groups right.
type infixInfo struct {
	leftBP  int8
	rightBP int8
	op      OpKind
}

// infixOps is the binding-power table for infix symbol tokens.
var infixOps = map[tokenKind]infixInfo{
	tokenEquals: {1, 2, OpEquals},
	tokenPlus:   {3, 4, OpAdd},
	tokenMinus:  {3, 4, OpSubtract},
	tokenStar:   {5, 6, OpMultiply},
	tokenSlash:  {5, 6, OpDivide},
	tokenCaret:  {12, 11, OpPower}, // rightBP < leftBP: right-associative
}

// infixCommandOps is the binding-power table for commands that act as infix
// operators.
var infixCommandOps = map[string]infixInfo{
	"cdot":  {5, 6, OpMultiply},
	"times": {5, 6, OpMultiply},
	"div":   {5, 6, OpDivide},
}

// implicitMultiplyOp is the operator used when two subexpressions are
// adjacent with no operator token between them. Same precedence as '*'.
var implicitMultiplyOp = infixInfo{5, 6, OpMultiply}

const (
	// prefixUnaryRBP is the binding power of the operand of unary minus, and
	// of a bare (unbracketed) function argument.
	prefixUnaryRBP int8 = 9
	// postfixLBP is the binding power of postfix operators, which bind
	// tightest of all.
	postfixLBP int8 = 13
)

// functionKinds maps single-argument function commands to their kinds.
var functionKinds = map[string]FuncKind{
	"sin": FuncSine,
	"cos": FuncCosine,
	"tan": FuncTangent,
	"ln":  FuncNaturalLog,
	"log": FuncLog,
	"exp": FuncExp,
}

// operatorNames maps \operatorname{...} targets to their kinds.
var operatorNames = map[string]FuncKind{
	"max":   FuncMax,
	"min":   FuncMin,
	"atan2": FuncAtan2,
	"hypot": FuncHypot,
	"abs":   FuncAbs,
}

// constantKinds maps constant commands to their kinds.
var constantKinds = map[string]ConstKind{
	"pi": ConstPi,
	"e":  ConstE,
}

// prefixCommands is the set of commands that can begin a subexpression, and
// therefore admit implicit multiplication on their left. The inverse trig
// names are reserved ahead of their implementation.
var prefixCommands = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"ln": true, "log": true, "exp": true,
	"pi": true, "e": true,
	"sqrt": true, "frac": true,
	"left": true, "operatorname": true,
	"arcsin": true, "arccos": true, "arctan": true,
}
