package texpr

import (
	"strconv"
	"strings"
)

// NodeID is a dense index into a Tree's arena. IDs are never reused; the
// arena owns every node and children are plain index links.
type NodeID int32

// NoNode is the sentinel for an absent child.
const NoNode NodeID = -1

// Valid reports whether the ID refers to a node.
func (id NodeID) Valid() bool { return id != NoNode }

// NodeKind discriminates the variants of Node.
type NodeKind int8

const (
	KindNone NodeKind = iota
	// KindConstant is a symbolic constant such as pi.
	KindConstant
	// KindReal is a 64-bit floating literal.
	KindReal
	// KindRational is an exact numerator/denominator pair in lowest terms.
	KindRational
	// KindIdentifier is a free variable name.
	KindIdentifier
	// KindBinaryOp applies Op to Left and Right.
	KindBinaryOp
	// KindUnaryOp applies Op to Left.
	KindUnaryOp
	// KindCall applies Fn to Args.
	KindCall
)

var nodeKindNames = [...]string{
	KindNone:       "None",
	KindConstant:   "Constant",
	KindReal:       "Real",
	KindRational:   "Rational",
	KindIdentifier: "Identifier",
	KindBinaryOp:   "BinaryOp",
	KindUnaryOp:    "UnaryOp",
	KindCall:       "Call",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}

// ConstKind identifies a symbolic constant.
type ConstKind int8

const (
	ConstPi ConstKind = iota
	ConstE
	ConstI
)

func (k ConstKind) String() string {
	switch k {
	case ConstPi:
		return "pi"
	case ConstE:
		return "e"
	case ConstI:
		return "i"
	}
	return "ConstKind(" + strconv.Itoa(int(k)) + ")"
}

// OpKind identifies a unary or binary operator.
type OpKind int8

const (
	OpNone OpKind = iota
	OpEquals
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpPower
	OpNegate
	OpFactorial
)

var opKindNames = [...]string{
	OpNone:      "?",
	OpEquals:    "=",
	OpAdd:       "+",
	OpSubtract:  "-",
	OpMultiply:  "*",
	OpDivide:    "/",
	OpPower:     "^",
	OpNegate:    "-",
	OpFactorial: "!",
}

func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return "OpKind(" + strconv.Itoa(int(k)) + ")"
}

// FuncKind identifies a named function in a Call node.
type FuncKind int8

const (
	FuncSine FuncKind = iota
	FuncCosine
	FuncTangent
	FuncNaturalLog
	FuncLog
	FuncExp
	FuncAtan2
	FuncHypot
	FuncMax
	FuncMin
	FuncAbs
)

var funcKindNames = [...]string{
	FuncSine:       "sin",
	FuncCosine:     "cos",
	FuncTangent:    "tan",
	FuncNaturalLog: "ln",
	FuncLog:        "log",
	FuncExp:        "exp",
	FuncAtan2:      "atan2",
	FuncHypot:      "hypot",
	FuncMax:        "max",
	FuncMin:        "min",
	FuncAbs:        "abs",
}

func (k FuncKind) String() string {
	if int(k) < len(funcKindNames) {
		return funcKindNames[k]
	}
	return "FuncKind(" + strconv.Itoa(int(k)) + ")"
}

// Node is one node of a parsed expression. Kind selects which fields are
// meaningful; the rest are zero. Child links are NodeIDs into the owning
// Tree, never pointers.
type Node struct {
	Kind NodeKind

	Const ConstKind // Constant
	Real  float64   // Real
	Num   int64     // Rational numerator
	Den   int64     // Rational denominator
	Name  string    // Identifier
	Op    OpKind    // BinaryOp, UnaryOp
	Fn    FuncKind  // Call

	Left  NodeID   // BinaryOp left, UnaryOp operand
	Right NodeID   // BinaryOp right
	Args  []NodeID // Call arguments, in order

	// Pos is the byte offset of the token that produced the node.
	Pos int
}

// Tree owns the arena of nodes for one parse. It is created empty, populated
// append-only by the parser, and never compacted.
type Tree struct {
	Root NodeID
	// Nodes is the arena. It is populated append-only by the parser;
	// treat it as read-only afterwards.
	Nodes []Node
}

// NewTree returns an empty tree with no root.
func NewTree() *Tree {
	return &Tree{Root: NoNode}
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.Nodes) }

// At returns the node for an ID. The returned pointer stays valid until the
// next Add; IDs themselves are stable forever.
func (t *Tree) At(id NodeID) *Node {
	return &t.Nodes[id]
}

// Add appends a node and returns its ID. This is the only mutator; nodes are
// never removed or reordered.
func (t *Tree) Add(n Node) NodeID {
	t.Nodes = append(t.Nodes, n)
	return NodeID(len(t.Nodes) - 1)
}

func (t *Tree) addConstant(k ConstKind, pos int) NodeID {
	return t.Add(Node{Kind: KindConstant, Const: k, Pos: pos})
}

func (t *Tree) addReal(v float64, pos int) NodeID {
	return t.Add(Node{Kind: KindReal, Real: v, Pos: pos})
}

// AddRational appends a rational node reduced to lowest terms. The reducer
// works on absolute values and does not canonicalize the denominator's sign,
// so callers may observe a negative Den. A zero denominator is the caller's
// bug and is not guarded here.
func (t *Tree) AddRational(num, den int64, pos int) NodeID {
	num, den = reduce(num, den)
	return t.Add(Node{Kind: KindRational, Num: num, Den: den, Pos: pos})
}

func (t *Tree) addIdentifier(name string, pos int) NodeID {
	return t.Add(Node{Kind: KindIdentifier, Name: name, Pos: pos})
}

func (t *Tree) addBinaryOp(op OpKind, left, right NodeID, pos int) NodeID {
	return t.Add(Node{Kind: KindBinaryOp, Op: op, Left: left, Right: right, Pos: pos})
}

func (t *Tree) addUnaryOp(op OpKind, inner NodeID, pos int) NodeID {
	return t.Add(Node{Kind: KindUnaryOp, Op: op, Left: inner, Pos: pos})
}

func (t *Tree) addCall(fn FuncKind, args []NodeID, pos int) NodeID {
	return t.Add(Node{Kind: KindCall, Fn: fn, Args: args, Pos: pos})
}

// Vars returns the distinct identifier names used in the tree, sorted. The
// arena owns every node, so a linear scan covers the whole tree.
func (t *Tree) Vars() []string {
	var names []string
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if n.Kind != KindIdentifier {
			continue
		}
		seen := false
		for _, s := range names {
			if s == n.Name {
				seen = true
				break
			}
		}
		if !seen {
			names = append(names, n.Name)
		}
	}
	sortstrs(names)
	return names
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// String renders the tree from its root with every subexpression
// parenthesized, which makes grouping unambiguous in tests and echo output.
func (t *Tree) String() string {
	if !t.Root.Valid() {
		return "()"
	}
	var b strings.Builder
	t.fmt(&b, t.Root)
	return b.String()
}

func (t *Tree) fmt(b *strings.Builder, id NodeID) {
	if !id.Valid() {
		b.WriteString("(#)")
		return
	}
	n := t.At(id)
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.Kind {
	case KindConstant:
		b.WriteString(n.Const.String())
	case KindReal:
		b.WriteString(strconv.FormatFloat(n.Real, 'g', -1, 64))
	case KindRational:
		b.WriteString(strconv.FormatInt(n.Num, 10))
		if n.Den != 1 {
			b.WriteByte('/')
			b.WriteString(strconv.FormatInt(n.Den, 10))
		}
	case KindIdentifier:
		b.WriteString(n.Name)
	case KindBinaryOp:
		t.fmt(b, n.Left)
		b.WriteByte(' ')
		b.WriteString(n.Op.String())
		b.WriteByte(' ')
		t.fmt(b, n.Right)
	case KindUnaryOp:
		if n.Op == OpFactorial {
			t.fmt(b, n.Left)
			b.WriteByte('!')
			break
		}
		b.WriteString(n.Op.String())
		t.fmt(b, n.Left)
	case KindCall:
		b.WriteString(n.Fn.String())
		b.WriteByte('[')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			t.fmt(b, a)
		}
		b.WriteByte(']')
	default:
		// Invalid nodes render as invalid syntax rather than panicking.
		b.WriteByte('$')
		b.WriteString(n.Kind.String())
		b.WriteByte('$')
	}
}
