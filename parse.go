package texpr

// Expr     = num | ident | Unary | Binary | Call | Group | Frac | Sqrt
// Group    = '(' Expr ')' | '{' Expr '}' | '\left(' Expr '\right)'
// Unary    = '-' Expr | Expr '!'
// Binary   = Expr ('=' | '+' | '-' | '*' | '/' | '^') Expr
//          | Expr ('\cdot' | '\times' | '\div') Expr
//          | Expr Expr                          (implicit multiplication)
// Call     = fname '{' Expr '}' | fname '(' Expr ')' | fname Expr
//          | '\operatorname' '{' ident '}' '(' Expr { ',' Expr } ')'
// Frac     = '\frac' '{' Expr '}' '{' Expr '}'
// Sqrt     = '\sqrt' '{' Expr '}'
//
// Operator precedence and associativity are encoded as binding-power pairs
// in tables.go; see https://matklad.github.io/2020/04/13/simple-but-powerful-pratt-parsing.html

// maxDepth bounds expression nesting so that hostile input cannot exhaust
// the call stack.
const maxDepth = 500

// parser consumes a token sequence in order and appends nodes to its tree.
// A parser is used for exactly one parse; there is no shared state between
// invocations.
type parser struct {
	toks  []token
	pos   int
	tree  *Tree
	depth int
}

// Parse converts a textual math expression into a syntax tree. It parses
// exactly one expression covering the whole input; the first lexical or
// grammatical violation aborts with an InputError and no tree.
func Parse(src string) (*Tree, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	t := NewTree()
	p := parser{toks: toks, tree: t}
	root, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if end := p.peek(); !end.is(tokenEnd) {
		return nil, &TrailingTokenError{Pos: end.pos, Got: end.text}
	}
	t.Root = root
	return t, nil
}

// peek returns the current token without consuming it. The End token makes
// this total: pos never passes it.
func (p *parser) peek() token {
	return p.toks[p.pos]
}

// advance returns the current token and moves past it, except at End, which
// is sticky.
func (p *parser) advance() token {
	t := p.toks[p.pos]
	if !t.is(tokenEnd) {
		p.pos++
	}
	return t
}

// expect asserts the current token's kind and advances past it.
func (p *parser) expect(k tokenKind, want string) (token, error) {
	if p.peek().is(k) {
		return p.advance(), nil
	}
	t := p.peek()
	return token{}, &UnexpectedTokenError{Pos: t.pos, Got: t.text, Want: want}
}

// parseExpression is the Pratt main loop: parse one prefix production, then
// absorb postfix and infix operators while their left binding power is at
// least minBP.
func (p *parser) parseExpression(minBP int8) (NodeID, error) {
	if p.depth++; p.depth > maxDepth {
		return NoNode, &DepthError{Pos: p.peek().pos}
	}
	defer func() { p.depth-- }()

	left, err := p.parsePrefix()
	if err != nil {
		return NoNode, err
	}
	for {
		t := p.peek()

		// Postfix factorial binds tightest.
		if t.is(tokenIdent) && t.text == "!" {
			if postfixLBP < minBP {
				break
			}
			pos := p.advance().pos
			left = p.tree.addUnaryOp(OpFactorial, left, pos)
			continue
		}

		// Infix symbols.
		if in, ok := infixOps[t.kind]; ok {
			if in.leftBP < minBP {
				break
			}
			op := p.advance()
			right, err := p.parseExpression(in.rightBP)
			if err != nil {
				return NoNode, err
			}
			left = p.tree.addBinaryOp(in.op, left, right, op.pos)
			continue
		}

		// Commands that act as infix operators.
		if t.is(tokenCommand) {
			if in, ok := infixCommandOps[t.text]; ok {
				if in.leftBP < minBP {
					break
				}
				pos := p.advance().pos
				right, err := p.parseExpression(in.rightBP)
				if err != nil {
					return NoNode, err
				}
				left = p.tree.addBinaryOp(in.op, left, right, pos)
				continue
			}
		}

		// Two adjacent subexpressions multiply: 2x, 2(3), 2\pi.
		if p.canImplicitMultiply() {
			if implicitMultiplyOp.leftBP < minBP {
				break
			}
			right, err := p.parseExpression(implicitMultiplyOp.rightBP)
			if err != nil {
				return NoNode, err
			}
			left = p.tree.addBinaryOp(implicitMultiplyOp.op, left, right, t.pos)
			continue
		}

		break
	}
	return left, nil
}

// parsePrefix parses one prefix production: a literal, identifier, unary
// minus, group, or command.
func (p *parser) parsePrefix() (NodeID, error) {
	t := p.peek()
	switch {
	case t.is(tokenNumber):
		return p.parseNumber(), nil
	case t.is(tokenIdent):
		t := p.advance()
		return p.tree.addIdentifier(t.text, t.pos), nil
	case t.is(tokenMinus):
		pos := p.advance().pos
		inner, err := p.parseExpression(prefixUnaryRBP)
		if err != nil {
			return NoNode, err
		}
		return p.tree.addUnaryOp(OpNegate, inner, pos), nil
	case t.is(tokenLParen):
		p.advance()
		inner, err := p.parseExpression(0)
		if err != nil {
			return NoNode, err
		}
		if _, err := p.expect(tokenRParen, ")"); err != nil {
			return NoNode, err
		}
		return inner, nil
	case t.is(tokenLBrace):
		return p.parseBraceGroup()
	case t.is(tokenCommand):
		return p.parseCommand()
	}
	return NoNode, &UnexpectedTokenError{Pos: t.pos, Got: t.text}
}

// parseNumber emits a rational node for exact-integer tokens and a real node
// otherwise, preserving exactness for integer literals.
func (p *parser) parseNumber() NodeID {
	t := p.advance()
	if t.num.isInt {
		return p.tree.AddRational(t.num.i, 1, t.pos)
	}
	return p.tree.addReal(t.num.f, t.pos)
}

// parseCommand dispatches a backslash command in prefix position.
func (p *parser) parseCommand() (NodeID, error) {
	t := p.peek()
	cmd := t.text

	if k, ok := constantKinds[cmd]; ok {
		pos := p.advance().pos
		return p.tree.addConstant(k, pos), nil
	}
	if _, ok := functionKinds[cmd]; ok {
		return p.parseSingleArgFunction()
	}
	switch cmd {
	case "operatorname":
		return p.parseOperatorName()
	case "frac":
		return p.parseFraction()
	case "sqrt":
		pos := p.advance().pos
		inner, err := p.parseBraceGroup()
		if err != nil {
			return NoNode, err
		}
		// sqrt desugars at parse time: \sqrt{x} = x^(1/2).
		half := p.tree.AddRational(1, 2, pos)
		return p.tree.addBinaryOp(OpPower, inner, half, pos), nil
	case "left":
		return p.parseLeftRight()
	}
	return NoNode, &UnknownCommandError{Pos: t.pos, Name: cmd}
}

// parseBraceGroup parses '{' Expr '}' and returns the inner expression.
func (p *parser) parseBraceGroup() (NodeID, error) {
	if _, err := p.expect(tokenLBrace, "{"); err != nil {
		return NoNode, err
	}
	inner, err := p.parseExpression(0)
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(tokenRBrace, "}"); err != nil {
		return NoNode, err
	}
	return inner, nil
}

// parseLeftRight parses '\left(' Expr '\right)'. Only round parentheses are
// accepted inside the delimiters; the delimiters themselves are discarded.
func (p *parser) parseLeftRight() (NodeID, error) {
	p.advance() // the \left
	if _, err := p.expect(tokenLParen, "("); err != nil {
		return NoNode, err
	}
	inner, err := p.parseExpression(0)
	if err != nil {
		return NoNode, err
	}
	if t := p.peek(); !t.is(tokenCommand) || t.text != "right" {
		return NoNode, &UnexpectedTokenError{Pos: t.pos, Got: t.text, Want: `\right`}
	}
	p.advance()
	if _, err := p.expect(tokenRParen, ")"); err != nil {
		return NoNode, err
	}
	return inner, nil
}

// parseFraction parses '\frac{..}{..}'. When both halves are bare, possibly
// sign-prefixed integer literals, it emits a single reduced rational node to
// preserve exactness; otherwise it falls back to a division of two full
// brace-group expressions. The fast path restores the token position before
// falling back, so it never consumes tokens on failure.
func (p *parser) parseFraction() (NodeID, error) {
	pos := p.advance().pos

	saved := p.pos
	if num, ok := p.braceInt(); ok {
		if den, ok := p.braceInt(); ok {
			return p.tree.AddRational(num, den, pos), nil
		}
	}
	p.pos = saved

	num, err := p.parseBraceGroup()
	if err != nil {
		return NoNode, err
	}
	den, err := p.parseBraceGroup()
	if err != nil {
		return NoNode, err
	}
	return p.tree.addBinaryOp(OpDivide, num, den, pos), nil
}

// braceInt consumes '{' ['-'] int '}' and returns the signed value. On any
// mismatch it reports false; the caller is responsible for restoring the
// token position.
func (p *parser) braceInt() (int64, bool) {
	if !p.peek().is(tokenLBrace) {
		return 0, false
	}
	p.advance()
	neg := false
	if p.peek().is(tokenMinus) {
		neg = true
		p.advance()
	}
	t := p.peek()
	if !t.is(tokenNumber) || !t.num.isInt {
		return 0, false
	}
	p.advance()
	if !p.peek().is(tokenRBrace) {
		return 0, false
	}
	p.advance()
	v := t.num.i
	if neg {
		v = -v
	}
	return v, true
}

// parseSingleArgFunction parses a one-argument function such as \sin. The
// argument is a brace group, a parenthesized group, or a bare subexpression
// bound at the prefix power, so \sin x^2 is sin(x^2), not (sin x)^2.
func (p *parser) parseSingleArgFunction() (NodeID, error) {
	t := p.advance()
	fk := functionKinds[t.text]

	var arg NodeID
	var err error
	switch {
	case p.peek().is(tokenLBrace):
		arg, err = p.parseBraceGroup()
	case p.peek().is(tokenLParen):
		p.advance()
		arg, err = p.parseExpression(0)
		if err == nil {
			_, err = p.expect(tokenRParen, ")")
		}
	default:
		arg, err = p.parseExpression(prefixUnaryRBP)
	}
	if err != nil {
		return NoNode, err
	}
	return p.tree.addCall(fk, []NodeID{arg}, t.pos), nil
}

// parseOperatorName parses '\operatorname{name}(arg, ...)'. The name must be
// in the fixed multi-argument operator table.
func (p *parser) parseOperatorName() (NodeID, error) {
	pos := p.advance().pos

	if _, err := p.expect(tokenLBrace, "{"); err != nil {
		return NoNode, err
	}
	name, err := p.expect(tokenIdent, "operator name")
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(tokenRBrace, "}"); err != nil {
		return NoNode, err
	}

	fk, ok := operatorNames[name.text]
	if !ok {
		return NoNode, &UnknownCommandError{Pos: name.pos, Name: name.text, OperatorName: true}
	}

	if _, err := p.expect(tokenLParen, "("); err != nil {
		return NoNode, err
	}
	args, err := p.parseArgList()
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(tokenRParen, ")"); err != nil {
		return NoNode, err
	}
	return p.tree.addCall(fk, args, pos), nil
}

// parseArgList parses one or more comma-separated expressions.
func (p *parser) parseArgList() ([]NodeID, error) {
	arg, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	args := []NodeID{arg}
	for p.peek().is(tokenComma) {
		p.advance()
		arg, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// canImplicitMultiply reports whether the current token can start a new
// prefix expression directly adjacent to a parsed one.
func (p *parser) canImplicitMultiply() bool {
	t := p.peek()
	switch t.kind {
	case tokenNumber, tokenLParen, tokenLBrace:
		return true
	case tokenIdent:
		return t.text == "!"
	case tokenCommand:
		return prefixCommands[t.text]
	}
	return false
}
