package analyser

import (
	"fmt"

	"github.com/cwbudde/c0c/internal/cerrors"
	"github.com/cwbudde/c0c/internal/instr"
	"github.com/cwbudde/c0c/internal/symtab"
	"github.com/cwbudde/c0c/internal/token"
)

// expression implements expression := multiplicative {addop
// multiplicative}, the additive precedence level.
func (a *Analyser) expression() (symtab.SymType, *cerrors.CompilerError) {
	typ, err := a.multiplicative()
	if err != nil {
		return symtab.Unspecified, err
	}

	for a.c.cur().Kind == token.ADD || a.c.cur().Kind == token.SUB {
		op := a.c.next().Kind
		leftEnd := a.here()
		rightPos := a.c.cur().Start
		rightType, err := a.multiplicative()
		if err != nil {
			return symtab.Unspecified, err
		}
		typ, err = a.promotePair(typ, rightType, leftEnd, rightPos)
		if err != nil {
			return symtab.Unspecified, err
		}
		if typ == symtab.Double {
			if op == token.ADD {
				a.emit(instr.NewOp(instr.DADD))
			} else {
				a.emit(instr.NewOp(instr.DSUB))
			}
		} else {
			if op == token.ADD {
				a.emit(instr.NewOp(instr.IADD))
			} else {
				a.emit(instr.NewOp(instr.ISUB))
			}
		}
	}
	return typ, nil
}

// multiplicative implements multiplicative := cast {mulop cast}.
func (a *Analyser) multiplicative() (symtab.SymType, *cerrors.CompilerError) {
	typ, err := a.cast()
	if err != nil {
		return symtab.Unspecified, err
	}

	for a.c.cur().Kind == token.MUL || a.c.cur().Kind == token.QUO {
		op := a.c.next().Kind
		leftEnd := a.here()
		rightPos := a.c.cur().Start
		rightType, err := a.cast()
		if err != nil {
			return symtab.Unspecified, err
		}
		typ, err = a.promotePair(typ, rightType, leftEnd, rightPos)
		if err != nil {
			return symtab.Unspecified, err
		}
		if typ == symtab.Double {
			if op == token.MUL {
				a.emit(instr.NewOp(instr.DMUL))
			} else {
				a.emit(instr.NewOp(instr.DDIV))
			}
		} else {
			if op == token.MUL {
				a.emit(instr.NewOp(instr.IMUL))
			} else {
				a.emit(instr.NewOp(instr.IDIV))
			}
		}
	}
	return typ, nil
}

// promotePair implements the binary-operand-pairing rule: if either
// operand is double, the other is promoted to double and the pair's
// type is double; otherwise (int/char in any
// combination) the pair's type is int. leftEnd is the instruction
// index recorded right after the left operand finished compiling, used
// to splice in the left's i2d if it is the one that needs promoting
// (the left-operand-already-emitted problem: by the time the right
// operand's type is known, the left's code has already been emitted
// and the right's code is what currently sits at the end of the
// sequence).
func (a *Analyser) promotePair(left, right symtab.SymType, leftEnd int, rightPos token.Position) (symtab.SymType, *cerrors.CompilerError) {
	if left == symtab.Double && right == symtab.Double {
		return symtab.Double, nil
	}
	if right == symtab.Double {
		// left is int/char: its code already sits before leftEnd, so
		// the conversion must be spliced in at that remembered position.
		a.insertAt(leftEnd, instr.NewOp(instr.I2D))
		return symtab.Double, nil
	}
	if left == symtab.Double {
		// right is int/char: its code is the most recently emitted, so
		// a plain append lands the conversion in the right spot.
		a.emit(instr.NewOp(instr.I2D))
		return symtab.Double, nil
	}
	_ = rightPos
	return symtab.Int, nil
}

// cast implements cast-expression := {'(' type-spec ')'} unary-expression.
// A prefix is only consumed speculatively: if the token after '(' is
// not a type keyword, the '(' is unread and parsing falls through to
// unary-expression's own parenthesized-expression handling.
//
// Prefixes are collected in textual (outermost-to-innermost) order and
// applied innermost-first: the prefix written closest to the unary
// expression takes effect first, and each subsequent, more outward
// prefix converts the result of the one before it — the same chaining
// `(int)(double)x` has in C, where x is treated as double before that
// double is narrowed to int.
func (a *Analyser) cast() (symtab.SymType, *cerrors.CompilerError) {
	var prefixes []symtab.SymType
	var positions []token.Position

	for a.c.cur().Kind == token.LPAREN {
		mark := a.c.mark()
		a.c.next() // '('
		if !isTypeStart(a.c.cur().Kind) {
			a.c.reset(mark)
			break
		}
		typTok := a.c.cur()
		typ, err := a.typeSpec()
		if err != nil {
			return symtab.Unspecified, err
		}
		if typ == symtab.Void {
			return symtab.Unspecified, a.errAt(cerrors.ErrInvalidType, typTok.Start, "cannot cast to void")
		}
		if _, err := a.expect(token.RPAREN, cerrors.ErrInvalidCastExpression); err != nil {
			return symtab.Unspecified, err
		}
		prefixes = append(prefixes, typ)
		positions = append(positions, typTok.Start)
	}

	unaryPos := a.c.cur().Start
	typ, err := a.unary()
	if err != nil {
		return symtab.Unspecified, err
	}
	if typ == symtab.Void {
		return symtab.Unspecified, a.errAt(cerrors.ErrInvalidType, unaryPos, "void value used where a value is required")
	}

	for i := len(prefixes) - 1; i >= 0; i-- {
		if err := a.convert(typ, prefixes[i], positions[i]); err != nil {
			return symtab.Unspecified, err
		}
		typ = prefixes[i]
	}
	return typ, nil
}

// unary implements unary-expression := ['+' | '-'] primary-expression.
func (a *Analyser) unary() (symtab.SymType, *cerrors.CompilerError) {
	negate := false
	switch a.c.cur().Kind {
	case token.ADD:
		a.c.next()
	case token.SUB:
		negate = true
		a.c.next()
	}

	typ, err := a.primary()
	if err != nil {
		return symtab.Unspecified, err
	}

	if negate {
		if typ == symtab.Double {
			a.emit(instr.NewOp(instr.DNEG))
		} else {
			// int and char both negate via ineg: chars are carried as
			// sign-extended i32 values on the stack.
			a.emit(instr.NewOp(instr.INEG))
		}
	}
	return typ, nil
}

// primary implements primary-expression: a parenthesized expression, an
// integer or character literal, a variable reference, or a function
// call. Character literals widen to int, matching the literal's
// natural representation as a pushed byte value rather than a
// distinctly-typed char value.
func (a *Analyser) primary() (symtab.SymType, *cerrors.CompilerError) {
	tok := a.c.cur()
	switch tok.Kind {
	case token.LPAREN:
		a.c.next()
		typ, err := a.expression()
		if err != nil {
			return symtab.Unspecified, err
		}
		if _, err := a.expect(token.RPAREN, cerrors.ErrInvalidPrimaryExpression); err != nil {
			return symtab.Unspecified, err
		}
		return typ, nil

	case token.INT:
		a.c.next()
		a.emit(instr.NewOp1(instr.IPUSH, tok.IntVal))
		return symtab.Int, nil

	case token.CHAR:
		a.c.next()
		a.emit(instr.NewOp1(instr.BIPUSH, tok.IntVal))
		return symtab.Int, nil

	case token.IDENT:
		a.c.next()
		if a.c.cur().Kind == token.LPAREN {
			retType, err := a.functionCall(tok)
			if err != nil {
				return symtab.Unspecified, err
			}
			if retType == symtab.Void {
				return symtab.Unspecified, a.errAt(cerrors.ErrInvalidPrimaryExpression, tok.Start, "void function call used as a value")
			}
			return retType, nil
		}

		sym, isLocal, ok := a.resolveVar(tok.Literal)
		if !ok {
			return symtab.Unspecified, a.errAt(cerrors.ErrNotDeclared, tok.Start, tok.Literal)
		}
		if !sym.IsInitialized {
			return symtab.Unspecified, a.errAt(cerrors.ErrNotInitialized, tok.Start, tok.Literal)
		}
		a.loadAddress(sym, isLocal)
		a.emitLoad(sym.Type)
		return sym.Type, nil

	default:
		return symtab.Unspecified, a.errAt(cerrors.ErrInvalidPrimaryExpression, tok.Start, fmt.Sprintf("unexpected %s", tok.Kind))
	}
}

// condition implements condition := expression [relop expression], used
// by if and while. When no relop follows, a double result is narrowed
// with d2i so the bare value's truthiness (zero/nonzero) can drive a
// je/jne test directly; no relop means no comparison instruction is
// emitted here, and the caller picks a zero-test jump. It returns the
// relational operator used, or token.ILLEGAL when the condition was a
// bare value.
func (a *Analyser) condition() (token.Kind, *cerrors.CompilerError) {
	leftType, err := a.expression()
	if err != nil {
		return token.ILLEGAL, err
	}

	switch a.c.cur().Kind {
	case token.LSS, token.LEQ, token.GTR, token.GEQ, token.EQL, token.NEQ:
		relop := a.c.next().Kind
		leftEnd := a.here()
		rightPos := a.c.cur().Start
		rightType, err := a.expression()
		if err != nil {
			return token.ILLEGAL, err
		}
		cmpType, err := a.promotePair(leftType, rightType, leftEnd, rightPos)
		if err != nil {
			return token.ILLEGAL, err
		}
		if cmpType == symtab.Double {
			a.emit(instr.NewOp(instr.DCMP))
		} else {
			a.emit(instr.NewOp(instr.ICMP))
		}
		return relop, nil

	default:
		if leftType == symtab.Double {
			a.emit(instr.NewOp(instr.D2I))
		}
		return token.ILLEGAL, nil
	}
}

// skipIfFalseJump returns the jump opcode that skips past a then-branch
// when the condition compiled by condition() is false: the inverse of
// the relational operator that was actually compared.
func skipIfFalseJump(relop token.Kind) instr.OpCode {
	switch relop {
	case token.LSS:
		return instr.JGE
	case token.LEQ:
		return instr.JG
	case token.GTR:
		return instr.JLE
	case token.GEQ:
		return instr.JL
	case token.EQL:
		return instr.JNE
	case token.NEQ:
		return instr.JE
	default:
		return instr.JE // bare value: zero means false, skip
	}
}

// continueIfTrueJump returns the jump opcode that re-enters a while
// loop's body when the condition compiled by condition() is true.
func continueIfTrueJump(relop token.Kind) instr.OpCode {
	switch relop {
	case token.LSS:
		return instr.JL
	case token.LEQ:
		return instr.JLE
	case token.GTR:
		return instr.JG
	case token.GEQ:
		return instr.JGE
	case token.EQL:
		return instr.JE
	case token.NEQ:
		return instr.JNE
	default:
		return instr.JNE // bare value: nonzero means true, continue
	}
}
