package analyser

import (
	"github.com/cwbudde/c0c/internal/cerrors"
	"github.com/cwbudde/c0c/internal/instr"
	"github.com/cwbudde/c0c/internal/symtab"
	"github.com/cwbudde/c0c/internal/token"
)

// statement implements the statement grammar. It returns whether this
// statement provably returns on every path it can take, which only
// compound, if/else and return statements can report as true.
func (a *Analyser) statement() (bool, *cerrors.CompilerError) {
	switch a.c.cur().Kind {
	case token.LBRACE:
		return a.nestedCompound()
	case token.IF:
		return a.ifStmt()
	case token.WHILE:
		return a.whileStmt()
	case token.RETURN:
		return a.returnStmt()
	case token.PRINT:
		return false, a.printStmt()
	case token.SCAN:
		return false, a.scanStmt()
	case token.SEMI:
		a.c.next()
		return false, nil
	case token.IDENT:
		return a.identStatement()
	default:
		return false, a.errAt(cerrors.ErrInvalidStatementSeq, a.c.cur().Start, "")
	}
}

// ifStmt implements:
//
//	if-stmt := 'if' '(' condition ')' statement ['else' statement]
//
// The condition's relational operator (or its absence) selects which
// jump opcode skips the then-branch when the condition is false.
func (a *Analyser) ifStmt() (bool, *cerrors.CompilerError) {
	a.c.next() // 'if'
	if _, err := a.expect(token.LPAREN, cerrors.ErrInvalidConditionStatement); err != nil {
		return false, err
	}
	relop, err := a.condition()
	if err != nil {
		return false, err
	}
	if _, err := a.expect(token.RPAREN, cerrors.ErrInvalidConditionStatement); err != nil {
		return false, err
	}

	skipJump := a.emit(instr.NewOp1(skipIfFalseJump(relop), -1))
	ifReturn, err := a.statement()
	if err != nil {
		return false, err
	}

	if a.c.cur().Kind != token.ELSE {
		a.patchJump(skipJump, int32(a.here()))
		return false, nil
	}

	a.c.next() // 'else'
	endJump := a.emit(instr.NewOp1(instr.JMP, -1))
	a.patchJump(skipJump, int32(a.here()))
	elseReturn, err := a.statement()
	if err != nil {
		return false, err
	}
	a.patchJump(endJump, int32(a.here()))

	// A conditional returns only when both branches do; with no else
	// branch it can never be considered to return regardless of the
	// then-branch, handled by the early return above.
	return ifReturn && elseReturn, nil
}

// whileStmt implements:
//
//	while-stmt := 'while' '(' condition ')' statement
//
// The condition is compiled once at its textual position to learn its
// type and relational operator, then spliced out and re-emitted after
// the body so the generated code tests the condition before each
// iteration including the first. The loop as a whole never reports as
// returning: the body may run
// zero times, so a return inside it does not guarantee the enclosing
// function returns.
func (a *Analyser) whileStmt() (bool, *cerrors.CompilerError) {
	a.c.next() // 'while'
	if _, err := a.expect(token.LPAREN, cerrors.ErrInvalidLoopStatement); err != nil {
		return false, err
	}

	condStart := a.here()
	relop, err := a.condition()
	if err != nil {
		return false, err
	}
	if _, err := a.expect(token.RPAREN, cerrors.ErrInvalidLoopStatement); err != nil {
		return false, err
	}

	condCode := a.seqFrom(condStart)
	a.truncateTo(condStart)

	skipJump := a.emit(instr.NewOp1(instr.JMP, -1))
	bodyStart := a.here()
	if _, err := a.statement(); err != nil {
		return false, err
	}
	a.patchJump(skipJump, int32(a.here()))

	for _, in := range condCode {
		a.emit(in)
	}
	a.emit(instr.NewOp1(continueIfTrueJump(relop), int32(bodyStart)))

	return false, nil
}

// returnStmt implements return-stmt := 'return' [expression] ';',
// converting the returned value to the enclosing function's declared
// type.
func (a *Analyser) returnStmt() (bool, *cerrors.CompilerError) {
	retTok := a.c.cur()
	a.c.next() // 'return'
	retType := a.cur.retType

	if a.c.cur().Kind == token.SEMI {
		if retType != symtab.Void {
			return false, a.errAt(cerrors.ErrInvalidReturnStatement, retTok.Start, "function must return a value")
		}
		a.c.next()
		a.emit(instr.NewOp(instr.RET))
		return true, nil
	}

	if retType == symtab.Void {
		return false, a.errAt(cerrors.ErrInvalidReturnStatement, retTok.Start, "void function must not return a value")
	}

	exprPos := a.c.cur().Start
	valType, err := a.expression()
	if err != nil {
		return false, err
	}
	if err := a.convert(valType, retType, exprPos); err != nil {
		return false, err
	}
	if _, err := a.expect(token.SEMI, cerrors.ErrMissingSemicolon); err != nil {
		return false, err
	}

	if retType == symtab.Double {
		a.emit(instr.NewOp(instr.DRET))
	} else {
		a.emit(instr.NewOp(instr.IRET))
	}
	return true, nil
}

// printStmt implements:
//
//	print-stmt := 'print' '(' [printable-list] ')' ';'
func (a *Analyser) printStmt() *cerrors.CompilerError {
	a.c.next() // 'print'
	if _, err := a.expect(token.LPAREN, cerrors.ErrInvalidPrintStatement); err != nil {
		return err
	}
	if a.c.cur().Kind != token.RPAREN {
		if err := a.printableList(); err != nil {
			return err
		}
	}
	if _, err := a.expect(token.RPAREN, cerrors.ErrInvalidPrintStatement); err != nil {
		return err
	}
	if _, err := a.expect(token.SEMI, cerrors.ErrMissingSemicolon); err != nil {
		return err
	}
	a.emit(instr.NewOp(instr.PRINTL))
	return nil
}

// printableList implements printable-list := printable {',' printable},
// emitting a literal space between consecutive printables (not after
// the last one).
func (a *Analyser) printableList() *cerrors.CompilerError {
	first := true
	for {
		if !first {
			a.emit(instr.NewOp1(instr.BIPUSH, 32))
			a.emit(instr.NewOp(instr.CPRINT))
		}
		first = false
		if err := a.printable(); err != nil {
			return err
		}
		if a.c.cur().Kind == token.COMMA {
			a.c.next()
			continue
		}
		break
	}
	return nil
}

// printable implements printable := char-literal | string-literal |
// expression, dispatching char and string literals directly rather
// than through the general expression path (a bare char literal in an
// expression position widens to int, per primary-expression's literal
// rule, which would pick the wrong print opcode).
func (a *Analyser) printable() *cerrors.CompilerError {
	tok := a.c.cur()
	switch tok.Kind {
	case token.CHAR:
		a.c.next()
		a.emit(instr.NewOp1(instr.BIPUSH, tok.IntVal))
		a.emit(instr.NewOp(instr.CPRINT))
		return nil
	case token.STRING:
		a.c.next()
		sym := a.constants.InternString(tok.Literal)
		a.emit(instr.NewOp1(instr.LOADC, int32(sym.Index)))
		a.emit(instr.NewOp(instr.SPRINT))
		return nil
	default:
		pos := tok.Start
		typ, err := a.expression()
		if err != nil {
			return err
		}
		switch typ {
		case symtab.Double:
			a.emit(instr.NewOp(instr.DPRINT))
		case symtab.Char:
			a.emit(instr.NewOp(instr.CPRINT))
		case symtab.Int:
			a.emit(instr.NewOp(instr.IPRINT))
		default:
			return a.errAt(cerrors.ErrInvalidPrintStatement, pos, "cannot print a value of this type")
		}
		return nil
	}
}

// scanStmt implements scan-stmt := 'scan' '(' identifier ')' ';'.
func (a *Analyser) scanStmt() *cerrors.CompilerError {
	a.c.next() // 'scan'
	if _, err := a.expect(token.LPAREN, cerrors.ErrInvalidScanStatement); err != nil {
		return err
	}
	nameTok, err := a.expect(token.IDENT, cerrors.ErrNeedIdentifier)
	if err != nil {
		return err
	}
	sym, isLocal, ok := a.resolveVar(nameTok.Literal)
	if !ok {
		return a.errAt(cerrors.ErrNotDeclared, nameTok.Start, nameTok.Literal)
	}
	if sym.IsConst {
		return a.errAt(cerrors.ErrAssignToConstant, nameTok.Start, nameTok.Literal)
	}

	a.loadAddress(sym, isLocal)
	switch sym.Type {
	case symtab.Double:
		a.emit(instr.NewOp(instr.DSCAN))
		a.emit(instr.NewOp(instr.DSTORE))
	case symtab.Char:
		// a char is read with cscan but stored like an int: it occupies
		// one i32 slot on the stack.
		a.emit(instr.NewOp(instr.CSCAN))
		a.emit(instr.NewOp(instr.ISTORE))
	default:
		a.emit(instr.NewOp(instr.ISCAN))
		a.emit(instr.NewOp(instr.ISTORE))
	}
	a.markInitialized(sym, isLocal)

	if _, err := a.expect(token.RPAREN, cerrors.ErrInvalidScanStatement); err != nil {
		return err
	}
	if _, err := a.expect(token.SEMI, cerrors.ErrMissingSemicolon); err != nil {
		return err
	}
	return nil
}

// identStatement handles the two statement forms that start with an
// identifier: assignment and a function call used for its side
// effects. A 2-token lookahead (the identifier and what follows it)
// distinguishes them.
func (a *Analyser) identStatement() (bool, *cerrors.CompilerError) {
	nameTok := a.c.cur()

	if a.c.peek(1).Kind == token.LPAREN {
		a.c.next() // consume identifier
		retType, err := a.functionCall(nameTok)
		if err != nil {
			return false, err
		}
		if _, err := a.expect(token.SEMI, cerrors.ErrMissingSemicolon); err != nil {
			return false, err
		}
		switch retType {
		case symtab.Double:
			a.emit(instr.NewOp(instr.POP2))
		case symtab.Void:
			// nothing pushed, nothing to discard
		default:
			a.emit(instr.NewOp(instr.POP))
		}
		return false, nil
	}

	if a.c.peek(1).Kind == token.ASSIGN {
		if err := a.assignment(); err != nil {
			return false, err
		}
		if _, err := a.expect(token.SEMI, cerrors.ErrMissingSemicolon); err != nil {
			return false, err
		}
		return false, nil
	}

	return false, a.errAt(cerrors.ErrInvalidStatementSeq, nameTok.Start, "")
}

// assignment implements identifier '=' expression. The target's
// address is loaded before the right-hand side is compiled, and the
// target is marked initialised only after the store, so the right-hand
// side of a first assignment cannot read the target itself: `x = x + 1;`
// where x was declared but never assigned is rejected as a read before
// initialisation.
func (a *Analyser) assignment() *cerrors.CompilerError {
	nameTok := a.c.next() // consume identifier
	sym, isLocal, ok := a.resolveVar(nameTok.Literal)
	if !ok {
		return a.errAt(cerrors.ErrNotDeclared, nameTok.Start, nameTok.Literal)
	}
	if sym.IsConst {
		return a.errAt(cerrors.ErrAssignToConstant, nameTok.Start, nameTok.Literal)
	}

	a.loadAddress(sym, isLocal)

	if _, err := a.expect(token.ASSIGN, cerrors.ErrInvalidAssignment); err != nil {
		return err
	}

	exprPos := a.c.cur().Start
	rhsType, err := a.expression()
	if err != nil {
		return err
	}
	if err := a.convert(rhsType, sym.Type, exprPos); err != nil {
		return err
	}
	a.emitStore(sym.Type)
	a.markInitialized(sym, isLocal)
	return nil
}
