package analyser

import (
	"fmt"

	"github.com/cwbudde/c0c/internal/cerrors"
	"github.com/cwbudde/c0c/internal/instr"
	"github.com/cwbudde/c0c/internal/symtab"
	"github.com/cwbudde/c0c/internal/token"
)

// funcDef implements:
//
//	func-def := type-spec identifier '(' [param-list] ')' compound-stmt
//
// The function's symbol is registered in the constant table before its
// body is compiled, so direct recursion (calling the function by its
// own, unshadowed name) is permitted; only forward references to
// functions defined later in the source are not, since this is a
// single-pass translator with no separate declaration phase.
func (a *Analyser) funcDef() *cerrors.CompilerError {
	retType, err := a.typeSpec()
	if err != nil {
		return err
	}

	nameTok, err := a.expect(token.IDENT, cerrors.ErrNeedIdentifier)
	if err != nil {
		return err
	}
	if _, ok := a.globals.Lookup(nameTok.Literal); ok {
		return a.errAt(cerrors.ErrDuplicateDeclaration, nameTok.Start, nameTok.Literal)
	}
	if a.constants.Has(nameTok.Literal) {
		return a.errAt(cerrors.ErrDuplicateDeclaration, nameTok.Start, nameTok.Literal)
	}

	fn, _ := a.constants.AddFunction(nameTok.Literal, retType)

	if _, err := a.expect(token.LPAREN, cerrors.ErrInvalidFunctionDefinition); err != nil {
		return err
	}

	vars := symtab.NewVarTable()
	paramTypes, err := a.paramList(vars)
	if err != nil {
		return err
	}
	fn.ParamTypes = paramTypes

	if _, err := a.expect(token.RPAREN, cerrors.ErrInvalidFunctionDefinition); err != nil {
		return err
	}

	a.cur = &funcScope{sym: fn, vars: vars, retType: retType}
	a.code[fn.Index] = []instr.Instruction{}
	err = a.functionBody()
	a.cur = nil
	return err
}

// functionBody implements the compound-stmt that forms a function's
// body: '{' {var-decl} statement-seq '}', synthesising a return
// instruction at the end if the statement sequence did not provably
// return on every path.
func (a *Analyser) functionBody() *cerrors.CompilerError {
	if _, err := a.expect(token.LBRACE, cerrors.ErrInvalidCompoundStatement); err != nil {
		return err
	}

	for isTypeStart(a.c.cur().Kind) || a.c.cur().Kind == token.CONST {
		if err := a.varDecl(false); err != nil {
			return err
		}
	}

	returns, err := a.statementSeq()
	if err != nil {
		return err
	}

	if _, err := a.expect(token.RBRACE, cerrors.ErrInvalidCompoundStatement); err != nil {
		return err
	}

	if !returns {
		a.emitSyntheticReturn()
	}
	return nil
}

// emitSyntheticReturn appends the zero-valued return matching the
// current function's declared type: every function body must end
// with exactly one return instruction of the matching type.
func (a *Analyser) emitSyntheticReturn() {
	switch a.cur.retType {
	case symtab.Int, symtab.Char:
		a.emit(instr.NewOp1(instr.IPUSH, 0))
		a.emit(instr.NewOp(instr.IRET))
	case symtab.Double:
		a.emit(instr.NewOp1(instr.IPUSH, 0))
		a.emit(instr.NewOp1(instr.IPUSH, 0))
		a.emit(instr.NewOp(instr.DRET))
	default:
		a.emit(instr.NewOp(instr.RET))
	}
}

// nestedCompound implements the '{' statement-seq '}' statement
// alternative: a block that is a statement, not a function body, and
// so may not declare new locals — there is no block-local scope
// beyond the function's own table.
func (a *Analyser) nestedCompound() (bool, *cerrors.CompilerError) {
	if _, err := a.expect(token.LBRACE, cerrors.ErrInvalidCompoundStatement); err != nil {
		return false, err
	}
	returns, err := a.statementSeq()
	if err != nil {
		return false, err
	}
	if _, err := a.expect(token.RBRACE, cerrors.ErrInvalidCompoundStatement); err != nil {
		return false, err
	}
	return returns, nil
}

// statementSeq implements statement-seq := {statement}, stopping at
// any token that cannot start a statement (the closing '}' of the
// enclosing compound, or EOF). It returns whether the last statement
// compiled provably returns, which is what determines whether a
// compound statement as a whole is considered to return.
func (a *Analyser) statementSeq() (bool, *cerrors.CompilerError) {
	returns := false
	for a.startsStatement(a.c.cur().Kind) {
		var err *cerrors.CompilerError
		returns, err = a.statement()
		if err != nil {
			return false, err
		}
	}
	return returns, nil
}

func (a *Analyser) startsStatement(k token.Kind) bool {
	switch k {
	case token.LBRACE, token.IF, token.WHILE, token.RETURN, token.PRINT, token.SCAN, token.IDENT, token.SEMI:
		return true
	default:
		return false
	}
}

// functionCall implements:
//
//	func-call := identifier '(' [expression {',' expression}] ')'
//
// nameTok has already been consumed by the caller. It returns the
// callee's declared return type.
func (a *Analyser) functionCall(nameTok token.Token) (symtab.SymType, *cerrors.CompilerError) {
	if a.cur != nil {
		if _, ok := a.cur.vars.Lookup(nameTok.Literal); ok {
			return symtab.Unspecified, a.errAt(cerrors.ErrCallUndefined, nameTok.Start,
				fmt.Sprintf("%q is shadowed by a local variable in this function", nameTok.Literal))
		}
	}
	fn, ok := a.constants.Lookup(nameTok.Literal)
	if !ok {
		return symtab.Unspecified, a.errAt(cerrors.ErrCallUndefined, nameTok.Start, nameTok.Literal)
	}

	if _, err := a.expect(token.LPAREN, cerrors.ErrInvalidFunctionCall); err != nil {
		return symtab.Unspecified, err
	}

	for i, paramType := range fn.ParamTypes {
		if i > 0 {
			if _, err := a.expect(token.COMMA, cerrors.ErrInvalidFunctionCall); err != nil {
				return symtab.Unspecified, err
			}
		}
		argPos := a.c.cur().Start
		argType, err := a.expression()
		if err != nil {
			return symtab.Unspecified, err
		}
		if err := a.convert(argType, paramType, argPos); err != nil {
			return symtab.Unspecified, err
		}
	}

	if a.c.cur().Kind == token.COMMA {
		return symtab.Unspecified, a.errAt(cerrors.ErrParamsInvalid, a.c.cur().Start, "too many arguments")
	}

	if _, err := a.expect(token.RPAREN, cerrors.ErrInvalidFunctionCall); err != nil {
		return symtab.Unspecified, err
	}

	a.emit(instr.NewOp1(instr.CALL, int32(a.constants.FunctionIndex(fn))))
	return fn.Type, nil
}
