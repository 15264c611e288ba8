package analyser

import (
	"github.com/cwbudde/c0c/internal/cerrors"
	"github.com/cwbudde/c0c/internal/instr"
	"github.com/cwbudde/c0c/internal/symtab"
	"github.com/cwbudde/c0c/internal/token"
)

// activeVars returns the variable table in scope: the current
// function's locals/params, or the global table when compiling
// top-level declarations. This is one half of the two-scope model
// (the other half is the constant/function table).
func (a *Analyser) activeVars() *symtab.VarTable {
	if a.cur != nil {
		return a.cur.vars
	}
	return a.globals
}

// varDecl implements:
//
//	var-decl := [const] type-spec init-declarator {',' init-declarator} ';'
//	init-declarator := identifier ['=' expression]
//
// A declared variable's slot is whatever stack position its value
// occupies at the point the declaration finishes: an initialiser
// compiles to nothing but the expression itself (plus any implicit
// conversion) since the pushed value left on top of the stack already
// IS the variable. No separate loada/store pair is needed or wanted
// here — that sequence belongs to assignment, where the target already
// has a slot and is being overwritten. A declaration with no
// initialiser still has to claim its slot, via reserveSlot, or every
// variable declared after it would resolve to the wrong stack offset.
func (a *Analyser) varDecl(isGlobal bool) *cerrors.CompilerError {
	isConst := false
	if a.c.cur().Kind == token.CONST {
		isConst = true
		a.c.next()
	}

	typeTok := a.c.cur()
	typ, err := a.typeSpec()
	if err != nil {
		return err
	}
	if typ == symtab.Void {
		return a.errAt(cerrors.ErrVariableVoid, typeTok.Start, "")
	}

	for {
		nameTok, err := a.expect(token.IDENT, cerrors.ErrNeedIdentifier)
		if err != nil {
			return err
		}
		if isGlobal && a.constants.Has(nameTok.Literal) {
			return a.errAt(cerrors.ErrDuplicateDeclaration, nameTok.Start, nameTok.Literal)
		}

		sym, derr := a.activeVars().Add(nameTok.Literal, typ, isConst, false)
		if derr != nil {
			return a.errAt(cerrors.ErrDuplicateDeclaration, nameTok.Start, nameTok.Literal)
		}

		if a.c.cur().Kind == token.ASSIGN {
			a.c.next()
			exprPos := a.c.cur().Start
			rhsType, err := a.expression()
			if err != nil {
				return err
			}
			if err := a.convert(rhsType, typ, exprPos); err != nil {
				return err
			}
			a.activeVars().MarkInitialized(sym)
		} else if isConst {
			return a.errAt(cerrors.ErrConstantNeedValue, nameTok.Start, nameTok.Literal)
		} else {
			a.reserveSlot(sym, isGlobal)
		}

		if a.c.cur().Kind == token.COMMA {
			a.c.next()
			continue
		}
		break
	}

	if _, err := a.expect(token.SEMI, cerrors.ErrMissingSemicolon); err != nil {
		return err
	}
	return nil
}

// paramList implements param-list := param {',' param} and declares
// each parameter at the front of the function's variable table,
// marked initialised immediately.
func (a *Analyser) paramList(vars *symtab.VarTable) ([]symtab.SymType, *cerrors.CompilerError) {
	var types []symtab.SymType
	if a.c.cur().Kind == token.RPAREN {
		return types, nil
	}
	for {
		isConst := false
		if a.c.cur().Kind == token.CONST {
			isConst = true
			a.c.next()
		}
		typeTok := a.c.cur()
		typ, err := a.typeSpec()
		if err != nil {
			return nil, err
		}
		if typ == symtab.Void {
			return nil, a.errAt(cerrors.ErrVariableVoid, typeTok.Start, "")
		}
		nameTok, err := a.expect(token.IDENT, cerrors.ErrNeedIdentifier)
		if err != nil {
			return nil, err
		}
		if _, derr := vars.Add(nameTok.Literal, typ, isConst, true); derr != nil {
			return nil, a.errAt(cerrors.ErrDuplicateDeclaration, nameTok.Start, nameTok.Literal)
		}
		types = append(types, typ)

		if a.c.cur().Kind == token.COMMA {
			a.c.next()
			continue
		}
		break
	}
	return types, nil
}

// reserveSlot claims the stack slot for a declared-but-uninitialised
// variable. A local's slot is never written until its first
// assignment, so snew simply reserves the space. A global defaults to
// zero the way a C global does, so its slot is reserved with an actual
// ipush 0 and marked initialised on the spot — a later bare read of it
// is legal without an explicit assignment.
func (a *Analyser) reserveSlot(sym *symtab.Symbol, isGlobal bool) {
	if isGlobal {
		a.emit(instr.NewOp1(instr.IPUSH, 0))
		a.activeVars().MarkInitialized(sym)
		return
	}
	a.emit(instr.NewOp1(instr.SNEW, 1))
}

// loadAddress emits loada for sym, choosing the level-diff operand:
// 0 for a local, or for a global read while emitting start code (no
// enclosing function); 1 for a global read from inside a function
// body. isLocal tells whether sym lives in the current function's
// table (as opposed to the globals table).
func (a *Analyser) loadAddress(sym *symtab.Symbol, isLocal bool) {
	levelDiff := int32(0)
	if !isLocal && a.cur != nil {
		levelDiff = 1
	}
	a.emit(instr.NewOp2(instr.LOADA, levelDiff, int32(sym.Index)))
}

// emitStore emits the typed store instruction for typ.
func (a *Analyser) emitStore(typ symtab.SymType) {
	if typ == symtab.Double {
		a.emit(instr.NewOp(instr.DSTORE))
	} else {
		a.emit(instr.NewOp(instr.ISTORE))
	}
}

// emitLoad emits the typed load instruction for typ.
func (a *Analyser) emitLoad(typ symtab.SymType) {
	if typ == symtab.Double {
		a.emit(instr.NewOp(instr.DLOAD))
	} else {
		a.emit(instr.NewOp(instr.ILOAD))
	}
}

// resolveVar looks up name in the current function's table first,
// then falls back to globals (locals always shadow globals). The
// returned bool reports whether the symbol was found in the local (as
// opposed to global) table, which is exactly what loadAddress needs
// for its level-diff.
func (a *Analyser) resolveVar(name string) (*symtab.Symbol, bool, bool) {
	if a.cur != nil {
		if sym, ok := a.cur.vars.Lookup(name); ok {
			return sym, true, true
		}
	}
	if sym, ok := a.globals.Lookup(name); ok {
		return sym, false, true
	}
	return nil, false, false
}

// markInitialized flags sym as initialised in whichever table it was
// resolved from. Both scan and assignment mark their target
// unconditionally, including global targets, so that a later read
// satisfies the initialised-before-read invariant regardless of scope.
func (a *Analyser) markInitialized(sym *symtab.Symbol, isLocal bool) {
	if isLocal && a.cur != nil {
		a.cur.vars.MarkInitialized(sym)
		return
	}
	a.globals.MarkInitialized(sym)
}
