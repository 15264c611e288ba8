// Package analyser implements the C0 analyser: a single-pass
// recursive-descent parser that simultaneously builds the symbol
// tables and emits stack-machine code.
//
// The file layout is split by concern:
//   - analyser.go: Analyser type, top-level program loop, shared
//     emission/backpatch/conversion helpers.
//   - declarations.go: var-decl and param-list.
//   - functions.go: func-def, compound-stmt, function calls.
//   - statements.go: the statement grammar (if/while/return/print/
//     scan/assignment/expression-statement).
//   - expressions.go: expression/multiplicative/cast/unary/primary
//     and condition compilation.
package analyser

import (
	"fmt"

	"github.com/cwbudde/c0c/internal/cerrors"
	"github.com/cwbudde/c0c/internal/instr"
	"github.com/cwbudde/c0c/internal/symtab"
	"github.com/cwbudde/c0c/internal/token"
)

// startKey is the sentinel code-map key for the global initialisation
// sequence ("start code"), kept out of the function-index space by
// using a negative value.
const startKey = -1

// Program is the analyser's output: the shared constant/function
// table, the start code, and one instruction sequence per function
// keyed by the function's slot in the constant table.
type Program struct {
	Constants *symtab.ConstTable
	Start     []instr.Instruction
	Code      map[int][]instr.Instruction
}

// funcScope holds the state local to the function currently being
// compiled: its function symbol, its local variable table, and its
// declared return type.
type funcScope struct {
	sym     *symtab.Symbol
	vars    *symtab.VarTable
	retType symtab.SymType
}

// Analyser is the single-pass translator: one token stream in, one
// Program out. It is not safe for concurrent use and has no
// suspension points.
type Analyser struct {
	c *cursor

	source   string
	filename string

	constants *symtab.ConstTable
	globals   *symtab.VarTable
	code      map[int][]instr.Instruction

	cur *funcScope // nil while compiling global declarations/start code
}

// Analyse runs the full pipeline over an already-tokenized program:
// parses, resolves symbols, and emits code. It returns the first
// fatal error encountered; there is no error recovery.
func Analyse(toks []token.Token, source, filename string) (*Program, *cerrors.CompilerError) {
	a := &Analyser{
		c:         newCursor(toks),
		source:    source,
		filename:  filename,
		constants: symtab.NewConstTable(),
		globals:   symtab.NewVarTable(),
		code:      map[int][]instr.Instruction{startKey: {}},
	}
	if err := a.program(); err != nil {
		return nil, err
	}
	return &Program{Constants: a.constants, Start: a.code[startKey], Code: a.code}, nil
}

// program implements C0-program := {var-decl}{func-def}.
func (a *Analyser) program() *cerrors.CompilerError {
	for a.c.cur().Kind != token.EOF {
		if a.atFunctionDef() {
			if err := a.funcDef(); err != nil {
				return err
			}
			continue
		}
		if err := a.varDecl(true); err != nil {
			return err
		}
	}

	if _, ok := a.constants.Lookup("main"); !ok {
		return a.errAt(cerrors.ErrNeedMain, a.c.cur().Start, "")
	}
	return nil
}

// atFunctionDef performs the two-token-lookahead dispatch: a
// type-spec (or void) followed by identifier '(' means a function
// definition starts here; the special name "main" at global scope is
// also function-definition mode even before its parameter list is
// seen.
func (a *Analyser) atFunctionDef() bool {
	mark := a.c.mark()
	defer a.c.reset(mark)

	if !isTypeStart(a.c.cur().Kind) {
		return false
	}
	a.c.next() // consume type-spec
	if a.c.cur().Kind == token.IDENT && a.c.cur().Literal == "main" {
		return true
	}
	if a.c.cur().Kind != token.IDENT {
		return false
	}
	a.c.next()
	return a.c.cur().Kind == token.LPAREN
}

func isTypeStart(k token.Kind) bool {
	switch k {
	case token.VOID, token.INT_KW, token.CHAR_KW, token.DOUBLE_KW:
		return true
	default:
		return false
	}
}

// typeSpec parses a bare type-spec (not "const"-prefixed) into a
// SymType.
func (a *Analyser) typeSpec() (symtab.SymType, *cerrors.CompilerError) {
	tok := a.c.cur()
	switch tok.Kind {
	case token.VOID:
		a.c.next()
		return symtab.Void, nil
	case token.INT_KW:
		a.c.next()
		return symtab.Int, nil
	case token.CHAR_KW:
		a.c.next()
		return symtab.Char, nil
	case token.DOUBLE_KW:
		a.c.next()
		return symtab.Double, nil
	default:
		return symtab.Unspecified, a.errAt(cerrors.ErrNeedType, tok.Start, "")
	}
}

func (a *Analyser) expect(k token.Kind, code cerrors.Code) (token.Token, *cerrors.CompilerError) {
	tok := a.c.cur()
	if tok.Kind != k {
		return tok, a.errAt(code, tok.Start, fmt.Sprintf("expected %s, found %s", k, tok.Kind))
	}
	a.c.next()
	return tok, nil
}

func (a *Analyser) errAt(code cerrors.Code, pos token.Position, detail string) *cerrors.CompilerError {
	return cerrors.New(code, pos, detail, a.source, a.filename)
}

// --- emission helpers ---

// emit appends an instruction to the sequence currently being built:
// the start code at global scope, or the current function's body.
func (a *Analyser) emit(in instr.Instruction) int {
	key := startKey
	if a.cur != nil {
		key = a.cur.sym.Index
	}
	seq := a.code[key]
	pos := len(seq)
	a.code[key] = append(seq, in)
	return pos
}

// here returns the index the next emitted instruction will occupy.
func (a *Analyser) here() int {
	key := startKey
	if a.cur != nil {
		key = a.cur.sym.Index
	}
	return len(a.code[key])
}

// insertAt splices in at position pos in the current sequence,
// shifting everything from pos onward one slot later. Used for the
// left-operand-promotion rule: the analyser records the
// end-of-left-operand index before compiling the right operand, and
// if the right turns out to be double while the left was integral,
// the left's i2d conversion is inserted at that remembered index.
func (a *Analyser) insertAt(pos int, in instr.Instruction) {
	key := startKey
	if a.cur != nil {
		key = a.cur.sym.Index
	}
	seq := a.code[key]
	seq = append(seq, instr.Instruction{})
	copy(seq[pos+1:], seq[pos:])
	seq[pos] = in
	a.code[key] = seq
}

// patchJump writes target into the jump instruction at pos.
func (a *Analyser) patchJump(pos int, target int32) {
	key := startKey
	if a.cur != nil {
		key = a.cur.sym.Index
	}
	a.code[key][pos].X = target
}

// seqFrom returns a copy of the instructions currently in the active
// sequence from start (inclusive) to the current end. Used by the
// while-loop compiler to splice the condition instructions out of
// their initial position and re-emit them after the loop body.
func (a *Analyser) seqFrom(start int) []instr.Instruction {
	key := startKey
	if a.cur != nil {
		key = a.cur.sym.Index
	}
	full := a.code[key]
	out := make([]instr.Instruction, len(full)-start)
	copy(out, full[start:])
	return out
}

// truncateTo drops every instruction from index cut onward in the
// active sequence.
func (a *Analyser) truncateTo(cut int) {
	key := startKey
	if a.cur != nil {
		key = a.cur.sym.Index
	}
	a.code[key] = a.code[key][:cut]
}

// --- implicit conversions ---

// convert emits whatever instruction(s) are needed to coerce a value
// of type from on top of the stack to type to, applied at every
// value-producing boundary. A void operand is always an error;
// converting to void is always an error (callers must not invoke
// convert with to == Void).
func (a *Analyser) convert(from, to symtab.SymType, pos token.Position) *cerrors.CompilerError {
	if from == symtab.Void {
		return a.errAt(cerrors.ErrExpressionType, pos, "void value used where a value is required")
	}
	if to == symtab.Void {
		return a.errAt(cerrors.ErrInvalidCastExpression, pos, "cannot convert to void")
	}
	if from == to {
		return nil
	}
	switch to {
	case symtab.Int:
		if from == symtab.Double {
			a.emit(instr.NewOp(instr.D2I))
		}
		// char -> int needs no instruction: chars are carried as
		// sign-extended i32 on the stack already.
	case symtab.Char:
		if from == symtab.Double {
			a.emit(instr.NewOp(instr.D2I))
		}
		a.emit(instr.NewOp(instr.I2C))
	case symtab.Double:
		a.emit(instr.NewOp(instr.I2D))
	}
	return nil
}
