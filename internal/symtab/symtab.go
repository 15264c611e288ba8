// Package symtab implements the C0 compiler's symbol tables: the
// singleton constant/function table and the per-function (plus
// globals) variable table.
package symtab

import "fmt"

// SymType is one of the six C0 value kinds. string is only used for
// constant-pool string-literal entries; void is only valid as a
// function return type.
type SymType int

const (
	Void SymType = iota
	Char
	Int
	Double
	String
	Unspecified
)

func (t SymType) String() string {
	switch t {
	case Void:
		return "void"
	case Char:
		return "char"
	case Int:
		return "int"
	case Double:
		return "double"
	case String:
		return "string"
	default:
		return "unspecified"
	}
}

// IsNumeric reports whether t is int, char, or double — the three
// kinds implicit conversions operate over.
func (t SymType) IsNumeric() bool {
	return t == Int || t == Char || t == Double
}

// Symbol is one entry in a table: a variable, parameter, or function.
type Symbol struct {
	Name          string
	IsFunction    bool
	IsConst       bool // variables only
	Type          SymType
	Index         int // this symbol's own slot within its owning table
	IsInitialized bool

	// ParamTypes holds the declared type of each parameter, in
	// declaration order, for call-site argument coercion.
	ParamTypes []SymType
}

// ConstTable is the compiler-wide singleton holding every function
// defined in the program and every distinct string literal seen in
// print statements, in that combined order: functions and strings
// share one index space because the binary format references both by
// it (function calls by index, string loads via loadc).
type ConstTable struct {
	entries []*Symbol
	byName  map[string]*Symbol
}

// NewConstTable creates an empty constant table.
func NewConstTable() *ConstTable {
	return &ConstTable{byName: make(map[string]*Symbol)}
}

// AddFunction appends a new function symbol and returns its assigned
// slot in the constant table, i.e. the count of entries (functions and
// string literals alike) already present. The function-order index
// used by call, which skips string literals, is FunctionIndex.
func (ct *ConstTable) AddFunction(name string, retType SymType) (*Symbol, int) {
	sym := &Symbol{
		Name:          name,
		IsFunction:    true,
		Type:          retType,
		Index:         len(ct.entries),
		IsInitialized: true,
	}
	ct.entries = append(ct.entries, sym)
	ct.byName[name] = sym
	return sym, sym.Index
}

// InternString adds a string literal to the pool if not already
// present, returning its symbol either way (first-seen order).
func (ct *ConstTable) InternString(value string) *Symbol {
	key := "\x00str:" + value
	if sym, ok := ct.byName[key]; ok {
		return sym
	}
	sym := &Symbol{
		Name:          value,
		Type:          String,
		Index:         len(ct.entries),
		IsInitialized: true,
	}
	ct.entries = append(ct.entries, sym)
	ct.byName[key] = sym
	return sym
}

// Lookup finds a function by name.
func (ct *ConstTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := ct.byName[name]
	if !ok || !sym.IsFunction {
		return nil, false
	}
	return sym, true
}

// Has reports whether name is already bound to a function, used to
// enforce global uniqueness between function and global-variable
// names.
func (ct *ConstTable) Has(name string) bool {
	_, ok := ct.byName[name]
	return ok
}

// FunctionIndex returns the zero-based position of fn among only the
// functions in the table (skipping string-literal entries), which is
// what the call instruction's operand and the textual/binary function
// records reference.
func (ct *ConstTable) FunctionIndex(fn *Symbol) int {
	idx := 0
	for _, e := range ct.entries {
		if e == fn {
			return idx
		}
		if e.IsFunction {
			idx++
		}
	}
	return -1
}

// Entries returns all entries in append order (functions and strings
// interleaved as declared/interned).
func (ct *ConstTable) Entries() []*Symbol { return ct.entries }

// Functions returns only the function entries, in declaration order.
func (ct *ConstTable) Functions() []*Symbol {
	var fns []*Symbol
	for _, e := range ct.entries {
		if e.IsFunction {
			fns = append(fns, e)
		}
	}
	return fns
}

// VarTable holds the parameter/local symbols of a single function, or
// the global variables when used as the program-level table. Slot
// index equals declaration order, zero-based.
type VarTable struct {
	entries []*Symbol
	byName  map[string]*Symbol
}

// NewVarTable creates an empty variable table.
func NewVarTable() *VarTable {
	return &VarTable{byName: make(map[string]*Symbol)}
}

// Add declares a new variable or parameter, returning its slot index.
// isParam marks the symbol initialised immediately: parameters are
// always considered initialised on entry.
func (vt *VarTable) Add(name string, typ SymType, isConst, isParam bool) (*Symbol, error) {
	if _, ok := vt.byName[name]; ok {
		return nil, fmt.Errorf("duplicate declaration of %q", name)
	}
	sym := &Symbol{
		Name:          name,
		Type:          typ,
		IsConst:       isConst,
		Index:         len(vt.entries),
		IsInitialized: isParam,
	}
	vt.entries = append(vt.entries, sym)
	vt.byName[name] = sym
	return sym, nil
}

// Lookup finds a variable/parameter by name in this table only (no
// parent-scope search — that is the analyser's job across the two
// tables it holds: locals and globals).
func (vt *VarTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := vt.byName[name]
	return sym, ok
}

// MarkInitialized flags sym as initialised (first assignment or scan).
func (vt *VarTable) MarkInitialized(sym *Symbol) { sym.IsInitialized = true }

// Entries returns all declared variables/parameters in declaration
// order.
func (vt *VarTable) Entries() []*Symbol { return vt.entries }

// Len returns the number of declared slots, i.e. the stack-frame size
// this table requires. A double still counts as one declared slot
// here, matching Index: both count per declaration, not per physical
// stack word, and the analyser's snew reservation for an uninitialised
// local follows the same one-slot-per-declaration accounting.
func (vt *VarTable) Len() int { return len(vt.entries) }
