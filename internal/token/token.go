// Package token defines the token kinds produced by the C0 lexer and the
// Token value itself, along with source positions.
package token

import "fmt"

// Kind identifies the category of a Token.
type Kind int

// Token kinds, grouped by category in roughly the order the lexical
// grammar introduces them.
const (
	ILLEGAL Kind = iota
	EOF

	// Literals and identifiers.
	IDENT  // identifiers: x, total, main
	INT    // integer literals: 0, 42, 0x2A
	CHAR   // character literals: 'a', '\n', '\x41'
	STRING // string literals: "hello\n"

	literalEnd

	// Keywords.
	CONST
	VOID
	INT_KW
	CHAR_KW
	DOUBLE_KW
	IF
	ELSE
	WHILE
	RETURN
	PRINT
	SCAN

	keywordEnd

	// Operators.
	ADD // +
	SUB // -
	MUL // *
	QUO // /
	ASSIGN // =
	EQL    // ==
	NEQ    // !=
	LSS    // <
	LEQ    // <=
	GTR    // >
	GEQ    // >=

	// Punctuation.
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
	COMMA  // ,
	SEMI   // ;
)

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	IDENT:   "IDENT",
	INT:     "INT",
	CHAR:    "CHAR",
	STRING:  "STRING",

	CONST:     "const",
	VOID:      "void",
	INT_KW:    "int",
	CHAR_KW:   "char",
	DOUBLE_KW: "double",
	IF:        "if",
	ELSE:      "else",
	WHILE:     "while",
	RETURN:    "return",
	PRINT:     "print",
	SCAN:      "scan",

	ADD:    "+",
	SUB:    "-",
	MUL:    "*",
	QUO:    "/",
	ASSIGN: "=",
	EQL:    "==",
	NEQ:    "!=",
	LSS:    "<",
	LEQ:    "<=",
	GTR:    ">",
	GEQ:    ">=",

	LPAREN: "(",
	RPAREN: ")",
	LBRACE: "{",
	RBRACE: "}",
	COMMA:  ",",
	SEMI:   ";",
}

// String returns the textual representation of a Kind, used in error
// messages and the lex-dump CLI command.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsLiteral reports whether k is one of IDENT/INT/CHAR/STRING.
func (k Kind) IsLiteral() bool {
	switch k {
	case IDENT, INT, CHAR, STRING:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k > literalEnd && k < keywordEnd }

// keywords maps reserved-word spellings to their Kind. An identifier
// token whose text matches an entry here takes the reserved-word kind
// instead of IDENT.
var keywords = map[string]Kind{
	"const":  CONST,
	"void":   VOID,
	"int":    INT_KW,
	"char":   CHAR_KW,
	"double": DOUBLE_KW,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"return": RETURN,
	"print":  PRINT,
	"scan":   SCAN,
}

// Lookup classifies ident as a keyword Kind, or returns IDENT if it is
// not a reserved word.
func Lookup(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return IDENT
}

// Position is a 1-based (line, column) source location. Column counts
// display cells, not bytes, matching the lexer's column bookkeeping (an
// East Asian wide or fullwidth rune counts as two).
type Position struct {
	Line   int
	Column int
}

// String formats a Position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical token: its kind, literal text as it
// appeared in source, a decoded numeric/byte value for INT/CHAR
// tokens, and the start/end positions it spans.
type Token struct {
	Kind    Kind
	Literal string
	IntVal  int32 // valid for INT and CHAR
	Start   Position
	End     Position
}

// String renders a Token for diagnostics and the `c0c lex` dump
// command.
func (t Token) String() string {
	if t.Kind == IDENT || t.Kind.IsLiteral() {
		return fmt.Sprintf("%s(%s) %s-%s", t.Kind, t.Literal, t.Start, t.End)
	}
	return fmt.Sprintf("%s %s-%s", t.Kind, t.Start, t.End)
}
