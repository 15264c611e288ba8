// Package cerrors implements the closed error-code enumeration and
// diagnostic formatting for the C0 compiler. All compiler errors are
// fatal: the first one aborts compilation.
package cerrors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/c0c/internal/token"
)

// Code is a closed enumeration of every error kind the compiler can
// report.
type Code int

const (
	NoError Code = iota
	ErrStream
	ErrEOF
	ErrInvalidInput
	ErrInvalidInteger
	ErrHexConversion
	ErrInvalidIdentifier
	ErrIntegerOverflow
	ErrInvalidChar
	ErrInvalidString
	ErrNeedMain
	ErrVariableVoid

	ErrNeedType

	ErrInvalidFunctionDefinition
	ErrInvalidFunctionCall
	ErrCallUndefined
	ErrParamsInvalid
	ErrInvalidCompoundStatement
	ErrInvalidStatementSeq
	ErrInvalidConditionStatement
	ErrInvalidLoopStatement
	ErrInvalidReturnStatement
	ErrInvalidPrintStatement
	ErrInvalidScanStatement

	ErrExpressionType
	ErrInvalidCastExpression
	ErrInvalidUnaryExpression
	ErrInvalidPrimaryExpression
	ErrInvalidType

	ErrNeedIdentifier
	ErrConstantNeedValue
	ErrMissingSemicolon
	ErrInvalidVariableDeclaration
	ErrIncompleteExpression
	ErrNotDeclared
	ErrAssignToConstant
	ErrDuplicateDeclaration
	ErrNotInitialized
	ErrInvalidAssignment
	ErrIncompleteComment
)

var codeMessages = map[Code]string{
	ErrStream:                    "stream error",
	ErrEOF:                       "unexpected end of file",
	ErrInvalidInput:              "invalid input",
	ErrInvalidInteger:            "invalid integer literal",
	ErrHexConversion:             "invalid hexadecimal literal",
	ErrInvalidIdentifier:         "invalid identifier",
	ErrIntegerOverflow:           "integer literal overflows 32 bits",
	ErrInvalidChar:               "invalid character literal",
	ErrInvalidString:             "invalid string literal",
	ErrNeedMain:                  "program has no main function",
	ErrVariableVoid:              "variable cannot have type void",
	ErrNeedType:                  "expected a type specifier",
	ErrInvalidFunctionDefinition: "invalid function definition",
	ErrInvalidFunctionCall:       "invalid function call",
	ErrCallUndefined:             "call to undefined function",
	ErrParamsInvalid:             "wrong number or type of arguments",
	ErrInvalidCompoundStatement:  "invalid compound statement",
	ErrInvalidStatementSeq:       "invalid statement",
	ErrInvalidConditionStatement: "invalid condition",
	ErrInvalidLoopStatement:      "invalid while statement",
	ErrInvalidReturnStatement:    "invalid return statement",
	ErrInvalidPrintStatement:     "invalid print statement",
	ErrInvalidScanStatement:      "invalid scan statement",
	ErrExpressionType:            "invalid expression type",
	ErrInvalidCastExpression:     "invalid cast expression",
	ErrInvalidUnaryExpression:    "invalid unary expression",
	ErrInvalidPrimaryExpression:  "invalid primary expression",
	ErrInvalidType:               "invalid type",
	ErrNeedIdentifier:            "expected an identifier",
	ErrConstantNeedValue:         "const declaration requires an initialiser",
	ErrMissingSemicolon:          "missing ';'",
	ErrInvalidVariableDeclaration: "invalid variable declaration",
	ErrIncompleteExpression:      "incomplete expression",
	ErrNotDeclared:               "not declared",
	ErrAssignToConstant:          "cannot assign to a const variable",
	ErrDuplicateDeclaration:      "duplicate declaration",
	ErrNotInitialized:            "variable read before initialisation",
	ErrInvalidAssignment:         "invalid assignment",
	ErrIncompleteComment:         "unterminated comment",
}

// Error implements Go's error interface so Code can be returned/wrapped
// directly when no source context is available yet.
func (c Code) Error() string {
	if m, ok := codeMessages[c]; ok {
		return m
	}
	return fmt.Sprintf("error code %d", int(c))
}

// CompilerError pairs an error Code with its source position and the
// source text needed to render a source-line-and-caret diagnostic.
type CompilerError struct {
	Code    Code
	Detail  string // optional extra context, e.g. the offending name
	Pos     token.Position
	Source  string
	File    string
}

// New creates a CompilerError. Detail may be empty.
func New(code Code, pos token.Position, detail, source, file string) *CompilerError {
	return &CompilerError{Code: code, Detail: detail, Pos: pos, Source: source, File: file}
}

// Error implements the error interface, returning the same text as
// Format(false): the header line plus, when the source line is known,
// the source line and caret.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the diagnostic with a file:line:column header, the
// offending source line, and a caret pointing at the column. When
// color is true, ANSI codes highlight the caret.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: error: %s", e.File, e.Pos.Line, e.Pos.Column, e.Code.Error())
	} else {
		fmt.Fprintf(&sb, "%d:%d: error: %s", e.Pos.Line, e.Pos.Column, e.Code.Error())
	}
	if e.Detail != "" {
		fmt.Fprintf(&sb, ": %s", e.Detail)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		sb.WriteString("\n")
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(n int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}
