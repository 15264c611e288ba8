package cerrors

import (
	"strings"
	"testing"

	"github.com/cwbudde/c0c/internal/token"
)

func TestCodeErrorMessages(t *testing.T) {
	if got := ErrNotDeclared.Error(); got != "not declared" {
		t.Errorf("ErrNotDeclared.Error() = %q", got)
	}
	if got := Code(9999).Error(); !strings.Contains(got, "9999") {
		t.Errorf("unknown code should fall back to a numeric message, got %q", got)
	}
}

func TestFormatIncludesDetailAndCaret(t *testing.T) {
	src := "int x;\nprint(y);\n"
	err := New(ErrNotDeclared, token.Position{Line: 2, Column: 7}, "y", src, "prog.c0")

	out := err.Format(false)
	if !strings.Contains(out, "prog.c0:2:7") {
		t.Errorf("missing file:line:col header: %q", out)
	}
	if !strings.Contains(out, "not declared: y") {
		t.Errorf("missing message and detail: %q", out)
	}
	if !strings.Contains(out, "print(y);") {
		t.Errorf("missing offending source line: %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing caret: %q", out)
	}
}

func TestFormatWithoutFilename(t *testing.T) {
	err := New(ErrMissingSemicolon, token.Position{Line: 1, Column: 1}, "", "x", "")
	out := err.Format(false)
	if strings.HasPrefix(out, "1:1: error") == false {
		t.Errorf("expected a bare line:col header without a filename, got %q", out)
	}
}

func TestErrorInterfaceMatchesFormat(t *testing.T) {
	err := New(ErrNotDeclared, token.Position{Line: 1, Column: 1}, "z", "z", "f.c0")
	if err.Error() != err.Format(false) {
		t.Errorf("Error() should equal Format(false)")
	}
}
