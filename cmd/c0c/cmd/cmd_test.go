package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/c0c/internal/emitter"
)

func TestTrimC0Ext(t *testing.T) {
	cases := map[string]string{
		"program.c0":  "program",
		"program.txt": "program.txt",
		"dir/prog.c0": "dir/prog",
		"c0":          "c0",
		"x.c0.c0":     "x.c0",
	}
	for in, want := range cases {
		if got := trimC0Ext(in); got != want {
			t.Errorf("trimC0Ext(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultOutputPath(t *testing.T) {
	if got, want := defaultOutputPath("program.c0", false), "program.s"; got != want {
		t.Errorf("defaultOutputPath(text) = %q, want %q", got, want)
	}
	if got, want := defaultOutputPath("program.c0", true), "program.o0"; got != want {
		t.Errorf("defaultOutputPath(binary) = %q, want %q", got, want)
	}
	if got, want := defaultOutputPath("-", true), "-"; got != want {
		t.Errorf("defaultOutputPath(stdin) = %q, want %q", got, want)
	}
}

func TestReadInputFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.c0")
	if err := os.WriteFile(path, []byte("void main() { return; }"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	source, filename, err := readInput(path)
	if err != nil {
		t.Fatalf("readInput failed: %v", err)
	}
	if filename != path {
		t.Errorf("filename = %q, want %q", filename, path)
	}
	if source != "void main() { return; }" {
		t.Errorf("source = %q", source)
	}
}

func TestReadInputMissingFile(t *testing.T) {
	if _, _, err := readInput(filepath.Join(t.TempDir(), "nope.c0")); err == nil {
		t.Fatalf("expected an error reading a missing file")
	}
}

func TestRunCompileProducesAssemblyFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "prog.c0")
	outPath := filepath.Join(dir, "prog.s")
	if err := os.WriteFile(inPath, []byte("void main() { return; }"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	asText, asBinary, outputPath = true, false, outPath
	defer func() { asText, asBinary, outputPath = false, false, "" }()

	if err := runCompile(compileCmd, []string{inPath}); err != nil {
		t.Fatalf("runCompile failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("expected output file to exist: %v", err)
	}
	if len(data) == 0 {
		t.Errorf("expected non-empty assembly output")
	}
}

func TestRunCompileProducesBinaryFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "prog.c0")
	outPath := filepath.Join(dir, "prog.o0")
	if err := os.WriteFile(inPath, []byte("void main() { return; }"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	asText, asBinary, outputPath = false, true, outPath
	defer func() { asText, asBinary, outputPath = false, false, "" }()

	if err := runCompile(compileCmd, []string{inPath}); err != nil {
		t.Fatalf("runCompile failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("expected output file to exist: %v", err)
	}
	if len(data) < 4 || !bytes.Equal(data[:4], emitter.Magic[:]) {
		t.Errorf("expected the binary magic at the start of the output, got % x", data)
	}
}

func TestRunCompileRequiresExactlyOneFormatFlag(t *testing.T) {
	asText, asBinary = false, false
	defer func() { asText, asBinary = false, false }()
	if err := runCompile(compileCmd, []string{"whatever.c0"}); err == nil {
		t.Fatalf("expected an error when neither -c nor -s is given")
	}

	asText, asBinary = true, true
	if err := runCompile(compileCmd, []string{"whatever.c0"}); err == nil {
		t.Fatalf("expected an error when both -c and -s are given")
	}
}

func TestRunCompileRejectsSemanticError(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "bad.c0")
	if err := os.WriteFile(inPath, []byte("void main() { print(missing); }"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	asText, asBinary, outputPath = true, false, filepath.Join(dir, "bad.s")
	defer func() { asText, asBinary, outputPath = false, false, "" }()

	if err := runCompile(compileCmd, []string{inPath}); err == nil {
		t.Fatalf("expected analysis to fail on an undeclared identifier")
	}
}
