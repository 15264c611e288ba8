package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/c0c/internal/analyser"
	"github.com/cwbudde/c0c/internal/emitter"
	"github.com/cwbudde/c0c/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	outputPath string
	asBinary   bool
	asText     bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [input]",
	Short: "Compile a C0 source file",
	Long: `Compile a C0 source file to either the binary module format or
the textual assembly format.

The input path may be "-" to read from standard input. The output path
(-o) may be "-" to write to standard output; it defaults to the input
path with a trailing ".c0" removed and ".s" (with -s) or ".o0" (with -c)
appended, or to standard output when the input is standard input.

Examples:
  c0c compile -s program.c0
  c0c compile -c -o program.bin program.c0
  cat program.c0 | c0c compile -s -o - -`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (\"-\" for stdout)")
	compileCmd.Flags().BoolVarP(&asBinary, "binary", "c", false, "emit the binary module format")
	compileCmd.Flags().BoolVarP(&asText, "assembly", "s", false, "emit the textual assembly format")
}

func runCompile(cmd *cobra.Command, args []string) error {
	setVerbose(cmd)

	if asBinary == asText {
		return fmt.Errorf("exactly one of -c or -s must be given")
	}

	inputPath := args[0]
	source, filename, err := readInput(inputPath)
	if err != nil {
		return err
	}

	log.Debugf("tokenizing %s", filename)
	toks, lexErr := lexer.All(source, filename)
	if lexErr != nil {
		fmt.Fprintln(os.Stderr, lexErr.Format(false))
		return fmt.Errorf("tokenization failed")
	}
	log.Debugf("tokenized %d tokens", len(toks))

	log.Debug("analysing")
	program, anErr := analyser.Analyse(toks, source, filename)
	if anErr != nil {
		fmt.Fprintln(os.Stderr, anErr.Format(false))
		return fmt.Errorf("analysis failed")
	}
	log.Debugf("analysed %d function(s)", len(program.Constants.Functions()))

	var data []byte
	if asBinary {
		log.Debug("emitting binary module")
		data, err = emitter.EncodeBinary(program)
		if err != nil {
			return fmt.Errorf("binary emission failed: %w", err)
		}
	} else {
		log.Debug("emitting assembly listing")
		data = []byte(emitter.EncodeText(program))
	}

	out := outputPath
	if out == "" {
		out = defaultOutputPath(inputPath, asBinary)
	}
	if err := writeOutput(out, data); err != nil {
		return err
	}
	log.Debugf("wrote %d bytes to %s", len(data), out)
	return nil
}

func defaultOutputPath(inputPath string, binary bool) string {
	if inputPath == "-" {
		return "-"
	}
	ext := ".s"
	if binary {
		ext = ".o0"
	}
	return trimC0Ext(inputPath) + ext
}

func trimC0Ext(path string) string {
	const suffix = ".c0"
	if len(path) > len(suffix) && path[len(path)-len(suffix):] == suffix {
		return path[:len(path)-len(suffix)]
	}
	return path
}

func readInput(path string) (source, filename string, err error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), path, nil
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
