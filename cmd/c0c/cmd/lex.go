package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/c0c/internal/lexer"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [input]",
	Short: "Tokenize a C0 source file and print the token stream",
	Long: `Tokenize a C0 source file and print one line per token: its
position, kind, and literal text.

This recovers the reference compiler's standalone tokenization mode;
it performs no analysis and never fails on a well-formed but
semantically invalid program, only on a lexical error.`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	setVerbose(cmd)

	source, filename, err := readInput(args[0])
	if err != nil {
		return err
	}

	log.Debugf("tokenizing %s", filename)
	toks, lexErr := lexer.All(source, filename)
	if lexErr != nil {
		fmt.Fprintln(os.Stderr, lexErr.Format(false))
		return fmt.Errorf("tokenization failed")
	}

	for _, tok := range toks {
		fmt.Println(tok.String())
	}
	return nil
}
