package cmd

import (
	"os"

	heredoc "github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version information, set by build flags.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

// log is shared by every subcommand for verbose stage reporting; its
// level is set by setVerbose from the persistent --verbose flag that
// init() below registers.
var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "c0c",
	Short: "A compiler for the C0 language",
	Long: heredoc.Doc(`
		c0c translates a C0 source file into code for a stack-based
		virtual machine.

		C0 is a small, strict subset of C: int/char/double variables and
		constants, functions with one level of nesting, if/while control
		flow, and print/scan for console I/O. There are no arrays,
		pointers, structs, or a preprocessor.

		Exactly one output format must be chosen with -c (binary module)
		or -s (text assembly).`),
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, returning the error RunE produced (if
// any) so main can translate it into a non-zero exit code.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log each compilation stage to stderr")
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

func setVerbose(cmd *cobra.Command) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
}
