package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "filterxctl",
	Short: "FilterX expression evaluator driver",
	Long: `filterxctl evaluates a FilterX expression tree against a JSON log
message fixture.

FilterX itself is embedded: its configuration surface is the expression
source handed to an external parser. This tool builds one of a fixed set
of named demonstration trees directly, for exercising the evaluator
without that parser.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
