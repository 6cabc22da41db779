package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "rinsight",
	Short: "Lossless R parser and editable syntax tree",
	Long: `rinsight parses R source code into a lossless, editable token tree:
every byte of the original script, including whitespace and comments, is
recoverable from the tree, and the tree can be surgically edited without
re-rendering the rest of the script.`,
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

	rootCmd.PersistentFlags().StringP("eval", "e", "", "read source from this flag instead of a file")
}

func readSource(cmd *cobra.Command, args []string) (string, error) {
	eval, _ := cmd.Flags().GetString("eval")
	if eval != "" {
		return eval, nil
	}
	if len(args) == 1 {
		data, err := readFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return data, nil
	}
	return "", fmt.Errorf("provide a file path or use -e/--eval for inline source")
}
