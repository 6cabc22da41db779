package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var queryCmd = &cobra.Command{
	Use:   "query <gjson-path> [file]",
	Short: "Shape a script and extract a value from its first statement tree by gjson path",
	Long: `Shape a script into its statement trees, render the first one as
JSON (the same shape "tree --json" produces), and print the result of
running path against it. Useful for pulling a single field (e.g.
"children.0.lexeme") out of a tree without visually scanning the whole
dump.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, err := readSource(cmd, args[1:])
	if err != nil {
		return err
	}

	roots, err := shapeSource(source)
	if err != nil {
		return err
	}
	if len(roots) == 0 {
		return fmt.Errorf("script has no statements")
	}

	j, err := tokenToJSON(roots[0])
	if err != nil {
		return fmt.Errorf("building tree JSON: %w", err)
	}

	result := gjson.Get(j, path)
	if !result.Exists() {
		return fmt.Errorf("path %q matched nothing", path)
	}
	fmt.Println(result.String())
	return nil
}
