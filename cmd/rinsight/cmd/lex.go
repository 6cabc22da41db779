package cmd

import (
	"fmt"

	"github.com/lloyddewit/rinsight/internal/lexer"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Segment R source into lexemes",
	Long: `Run the longest-match lexer over a script and print each lexeme with
its absolute byte offset, one per line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	source, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	lexemes, err := lexer.Lex(source)
	if err != nil {
		return err
	}
	for _, lx := range lexemes {
		fmt.Printf("%5d  %q\n", lx.Pos, lx.Text)
	}
	return nil
}
