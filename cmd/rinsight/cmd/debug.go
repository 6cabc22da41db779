package cmd

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/kr/text"
	"github.com/lloyddewit/rinsight/internal/lexer"
	"github.com/lloyddewit/rinsight/internal/shaper"
	"github.com/lloyddewit/rinsight/internal/tokenizer"
	"github.com/spf13/cobra"
)

var debugCmd = &cobra.Command{
	Use:   "debug [file]",
	Short: "Print Go-syntax dumps of every pipeline stage",
	Long: `Run the lexer, tokenizer, and shaper over a script and print a
kr/pretty dump of each stage's output in turn, indented so the stages are
visually distinguishable. Intended for diagnosing a single script that
behaves unexpectedly, not for machine consumption (use "tree --json" for
that).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDebug,
}

func init() {
	rootCmd.AddCommand(debugCmd)
}

func runDebug(cmd *cobra.Command, args []string) error {
	source, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	section := func(title string, v any) {
		fmt.Println(title + ":")
		fmt.Println(text.Indent(fmt.Sprintf("%# v", pretty.Formatter(v)), "  "))
	}

	lexemes, err := lexer.Lex(source)
	if err != nil {
		return err
	}
	section("lexemes", lexemes)

	tokens, err := tokenizer.Tokenize(lexemes)
	if err != nil {
		return err
	}
	section("tokens", tokens)

	roots, err := shaper.Shape(tokens)
	if err != nil {
		return err
	}
	section("statement roots", roots)

	return nil
}
