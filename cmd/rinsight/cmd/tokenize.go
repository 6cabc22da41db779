package cmd

import (
	"fmt"

	"github.com/lloyddewit/rinsight/internal/lexer"
	"github.com/lloyddewit/rinsight/internal/tokenizer"
	"github.com/spf13/cobra"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Classify a script's lexemes into typed tokens",
	Long: `Run the lexer then the tokenizer over a script and print each
resulting token's Kind, lexeme, and byte offset, one per line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	source, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	lexemes, err := lexer.Lex(source)
	if err != nil {
		return err
	}
	tokens, err := tokenizer.Tokenize(lexemes)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		fmt.Printf("%5d  %-18s %q\n", tok.ScriptPos, tok.Kind, tok.Lexeme)
	}
	return nil
}
