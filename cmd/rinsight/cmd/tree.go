package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lloyddewit/rinsight/internal/lexer"
	"github.com/lloyddewit/rinsight/internal/rtoken"
	"github.com/lloyddewit/rinsight/internal/shaper"
	"github.com/lloyddewit/rinsight/internal/tokenizer"
	"github.com/maruel/natural"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var treeJSON bool

var treeCmd = &cobra.Command{
	Use:   "tree [file...]",
	Short: "Shape one or more scripts and print their statement trees",
	Long: `Run the full lexer -> tokenizer -> shaper pipeline and print one
tree per top-level statement. By default this is the same indented debug
format as internal/rtoken.Token.Dump; --json prints each tree as JSON
instead, colorized the way tidwall/pretty renders a terminal.

Given more than one file, each is processed under its own header, in
natural sort order (so script2.R sorts before script10.R) rather than
plain lexical order.`,
	Args: cobra.ArbitraryArgs,
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "print each statement tree as JSON")
}

func runTree(cmd *cobra.Command, args []string) error {
	if len(args) <= 1 {
		source, err := readSource(cmd, args)
		if err != nil {
			return err
		}
		return printTree(source)
	}

	files := append([]string(nil), args...)
	sort.Slice(files, func(i, j int) bool { return natural.Less(files[i], files[j]) })

	for _, path := range files {
		source, err := readFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		fmt.Printf("=== %s ===\n", path)
		if err := printTree(source); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func printTree(source string) error {
	roots, err := shapeSource(source)
	if err != nil {
		return err
	}

	for _, root := range roots {
		if treeJSON {
			j, err := tokenToJSON(root)
			if err != nil {
				return fmt.Errorf("building tree JSON: %w", err)
			}
			fmt.Println(string(pretty.Color(pretty.Pretty([]byte(j)), nil)))
		} else {
			fmt.Print(root.Dump())
		}
	}
	return nil
}

func shapeSource(source string) ([]*rtoken.Token, error) {
	lexemes, err := lexer.Lex(source)
	if err != nil {
		return nil, err
	}
	tokens, err := tokenizer.Tokenize(lexemes)
	if err != nil {
		return nil, err
	}
	return shaper.Shape(tokens)
}

// tokenToJSON renders t and its subtree as a JSON object, built
// incrementally with sjson rather than via struct-tag reflection, since
// Token's Children are themselves Tokens and sjson.SetRaw composes that
// recursion naturally.
func tokenToJSON(t *rtoken.Token) (string, error) {
	doc := "{}"
	var err error
	if doc, err = sjson.Set(doc, "kind", t.Kind.String()); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "lexeme", t.Lexeme); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "pos", t.ScriptPos); err != nil {
		return "", err
	}

	if len(t.Children) > 0 {
		childDocs := make([]string, len(t.Children))
		for i, c := range t.Children {
			childDocs[i], err = tokenToJSON(c)
			if err != nil {
				return "", err
			}
		}
		raw := "[" + strings.Join(childDocs, ",") + "]"
		if doc, err = sjson.SetRaw(doc, "children", raw); err != nil {
			return "", err
		}
	}
	return doc, nil
}
