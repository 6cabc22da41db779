// Command rinsight exposes the lexer, tokenizer, shaper, and edit
// primitives of the rinsight parser as a set of CLI verbs, mirroring the
// teacher's cmd/dwscript layout.
package main

import (
	"fmt"
	"os"

	"github.com/lloyddewit/rinsight/cmd/rinsight/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
