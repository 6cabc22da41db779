package shaper

import (
	"strings"

	"github.com/lloyddewit/rinsight/internal/rtoken"
)

// promoteBraceBlockNewlines implements spec §4.4.8: inside every "{"
// block, a bare newline that separates two inner statements (rather than
// an explicit ";") is promoted from cosmetic Presentation to a real
// EndStatement terminator on the preceding inner statement, so blocks
// with no semicolons still get one statement root per line. The newline
// immediately after the opener's own leading presentation is left alone:
// there is no preceding inner statement for it to terminate.
func promoteBraceBlockNewlines(root *rtoken.Token) {
	for _, c := range root.Children {
		promoteBraceBlockNewlines(c)
	}
	if root.Kind == rtoken.Bracket && root.Lexeme == "{" {
		promoteInBlock(root)
	}
}

func promoteInBlock(brace *rtoken.Token) {
	children := brace.Children

	first := 0
	if len(children) > 0 && children[0].Kind == rtoken.Presentation {
		first = 1
	}

	for idx := first; idx < len(children); idx++ {
		c := children[idx]
		if idx == first {
			continue
		}
		if len(c.Children) == 0 || c.Children[0].Kind != rtoken.Presentation {
			continue
		}
		pres := c.Children[0]
		if !strings.ContainsAny(pres.Lexeme, "\r\n") {
			continue
		}

		pres.Kind = rtoken.EndStatement
		c.Children = c.Children[1:]

		prev := children[idx-1]
		prev.Children = append(prev.Children, pres)
		prev.SortChildren()
	}
}
