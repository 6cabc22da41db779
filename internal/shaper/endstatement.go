package shaper

import "github.com/lloyddewit/rinsight/internal/rtoken"

// attachEndStatements implements spec §4.4.7: walking siblings left to
// right, every EndStatement token becomes the last child of the
// preceding sibling, so that after this pass each remaining top-level
// sibling is a complete statement (its own terminator included, if it
// had one).
func attachEndStatements(level []*rtoken.Token) []*rtoken.Token {
	result := make([]*rtoken.Token, 0, len(level))

	for _, t := range level {
		if t.Kind == rtoken.EndStatement && len(result) > 0 {
			prev := result[len(result)-1]
			prev.Children = append(prev.Children, t)
			continue
		}
		result = append(result, t)
	}

	return result
}
