package shaper

import "github.com/lloyddewit/rinsight/internal/rtoken"

// bindFunctionCalls implements spec §4.4.4: every FunctionName token
// adopts the immediately following "(" sibling (already fully nested and
// comma-grouped by the earlier passes) as its sole child.
func bindFunctionCalls(level []*rtoken.Token) ([]*rtoken.Token, error) {
	result := make([]*rtoken.Token, 0, len(level))

	i := 0
	for i < len(level) {
		t := level[i]
		if t.Kind != rtoken.FunctionName {
			result = append(result, t)
			i++
			continue
		}

		if i+1 >= len(level) || level[i+1].Kind != rtoken.Bracket || level[i+1].Lexeme != "(" {
			return nil, unexpectedShape(t, "function name not followed by an opening parenthesis")
		}
		t.Children = append(t.Children, level[i+1])
		t.SortChildren()
		result = append(result, t)
		i += 2
	}

	return result, nil
}
