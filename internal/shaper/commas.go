package shaper

import "github.com/lloyddewit/rinsight/internal/rtoken"

// groupCommas implements spec §4.4.3: every Separator (",") sibling
// absorbs the tokens that follow it, up to (but not including) the next
// Separator sibling or a trailing close-bracket sibling that terminates
// this level. Two adjacent separators therefore produce an empty
// argument between them, and the first argument in a list (having no
// leading comma) stays a bare sibling.
func groupCommas(level []*rtoken.Token) []*rtoken.Token {
	n := len(level)
	limit := n
	if n > 0 && isCloseBracket(level[n-1]) {
		limit = n - 1
	}

	result := make([]*rtoken.Token, 0, n)
	i := 0
	for i < n {
		t := level[i]
		if t.Kind == rtoken.Separator && i < limit {
			j := i + 1
			for j < limit && level[j].Kind != rtoken.Separator {
				j++
			}
			t.Children = append(t.Children, level[i+1:j]...)
			result = append(result, t)
			i = j
			continue
		}
		result = append(result, t)
		i++
	}
	return result
}
