package shaper

import "github.com/lloyddewit/rinsight/internal/rtoken"

// nestBrackets implements spec §4.4.2: every matching bracket pair ("(
// )", "{ }", "[ ]", "[[ ]]") becomes a single subtree, with the opener
// adopting everything up to and including its matching closer as
// children. Recursion into the collected children happens naturally,
// since the inner slice is nested before being attached to the opener.
func nestBrackets(flat []*rtoken.Token) ([]*rtoken.Token, error) {
	result := make([]*rtoken.Token, 0, len(flat))

	i := 0
	for i < len(flat) {
		t := flat[i]
		if !isOpenBracket(t) {
			result = append(result, t)
			i++
			continue
		}

		j, err := matchingClose(flat, i)
		if err != nil {
			return nil, err
		}

		inner, err := nestBrackets(flat[i+1 : j+1])
		if err != nil {
			return nil, err
		}
		t.Children = append(t.Children, inner...)
		t.SortChildren()
		result = append(result, t)
		i = j + 1
	}

	return result, nil
}

// matchingClose returns the index in flat of the close bracket matching
// the opener at index open, accounting for nested pairs of any bracket
// family.
func matchingClose(flat []*rtoken.Token, open int) (int, error) {
	depth := 1
	for j := open + 1; j < len(flat); j++ {
		switch {
		case isOpenBracket(flat[j]):
			depth++
		case isCloseBracket(flat[j]):
			depth--
			if depth == 0 {
				return j, nil
			}
		}
	}
	return 0, unexpectedShape(flat[open], "unmatched open bracket")
}

func isOpenBracket(t *rtoken.Token) bool {
	switch t.Kind {
	case rtoken.Bracket:
		return t.Lexeme == "(" || t.Lexeme == "{"
	case rtoken.OperatorBracket:
		return t.Lexeme == "[" || t.Lexeme == "[["
	}
	return false
}

func isCloseBracket(t *rtoken.Token) bool {
	switch t.Kind {
	case rtoken.Bracket:
		return t.Lexeme == ")" || t.Lexeme == "}"
	case rtoken.OperatorBracket:
		return t.Lexeme == "]" || t.Lexeme == "]]"
	}
	return false
}
