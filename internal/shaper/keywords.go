package shaper

import "github.com/lloyddewit/rinsight/internal/rtoken"

// bindTopLevelKeywords implements spec §4.4.6 for every KeyWord token
// still sitting at level's top: it greedily adopts the siblings that
// belong to its statement. Keywords already consumed as an operator's
// operand by the precedence pass (§4.4.5) are bound there instead, since
// by the time this pass runs they are no longer siblings at this level.
func bindTopLevelKeywords(level []*rtoken.Token) ([]*rtoken.Token, error) {
	result := make([]*rtoken.Token, 0, len(level))

	i := 0
	for i < len(level) {
		t := level[i]
		if t.Kind != rtoken.KeyWord {
			result = append(result, t)
			i++
			continue
		}
		consumed, err := bindKeyword(level, i)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
		i += 1 + consumed
	}

	return result, nil
}

// bindKeyword adopts, as children of siblings[idx], the condition/body
// (or body-only) tokens that belong to that keyword's statement,
// recursing first into any slot that is itself a keyword head (so
// "if (a) b else if (c) d else while (e) f" nests correctly), then
// chaining a trailing literal "else" the same way. It returns the number
// of additional siblings consumed beyond siblings[idx] itself.
func bindKeyword(siblings []*rtoken.Token, idx int) (int, error) {
	t := siblings[idx]
	pos := idx + 1
	var err error

	switch t.Lexeme {
	case "if", "for", "while", "function":
		pos, err = adoptSlot(t, siblings, pos) // condition
		if err != nil {
			return 0, err
		}
		pos, err = adoptSlot(t, siblings, pos) // body
		if err != nil {
			return 0, err
		}
	case "repeat", "else":
		pos, err = adoptSlot(t, siblings, pos) // body only
		if err != nil {
			return 0, err
		}
	case "in", "next", "break":
		// These keywords head no statement of their own; nothing to adopt.
		return 0, nil
	default:
		return 0, unexpectedShape(t, "unrecognized keyword")
	}

	if pos < len(siblings) && siblings[pos].Kind == rtoken.KeyWord && siblings[pos].Lexeme == "else" {
		n, err := bindKeyword(siblings, pos)
		if err != nil {
			return 0, err
		}
		t.Children = append(t.Children, siblings[pos])
		t.SortChildren()
		pos += 1 + n
	}

	return pos - idx - 1, nil
}

// adoptSlot adopts exactly one condition/body slot for t at siblings[pos],
// recursing into bindKeyword first if that slot is itself a keyword head.
// It returns the sibling index immediately following everything consumed.
func adoptSlot(t *rtoken.Token, siblings []*rtoken.Token, pos int) (int, error) {
	if pos >= len(siblings) {
		return 0, unexpectedShape(t, "keyword missing its condition or body")
	}
	slot := siblings[pos]
	if slot.Kind == rtoken.KeyWord {
		n, err := bindKeyword(siblings, pos)
		if err != nil {
			return 0, err
		}
		t.Children = append(t.Children, slot)
		t.SortChildren()
		return pos + 1 + n, nil
	}
	t.Children = append(t.Children, slot)
	t.SortChildren()
	return pos + 1, nil
}
