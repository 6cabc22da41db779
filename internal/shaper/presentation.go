package shaper

import (
	"strings"

	"github.com/lloyddewit/rinsight/internal/rtoken"
)

// attachPresentation implements spec §4.4.1: every run of Space, Comment,
// and non-terminating NewLine tokens immediately preceding a functional
// token becomes that token's leading Presentation child. A run with no
// following functional token (trailing presentation at end of input)
// becomes the sole Presentation child of a synthetic Empty token.
func attachPresentation(flat []*rtoken.Token) []*rtoken.Token {
	result := make([]*rtoken.Token, 0, len(flat))

	var pending []*rtoken.Token

	flushAsEmpty := func() {
		if len(pending) == 0 {
			return
		}
		result = append(result, wrapPresentation(pending, rtoken.Empty, ""))
		pending = nil
	}

	for _, t := range flat {
		if isPresentationKind(t.Kind) {
			pending = append(pending, t)
			continue
		}
		if len(pending) > 0 {
			t.PrependChild(mergePresentation(pending))
			pending = nil
		}
		result = append(result, t)
	}
	flushAsEmpty()

	return result
}

func isPresentationKind(k rtoken.Kind) bool {
	return k == rtoken.Space || k == rtoken.Comment || k == rtoken.NewLine
}

// mergePresentation concatenates a run of presentation tokens into the
// single Presentation token that spec §4.4.1 attaches as a leading child.
func mergePresentation(run []*rtoken.Token) *rtoken.Token {
	var sb strings.Builder
	for _, t := range run {
		sb.WriteString(t.Lexeme)
	}
	return rtoken.New(rtoken.Presentation, sb.String(), run[0].ScriptPos)
}

// wrapPresentation builds a host token of kind with lexeme text, carrying
// run's concatenated text as its sole Presentation child.
func wrapPresentation(run []*rtoken.Token, kind rtoken.Kind, lexemeText string) *rtoken.Token {
	host := rtoken.New(kind, lexemeText, run[0].ScriptPos)
	host.Children = []*rtoken.Token{mergePresentation(run)}
	return host
}
