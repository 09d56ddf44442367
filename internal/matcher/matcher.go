package matcher

import (
	"strings"

	"introscore/internal/domain"
	"introscore/internal/textproc"
)

// Match partitions keywords into found and missing for the given text.
// A keyword matches when its case-folded form appears as a substring of the
// case-folded text, or as an exact case-folded token. Multi-word phrases and
// single words are handled uniformly; there is no stemming. The order of
// Found and Missing follows the input keyword order.
func Match(text string, keywords []string) domain.KeywordMatch {
	lower := strings.ToLower(text)
	tokens := make(map[string]struct{})
	for _, t := range textproc.Tokens(text) {
		tokens[t] = struct{}{}
	}

	m := domain.KeywordMatch{
		Found:   make([]string, 0, len(keywords)),
		Missing: make([]string, 0),
	}
	for _, kw := range keywords {
		k := strings.ToLower(kw)
		if strings.Contains(lower, k) {
			m.Found = append(m.Found, kw)
			continue
		}
		if _, ok := tokens[k]; ok {
			m.Found = append(m.Found, kw)
			continue
		}
		m.Missing = append(m.Missing, kw)
	}
	if len(keywords) > 0 {
		m.MatchRate = float64(len(m.Found)) / float64(len(keywords))
	}
	return m
}
