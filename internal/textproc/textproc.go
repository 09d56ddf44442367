package textproc

import (
	"regexp"
	"strings"

	"introscore/internal/domain"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// keep letters, digits, underscore, whitespace and basic punctuation
	noiseRe    = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?-]`)
	wordRe     = regexp.MustCompile(`[\p{L}\p{N}]+`)
	sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

// Normalize collapses whitespace runs to a single space, strips characters
// outside the allowed set and trims the result.
func Normalize(raw string) string {
	text := whitespaceRe.ReplaceAllString(raw, " ")
	text = noiseRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Tokens returns the case-folded alphanumeric tokens of text.
func Tokens(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// CountWords counts case-folded alphanumeric tokens.
func CountWords(text string) int {
	return len(Tokens(text))
}

// Sentences splits text on sentence-ending punctuation. A trailing fragment
// without a terminator still counts as a sentence.
func Sentences(text string) []string {
	matches := sentenceRe.FindAllStringIndex(text, -1)
	var out []string
	last := 0
	for _, m := range matches {
		s := strings.TrimSpace(text[m[0]:m[1]])
		if s != "" {
			out = append(out, s)
		}
		last = m[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

// AnalyzeQuality computes lexical statistics for text. Empty input yields
// all-zero statistics.
func AnalyzeQuality(text string) domain.TextQuality {
	tokens := Tokens(text)
	sentences := Sentences(text)

	unique := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		unique[t] = struct{}{}
	}

	q := domain.TextQuality{
		WordCount:     len(tokens),
		SentenceCount: len(sentences),
		UniqueWords:   len(unique),
	}
	if len(sentences) > 0 {
		q.AvgSentenceLength = float64(len(tokens)) / float64(len(sentences))
	}
	if len(tokens) > 0 {
		q.VocabularyRichness = float64(len(unique)) / float64(len(tokens))
	}
	return q
}
