// Package aggregate merges answer candidates from independent sources into
// one reply text.
package aggregate

import (
	"strings"

	"os-help-bot/pkg/rag/response"
)

// Candidate sources
const (
	SourceExtractiveQA = "extractive-qa"
	SourceWebSearch    = "web-search"
)

// Candidate is one answer text and where it came from.
type Candidate struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// Texts projects candidates to their texts, in order.
func Texts(candidates []Candidate) []string {
	texts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		texts = append(texts, c.Text)
	}
	return texts
}

// Dedup drops exact repeats, keeping the first occurrence of each text.
func Dedup(texts []string) []string {
	seen := make(map[string]struct{}, len(texts))
	unique := make([]string, 0, len(texts))
	for _, t := range texts {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}
	return unique
}

// Aggregate renders the deduplicated texts: a fixed fallback when there are
// none, the text itself when there is one, otherwise a header and one line
// per text.
func Aggregate(texts []string) string {
	unique := Dedup(texts)
	switch len(unique) {
	case 0:
		return response.NoInformationFallback
	case 1:
		return unique[0]
	default:
		return response.InsightsHeader + "\n" + strings.Join(unique, "\n")
	}
}
