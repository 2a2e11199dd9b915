package retrieval

import (
	"fmt"
	"sort"
	"strings"

	"docuquery/internal/index"
	"docuquery/internal/model"
)

const (
	defaultMaxResults    = 5
	contextSearchResults = 3
	defaultMaxContext    = 2000
	summarySections      = 3
	summaryEntities      = 5

	// SummaryNotFound is the soft sentinel returned for unindexed documents.
	SummaryNotFound = "Document not found or not indexed."
)

// Engine answers stateless queries over the content index. All operations
// fail softly: a missing index entry yields empty results, never an error.
type Engine struct {
	index *index.Store
}

func NewEngine(store *index.Store) *Engine {
	return &Engine{index: store}
}

// Search splits the document text into sentences and ranks those matching the
// query keywords. A sentence qualifies when it contains at least
// ceil(len(keywords)/2) distinct keywords (floor of 1). Each result carries a
// context window of the previous, matching and next sentence. Results are
// sorted by descending relevance; ties keep document order.
func (e *Engine) Search(documentID, query string, maxResults int) []model.SearchResult {
	entry, ok := e.index.Get(documentID)
	if !ok {
		return nil
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	keywords := splitKeywords(query)
	if len(keywords) == 0 {
		return nil
	}
	threshold := (len(keywords) + 1) / 2
	if threshold < 1 {
		threshold = 1
	}

	sentences := strings.Split(entry.Text, ". ")
	var results []model.SearchResult
	for i, sentence := range sentences {
		lower := strings.ToLower(sentence)
		matches := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				matches++
			}
		}
		if matches < threshold {
			continue
		}

		var window []string
		if i > 0 {
			window = append(window, strings.TrimSpace(sentences[i-1]))
		}
		window = append(window, strings.TrimSpace(sentence))
		if i < len(sentences)-1 {
			window = append(window, strings.TrimSpace(sentences[i+1]))
		}

		results = append(results, model.SearchResult{
			Text:           strings.Join(window, ". "),
			MatchStrength:  matches,
			RelevanceScore: float64(matches) / float64(len(keywords)),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// Summarize formats a short overview from the first sections and top entities.
func (e *Engine) Summarize(documentID string) string {
	entry, ok := e.index.Get(documentID)
	if !ok {
		return SummaryNotFound
	}

	sections := entry.Sections
	if len(sections) > summarySections {
		sections = sections[:summarySections]
	}
	entities := entry.Entities
	if len(entities) > summaryEntities {
		entities = entities[:summaryEntities]
	}

	var b strings.Builder
	b.WriteString("**Document Overview**\n\n")
	if len(sections) > 0 {
		b.WriteString("**Key Sections:**\n")
		for _, section := range sections {
			fmt.Fprintf(&b, "- %s\n", section.Title)
		}
	}
	if len(entities) > 0 {
		b.WriteString("\n**Key Entities:**\n")
		for _, entity := range entities {
			fmt.Fprintf(&b, "- %s (%s, mentioned %d times)\n", entity.Text, entity.Type, entity.Count)
		}
	}
	return b.String()
}

// RetrieveContext assembles up to maxChars of context for a question from the
// top search results. A result that would push the accumulated context past
// the budget is dropped whole. When nothing matches, the beginning of the raw
// text is returned; an unindexed or empty document yields "".
func (e *Engine) RetrieveContext(documentID, question string, maxChars int) string {
	entry, ok := e.index.Get(documentID)
	if !ok {
		return ""
	}
	if maxChars <= 0 {
		maxChars = defaultMaxContext
	}

	context := ""
	for _, result := range e.Search(documentID, question, contextSearchResults) {
		if len(context)+len(result.Text) < maxChars {
			context += result.Text + "\n\n"
		}
	}
	if context != "" {
		return context
	}
	if entry.Text == "" {
		return ""
	}

	runes := []rune(entry.Text)
	if len(runes) > maxChars {
		return string(runes[:maxChars])
	}
	return entry.Text
}

// splitKeywords lowercases and splits the query, dropping duplicate keywords
// so the scoring denominator counts distinct terms.
func splitKeywords(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	seen := make(map[string]struct{}, len(fields))
	var keywords []string
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		keywords = append(keywords, f)
	}
	return keywords
}
