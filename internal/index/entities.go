package index

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"docuquery/internal/model"
)

const (
	maxEntities    = 20
	minPersonLen   = 4
	minNumberValue = 100
)

var (
	// Two or more consecutive capitalized words.
	personPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)
	// D/M/Y style dates or a bare 4-digit year.
	datePattern = regexp.MustCompile(`\b(?:\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|\d{4})\b`)
	// Integers or decimals with optional thousands separators.
	numberPattern = regexp.MustCompile(`\b\d+(?:,\d{3})*(?:\.\d+)?\b`)
)

// DefaultEntityTypes is the type set extracted when callers pass none.
var DefaultEntityTypes = []string{
	model.EntityTypePerson,
	model.EntityTypeDate,
	model.EntityTypeNumber,
}

// ExtractEntities detects PERSON, DATE and NUMBER entities in text. Matches
// are deduplicated by exact string within a type, counted over the full text,
// then merged across types, sorted by descending count (ties keep
// first-detected order) and capped at 20. Output is deterministic for a given
// text and type set.
func ExtractEntities(text string, types []string) []model.Entity {
	if text == "" {
		return nil
	}
	if len(types) == 0 {
		types = DefaultEntityTypes
	}

	var entities []model.Entity
	for _, entityType := range types {
		switch entityType {
		case model.EntityTypePerson:
			entities = append(entities, extractPersons(text)...)
		case model.EntityTypeDate:
			entities = append(entities, extractByPattern(text, datePattern, model.EntityTypeDate)...)
		case model.EntityTypeNumber:
			entities = append(entities, extractNumbers(text)...)
		}
	}

	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Count > entities[j].Count
	})
	if len(entities) > maxEntities {
		entities = entities[:maxEntities]
	}
	return entities
}

func extractPersons(text string) []model.Entity {
	var entities []model.Entity
	for _, name := range dedupe(personPattern.FindAllString(text, -1)) {
		if len(name) < minPersonLen {
			continue
		}
		entities = append(entities, model.Entity{
			Text:  name,
			Type:  model.EntityTypePerson,
			Count: strings.Count(text, name),
		})
	}
	return entities
}

func extractByPattern(text string, pattern *regexp.Regexp, entityType string) []model.Entity {
	var entities []model.Entity
	for _, match := range dedupe(pattern.FindAllString(text, -1)) {
		entities = append(entities, model.Entity{
			Text:  match,
			Type:  entityType,
			Count: strings.Count(text, match),
		})
	}
	return entities
}

func extractNumbers(text string) []model.Entity {
	var entities []model.Entity
	for _, num := range dedupe(numberPattern.FindAllString(text, -1)) {
		if integerValue(num) <= minNumberValue {
			continue
		}
		entities = append(entities, model.Entity{
			Text:  num,
			Type:  model.EntityTypeNumber,
			Count: strings.Count(text, num),
		})
	}
	return entities
}

// integerValue parses the integer part of a number token, ignoring thousands
// separators and any decimal fraction.
func integerValue(token string) int {
	token = strings.ReplaceAll(token, ",", "")
	if dot := strings.IndexByte(token, '.'); dot >= 0 {
		token = token[:dot]
	}
	value, err := strconv.Atoi(token)
	if err != nil {
		return 0
	}
	return value
}

// dedupe removes duplicates while preserving first-seen order, which keeps
// extraction deterministic.
func dedupe(matches []string) []string {
	seen := make(map[string]struct{}, len(matches))
	var unique []string
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		unique = append(unique, m)
	}
	return unique
}
