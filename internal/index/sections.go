package index

import (
	"strings"
	"unicode"

	"docuquery/internal/model"
)

const maxTitleLen = 100

// SplitSections scans the text top to bottom and opens a new section at every
// boundary line. A boundary is a line that is fully upper-case (at least one
// letter, none lower-case) or begins with a digit. Lines before the first
// boundary belong to no section.
func SplitSections(text string) []model.Section {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	var sections []model.Section
	var current *model.Section
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.Join(body, "\n")
		sections = append(sections, *current)
		current = nil
		body = nil
	}

	for i, line := range lines {
		if isBoundary(line) {
			flush()
			current = &model.Section{
				Title:     truncateTitle(strings.TrimSpace(line)),
				StartLine: i,
			}
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return sections
}

func isBoundary(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	runes := []rune(trimmed)
	if unicode.IsDigit(runes[0]) {
		return true
	}

	hasLetter := false
	for _, r := range runes {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleLen {
		return title
	}
	return string(runes[:maxTitleLen])
}
