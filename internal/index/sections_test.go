package index

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSections(t *testing.T) {
	t.Run("boundary on upper-case and digit-led lines", func(t *testing.T) {
		text := strings.Join([]string{"INTRO", "hello", "2 Methods", "world"}, "\n")

		sections := SplitSections(text)
		require.Len(t, sections, 2)

		assert.Equal(t, "INTRO", sections[0].Title)
		assert.Equal(t, 0, sections[0].StartLine)
		assert.Equal(t, "hello", sections[0].Content)

		assert.Equal(t, "2 Methods", sections[1].Title)
		assert.Equal(t, 2, sections[1].StartLine)
		assert.Equal(t, "world", sections[1].Content)
	})

	t.Run("lines before first boundary belong to no section", func(t *testing.T) {
		text := "preamble line\nmore preamble\nCHAPTER ONE\nbody"

		sections := SplitSections(text)
		require.Len(t, sections, 1)
		assert.Equal(t, "CHAPTER ONE", sections[0].Title)
		assert.Equal(t, "body", sections[0].Content)
	})

	t.Run("mixed-case and symbol-only lines are not boundaries", func(t *testing.T) {
		text := "HEADING\nHello World\n---\nmore body"

		sections := SplitSections(text)
		require.Len(t, sections, 1)
		assert.Equal(t, "Hello World\n---\nmore body", sections[0].Content)
	})

	t.Run("sections appear in document order without overlap", func(t *testing.T) {
		text := "ONE\na\nb\nTWO\nc\nTHREE\n"

		sections := SplitSections(text)
		require.Len(t, sections, 3)
		assert.Equal(t, []string{"ONE", "TWO", "THREE"}, []string{
			sections[0].Title, sections[1].Title, sections[2].Title,
		})
		assert.Equal(t, "a\nb", sections[0].Content)
		assert.Equal(t, "c", sections[1].Content)
		assert.Equal(t, "", sections[2].Content)
		assert.Less(t, sections[0].StartLine, sections[1].StartLine)
		assert.Less(t, sections[1].StartLine, sections[2].StartLine)
	})

	t.Run("long boundary lines are truncated to the title cap", func(t *testing.T) {
		boundary := strings.Repeat("A", 150)

		sections := SplitSections(boundary + "\nbody")
		require.Len(t, sections, 1)
		assert.Len(t, sections[0].Title, 100)
	})

	t.Run("empty text yields no sections", func(t *testing.T) {
		assert.Empty(t, SplitSections(""))
	})
}
