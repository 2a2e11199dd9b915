package index

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuquery/internal/model"
)

func TestExtractEntities(t *testing.T) {
	t.Run("person names need two capitalized words", func(t *testing.T) {
		text := "Howard Carter opened the tomb. Howard Carter and Lord Carnarvon were present. Egypt was quiet."

		entities := ExtractEntities(text, []string{model.EntityTypePerson})
		require.Len(t, entities, 2)

		assert.Equal(t, "Howard Carter", entities[0].Text)
		assert.Equal(t, model.EntityTypePerson, entities[0].Type)
		assert.Equal(t, 2, entities[0].Count)
		assert.Equal(t, "Lord Carnarvon", entities[1].Text)
		assert.Equal(t, 1, entities[1].Count)
	})

	t.Run("number filter drops values at or below 100", func(t *testing.T) {
		entities := ExtractEntities("I have 50 apples and 1500 dollars", []string{model.EntityTypeNumber})

		require.Len(t, entities, 1)
		assert.Equal(t, "1500", entities[0].Text)
		assert.Equal(t, model.EntityTypeNumber, entities[0].Type)
	})

	t.Run("numbers with separators use the integer part", func(t *testing.T) {
		entities := ExtractEntities("budget of 1,250,000 against 99.95 spent", []string{model.EntityTypeNumber})

		require.Len(t, entities, 1)
		assert.Equal(t, "1,250,000", entities[0].Text)
	})

	t.Run("dates match slash formats and bare years", func(t *testing.T) {
		entities := ExtractEntities("Signed 12/31/1999, ratified in 2004.", []string{model.EntityTypeDate})

		texts := make([]string, len(entities))
		for i, e := range entities {
			texts[i] = e.Text
		}
		assert.Contains(t, texts, "12/31/1999")
		assert.Contains(t, texts, "2004")
	})

	t.Run("merged output sorted by count with stable ties", func(t *testing.T) {
		text := "Ada Lovelace wrote notes. Ada Lovelace met Charles Babbage in 1833. Ada Lovelace again."

		entities := ExtractEntities(text, nil)
		require.NotEmpty(t, entities)
		assert.Equal(t, "Ada Lovelace", entities[0].Text)
		for i := 1; i < len(entities); i++ {
			assert.GreaterOrEqual(t, entities[i-1].Count, entities[i].Count)
		}
	})

	t.Run("output is deterministic across runs", func(t *testing.T) {
		text := "Marie Curie and Pierre Curie shared the 1903 prize with 15000 francs. Marie Curie won again in 1911."

		first := ExtractEntities(text, nil)
		second := ExtractEntities(text, nil)
		assert.Equal(t, first, second)
	})

	t.Run("capped at twenty entities", func(t *testing.T) {
		var b strings.Builder
		for year := 1900; year < 1930; year++ {
			fmt.Fprintf(&b, "in %d something happened. ", year)
		}

		entities := ExtractEntities(b.String(), []string{model.EntityTypeDate})
		assert.Len(t, entities, 20)
	})

	t.Run("empty text yields nothing", func(t *testing.T) {
		assert.Empty(t, ExtractEntities("", nil))
	})
}
