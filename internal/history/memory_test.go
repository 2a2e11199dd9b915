package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the most recent turns in order", func(t *testing.T) {
		store := NewMemoryStore(50)
		for i := 1; i <= 4; i++ {
			require.NoError(t, store.AppendTurn(ctx, "conv_1", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i)))
		}

		turns, err := store.GetRecentTurns(ctx, "conv_1", 2)
		require.NoError(t, err)
		require.Len(t, turns, 2)
		assert.Equal(t, TurnEntry{Question: "q3", Answer: "a3"}, turns[0])
		assert.Equal(t, TurnEntry{Question: "q4", Answer: "a4"}, turns[1])
	})

	t.Run("caps retained turns at the window size", func(t *testing.T) {
		store := NewMemoryStore(3)
		for i := 1; i <= 5; i++ {
			require.NoError(t, store.AppendTurn(ctx, "conv_1", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i)))
		}

		turns, err := store.GetRecentTurns(ctx, "conv_1", 10)
		require.NoError(t, err)
		require.Len(t, turns, 3)
		assert.Equal(t, "q3", turns[0].Question)
		assert.Equal(t, "q5", turns[2].Question)
	})

	t.Run("conversations are isolated by key", func(t *testing.T) {
		store := NewMemoryStore(50)
		require.NoError(t, store.AppendTurn(ctx, "conv_1", "q", "a"))
		require.NoError(t, store.AppendTurn(ctx, "conv_1:doc_1", "scoped q", "scoped a"))

		turns, err := store.GetRecentTurns(ctx, "conv_1", 10)
		require.NoError(t, err)
		require.Len(t, turns, 1)
		assert.Equal(t, "q", turns[0].Question)
	})

	t.Run("unknown key and non-positive n yield nothing", func(t *testing.T) {
		store := NewMemoryStore(50)

		turns, err := store.GetRecentTurns(ctx, "missing", 6)
		require.NoError(t, err)
		assert.Empty(t, turns)

		turns, err = store.GetRecentTurns(ctx, "missing", 0)
		require.NoError(t, err)
		assert.Empty(t, turns)
	})
}
