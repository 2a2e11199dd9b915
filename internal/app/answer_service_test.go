package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuquery/internal/docstore"
	"docuquery/internal/history"
	"docuquery/internal/index"
	"docuquery/internal/model"
	"docuquery/internal/retrieval"
)

type capturingCompleter struct {
	answer  string
	err     error
	prompts []string
}

func (c *capturingCompleter) Complete(_ context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return "", c.err
	}
	return c.answer, nil
}

type capturingPublisher struct {
	turns []model.Turn
	err   error
}

func (p *capturingPublisher) Publish(_ context.Context, turn model.Turn) error {
	p.turns = append(p.turns, turn)
	return p.err
}

type answerFixture struct {
	service   *AnswerService
	docs      *docstore.Store
	index     *index.Store
	history   *history.MemoryStore
	llm       *capturingCompleter
	publisher *capturingPublisher
}

func newAnswerFixture(t *testing.T, llm *capturingCompleter) answerFixture {
	t.Helper()
	indexStore := index.NewStore()
	docs := docstore.New()
	historyStore := history.NewMemoryStore(50)
	publisher := &capturingPublisher{}
	engine := retrieval.NewEngine(indexStore)
	service := NewAnswerService(docs, engine, historyStore, nil, publisher, llm, 6, 2000)
	return answerFixture{
		service:   service,
		docs:      docs,
		index:     indexStore,
		history:   historyStore,
		llm:       llm,
		publisher: publisher,
	}
}

func TestAnswerServiceAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("document question carries an excerpt and records the turn", func(t *testing.T) {
		f := newAnswerFixture(t, &capturingCompleter{answer: "In 1922."})
		f.docs.Put(model.Document{ID: "doc_1", Status: model.DocumentStatusIndexed})
		f.index.Build("doc_1", "Howard Carter opened the tomb in 1922. The treasures amazed the world.")

		result, err := f.service.Ask(ctx, AskInput{
			ConversationID: "conv_1",
			DocumentID:     "doc_1",
			Question:       "When was the tomb opened?",
		})
		require.NoError(t, err)
		assert.Equal(t, "conv_1", result.ConversationID)
		assert.Equal(t, "doc_1", result.DocumentID)
		assert.Equal(t, "In 1922.", result.Answer)

		require.Len(t, f.llm.prompts, 1)
		prompt := f.llm.prompts[0]
		assert.Contains(t, prompt, "Relevant document excerpt:")
		assert.Contains(t, prompt, "tomb")
		assert.Contains(t, prompt, "Question: When was the tomb opened?")

		// The turn lands in both the rolling window and the persistence queue,
		// keyed per document.
		turns, err := f.history.GetRecentTurns(ctx, "conv_1:doc_1", 10)
		require.NoError(t, err)
		require.Len(t, turns, 1)
		assert.Equal(t, "In 1922.", turns[0].Answer)

		require.Len(t, f.publisher.turns, 1)
		assert.Equal(t, "conv_1", f.publisher.turns[0].ConversationID)
		assert.Equal(t, "doc_1", f.publisher.turns[0].DocumentID)
	})

	t.Run("history turns appear in the prompt in order", func(t *testing.T) {
		f := newAnswerFixture(t, &capturingCompleter{answer: "again"})
		require.NoError(t, f.history.AppendTurn(ctx, "conv_1", "first question", "first answer"))

		_, err := f.service.Ask(ctx, AskInput{ConversationID: "conv_1", Question: "second question"})
		require.NoError(t, err)

		prompt := f.llm.prompts[0]
		assert.Contains(t, prompt, "User: first question\nAssistant: first answer\n\n")
		assert.NotContains(t, prompt, "Relevant document excerpt:")
	})

	t.Run("unknown document id falls back to the general path", func(t *testing.T) {
		f := newAnswerFixture(t, &capturingCompleter{answer: "general"})

		result, err := f.service.Ask(ctx, AskInput{
			ConversationID: "conv_1",
			DocumentID:     "doc_gone",
			Question:       "hello?",
		})
		require.NoError(t, err)
		assert.Empty(t, result.DocumentID)
		assert.NotContains(t, f.llm.prompts[0], "Relevant document excerpt:")

		turns, err := f.history.GetRecentTurns(ctx, "conv_1", 10)
		require.NoError(t, err)
		assert.Len(t, turns, 1)
	})

	t.Run("missing conversation id gets a generated one", func(t *testing.T) {
		f := newAnswerFixture(t, &capturingCompleter{answer: "hi"})

		result, err := f.service.Ask(ctx, AskInput{Question: "hello"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.ConversationID)
	})

	t.Run("blank answer is replaced with the fallback message", func(t *testing.T) {
		f := newAnswerFixture(t, &capturingCompleter{answer: "   "})

		result, err := f.service.Ask(ctx, AskInput{ConversationID: "conv_1", Question: "hello"})
		require.NoError(t, err)
		assert.Equal(t, emptyAnswerMessage, result.Answer)
	})

	t.Run("document without index falls back to the no-context note", func(t *testing.T) {
		f := newAnswerFixture(t, &capturingCompleter{answer: "ok"})
		f.docs.Put(model.Document{ID: "doc_1", Status: model.DocumentStatusUploaded})

		_, err := f.service.Ask(ctx, AskInput{
			ConversationID: "conv_1",
			DocumentID:     "doc_1",
			Question:       "anything?",
		})
		require.NoError(t, err)
		assert.Contains(t, f.llm.prompts[0], noContextNote)
	})

	t.Run("completion failure is surfaced", func(t *testing.T) {
		f := newAnswerFixture(t, &capturingCompleter{err: errors.New("model down")})

		_, err := f.service.Ask(ctx, AskInput{ConversationID: "conv_1", Question: "hello"})
		assert.Error(t, err)

		turns, histErr := f.history.GetRecentTurns(ctx, "conv_1", 10)
		require.NoError(t, histErr)
		assert.Empty(t, turns)
	})

	t.Run("publisher failure does not fail the answer", func(t *testing.T) {
		f := newAnswerFixture(t, &capturingCompleter{answer: "fine"})
		f.publisher.err = errors.New("broker down")

		result, err := f.service.Ask(ctx, AskInput{ConversationID: "conv_1", Question: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "fine", result.Answer)
	})

	t.Run("empty question is rejected", func(t *testing.T) {
		f := newAnswerFixture(t, &capturingCompleter{answer: "x"})

		_, err := f.service.Ask(ctx, AskInput{ConversationID: "conv_1", Question: "  "})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
