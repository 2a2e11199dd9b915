package app

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"docuquery/internal/docstore"
	"docuquery/internal/history"
	"docuquery/internal/model"
	"docuquery/internal/repository"
	"docuquery/internal/retrieval"
)

const (
	defaultHistoryTurns    = 6
	defaultMaxContextChars = 2000

	noContextNote      = "No document context is available."
	emptyAnswerMessage = "The model returned an empty response."
)

// CompletionService is the external text-completion collaborator.
type CompletionService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AsyncTurnPublisher hands finished turns to the persistence queue.
type AsyncTurnPublisher interface {
	Publish(ctx context.Context, turn model.Turn) error
}

// AnswerService combines retrieved document context with a short conversation
// window into a prompt for the completion service.
type AnswerService struct {
	docs            *docstore.Store
	retrieval       *retrieval.Engine
	history         history.Store
	turnRepo        *repository.TurnRepository
	publisher       AsyncTurnPublisher
	llm             CompletionService
	historyTurns    int
	maxContextChars int
}

func NewAnswerService(
	docs *docstore.Store,
	retrievalEngine *retrieval.Engine,
	historyStore history.Store,
	turnRepo *repository.TurnRepository,
	publisher AsyncTurnPublisher,
	llm CompletionService,
	historyTurns int,
	maxContextChars int,
) *AnswerService {
	if historyTurns <= 0 {
		historyTurns = defaultHistoryTurns
	}
	if maxContextChars <= 0 {
		maxContextChars = defaultMaxContextChars
	}
	return &AnswerService{
		docs:            docs,
		retrieval:       retrievalEngine,
		history:         historyStore,
		turnRepo:        turnRepo,
		publisher:       publisher,
		llm:             llm,
		historyTurns:    historyTurns,
		maxContextChars: maxContextChars,
	}
}

type AskInput struct {
	ConversationID string
	DocumentID     string
	Question       string
}

type AskResult struct {
	ConversationID string `json:"conversation_id"`
	DocumentID     string `json:"document_id,omitempty"`
	Question       string `json:"question"`
	Answer         string `json:"answer"`
}

// Ask answers a question, against a document when one is selected and known,
// otherwise as a general conversation. The answer is always a string; only a
// completion-service failure is surfaced as an error.
func (s *AnswerService) Ask(ctx context.Context, input AskInput) (*AskResult, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, ErrInvalidInput
	}

	conversationID := strings.TrimSpace(input.ConversationID)
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	// A stale or unknown document id falls back to the general path rather
	// than failing the question.
	documentID := ""
	historyKey := conversationID
	if input.DocumentID != "" {
		if doc, ok := s.docs.Get(input.DocumentID); ok {
			documentID = doc.ID
			historyKey = conversationID + ":" + doc.ID
		}
	}

	turns, err := s.history.GetRecentTurns(ctx, historyKey, s.historyTurns)
	if err != nil {
		log.Printf("[AnswerService] read history failed (continuing without): %v", err)
		turns = nil
	}

	prompt := s.buildPrompt(documentID, question, turns)
	answer, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = emptyAnswerMessage
	}

	if err := s.history.AppendTurn(ctx, historyKey, question, answer); err != nil {
		log.Printf("[AnswerService] append history failed: %v", err)
	}
	if s.publisher != nil {
		turn := model.Turn{
			ConversationID: conversationID,
			DocumentID:     documentID,
			Question:       question,
			Answer:         answer,
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.publisher.Publish(ctx, turn); err != nil {
			log.Printf("[AnswerService] enqueue turn failed: %v", err)
		}
	}

	return &AskResult{
		ConversationID: conversationID,
		DocumentID:     documentID,
		Question:       question,
		Answer:         answer,
	}, nil
}

// History reads the durable turn archive for a conversation.
func (s *AnswerService) History(conversationID string, limit int) ([]model.Turn, error) {
	if strings.TrimSpace(conversationID) == "" {
		return nil, ErrInvalidInput
	}
	return s.turnRepo.ListByConversationID(conversationID, limit)
}

func (s *AnswerService) buildPrompt(documentID, question string, turns []history.TurnEntry) string {
	var historyText strings.Builder
	for _, turn := range turns {
		historyText.WriteString("User: " + turn.Question + "\nAssistant: " + turn.Answer + "\n\n")
	}

	if documentID == "" {
		return "You are a helpful assistant. Use the conversation history to answer the question.\n\n" +
			"Conversation so far:\n" + historyText.String() +
			"\nQuestion: " + question + "\n\nAnswer:"
	}

	context := s.retrieval.RetrieveContext(documentID, question, s.maxContextChars)
	if context == "" {
		context = noContextNote
	}
	return "You are a helpful assistant. Use the document and the conversation history to answer the question.\n\n" +
		"Conversation so far:\n" + historyText.String() +
		"\nRelevant document excerpt:\n" + context +
		"\n\nQuestion: " + question + "\n\nAnswer:"
}
