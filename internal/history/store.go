package history

import "context"

// TurnEntry is one question/answer exchange in a conversation window.
type TurnEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Store keeps the recent-turn window the answering path reads. It is a short
// sliding window, not the durable turn archive.
type Store interface {
	GetRecentTurns(ctx context.Context, conversationKey string, n int) ([]TurnEntry, error)
	AppendTurn(ctx context.Context, conversationKey, question, answer string) error
}
