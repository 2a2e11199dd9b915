package ai

import "context"

// Completer adapts the chat-style client to the single-prompt completion
// interface the pipeline and answering path consume.
type Completer struct {
	client *OpenAICompatibleClient
	cfg    ChatConfig
}

func NewCompleter(cfg ChatConfig) *Completer {
	return &Completer{
		client: NewOpenAICompatibleClient(),
		cfg:    cfg,
	}
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	messages := []ChatMessage{{Role: "user", Content: prompt}}
	return c.client.Complete(ctx, c.cfg, messages)
}
