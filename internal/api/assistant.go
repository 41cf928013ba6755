package api

import (
	"context"
	"fmt"

	"github.com/ndtran/police-portal/internal/model"
)

// LegalAssistant forwards a conversation to the backend's AI legal
// assistant proxy and returns the assistant's reply. The backend owns the
// model credentials; the client never talks to the AI provider directly.
func (c *Client) LegalAssistant(ctx context.Context, history []model.ChatMessage) (model.ChatMessage, error) {
	body := struct {
		Messages []model.ChatMessage `json:"messages"`
	}{Messages: history}

	var resp struct {
		Reply string `json:"reply"`
	}
	if err := c.Post(ctx, "/api/assistant/chat", body, &resp); err != nil {
		return model.ChatMessage{}, fmt.Errorf("querying legal assistant: %w", err)
	}

	return model.ChatMessage{Role: "assistant", Content: resp.Reply}, nil
}
