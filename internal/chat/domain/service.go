package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidConversation = errors.New("invalid_conversation")
	ErrConversationBusy    = errors.New("conversation_busy")
	ErrNotFound            = errors.New("not_found")
)

type SendRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

// Response is one AI turn as returned to the chat client.
type Response struct {
	Message        string    `json:"message"`
	MessageID      string    `json:"message_id"`
	CreatedAt      time.Time `json:"created_at"`
	ConversationID string    `json:"conversation_id"`
	Suggestions    []string  `json:"suggestions"`
	Sender         string    `json:"sender"`
	Intent         string    `json:"intent"`
}

type FeedbackRequest struct {
	ConversationID string `json:"conversation_id"`
	Satisfaction   int    `json:"satisfaction"`
	Feedback       string `json:"feedback"`
}

type Service interface {
	Send(ctx context.Context, req SendRequest) (*Response, error)
	History(ctx context.Context, conversationID string, limit int) ([]Message, error)
	LogFeedback(ctx context.Context, req FeedbackRequest) (*Survey, error)
}
