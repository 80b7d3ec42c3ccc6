package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	InsertConversation(ctx context.Context, db *gorm.DB, conversation *Conversation) error
	FindConversation(ctx context.Context, db *gorm.DB, id string) (*Conversation, error)
	TouchConversation(ctx context.Context, db *gorm.DB, id string, at time.Time) error
	InsertMessage(ctx context.Context, db *gorm.DB, message *Message) error
	ListRecentMessages(ctx context.Context, db *gorm.DB, conversationID string, limit int) ([]Message, error)
	InsertSurvey(ctx context.Context, db *gorm.DB, survey *Survey) error
}

// HistoryCache keeps the most recent messages of a conversation, oldest first.
type HistoryCache interface {
	Get(ctx context.Context, conversationID string) ([]Message, bool)
	Store(ctx context.Context, conversationID string, messages []Message)
	Append(ctx context.Context, conversationID string, message Message, limit int)
	Invalidate(ctx context.Context, conversationID string)
}
