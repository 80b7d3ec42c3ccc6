package repository

import (
	"context"
	"time"

	"github.com/smallbiznis/supportly/internal/chat/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// InsertConversation leaves an existing row with the same id untouched.
func (r *repo) InsertConversation(ctx context.Context, db *gorm.DB, conversation *domain.Conversation) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO conversations (id, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO NOTHING`,
		conversation.ID,
		conversation.UserID,
		conversation.CreatedAt,
		conversation.UpdatedAt,
	).Error
}

func (r *repo) FindConversation(ctx context.Context, db *gorm.DB, id string) (*domain.Conversation, error) {
	var conversation domain.Conversation
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, created_at, updated_at
		 FROM conversations
		 WHERE id = ?`,
		id,
	).Scan(&conversation).Error
	if err != nil {
		return nil, err
	}
	if conversation.ID == "" {
		return nil, nil
	}
	return &conversation, nil
}

func (r *repo) TouchConversation(ctx context.Context, db *gorm.DB, id string, at time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE conversations SET updated_at = ? WHERE id = ?`,
		at,
		id,
	).Error
}

func (r *repo) InsertMessage(ctx context.Context, db *gorm.DB, message *domain.Message) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO messages (id, conversation_id, sender, message_text, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		int64(message.ID),
		message.ConversationID,
		message.Sender,
		message.MessageText,
		message.CreatedAt,
		message.UpdatedAt,
	).Error
}

// ListRecentMessages returns the newest limit messages in chronological order.
func (r *repo) ListRecentMessages(ctx context.Context, db *gorm.DB, conversationID string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 10
	}

	var items []domain.Message
	err := db.WithContext(ctx).Raw(
		`SELECT id, conversation_id, sender, message_text, created_at, updated_at
		 FROM messages
		 WHERE conversation_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		conversationID,
		limit,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}

func (r *repo) InsertSurvey(ctx context.Context, db *gorm.DB, survey *domain.Survey) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO user_surveys (id, conversation_id, satisfaction, feedback, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		survey.ID,
		survey.ConversationID,
		survey.Satisfaction,
		survey.Feedback,
		survey.CreatedAt,
	).Error
}
