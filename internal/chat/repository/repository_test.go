package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/supportly/internal/chat/domain"
	"github.com/smallbiznis/supportly/internal/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.ApplySQLiteSchema(context.Background(), db))
	return db
}

func TestInsertConversationKeepsExistingRow(t *testing.T) {
	db := setupTestDB(t, "chat_repo_conversation")
	ctx := context.Background()
	r := Provide()

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	id := "1d2c3b4a-5e6f-4a7b-8c9d-0e1f2a3b4c5d"
	require.NoError(t, r.InsertConversation(ctx, db, &domain.Conversation{
		ID: id, UserID: "customer-1", CreatedAt: created, UpdatedAt: created,
	}))

	later := created.Add(time.Hour)
	require.NoError(t, r.InsertConversation(ctx, db, &domain.Conversation{
		ID: id, UserID: domain.AnonymousUser, CreatedAt: later, UpdatedAt: later,
	}))

	found, err := r.FindConversation(ctx, db, id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "customer-1", found.UserID)

	var count int64
	require.NoError(t, db.Table("conversations").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListRecentMessagesIsChronological(t *testing.T) {
	db := setupTestDB(t, "chat_repo_messages")
	ctx := context.Background()
	r := Provide()

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	id := "2e3d4c5b-6f7a-4b8c-9d0e-1f2a3b4c5d6e"
	require.NoError(t, r.InsertConversation(ctx, db, &domain.Conversation{ID: id, UserID: domain.AnonymousUser, CreatedAt: at, UpdatedAt: at}))
	for i := 1; i <= 4; i++ {
		ts := at.Add(time.Duration(i) * time.Minute)
		require.NoError(t, r.InsertMessage(ctx, db, &domain.Message{
			ID: snowflake.ID(i), ConversationID: id, Sender: domain.SenderUser, MessageText: "m", CreatedAt: ts, UpdatedAt: ts,
		}))
	}

	messages, err := r.ListRecentMessages(ctx, db, id, 3)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, snowflake.ID(2), messages[0].ID)
	assert.Equal(t, snowflake.ID(4), messages[2].ID)
}
