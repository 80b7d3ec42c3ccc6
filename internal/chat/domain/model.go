package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	SenderUser = "user"
	SenderAI   = "ai"

	AnonymousUser = "anonymous"
)

const (
	IntentInitialGreeting = "initial_greeting"
	IntentGreeting        = "greeting"
	IntentOrders          = "orders"
	IntentProducts        = "products"
	IntentReports         = "reports"
	IntentOther           = "other"
)

// ClassifiableIntents is the order in which the classifier reply is scanned.
var ClassifiableIntents = []string{IntentGreeting, IntentOrders, IntentProducts, IntentReports, IntentOther}

type Conversation struct {
	ID        string    `json:"id" gorm:"column:id;primaryKey"`
	UserID    string    `json:"user_id" gorm:"column:user_id"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Conversation) TableName() string { return "conversations" }

type Message struct {
	ID             snowflake.ID `json:"id" gorm:"column:id;primaryKey"`
	ConversationID string       `json:"conversation_id" gorm:"column:conversation_id"`
	Sender         string       `json:"sender" gorm:"column:sender"`
	MessageText    string       `json:"message_text" gorm:"column:message_text"`
	CreatedAt      time.Time    `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time    `json:"updated_at" gorm:"column:updated_at"`
}

func (Message) TableName() string { return "messages" }

type Survey struct {
	ID             string    `json:"id" gorm:"column:id;primaryKey"`
	ConversationID string    `json:"conversation_id" gorm:"column:conversation_id"`
	Satisfaction   int       `json:"satisfaction" gorm:"column:satisfaction"`
	Feedback       *string   `json:"feedback,omitempty" gorm:"column:feedback"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Survey) TableName() string { return "user_surveys" }
