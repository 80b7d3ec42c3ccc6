package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/supportly/internal/agent"
	"github.com/smallbiznis/supportly/internal/chat/domain"
	"github.com/smallbiznis/supportly/internal/chat/repository"
	"github.com/smallbiznis/supportly/internal/clock"
	"github.com/smallbiznis/supportly/internal/config"
	"github.com/smallbiznis/supportly/internal/llm/adapters/dummy"
	"github.com/smallbiznis/supportly/internal/migration"
	"github.com/smallbiznis/supportly/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeTools struct {
	calls       []map[string]any
	orderCalls  []map[string]any
	orderReply  string
	ordersError error
}

func (f *fakeTools) Execute(ctx context.Context, name string, params json.RawMessage) (*tool.Output, error) {
	var decoded map[string]any
	if err := json.Unmarshal(params, &decoded); err != nil {
		return nil, err
	}
	switch name {
	case tool.ProductsToolName:
		f.calls = append(f.calls, decoded)
		return &tool.Output{Response: "Here are some products that match your search"}, nil
	case tool.OrdersToolName:
		f.orderCalls = append(f.orderCalls, decoded)
		if f.ordersError != nil {
			return nil, f.ordersError
		}
		return &tool.Output{Response: f.orderReply}, nil
	default:
		return nil, tool.ErrToolNotFound
	}
}

type fakeReports struct {
	texts []string
}

func (f *fakeReports) Respond(ctx context.Context, text string) *agent.Report {
	f.texts = append(f.texts, text)
	return &agent.Report{
		Response:    "## Inventory Report",
		Suggestions: []string{"Show price analysis"},
	}
}

type busyLocker struct{}

func (busyLocker) LockConversation(ctx context.Context, conversationID string) (string, bool, error) {
	return "", false, nil
}

func (busyLocker) ReleaseConversation(ctx context.Context, conversationID, token string) error {
	return nil
}

type harness struct {
	svc     *Service
	clock   *clock.FakeClock
	tools   *fakeTools
	reports *fakeReports
}

func newHarness(t *testing.T, name string) *harness {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, migration.ApplySQLiteSchema(context.Background(), db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:         db,
		Log:        zap.NewNop(),
		Repo:       repository.Provide(),
		GenID:      node,
		LLM:        &dummy.Client{},
		ChatConfig: config.NewStaticChatConfigHolder(config.DefaultChatConfig()),
		Clock:      fake,
	}).(*Service)

	h := &harness{svc: svc, clock: fake, tools: &fakeTools{}, reports: &fakeReports{}}
	svc.tools = h.tools
	svc.reports = h.reports
	return h
}

func TestEmptyMessageStartsWithGreeting(t *testing.T) {
	h := newHarness(t, "chat_greeting")
	ctx := context.Background()

	res, err := h.svc.Send(ctx, domain.SendRequest{})
	require.NoError(t, err)
	assert.Equal(t, domain.IntentInitialGreeting, res.Intent)
	assert.Equal(t, dummy.Greeting, res.Message)
	assert.Equal(t, domain.SenderAI, res.Sender)
	assert.NotEmpty(t, res.ConversationID)
	assert.NotEmpty(t, res.MessageID)
	assert.Equal(t, config.DefaultChatConfig().DefaultSuggestions, res.Suggestions)

	history, err := h.svc.History(ctx, res.ConversationID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.SenderUser, history[0].Sender)
	assert.Equal(t, "", history[0].MessageText)
	assert.Equal(t, domain.SenderAI, history[1].Sender)
	assert.Equal(t, res.MessageID, history[1].ID.String())

	again, err := h.svc.Send(ctx, domain.SendRequest{ConversationID: res.ConversationID})
	require.NoError(t, err)
	assert.Equal(t, domain.IntentGreeting, again.Intent)
	assert.Equal(t, res.ConversationID, again.ConversationID)
}

func TestConversationExpiry(t *testing.T) {
	h := newHarness(t, "chat_expiry")
	ctx := context.Background()

	first, err := h.svc.Send(ctx, domain.SendRequest{Message: "hello there"})
	require.NoError(t, err)
	assert.Equal(t, domain.IntentGreeting, first.Intent)

	h.clock.Advance(30 * time.Minute)
	second, err := h.svc.Send(ctx, domain.SendRequest{Message: "hello again", ConversationID: first.ConversationID})
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)

	h.clock.Advance(3 * time.Hour)
	third, err := h.svc.Send(ctx, domain.SendRequest{Message: "hello again", ConversationID: first.ConversationID})
	require.NoError(t, err)
	assert.NotEqual(t, first.ConversationID, third.ConversationID)

	history, err := h.svc.History(ctx, third.ConversationID, 10)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestUnknownConversationIDIsKept(t *testing.T) {
	h := newHarness(t, "chat_unknown")
	ctx := context.Background()

	id := "0b6c2f1e-6a4d-4a1b-9d1e-3f1c2b4a5d6e"
	res, err := h.svc.Send(ctx, domain.SendRequest{Message: "hey", ConversationID: id})
	require.NoError(t, err)
	assert.Equal(t, id, res.ConversationID)

	_, err = h.svc.Send(ctx, domain.SendRequest{Message: "hey", ConversationID: "not-a-uuid"})
	assert.ErrorIs(t, err, domain.ErrInvalidConversation)
}

func TestRouting(t *testing.T) {
	h := newHarness(t, "chat_routing")
	ctx := context.Background()

	res, err := h.svc.Send(ctx, domain.SendRequest{Message: "Can I get an inventory report for Running?"})
	require.NoError(t, err)
	assert.Equal(t, domain.IntentReports, res.Intent)
	assert.Equal(t, "## Inventory Report", res.Message)
	assert.Equal(t, []string{"Show price analysis"}, res.Suggestions)
	require.Len(t, h.reports.texts, 1)

	res, err = h.svc.Send(ctx, domain.SendRequest{Message: "do you have running shoes under $100", ConversationID: res.ConversationID})
	require.NoError(t, err)
	assert.Equal(t, domain.IntentProducts, res.Intent)
	require.Len(t, h.tools.calls, 1)
	assert.Equal(t, "search", h.tools.calls[0]["action"])
	assert.Equal(t, "do you have running shoes under $100", h.tools.calls[0]["query"])

	productID := "123e4567-e89b-12d3-a456-426614174000"
	_, err = h.svc.Send(ctx, domain.SendRequest{Message: "is shoe " + productID + " in stock in size 10 color: red", ConversationID: res.ConversationID})
	require.NoError(t, err)
	require.Len(t, h.tools.calls, 2)
	assert.Equal(t, "availability", h.tools.calls[1]["action"])
	assert.Equal(t, productID, h.tools.calls[1]["product_id"])
	assert.Equal(t, "10", h.tools.calls[1]["size"])
	assert.Equal(t, "red", h.tools.calls[1]["color"])

	_, err = h.svc.Send(ctx, domain.SendRequest{Message: "tell me about shoe " + productID, ConversationID: res.ConversationID})
	require.NoError(t, err)
	require.Len(t, h.tools.calls, 3)
	assert.Equal(t, "details", h.tools.calls[2]["action"])

	h.tools.orderReply = "No orders found for customer CUST-001."
	res, err = h.svc.Send(ctx, domain.SendRequest{Message: "where is my order?", ConversationID: res.ConversationID})
	require.NoError(t, err)
	assert.Equal(t, domain.IntentOrders, res.Intent)
	assert.Equal(t, "No orders found for customer CUST-001.", res.Message)
	require.Len(t, h.tools.orderCalls, 1)
	assert.Equal(t, "recent", h.tools.orderCalls[0]["action"])

	res, err = h.svc.Send(ctx, domain.SendRequest{Message: "what is the meaning of life", ConversationID: res.ConversationID})
	require.NoError(t, err)
	assert.Equal(t, domain.IntentOther, res.Intent)
	assert.Equal(t, dummy.Knowledge, res.Message)
}

func TestBusyConversation(t *testing.T) {
	h := newHarness(t, "chat_busy")
	h.svc.locker = busyLocker{}

	_, err := h.svc.Send(context.Background(), domain.SendRequest{Message: "hello"})
	assert.ErrorIs(t, err, domain.ErrConversationBusy)
}

func TestLogFeedback(t *testing.T) {
	h := newHarness(t, "chat_feedback")
	ctx := context.Background()

	res, err := h.svc.Send(ctx, domain.SendRequest{})
	require.NoError(t, err)

	cases := []struct {
		name     string
		input    int
		expected int
	}{
		{name: "above range", input: 9, expected: 5},
		{name: "below range", input: 0, expected: 1},
		{name: "in range", input: 4, expected: 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			survey, err := h.svc.LogFeedback(ctx, domain.FeedbackRequest{
				ConversationID: res.ConversationID,
				Satisfaction:   tc.input,
				Feedback:       "great help",
			})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, survey.Satisfaction)
			assert.Len(t, survey.ID, 26)
			require.NotNil(t, survey.Feedback)
			assert.Equal(t, "great help", *survey.Feedback)
		})
	}

	_, err = h.svc.LogFeedback(ctx, domain.FeedbackRequest{ConversationID: "0b6c2f1e-6a4d-4a1b-9d1e-3f1c2b4a5d6e", Satisfaction: 3})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = h.svc.LogFeedback(ctx, domain.FeedbackRequest{Satisfaction: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidConversation)
}

func TestParseIntent(t *testing.T) {
	cases := map[string]string{
		"Products":              domain.IntentProducts,
		"  'orders'  ":          domain.IntentOrders,
		"greeting":              domain.IntentGreeting,
		"I think this is other": domain.IntentOther,
		"no idea":               domain.IntentOther,
	}
	for reply, expected := range cases {
		assert.Equal(t, expected, parseIntent(reply), reply)
	}
}

func TestFirstTurnOnExistingConversation(t *testing.T) {
	h := newHarness(t, "chat_existing")
	ctx := context.Background()

	id := "6a1f3c2e-9b4d-4e7a-8c1f-2d3e4f5a6b7c"
	now := h.clock.Now()
	// A concurrent first turn inserted the row before this one.
	require.NoError(t, h.svc.repo.InsertConversation(ctx, h.svc.db, &domain.Conversation{
		ID: id, UserID: domain.AnonymousUser, CreatedAt: now, UpdatedAt: now,
	}))

	res, err := h.svc.Send(ctx, domain.SendRequest{Message: "hello", ConversationID: id})
	require.NoError(t, err)
	assert.Equal(t, id, res.ConversationID)
}

// memHistory mirrors the redis cache: Append only extends a cached list.
type memHistory struct {
	items map[string][]domain.Message
}

func (m *memHistory) Get(ctx context.Context, conversationID string) ([]domain.Message, bool) {
	items, ok := m.items[conversationID]
	return append([]domain.Message(nil), items...), ok && len(items) > 0
}

func (m *memHistory) Store(ctx context.Context, conversationID string, messages []domain.Message) {
	m.items[conversationID] = append([]domain.Message(nil), messages...)
}

func (m *memHistory) Append(ctx context.Context, conversationID string, message domain.Message, limit int) {
	items, ok := m.items[conversationID]
	if !ok {
		return
	}
	items = append(items, message)
	if len(items) > limit {
		items = items[len(items)-limit:]
	}
	m.items[conversationID] = items
}

func (m *memHistory) Invalidate(ctx context.Context, conversationID string) {
	delete(m.items, conversationID)
}

func TestHistoryBeyondCachedWindow(t *testing.T) {
	h := newHarness(t, "chat_history_window")
	cache := &memHistory{items: map[string][]domain.Message{}}
	h.svc.history = cache
	ctx := context.Background()

	res, err := h.svc.Send(ctx, domain.SendRequest{Message: "hello"})
	require.NoError(t, err)
	for range 5 {
		_, err := h.svc.Send(ctx, domain.SendRequest{Message: "hello", ConversationID: res.ConversationID})
		require.NoError(t, err)
	}
	limit := config.DefaultChatConfig().HistoryLimit
	require.Len(t, cache.items[res.ConversationID], limit)

	all, err := h.svc.History(ctx, res.ConversationID, 50)
	require.NoError(t, err)
	require.Len(t, all, 12)
	assert.Equal(t, domain.SenderUser, all[0].Sender)
	assert.Equal(t, res.MessageID, all[1].ID.String())
	assert.Len(t, cache.items[res.ConversationID], limit)

	recent, err := h.svc.History(ctx, res.ConversationID, 4)
	require.NoError(t, err)
	require.Len(t, recent, 4)
	for i, message := range recent {
		assert.Equal(t, all[8+i].ID, message.ID)
	}
}

func TestPartialHistoryIsNotCached(t *testing.T) {
	h := newHarness(t, "chat_history_partial")
	cache := &memHistory{items: map[string][]domain.Message{}}
	ctx := context.Background()

	res, err := h.svc.Send(ctx, domain.SendRequest{Message: "hello"})
	require.NoError(t, err)
	for range 2 {
		_, err := h.svc.Send(ctx, domain.SendRequest{Message: "hello", ConversationID: res.ConversationID})
		require.NoError(t, err)
	}

	h.svc.history = cache
	recent, err := h.svc.History(ctx, res.ConversationID, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
	assert.Len(t, cache.items[res.ConversationID], 6)

	all, err := h.svc.History(ctx, res.ConversationID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestOrdersResponder(t *testing.T) {
	h := newHarness(t, "chat_orders")
	ctx := context.Background()

	h.tools.orderReply = "Found 3 orders for customer CUST-001. Here are the 3 most recent:\n\n" +
		"Order ID: ORD-101\n\nOrder ID: ORD-102\n\nOrder ID: ORD-103"
	res, err := h.svc.Send(ctx, domain.SendRequest{Message: "Show my recent orders"})
	require.NoError(t, err)
	assert.Equal(t, domain.IntentOrders, res.Intent)
	require.Len(t, h.tools.orderCalls, 1)
	assert.Equal(t, map[string]any{"action": "recent", "customer_id": "CUST-001"}, h.tools.orderCalls[0])
	require.Len(t, res.Suggestions, 3)
	assert.Equal(t, "Show my recent orders", res.Suggestions[0])
	assert.Equal(t, "Show more orders", res.Suggestions[1])

	h.tools.orderReply = "Which order would you like to cancel? Please provide the order ID."
	res, err = h.svc.Send(ctx, domain.SendRequest{Message: "cancel it", ConversationID: res.ConversationID})
	require.NoError(t, err)
	require.Len(t, h.tools.orderCalls, 2)
	assert.Equal(t, "cancel", h.tools.orderCalls[1]["action"])
	assert.NotContains(t, h.tools.orderCalls[1], "order_id")
	assert.Equal(t, "Which order would you like to cancel? Please provide the order ID.", res.Message)

	h.tools.orderReply = "Order Details for ORD-104:\n\nStatus: Shipped"
	res, err = h.svc.Send(ctx, domain.SendRequest{Message: "tell me about order #104", ConversationID: res.ConversationID})
	require.NoError(t, err)
	require.Len(t, h.tools.orderCalls, 3)
	assert.Equal(t, "details", h.tools.orderCalls[2]["action"])
	assert.Equal(t, "ORD-104", h.tools.orderCalls[2]["order_id"])
	assert.Equal(t, []string{"Show my recent orders", "Cancel order ORD-104", "Track order ORD-104"}, res.Suggestions)

	h.tools.orderReply = "Order ORD-104 has already been shipped. Please initiate a return once you receive it."
	_, err = h.svc.Send(ctx, domain.SendRequest{Message: "please cancel this order", ConversationID: res.ConversationID})
	require.NoError(t, err)
	require.Len(t, h.tools.orderCalls, 4)
	assert.Equal(t, "cancel", h.tools.orderCalls[3]["action"])
	assert.Equal(t, "ORD-104", h.tools.orderCalls[3]["order_id"])

	h.tools.orderReply = "Found 3 orders for customer CUST-001. Here are the 3 most recent:\n\nOrder ID: ORD-101"
	_, err = h.svc.Send(ctx, domain.SendRequest{Message: "show more orders", ConversationID: res.ConversationID})
	require.NoError(t, err)
	require.Len(t, h.tools.orderCalls, 5)
	assert.EqualValues(t, 20, h.tools.orderCalls[4]["limit"])

	h.tools.ordersError = errors.New("connection refused")
	res, err = h.svc.Send(ctx, domain.SendRequest{Message: "where is my order", ConversationID: res.ConversationID})
	require.NoError(t, err)
	assert.Equal(t, apologyText, res.Message)
}

func TestOrderRef(t *testing.T) {
	tests := map[string]string{
		"what about ord-107?":         "ORD-107",
		"Cancel order ORD-106 please": "ORD-106",
		"show order #105":             "ORD-105",
		"details for order 101":       "ORD-101",
		"show my orders":              "",
	}
	for input, want := range tests {
		assert.Equal(t, want, orderRef(input), input)
	}
}

func TestOrderFromHistory(t *testing.T) {
	msg := func(sender, text string) domain.Message {
		return domain.Message{Sender: sender, MessageText: text}
	}

	assert.Equal(t, "ORD-104", orderFromHistory([]domain.Message{
		msg(domain.SenderUser, "tell me about ORD-101"),
		msg(domain.SenderAI, "Order Details for ORD-104:"),
		msg(domain.SenderUser, "thanks"),
	}))
	assert.Empty(t, orderFromHistory([]domain.Message{
		msg(domain.SenderUser, "tell me about ORD-101"),
		msg(domain.SenderAI, "Order ID: ORD-101\nOrder ID: ORD-102"),
	}))
	assert.Empty(t, orderFromHistory(nil))
}

func TestOrderSuggestionsRotate(t *testing.T) {
	first := orderSuggestions("", false, 0)
	second := orderSuggestions("", false, 1)
	assert.Equal(t, []string{"Show my recent orders", "Show me Nike Air Max 90", "Show me Adidas Ultraboost"}, first)
	assert.Equal(t, []string{"Show my recent orders", "Show me Adidas Ultraboost", "What do Jordan 1 Retro High look like?"}, second)
}
