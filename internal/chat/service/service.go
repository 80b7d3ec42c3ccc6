package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/smallbiznis/supportly/internal/agent"
	"github.com/smallbiznis/supportly/internal/chat/domain"
	"github.com/smallbiznis/supportly/internal/clock"
	"github.com/smallbiznis/supportly/internal/config"
	llmdomain "github.com/smallbiznis/supportly/internal/llm/domain"
	obscontext "github.com/smallbiznis/supportly/internal/observability/context"
	"github.com/smallbiznis/supportly/internal/observability/logger"
	"github.com/smallbiznis/supportly/internal/observability/metrics"
	"github.com/smallbiznis/supportly/internal/ratelimit"
	"github.com/smallbiznis/supportly/internal/tool"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type toolExecutor interface {
	Execute(ctx context.Context, name string, params json.RawMessage) (*tool.Output, error)
}

type reportResponder interface {
	Respond(ctx context.Context, text string) *agent.Report
}

type turnLocker interface {
	LockConversation(ctx context.Context, conversationID string) (string, bool, error)
	ReleaseConversation(ctx context.Context, conversationID, token string) error
}

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Repo       domain.Repository
	GenID      *snowflake.Node
	LLM        llmdomain.Client
	Tools      *tool.Registry
	Reports    *agent.ReportsAgent
	History    domain.HistoryCache      `optional:"true"`
	ChatConfig *config.ChatConfigHolder `optional:"true"`
	Limiter    *ratelimit.ChatLimiter   `optional:"true"`
	Clock      clock.Clock              `optional:"true"`
	Metrics    *metrics.Metrics         `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	repo       domain.Repository
	genID      *snowflake.Node
	llm        llmdomain.Client
	tools      toolExecutor
	reports    reportResponder
	history    domain.HistoryCache
	chatConfig *config.ChatConfigHolder
	locker     turnLocker
	clock      clock.Clock
	metrics    *metrics.Metrics
}

func New(p Params) domain.Service {
	svc := &Service{
		db:         p.DB,
		log:        p.Log.Named("chat.service"),
		repo:       p.Repo,
		genID:      p.GenID,
		llm:        p.LLM,
		tools:      p.Tools,
		reports:    p.Reports,
		history:    p.History,
		chatConfig: p.ChatConfig,
		clock:      p.Clock,
		metrics:    p.Metrics,
	}
	if p.Limiter != nil {
		svc.locker = p.Limiter
	}
	if svc.clock == nil {
		svc.clock = clock.NewSystemClock()
	}
	return svc
}

func (s *Service) Send(ctx context.Context, req domain.SendRequest) (*domain.Response, error) {
	cfg := s.chatConfig.Get()
	text := strings.TrimSpace(req.Message)

	conversationID, history, err := s.resolveConversation(ctx, strings.TrimSpace(req.ConversationID), cfg)
	if err != nil {
		return nil, err
	}
	ctx = obscontext.WithConversationID(ctx, conversationID)
	log := logger.WithContext(ctx, s.log)

	release, err := s.lockTurn(ctx, conversationID, log)
	if err != nil {
		return nil, err
	}
	defer release()

	if _, err := s.logMessage(ctx, conversationID, domain.SenderUser, text, cfg.HistoryLimit); err != nil {
		return nil, err
	}

	intent := s.classifyIntent(ctx, text, history, cfg)
	log.Info("intent detected", zap.String("intent", intent), zap.Int("history", len(history)))

	reply := s.route(ctx, intent, text, history)
	suggestions := reply.suggestions
	if len(suggestions) == 0 {
		suggestions = append([]string(nil), cfg.DefaultSuggestions...)
	}

	message, err := s.logMessage(ctx, conversationID, domain.SenderAI, reply.text, cfg.HistoryLimit)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordChatMessage(ctx, intent)

	return &domain.Response{
		Message:        reply.text,
		MessageID:      message.ID.String(),
		CreatedAt:      message.CreatedAt,
		ConversationID: conversationID,
		Suggestions:    suggestions,
		Sender:         domain.SenderAI,
		Intent:         intent,
	}, nil
}

func (s *Service) History(ctx context.Context, conversationID string, limit int) ([]domain.Message, error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return nil, domain.ErrInvalidConversation
	}
	if limit <= 0 {
		limit = s.chatConfig.Get().HistoryLimit
	}
	return s.loadHistory(ctx, conversationID, limit)
}

func (s *Service) LogFeedback(ctx context.Context, req domain.FeedbackRequest) (*domain.Survey, error) {
	conversationID := strings.TrimSpace(req.ConversationID)
	if conversationID == "" {
		return nil, domain.ErrInvalidConversation
	}

	conversation, err := s.repo.FindConversation(ctx, s.db, conversationID)
	if err != nil {
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	if conversation == nil {
		return nil, domain.ErrNotFound
	}

	satisfaction := req.Satisfaction
	if satisfaction < 1 || satisfaction > 5 {
		s.log.Warn("satisfaction out of range, clamping", zap.Int("satisfaction", satisfaction))
		satisfaction = max(1, min(satisfaction, 5))
	}

	survey := domain.Survey{
		ID:             ulid.Make().String(),
		ConversationID: conversationID,
		Satisfaction:   satisfaction,
		CreatedAt:      s.clock.Now(),
	}
	if feedback := strings.TrimSpace(req.Feedback); feedback != "" {
		survey.Feedback = &feedback
	}
	if err := s.repo.InsertSurvey(ctx, s.db, &survey); err != nil {
		return nil, fmt.Errorf("insert survey: %w", err)
	}
	return &survey, nil
}

// resolveConversation returns the conversation the turn belongs to and its
// recent history. Expired conversations are replaced by a fresh one.
func (s *Service) resolveConversation(ctx context.Context, conversationID string, cfg config.ChatConfig) (string, []domain.Message, error) {
	if conversationID == "" {
		id, err := s.startConversation(ctx, domain.AnonymousUser)
		return id, nil, err
	}
	if _, err := uuid.Parse(conversationID); err != nil {
		return "", nil, domain.ErrInvalidConversation
	}

	history, err := s.loadHistory(ctx, conversationID, cfg.HistoryLimit)
	if err != nil {
		return "", nil, err
	}
	if len(history) == 0 {
		if err := s.ensureConversation(ctx, conversationID); err != nil {
			return "", nil, err
		}
		return conversationID, nil, nil
	}

	last := history[len(history)-1]
	if last.CreatedAt.Before(s.clock.Now().Add(-cfg.ConversationTTL)) {
		s.log.Info("conversation expired, starting a new one",
			zap.String("expired_conversation_id", conversationID),
			zap.Time("last_message_at", last.CreatedAt),
		)
		id, err := s.startConversation(ctx, domain.AnonymousUser)
		return id, nil, err
	}
	return conversationID, history, nil
}

func (s *Service) startConversation(ctx context.Context, userID string) (string, error) {
	now := s.clock.Now()
	conversation := domain.Conversation{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertConversation(ctx, s.db, &conversation); err != nil {
		return "", fmt.Errorf("start conversation: %w", err)
	}
	return conversation.ID, nil
}

// ensureConversation creates a conversation for a client supplied id. The
// insert is a no-op when a concurrent first turn created it already.
func (s *Service) ensureConversation(ctx context.Context, conversationID string) error {
	now := s.clock.Now()
	err := s.repo.InsertConversation(ctx, s.db, &domain.Conversation{
		ID:        conversationID,
		UserID:    domain.AnonymousUser,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("create conversation: %w", err)
	}
	return nil
}

// loadHistory serves from the cache unless the cache is full and the caller
// asks for more than it holds. The cache only ever receives the newest
// historyLimit messages.
func (s *Service) loadHistory(ctx context.Context, conversationID string, limit int) ([]domain.Message, error) {
	capacity := s.chatConfig.Get().HistoryLimit
	if s.history != nil {
		if cached, ok := s.history.Get(ctx, conversationID); ok {
			if len(cached) >= limit || len(cached) < capacity {
				return tail(cached, limit), nil
			}
		}
	}

	fetch := max(limit, capacity)
	messages, err := s.repo.ListRecentMessages(ctx, s.db, conversationID, fetch)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if s.history != nil && fetch == capacity {
		s.history.Store(ctx, conversationID, messages)
	}
	return tail(messages, limit), nil
}

func tail(messages []domain.Message, n int) []domain.Message {
	if len(messages) > n {
		return messages[len(messages)-n:]
	}
	return messages
}

func (s *Service) logMessage(ctx context.Context, conversationID, sender, text string, limit int) (*domain.Message, error) {
	now := s.clock.Now()
	message := domain.Message{
		ID:             s.genID.Generate(),
		ConversationID: conversationID,
		Sender:         sender,
		MessageText:    text,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.InsertMessage(ctx, s.db, &message); err != nil {
		return nil, fmt.Errorf("log %s message: %w", sender, err)
	}
	if err := s.repo.TouchConversation(ctx, s.db, conversationID, now); err != nil {
		return nil, fmt.Errorf("touch conversation: %w", err)
	}
	if s.history != nil {
		s.history.Append(ctx, conversationID, message, limit)
	}
	return &message, nil
}

// lockTurn serializes turns of one conversation. A lock backend failure
// does not block the turn.
func (s *Service) lockTurn(ctx context.Context, conversationID string, log *zap.Logger) (func(), error) {
	noop := func() {}
	if s.locker == nil {
		return noop, nil
	}
	token, ok, err := s.locker.LockConversation(ctx, conversationID)
	if err != nil {
		log.Warn("conversation lock unavailable", zap.Error(err))
		return noop, nil
	}
	if !ok {
		return nil, domain.ErrConversationBusy
	}
	return func() {
		if err := s.locker.ReleaseConversation(context.WithoutCancel(ctx), conversationID, token); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("release conversation lock failed", zap.Error(err))
		}
	}, nil
}
