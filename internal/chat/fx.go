package chat

import (
	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/supportly/internal/chat/domain"
	"github.com/smallbiznis/supportly/internal/chat/repository"
	"github.com/smallbiznis/supportly/internal/chat/service"
	"github.com/smallbiznis/supportly/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type historyParams struct {
	fx.In

	Redis      *redis.Client            `optional:"true"`
	ChatConfig *config.ChatConfigHolder `optional:"true"`
	Log        *zap.Logger
}

func provideHistoryCache(p historyParams) domain.HistoryCache {
	return repository.NewHistoryCache(p.Redis, p.ChatConfig.Get().ConversationTTL, p.Log)
}

var Module = fx.Module("chat.service",
	fx.Provide(repository.Provide),
	fx.Provide(provideHistoryCache),
	fx.Provide(service.New),
)
