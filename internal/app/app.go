package app

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/supportly/internal/agent"
	"github.com/smallbiznis/supportly/internal/cache"
	"github.com/smallbiznis/supportly/internal/catalog"
	"github.com/smallbiznis/supportly/internal/chat"
	"github.com/smallbiznis/supportly/internal/clock"
	"github.com/smallbiznis/supportly/internal/config"
	"github.com/smallbiznis/supportly/internal/llm"
	"github.com/smallbiznis/supportly/internal/migration"
	"github.com/smallbiznis/supportly/internal/observability"
	"github.com/smallbiznis/supportly/internal/orders"
	"github.com/smallbiznis/supportly/internal/ratelimit"
	"github.com/smallbiznis/supportly/internal/server"
	"github.com/smallbiznis/supportly/internal/tool"
	"github.com/smallbiznis/supportly/pkg/db"
	"go.uber.org/fx"
)

// Infra is the config, logging and database stack shared by every command.
func Infra() fx.Option {
	return fx.Options(
		config.Module,
		observability.Module,
		db.Module,
	)
}

// API is the full chatbot HTTP service.
func API() fx.Option {
	return fx.Options(
		Infra(),
		fx.Provide(RegisterSnowflake),
		clock.Module,
		cache.Module,
		migration.Module,

		// Functional Domains
		catalog.Module,
		orders.Module,
		llm.Module,
		agent.Module,
		tool.Module,
		ratelimit.Module,
		chat.Module,

		server.Module,
	)
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
