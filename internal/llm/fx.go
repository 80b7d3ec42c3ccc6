package llm

import (
	"time"

	"github.com/smallbiznis/supportly/internal/config"
	"github.com/smallbiznis/supportly/internal/llm/adapters"
	"github.com/smallbiznis/supportly/internal/llm/adapters/anthropic"
	"github.com/smallbiznis/supportly/internal/llm/adapters/azure"
	"github.com/smallbiznis/supportly/internal/llm/adapters/dummy"
	"github.com/smallbiznis/supportly/internal/llm/adapters/openai"
	"github.com/smallbiznis/supportly/internal/llm/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("llm",
	fx.Provide(NewRegistry),
	fx.Provide(NewClient),
)

func NewRegistry() *adapters.Registry {
	return adapters.NewRegistry(
		openai.NewFactory(),
		azure.NewFactory(),
		anthropic.NewFactory(),
		dummy.NewFactory(),
	)
}

// NewClient builds the configured vendor client.
func NewClient(cfg config.Config, registry *adapters.Registry, log *zap.Logger) (domain.Client, error) {
	client, err := registry.New(domain.Config{
		Vendor:     cfg.LLM.Vendor,
		Model:      cfg.LLM.Model,
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		APIVersion: cfg.LLM.APIVersion,
		Timeout:    time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		MaxRetries: cfg.LLM.MaxRetries,
	})
	if err != nil {
		return nil, err
	}
	log.Named("llm").Info("llm client ready",
		zap.String("vendor", client.Vendor()),
		zap.String("model", cfg.LLM.Model),
	)
	return client, nil
}
