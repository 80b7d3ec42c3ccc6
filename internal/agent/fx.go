package agent

import (
	catalogdomain "github.com/smallbiznis/supportly/internal/catalog/domain"
	llmdomain "github.com/smallbiznis/supportly/internal/llm/domain"
	"github.com/smallbiznis/supportly/internal/observability/metrics"
	ordersdomain "github.com/smallbiznis/supportly/internal/orders/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Catalog catalogdomain.Service
	Orders  ordersdomain.Service
	LLM     llmdomain.Client `optional:"true"`
	Metrics *metrics.Metrics `optional:"true"`
}

var Module = fx.Module("agent",
	fx.Provide(NewProductsAgent),
	fx.Provide(NewReportsAgent),
	fx.Provide(NewOrdersAgent),
)
