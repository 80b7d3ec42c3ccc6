package tool

import (
	"github.com/smallbiznis/supportly/internal/agent"
	"github.com/smallbiznis/supportly/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Agent   *agent.ProductsAgent
	Orders  *agent.OrdersAgent
	Metrics *metrics.Metrics `optional:"true"`
}

func provideProductsTool(p Params) (*ProductsTool, error) {
	return NewProductsTool(p.Agent, p.Metrics, p.Log)
}

func provideOrdersTool(p Params) (*OrdersTool, error) {
	return NewOrdersTool(p.Orders, p.Metrics, p.Log)
}

// Register makes the products and orders tools available to the orchestrator.
func Register(registry *Registry, products *ProductsTool, orders *OrdersTool) error {
	if err := registry.Register(products.Description(), products); err != nil {
		return err
	}
	return registry.Register(orders.Description(), orders)
}

var Module = fx.Module("tool",
	fx.Provide(NewRegistry),
	fx.Provide(provideProductsTool),
	fx.Provide(provideOrdersTool),
	fx.Invoke(Register),
)
