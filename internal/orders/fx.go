package orders

import (
	"github.com/smallbiznis/supportly/internal/orders/repository"
	"github.com/smallbiznis/supportly/internal/orders/service"
	"go.uber.org/fx"
)

var Module = fx.Module("orders.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
