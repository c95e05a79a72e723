package product

import (
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(service.NewService),
)
