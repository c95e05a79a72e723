package customer

import (
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(service.NewService),
)
