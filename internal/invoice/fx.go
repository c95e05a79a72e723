package invoice

import (
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(service.NewService),
)
