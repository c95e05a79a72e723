package payment

import (
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(service.NewService),
)
