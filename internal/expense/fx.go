package expense

import (
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/expense/service"
	"go.uber.org/fx"
)

var Module = fx.Module("expense.service",
	fx.Provide(service.NewService),
)
