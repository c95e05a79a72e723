package ledger

import (
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/ledger/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ledger.service",
	fx.Provide(service.NewService),
)
