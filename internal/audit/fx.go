package audit

import (
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(service.NewService),
)
