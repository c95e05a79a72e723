package report

import (
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(service.NewService),
)
