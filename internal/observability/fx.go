package observability

import (
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/observability/metrics"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/observability/tracing"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(tracing.NewProvider),
	fx.Provide(metrics.NewHTTPMetrics),
)
