package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/audit"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/clock"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/config"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/customer"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/events"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/expense"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/invoice"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/ledger"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/migration"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/observability"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/observability/logger"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/payment"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/product"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/report"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/seed"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/server"
	"github.com/sufillxman/New-Mobile-Point-ERP/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		fx.Provide(events.NewOutbox),

		fx.Invoke(func(conn *gorm.DB) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			return seed.EnsureLedgerAccounts(conn)
		}),

		ledger.Module,
		audit.Module,
		customer.Module,
		product.Module,
		invoice.Module,
		payment.Module,
		expense.Module,
		report.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
