package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	ledgerdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/ledger/domain"
	"gorm.io/gorm"
)

var chartOfAccounts = []struct {
	code string
	name string
}{
	{ledgerdomain.AccountCodeCash, "Cash"},
	{ledgerdomain.AccountCodeAccountsReceivable, "Accounts Receivable"},
	{ledgerdomain.AccountCodeRevenue, "Sales Revenue"},
}

// EnsureLedgerAccounts seeds the chart of accounts at startup. Safe to
// run on every boot.
func EnsureLedgerAccounts(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, account := range chartOfAccounts {
			var existing ledgerdomain.LedgerAccount
			err := tx.Where("code = ?", account.code).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			record := ledgerdomain.LedgerAccount{
				ID:        node.Generate(),
				Code:      account.code,
				Name:      account.name,
				CreatedAt: time.Now().UTC(),
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
