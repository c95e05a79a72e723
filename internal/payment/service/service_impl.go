package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/clock"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/events"
	invoicedomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/invoice/domain"
	ledgerdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/ledger/domain"
	paymentdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/payment/domain"
	"github.com/sufillxman/New-Mobile-Point-ERP/pkg/money"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	LedgerSvc ledgerdomain.Service
	Outbox    *events.Outbox
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID     *snowflake.Node
	clock     clock.Clock
	ledgerSvc ledgerdomain.Service
	outbox    *events.Outbox
}

func NewService(p ServiceParam) paymentdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("payment.service"),

		genID:     p.GenID,
		clock:     p.Clock,
		ledgerSvc: p.LedgerSvc,
		outbox:    p.Outbox,
	}
}

// Apply adds a payment to an invoice. A payment beyond the outstanding
// balance is clamped to full settlement; the excess is discarded, not
// credited forward. Malformed, zero, and negative amounts are rejected
// before anything is written.
func (s *Service) Apply(ctx context.Context, req paymentdomain.ApplyPaymentRequest) (paymentdomain.ApplyPaymentResult, error) {
	invoiceID, err := parseID(req.InvoiceID)
	if err != nil {
		return paymentdomain.ApplyPaymentResult{}, paymentdomain.ErrInvalidInvoiceID
	}

	amount, err := money.Parse(req.Amount)
	if err != nil || amount < 0 {
		return paymentdomain.ApplyPaymentResult{}, paymentdomain.ErrInvalidAmount
	}
	if amount == 0 {
		return paymentdomain.ApplyPaymentResult{}, paymentdomain.ErrZeroAmount
	}

	var record invoicedomain.Invoice
	var applied int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, "id = ?", invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return paymentdomain.ErrInvoiceNotFound
			}
			return err
		}

		newPaid := record.AmountPaid + amount
		if newPaid > record.TotalAmount {
			newPaid = record.TotalAmount
		}
		applied = newPaid - record.AmountPaid

		record.AmountPaid = newPaid
		record.RecomputeBalance()
		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		if applied > 0 {
			lines := []ledgerdomain.Line{
				{AccountCode: ledgerdomain.AccountCodeCash, Direction: ledgerdomain.LedgerEntryDirectionDebit, Amount: applied},
				{AccountCode: ledgerdomain.AccountCodeAccountsReceivable, Direction: ledgerdomain.LedgerEntryDirectionCredit, Amount: applied},
			}
			if err := s.ledgerSvc.CreateEntryTx(ctx, tx, ledgerdomain.SourceTypePayment, record.ID, s.clock.Now(), lines); err != nil {
				return err
			}
		}

		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type: events.EventPaymentApplied,
			Payload: map[string]any{
				"invoice_id": record.ID.String(),
				"requested":  money.Format(amount),
				"applied":    money.Format(applied),
				"balance":    money.Format(record.BalanceAmount),
			},
		})
	})
	if err != nil {
		return paymentdomain.ApplyPaymentResult{}, err
	}

	if err := s.db.WithContext(ctx).Preload("Product").First(&record, "id = ?", record.ID).Error; err != nil {
		return paymentdomain.ApplyPaymentResult{}, err
	}

	result := paymentdomain.ApplyPaymentResult{
		Invoice: record,
		Applied: applied,
		Settled: record.BalanceAmount == 0,
	}
	s.log.Info("payment applied",
		zap.String("invoice_id", record.ID.String()),
		zap.String("applied", money.Format(applied)),
		zap.Bool("settled", result.Settled),
	)
	return result, nil
}

func parseID(value string) (snowflake.ID, error) {
	value = strings.TrimSpace(value)
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, errors.New("invalid_id")
	}
	return snowflake.ID(parsed), nil
}
