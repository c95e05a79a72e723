package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/clock"
	customerdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/customer/domain"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/events"
	invoicedomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/invoice/domain"
	ledgerdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/ledger/domain"
	productdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/product/domain"
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

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("invoice.service"),

		genID:     p.GenID,
		clock:     p.Clock,
		ledgerSvc: p.LedgerSvc,
		outbox:    p.Outbox,
	}
}

// Create records a sale. The availability flip on the product is a
// conditional update inside the same transaction as the invoice insert,
// so two concurrent sales of one unit cannot both commit.
func (s *Service) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (invoicedomain.Invoice, error) {
	customerID, err := parseID(req.CustomerID)
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidCustomer
	}
	productID, err := parseID(req.ProductID)
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidProduct
	}

	totalAmount, err := money.Parse(req.TotalAmount)
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidAmount
	}
	amountPaid := int64(0)
	if strings.TrimSpace(req.AmountPaid) != "" {
		amountPaid, err = money.Parse(req.AmountPaid)
		if err != nil {
			return invoicedomain.Invoice{}, invoicedomain.ErrInvalidAmount
		}
	}
	if amountPaid > totalAmount {
		return invoicedomain.Invoice{}, invoicedomain.ErrPaidExceedsTotal
	}

	mode := invoicedomain.PaymentMode(strings.ToUpper(strings.TrimSpace(req.PaymentMode)))
	if mode == "" {
		mode = invoicedomain.PaymentModeCash
	}
	if !mode.Valid() {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidPaymentMode
	}

	var dueDate *time.Time
	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) != "" {
		parsed, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(*req.DueDate), time.UTC)
		if err != nil {
			return invoicedomain.Invoice{}, invoicedomain.ErrInvalidDueDate
		}
		dueDate = &parsed
	}

	now := s.clock.Now()
	record := invoicedomain.Invoice{
		ID:            s.genID.Generate(),
		CustomerID:    customerID,
		ProductID:     productID,
		TotalAmount:   totalAmount,
		AmountPaid:    amountPaid,
		PaymentMode:   mode,
		TransactionID: trimOptional(req.TransactionID),
		DueDate:       dueDate,
		SaleDate:      now,
	}
	record.RecomputeBalance()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customerCount int64
		if err := tx.Model(&customerdomain.Customer{}).Where("id = ?", customerID).Count(&customerCount).Error; err != nil {
			return err
		}
		if customerCount == 0 {
			return invoicedomain.ErrCustomerNotFound
		}

		// The optimistic availability check: flip only if still sellable.
		flip := tx.Model(&productdomain.Product{}).
			Where("id = ? AND is_available = ?", productID, true).
			Update("is_available", false)
		if flip.Error != nil {
			return flip.Error
		}
		if flip.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&productdomain.Product{}).Where("id = ?", productID).Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return invoicedomain.ErrProductNotFound
			}
			return invoicedomain.ErrProductUnavailable
		}

		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		lines := []ledgerdomain.Line{
			{AccountCode: ledgerdomain.AccountCodeRevenue, Direction: ledgerdomain.LedgerEntryDirectionCredit, Amount: totalAmount},
		}
		if amountPaid > 0 {
			lines = append(lines, ledgerdomain.Line{
				AccountCode: ledgerdomain.AccountCodeCash,
				Direction:   ledgerdomain.LedgerEntryDirectionDebit,
				Amount:      amountPaid,
			})
		}
		if record.BalanceAmount > 0 {
			lines = append(lines, ledgerdomain.Line{
				AccountCode: ledgerdomain.AccountCodeAccountsReceivable,
				Direction:   ledgerdomain.LedgerEntryDirectionDebit,
				Amount:      record.BalanceAmount,
			})
		}
		if len(lines) >= 2 {
			if err := s.ledgerSvc.CreateEntryTx(ctx, tx, ledgerdomain.SourceTypeInvoice, record.ID, now, lines); err != nil {
				return err
			}
		}

		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type:      events.EventInvoiceCreated,
			DedupeKey: "invoice.created:" + record.ID.String(),
			Payload: map[string]any{
				"invoice_id":  record.ID.String(),
				"customer_id": customerID.String(),
				"product_id":  productID.String(),
				"total":       money.Format(totalAmount),
				"paid":        money.Format(amountPaid),
			},
		})
	})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", record.ID.String()),
		zap.String("status", record.Status()),
	)
	return s.GetByID(ctx, record.ID.String())
}

func (s *Service) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidID
	}

	var record invoicedomain.Invoice
	err = s.db.WithContext(ctx).Preload("Product").First(&record, "id = ?", invoiceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invoicedomain.Invoice{}, invoicedomain.ErrInvoiceNotFound
		}
		return invoicedomain.Invoice{}, err
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) ([]invoicedomain.Invoice, error) {
	query := s.db.WithContext(ctx).Model(&invoicedomain.Invoice{}).Preload("Product")

	if strings.TrimSpace(req.CustomerID) != "" {
		customerID, err := parseID(req.CustomerID)
		if err != nil {
			return nil, invoicedomain.ErrInvalidCustomer
		}
		query = query.Where("customer_id = ?", customerID).Order("sale_date DESC")
	} else {
		query = query.Order("sale_date DESC")
	}
	if req.PendingOnly {
		query = query.Where("balance_amount > 0")
	}

	var records []invoicedomain.Invoice
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func parseID(value string) (snowflake.ID, error) {
	value = strings.TrimSpace(value)
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, errors.New("invalid_id")
	}
	return snowflake.ID(parsed), nil
}
