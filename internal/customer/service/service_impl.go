package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/clock"
	customerdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/customer/domain"
	invoicedomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/invoice/domain"
	"github.com/sufillxman/New-Mobile-Point-ERP/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID        *snowflake.Node
	clock        clock.Clock
	customerrepo repository.Repository[customerdomain.Customer]
}

func NewService(p ServiceParam) customerdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("customer.service"),

		genID:        p.GenID,
		clock:        p.Clock,
		customerrepo: repository.ProvideStore[customerdomain.Customer](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req customerdomain.CreateCustomerRequest) (customerdomain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return customerdomain.Customer{}, customerdomain.ErrInvalidName
	}
	phone := strings.TrimSpace(req.Phone)
	if !validPhone(phone) {
		return customerdomain.Customer{}, customerdomain.ErrInvalidPhone
	}

	existing, err := s.customerrepo.FindOne(ctx, "phone = ?", phone)
	if err != nil {
		return customerdomain.Customer{}, err
	}
	if existing != nil {
		return customerdomain.Customer{}, customerdomain.ErrDuplicatePhone
	}

	record := customerdomain.Customer{
		ID:        s.genID.Generate(),
		Name:      name,
		Phone:     phone,
		Address:   trimOptional(req.Address),
		PhotoPath: trimOptional(req.PhotoPath),
		CreatedAt: s.clock.Now(),
	}
	if err := s.customerrepo.Create(ctx, &record); err != nil {
		return customerdomain.Customer{}, err
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, req customerdomain.ListCustomerRequest) ([]customerdomain.Customer, error) {
	query := s.db.WithContext(ctx).Model(&customerdomain.Customer{})
	if q := strings.TrimSpace(req.Query); q != "" {
		like := "%" + q + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", like, like)
	} else {
		query = query.Order("created_at DESC")
	}

	var records []customerdomain.Customer
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (customerdomain.CustomerDetail, error) {
	customerID, err := parseID(id)
	if err != nil {
		return customerdomain.CustomerDetail{}, customerdomain.ErrInvalidID
	}

	record, err := s.customerrepo.FindOne(ctx, "id = ?", customerID)
	if err != nil {
		return customerdomain.CustomerDetail{}, err
	}
	if record == nil {
		return customerdomain.CustomerDetail{}, customerdomain.ErrCustomerNotFound
	}

	var invoices []invoicedomain.Invoice
	err = s.db.WithContext(ctx).
		Preload("Product").
		Where("customer_id = ?", customerID).
		Order("sale_date DESC").
		Find(&invoices).Error
	if err != nil {
		return customerdomain.CustomerDetail{}, err
	}

	var pending int64
	err = s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(SUM(balance_amount), 0)").
		Scan(&pending).Error
	if err != nil {
		return customerdomain.CustomerDetail{}, err
	}

	return customerdomain.CustomerDetail{
		Customer:       *record,
		Invoices:       invoices,
		PendingBalance: pending,
	}, nil
}

// Delete removes the customer and, in the same transaction, every
// invoice that references them. Products on those invoices keep their
// current availability; cascade does not restock.
func (s *Service) Delete(ctx context.Context, id string) error {
	customerID, err := parseID(id)
	if err != nil {
		return customerdomain.ErrInvalidID
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record customerdomain.Customer
		if err := tx.First(&record, "id = ?", customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return customerdomain.ErrCustomerNotFound
			}
			return err
		}

		if err := tx.Delete(&invoicedomain.Invoice{}, "customer_id = ?", customerID).Error; err != nil {
			return err
		}
		return tx.Delete(&customerdomain.Customer{}, "id = ?", customerID).Error
	})
}

func validPhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
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
