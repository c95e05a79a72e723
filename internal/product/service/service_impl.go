package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/clock"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/events"
	productdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/product/domain"
	"github.com/sufillxman/New-Mobile-Point-ERP/pkg/money"
	"github.com/sufillxman/New-Mobile-Point-ERP/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Outbox *events.Outbox
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID       *snowflake.Node
	clock       clock.Clock
	outbox      *events.Outbox
	productrepo repository.Repository[productdomain.Product]
}

func NewService(p ServiceParam) productdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("product.service"),

		genID:       p.GenID,
		clock:       p.Clock,
		outbox:      p.Outbox,
		productrepo: repository.ProvideStore[productdomain.Product](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req productdomain.CreateProductRequest) (productdomain.Product, error) {
	brand := strings.TrimSpace(req.Brand)
	if brand == "" {
		return productdomain.Product{}, productdomain.ErrInvalidBrand
	}
	modelName := strings.TrimSpace(req.ModelName)
	if modelName == "" {
		return productdomain.Product{}, productdomain.ErrInvalidModelName
	}
	imei := strings.TrimSpace(req.IMEI)
	if !validIMEI(imei) {
		return productdomain.Product{}, productdomain.ErrInvalidIMEI
	}

	purchasePrice, err := money.Parse(req.PurchasePrice)
	if err != nil {
		return productdomain.Product{}, productdomain.ErrInvalidPrice
	}
	sellingPrice, err := money.Parse(req.SellingPrice)
	if err != nil {
		return productdomain.Product{}, productdomain.ErrInvalidPrice
	}

	existing, err := s.productrepo.FindOne(ctx, "imei = ?", imei)
	if err != nil {
		return productdomain.Product{}, err
	}
	if existing != nil {
		return productdomain.Product{}, productdomain.ErrDuplicateIMEI
	}

	record := productdomain.Product{
		ID:            s.genID.Generate(),
		Brand:         brand,
		ModelName:     modelName,
		IMEI:          imei,
		PurchasePrice: purchasePrice,
		SellingPrice:  sellingPrice,
		IsAvailable:   true,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.productrepo.Create(ctx, &record); err != nil {
		return productdomain.Product{}, err
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, req productdomain.ListProductRequest) ([]productdomain.Product, error) {
	query := s.db.WithContext(ctx).Model(&productdomain.Product{})
	if req.Available != nil {
		query = query.Where("is_available = ?", *req.Available)
	}

	// Sellable units first, then by brand, the order the counter reads.
	var records []productdomain.Product
	if err := query.Order("is_available DESC").Order("brand ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (productdomain.Product, error) {
	productID, err := parseID(id)
	if err != nil {
		return productdomain.Product{}, productdomain.ErrInvalidID
	}
	record, err := s.productrepo.FindOne(ctx, "id = ?", productID)
	if err != nil {
		return productdomain.Product{}, err
	}
	if record == nil {
		return productdomain.Product{}, productdomain.ErrProductNotFound
	}
	return *record, nil
}

func (s *Service) ToggleAvailability(ctx context.Context, id string) (productdomain.Product, error) {
	productID, err := parseID(id)
	if err != nil {
		return productdomain.Product{}, productdomain.ErrInvalidID
	}

	var record productdomain.Product
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return productdomain.ErrProductNotFound
			}
			return err
		}

		record.IsAvailable = !record.IsAvailable
		if err := tx.Model(&productdomain.Product{}).
			Where("id = ?", record.ID).
			Update("is_available", record.IsAvailable).Error; err != nil {
			return err
		}

		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type: events.EventStockToggled,
			Payload: map[string]any{
				"product_id":   record.ID.String(),
				"is_available": record.IsAvailable,
			},
		})
	})
	if err != nil {
		return productdomain.Product{}, err
	}

	s.log.Info("stock availability toggled",
		zap.String("product_id", record.ID.String()),
		zap.Bool("is_available", record.IsAvailable),
	)
	return record, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	productID, err := parseID(id)
	if err != nil {
		return productdomain.ErrInvalidID
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record productdomain.Product
		if err := tx.First(&record, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return productdomain.ErrProductNotFound
			}
			return err
		}

		var referenced int64
		if err := tx.Table("invoices").Where("product_id = ?", productID).Count(&referenced).Error; err != nil {
			return err
		}
		if referenced > 0 {
			return productdomain.ErrProductReferenced
		}

		return tx.Delete(&productdomain.Product{}, "id = ?", productID).Error
	})
}

func validIMEI(imei string) bool {
	if len(imei) == 0 || len(imei) > 15 {
		return false
	}
	for _, r := range imei {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseID(value string) (snowflake.ID, error) {
	value = strings.TrimSpace(value)
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, errors.New("invalid_id")
	}
	return snowflake.ID(parsed), nil
}
