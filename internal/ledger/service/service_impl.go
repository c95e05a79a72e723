package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	ledgerdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/ledger/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p ServiceParam) ledgerdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("ledger.service"),
		genID: p.GenID,
	}
}

func (s *Service) CreateEntry(ctx context.Context, sourceType string, sourceID snowflake.ID, occurredAt time.Time, lines []ledgerdomain.Line) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.CreateEntryTx(ctx, tx, sourceType, sourceID, occurredAt, lines)
	})
}

func (s *Service) CreateEntryTx(ctx context.Context, tx *gorm.DB, sourceType string, sourceID snowflake.ID, occurredAt time.Time, lines []ledgerdomain.Line) error {
	if strings.TrimSpace(sourceType) == "" {
		return ledgerdomain.ErrInvalidSourceType
	}
	if sourceID == 0 {
		return ledgerdomain.ErrInvalidSourceID
	}
	if occurredAt.IsZero() {
		return ledgerdomain.ErrInvalidOccurredAt
	}
	if err := ledgerdomain.ValidateBalanced(lines); err != nil {
		return err
	}

	entry := ledgerdomain.LedgerEntry{
		ID:         s.genID.Generate(),
		SourceType: sourceType,
		SourceID:   sourceID,
		OccurredAt: occurredAt.UTC(),
		CreatedAt:  time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(&entry).Error; err != nil {
		return err
	}

	for _, line := range lines {
		account, err := s.resolveAccount(ctx, tx, line.AccountCode)
		if err != nil {
			return err
		}
		record := ledgerdomain.LedgerEntryLine{
			ID:            s.genID.Generate(),
			LedgerEntryID: entry.ID,
			AccountID:     account.ID,
			Direction:     line.Direction,
			Amount:        line.Amount,
			CreatedAt:     entry.CreatedAt,
		}
		if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) resolveAccount(ctx context.Context, tx *gorm.DB, code string) (*ledgerdomain.LedgerAccount, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ledgerdomain.ErrInvalidAccount
	}
	var account ledgerdomain.LedgerAccount
	if err := tx.WithContext(ctx).Where("code = ?", code).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledgerdomain.ErrInvalidAccount
		}
		return nil, err
	}
	return &account, nil
}
