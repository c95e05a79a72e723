package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/clock"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/events"
	expensedomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/expense/domain"
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
	expenserepo repository.Repository[expensedomain.Expense]
}

func NewService(p ServiceParam) expensedomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("expense.service"),

		genID:       p.GenID,
		clock:       p.Clock,
		outbox:      p.Outbox,
		expenserepo: repository.ProvideStore[expensedomain.Expense](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req expensedomain.CreateExpenseRequest) (expensedomain.Expense, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return expensedomain.Expense{}, expensedomain.ErrInvalidTitle
	}

	amount, err := money.Parse(req.Amount)
	if err != nil {
		return expensedomain.Expense{}, expensedomain.ErrInvalidAmount
	}

	expenseType := expensedomain.ExpenseType(strings.TrimSpace(req.ExpenseType))
	if !expenseType.Valid() {
		return expensedomain.Expense{}, expensedomain.ErrInvalidType
	}

	date := truncateToDay(s.clock.Now())
	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		parsed, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(*req.Date), time.UTC)
		if err != nil {
			return expensedomain.Expense{}, expensedomain.ErrInvalidDate
		}
		date = parsed
	}

	record := expensedomain.Expense{
		ID:          s.genID.Generate(),
		Title:       title,
		Amount:      amount,
		ExpenseType: expenseType,
		Date:        date,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type: events.EventExpenseAdded,
			Payload: map[string]any{
				"expense_id": record.ID.String(),
				"type":       string(expenseType),
				"amount":     money.Format(amount),
			},
		})
	})
	if err != nil {
		return expensedomain.Expense{}, err
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, req expensedomain.ListExpenseRequest) ([]expensedomain.Expense, error) {
	query := s.db.WithContext(ctx).Model(&expensedomain.Expense{})

	if req.Month != 0 || req.Year != 0 {
		if req.Month < 1 || req.Month > 12 || req.Year <= 0 {
			return nil, expensedomain.ErrInvalidPeriod
		}
		start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		query = query.Where("date >= ? AND date < ?", start, end)
	}

	var records []expensedomain.Expense
	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func truncateToDay(at time.Time) time.Time {
	at = at.UTC()
	return time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
}
