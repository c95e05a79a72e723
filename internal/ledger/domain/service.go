package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// LedgerService writes balanced double-entry postings. CreateEntryTx
// runs inside a caller-owned transaction so a posting commits or rolls
// back together with the state change that produced it.
type LedgerService interface {
	CreateEntry(ctx context.Context, sourceType string, sourceID snowflake.ID, occurredAt time.Time, lines []Line) error
	CreateEntryTx(ctx context.Context, tx *gorm.DB, sourceType string, sourceID snowflake.ID, occurredAt time.Time, lines []Line) error
}

// Service is the package alias for LedgerService.
type Service = LedgerService

var (
	ErrInvalidSourceType    = errors.New("invalid_source_type")
	ErrInvalidSourceID      = errors.New("invalid_source_id")
	ErrInvalidOccurredAt    = errors.New("invalid_occurred_at")
	ErrInvalidEntryLines    = errors.New("invalid_entry_lines")
	ErrInvalidLineAmount    = errors.New("invalid_line_amount")
	ErrInvalidLineDirection = errors.New("invalid_line_direction")
	ErrInvalidAccount       = errors.New("invalid_account")
	ErrUnbalancedEntry      = errors.New("unbalanced_entry")
)
