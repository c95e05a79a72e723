package domain

import (
	"context"
	"errors"
)

// Service records and lists audit entries. Record must never fail a
// caller's request path; handlers ignore its error after logging.
type Service interface {
	Record(ctx context.Context, action, targetType string, targetID *string, metadata map[string]any) error
	List(ctx context.Context, limit int) ([]AuditLog, error)
}

var ErrInvalidAction = errors.New("invalid_action")
