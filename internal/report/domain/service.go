package domain

import (
	"context"
	"errors"
)

// Service computes the dashboard projections. Read-only; every call
// recomputes from storage.
type Service interface {
	Dashboard(ctx context.Context, req DashboardRequest) (Dashboard, error)
}

var ErrInvalidPeriod = errors.New("invalid_period")
