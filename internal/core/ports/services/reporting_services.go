package services

import (
	"context"

	"github.com/willbanks/load-coordinator/internal/core/domain"
	"github.com/willbanks/load-coordinator/internal/dto"
)

// ReportingSvc computes dashboard aggregates.
type ReportingSvc interface {
	// StatusSummary returns per-status load counts within the caller's
	// visibility filter, feeding the dashboard summary cards.
	StatusSummary(ctx context.Context, profile domain.UserProfile) (dto.StatusSummaryResponse, error)
}
