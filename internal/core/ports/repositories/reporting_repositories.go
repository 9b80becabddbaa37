package repositories

import (
	"context"

	"github.com/willbanks/load-coordinator/internal/core/domain"
)

// ReportingRepository defines aggregate queries over loads.
type ReportingRepository interface {
	// CountLoadsByStatus returns the number of loads per status within the
	// given visibility filter.
	CountLoadsByStatus(ctx context.Context, filter domain.LoadFilter) (map[domain.LoadStatus]int64, error)
}
