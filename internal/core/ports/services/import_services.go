package services

import (
	"context"
	"io"

	"github.com/willbanks/load-coordinator/internal/core/domain"
	"github.com/willbanks/load-coordinator/internal/dto"
)

// ImportSvc defines the CSV and ERP workbook ingestion surface.
type ImportSvc interface {
	// ImportLoadsCSV upserts loads from a CSV stream keyed on load_id.
	ImportLoadsCSV(ctx context.Context, r io.Reader, actor domain.UserProfile) (dto.ImportResult, error)

	// ImportDetailsCSV replaces the line items of every load mentioned in the
	// CSV stream.
	ImportDetailsCSV(ctx context.Context, r io.Reader, actor domain.UserProfile) (dto.ImportResult, error)

	// ImportStopsCSV replaces the routing stops of every load mentioned in
	// the CSV stream.
	ImportStopsCSV(ctx context.Context, r io.Reader, actor domain.UserProfile) (dto.ImportResult, error)

	// SyncFromWorkbook reconciles loads from an ERP .xlsx export: unknown
	// loads are created, known loads are updated only when the ERP status
	// outranks the local one.
	SyncFromWorkbook(ctx context.Context, r io.Reader, actor domain.UserProfile) (dto.SyncResult, error)
}
