package services

import (
	"context"

	"github.com/willbanks/load-coordinator/internal/core/domain"
)

// DocumentSvc renders shipping documents. Each method returns the document
// bytes and a suggested filename, and records a "Document Generated" audit
// event against the load.
type DocumentSvc interface {
	// RenderLoadingDoc builds the portrait loading document PDF.
	RenderLoadingDoc(ctx context.Context, loadID string, actor domain.UserProfile) ([]byte, string, error)

	// RenderBillOfLading builds the landscape bill of lading PDF with stop
	// rows and mileage/weight totals.
	RenderBillOfLading(ctx context.Context, loadID string, actor domain.UserProfile) ([]byte, string, error)

	// RenderConfirmedCSV builds the confirmed-load CSV export.
	RenderConfirmedCSV(ctx context.Context, loadID string, actor domain.UserProfile) ([]byte, string, error)
}
