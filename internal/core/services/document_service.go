package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portsrepo "github.com/willbanks/load-coordinator/internal/core/ports/repositories"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
)

type documentService struct {
	BaseService
	loadRepo   portsrepo.LoadRepositoryFacade
	detailRepo portsrepo.LoadDetailRepositoryFacade
	stopRepo   portsrepo.StopDetailRepositoryFacade
	audit      portssvc.AuditSvc
	now        func() time.Time
}

// DocumentServiceOption configures a document service.
type DocumentServiceOption func(*documentService)

// WithDocumentClock overrides the clock used for generation timestamps.
func WithDocumentClock(now func() time.Time) DocumentServiceOption {
	return func(s *documentService) {
		s.now = now
	}
}

// NewDocumentService creates a new document service instance.
func NewDocumentService(
	loadRepo portsrepo.LoadRepositoryFacade,
	detailRepo portsrepo.LoadDetailRepositoryFacade,
	stopRepo portsrepo.StopDetailRepositoryFacade,
	audit portssvc.AuditSvc,
	opts ...DocumentServiceOption,
) portssvc.DocumentSvc {
	svc := &documentService{
		loadRepo:   loadRepo,
		detailRepo: detailRepo,
		stopRepo:   stopRepo,
		audit:      audit,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *documentService) RenderLoadingDoc(ctx context.Context, loadID string, actor domain.UserProfile) ([]byte, string, error) {
	load, err := s.loadRepo.FindLoadByID(ctx, loadID)
	if err != nil {
		return nil, "", err
	}
	items, err := s.detailRepo.FindDetailsByLoadID(ctx, loadID)
	if err != nil {
		return nil, "", err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Loading Document - Load %s", load.LoadID), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	s.renderLoadHeader(pdf, load)
	pdf.Ln(4)

	colWidths := []float64{15, 75, 35, 30, 30}
	headers := []string{"Line", "Description", "Heat #", "Qty Ordered", "Status"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.CellFormat(colWidths[0], 7, fmt.Sprintf("%d", item.Line), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, item.ItemDesc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, item.HeatNumber, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[3], 7, item.QtyOrdered.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 7, string(item.StatusCode), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)

		if item.StatusCode == domain.DetailMarkedOff && item.MarkoffReason != "" {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(colWidths[0], 6, "", "1", 0, "", false, 0, "")
			reasonWidth := colWidths[1] + colWidths[2] + colWidths[3] + colWidths[4]
			pdf.CellFormat(reasonWidth, 6, fmt.Sprintf("Reason: %s", item.MarkoffReason), "1", 0, "L", false, 0, "")
			pdf.Ln(-1)
			pdf.SetFont("Helvetica", "", 10)
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s by %s", s.now().Format("2006-01-02 15:04"), actor.Email), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.LogError(ctx, err, "failed to render loading document", "loadID", loadID)
		return nil, "", fmt.Errorf("failed to render loading document: %w", err)
	}

	s.recordGenerated(ctx, load.LoadID, "Loading Document", actor.Email)

	filename := fmt.Sprintf("loading_doc_%s.pdf", load.LoadID)
	return buf.Bytes(), filename, nil
}

func (s *documentService) RenderBillOfLading(ctx context.Context, loadID string, actor domain.UserProfile) ([]byte, string, error) {
	load, err := s.loadRepo.FindLoadByID(ctx, loadID)
	if err != nil {
		return nil, "", err
	}
	stops, err := s.stopRepo.FindStopsByLoadID(ctx, loadID)
	if err != nil {
		return nil, "", err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Bill of Lading - Load %s", load.LoadID), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	s.renderLoadHeader(pdf, load)
	pdf.Ln(4)

	colWidths := []float64{20, 70, 100, 35, 35}
	headers := []string{"Stop", "Customer", "Address", "Miles", "Weight"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	totalMiles := decimal.Zero
	totalWeight := decimal.Zero

	pdf.SetFont("Helvetica", "", 10)
	for _, stop := range stops {
		pdf.CellFormat(colWidths[0], 7, fmt.Sprintf("%d", stop.SeqNo), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, stop.CustName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, stop.Address, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[3], 7, stop.Miles.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 7, stop.Weight.String(), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)

		totalMiles = totalMiles.Add(stop.Miles)
		totalWeight = totalWeight.Add(stop.Weight)
	}

	pdf.SetFont("Helvetica", "B", 10)
	totalLabelWidth := colWidths[0] + colWidths[1] + colWidths[2]
	pdf.CellFormat(totalLabelWidth, 8, "Totals", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[3], 8, totalMiles.String(), "1", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[4], 8, totalWeight.String(), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s by %s", s.now().Format("2006-01-02 15:04"), actor.Email), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.LogError(ctx, err, "failed to render bill of lading", "loadID", loadID)
		return nil, "", fmt.Errorf("failed to render bill of lading: %w", err)
	}

	s.recordGenerated(ctx, load.LoadID, "Bill of Lading", actor.Email)

	filename := fmt.Sprintf("bill_of_lading_%s.pdf", load.LoadID)
	return buf.Bytes(), filename, nil
}

func (s *documentService) RenderConfirmedCSV(ctx context.Context, loadID string, actor domain.UserProfile) ([]byte, string, error) {
	load, err := s.loadRepo.FindLoadByID(ctx, loadID)
	if err != nil {
		return nil, "", err
	}
	items, err := s.detailRepo.FindDetailsByLoadID(ctx, loadID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Load ID", "Line", "Item Description", "Qty Ordered", "Qty Shipped", "Status", "Markoff Reason", "Heat Number"}
	if err := w.Write(header); err != nil {
		return nil, "", fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, item := range items {
		record := []string{
			load.LoadID,
			fmt.Sprintf("%d", item.Line),
			item.ItemDesc,
			item.QtyOrdered.String(),
			item.QtyShipped.String(),
			string(item.StatusCode),
			item.MarkoffReason,
			item.HeatNumber,
		}
		if err := w.Write(record); err != nil {
			return nil, "", fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		s.LogError(ctx, err, "failed to render confirmed csv", "loadID", loadID)
		return nil, "", fmt.Errorf("failed to render confirmed csv: %w", err)
	}

	s.recordGenerated(ctx, load.LoadID, "Confirmed CSV", actor.Email)

	filename := fmt.Sprintf("confirmed_%s.csv", load.LoadID)
	return buf.Bytes(), filename, nil
}

func (s *documentService) renderLoadHeader(pdf *fpdf.Fpdf, load *domain.Load) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Ship From: %s", load.ShipFromLoc), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Carrier: %s", load.CarrierCode), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Driver: %s", load.DriverName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Trailer: %s", load.TrailerNo), "", 1, "L", false, 0, "")
	if load.ShipReqDate != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Ship Req Date: %s", load.ShipReqDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
	}
}

// recordGenerated writes the audit trail entry for a generated document.
// Failures are logged but never block the download.
func (s *documentService) recordGenerated(ctx context.Context, loadID, docType, userEmail string) {
	detail := fmt.Sprintf("%s generated for load %s", docType, loadID)
	if err := s.audit.RecordAction(ctx, "loads", loadID, domain.ActionUpdate, "Document Generated", detail, userEmail); err != nil {
		s.LogWarn(ctx, "failed to record document generation", "loadID", loadID, "docType", docType)
	}
}
