package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/willbanks/load-coordinator/internal/apperrors"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portsrepo "github.com/willbanks/load-coordinator/internal/core/ports/repositories"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
	"github.com/willbanks/load-coordinator/internal/dto"
	"github.com/xuri/excelize/v2"
)

type importService struct {
	BaseService
	loadRepo   portsrepo.LoadRepositoryFacade
	detailRepo portsrepo.LoadDetailRepositoryFacade
	stopRepo   portsrepo.StopDetailRepositoryFacade
	audit      portssvc.AuditSvc
	now        func() time.Time
}

// ImportServiceOption configures an import service.
type ImportServiceOption func(*importService)

// WithImportClock overrides the clock used for import timestamps.
func WithImportClock(now func() time.Time) ImportServiceOption {
	return func(s *importService) {
		s.now = now
	}
}

// NewImportService creates a new import service instance.
func NewImportService(
	loadRepo portsrepo.LoadRepositoryFacade,
	detailRepo portsrepo.LoadDetailRepositoryFacade,
	stopRepo portsrepo.StopDetailRepositoryFacade,
	audit portssvc.AuditSvc,
	opts ...ImportServiceOption,
) portssvc.ImportSvc {
	svc := &importService{
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

var (
	loadHeaderRequired   = []string{"LOAD_ID", "SHIP_FROM_LOC", "STATUS"}
	detailHeaderRequired = []string{"LOAD_ID", "Line", "ItemDesc", "QtyOrdered"}
	stopHeaderRequired   = []string{"LOAD_ID", "SeqNo", "Cust Name", "Address"}
)

const importDateLayout = "2006-01-02"

// csvTable holds a parsed CSV file keyed by header name.
type csvTable struct {
	rows []map[string]string
}

func (s *importService) readCSV(r io.Reader, required []string) (*csvTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: file is empty or unreadable", apperrors.ErrValidation)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required column(s): %s", apperrors.ErrValidation, strings.Join(missing, ", "))
	}

	table := &csvTable{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: malformed CSV: %v", apperrors.ErrValidation, err)
		}
		row := make(map[string]string, len(index))
		for col, i := range index {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		table.rows = append(table.rows, row)
	}
	return table, nil
}

func (s *importService) ImportLoadsCSV(ctx context.Context, r io.Reader, actor domain.UserProfile) (dto.ImportResult, error) {
	table, err := s.readCSV(r, loadHeaderRequired)
	if err != nil {
		return dto.ImportResult{}, err
	}

	result := dto.ImportResult{RowCount: len(table.rows)}
	now := s.now()
	var loads []domain.Load

	for i, row := range table.rows {
		rowNo := i + 2

		loadID := row["LOAD_ID"]
		if loadID == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: LOAD_ID is required", rowNo))
			continue
		}
		if row["SHIP_FROM_LOC"] == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: SHIP_FROM_LOC is required", rowNo))
			continue
		}
		status, ok := domain.ParseLoadStatus(row["STATUS"])
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: unknown status %q", rowNo, row["STATUS"]))
			continue
		}

		load := domain.Load{
			LoadID:      loadID,
			ShipFromLoc: row["SHIP_FROM_LOC"],
			CarrierCode: row["CARRIER_CODE"],
			Status:      status,
			DriverName:  row["DRIVER_NAME"],
			TrailerNo:   row["TRAILER_NO"],
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if raw := row["SHIP_REQ_DATE"]; raw != "" {
			d, err := time.Parse(importDateLayout, raw)
			if err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: could not parse SHIP_REQ_DATE %q, leaving it empty", rowNo, raw))
			} else {
				load.ShipReqDate = &d
			}
		}
		if raw := row["ETA"]; raw != "" {
			d, err := time.Parse(importDateLayout, raw)
			if err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: could not parse ETA %q, leaving it empty", rowNo, raw))
			} else {
				load.ETA = &d
			}
		}

		loads = append(loads, load)
		result.ValidRows++
	}

	if len(loads) == 0 {
		if len(result.Errors) > 0 {
			return result, fmt.Errorf("%w: no valid rows in file", apperrors.ErrValidation)
		}
		return result, nil
	}

	if err := s.loadRepo.UpsertLoads(ctx, loads); err != nil {
		s.LogError(ctx, err, "failed to upsert imported loads")
		return result, err
	}

	for _, load := range loads {
		if err := s.audit.RecordAction(ctx, "loads", load.LoadID, domain.ActionCreate, "CSV Import", fmt.Sprintf("Load %s imported from CSV", load.LoadID), actor.Email); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("load %s: audit trail could not be recorded", load.LoadID))
		}
	}

	if err := s.loadRepo.NotifyLoadChanged(ctx, "loads", ""); err != nil {
		s.LogWarn(ctx, "failed to publish import notification")
	}

	s.LogInfo(ctx, "imported loads from CSV", "rows", result.RowCount, "valid", result.ValidRows)
	return result, nil
}

func (s *importService) ImportDetailsCSV(ctx context.Context, r io.Reader, actor domain.UserProfile) (dto.ImportResult, error) {
	table, err := s.readCSV(r, detailHeaderRequired)
	if err != nil {
		return dto.ImportResult{}, err
	}

	result := dto.ImportResult{RowCount: len(table.rows)}
	now := s.now()
	var details []domain.LoadDetail
	loadIDSet := make(map[string]struct{})

	for i, row := range table.rows {
		rowNo := i + 2

		loadID := row["LOAD_ID"]
		if loadID == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: LOAD_ID is required", rowNo))
			continue
		}
		line, err := strconv.Atoi(row["Line"])
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: Line must be numeric", rowNo))
			continue
		}
		if row["ItemDesc"] == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: ItemDesc is required", rowNo))
			continue
		}
		qtyOrdered, err := decimal.NewFromString(row["QtyOrdered"])
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: QtyOrdered must be numeric", rowNo))
			continue
		}

		statusCode := domain.DetailOpen
		if raw := row["StatusCode"]; raw != "" {
			parsed, ok := domain.ParseDetailStatus(raw)
			if !ok {
				result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: unknown line status %q, defaulting to Open", rowNo, raw))
			} else {
				statusCode = parsed
			}
		}

		qtyShipped := decimal.Zero
		if raw := row["QtyShipped"]; raw != "" {
			parsed, err := decimal.NewFromString(raw)
			if err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: QtyShipped must be numeric, defaulting to 0", rowNo))
			} else {
				qtyShipped = parsed
			}
		}

		details = append(details, domain.LoadDetail{
			DetailID:      uuid.NewString(),
			LoadID:        loadID,
			Line:          line,
			ItemDesc:      row["ItemDesc"],
			HeatNumber:    row["HeatNumber"],
			QtyOrdered:    qtyOrdered,
			QtyShipped:    qtyShipped,
			StatusCode:    statusCode,
			MarkoffReason: row["MarkoffReason"],
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		loadIDSet[loadID] = struct{}{}
		result.ValidRows++
	}

	if len(details) == 0 {
		if len(result.Errors) > 0 {
			return result, fmt.Errorf("%w: no valid rows in file", apperrors.ErrValidation)
		}
		return result, nil
	}

	loadIDs := make([]string, 0, len(loadIDSet))
	for id := range loadIDSet {
		loadIDs = append(loadIDs, id)
	}

	if err := s.detailRepo.ReplaceDetailsForLoads(ctx, loadIDs, details); err != nil {
		s.LogError(ctx, err, "failed to replace imported load details")
		return result, err
	}

	if err := s.loadRepo.NotifyLoadChanged(ctx, "load_details", ""); err != nil {
		s.LogWarn(ctx, "failed to publish import notification")
	}

	s.LogInfo(ctx, "imported load details from CSV", "rows", result.RowCount, "valid", result.ValidRows, "loads", len(loadIDs))
	return result, nil
}

func (s *importService) ImportStopsCSV(ctx context.Context, r io.Reader, actor domain.UserProfile) (dto.ImportResult, error) {
	table, err := s.readCSV(r, stopHeaderRequired)
	if err != nil {
		return dto.ImportResult{}, err
	}

	result := dto.ImportResult{RowCount: len(table.rows)}
	now := s.now()
	var stops []domain.StopDetail
	loadIDSet := make(map[string]struct{})

	for i, row := range table.rows {
		rowNo := i + 2

		loadID := row["LOAD_ID"]
		if loadID == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: LOAD_ID is required", rowNo))
			continue
		}
		seqNo, err := strconv.Atoi(row["SeqNo"])
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: SeqNo must be numeric", rowNo))
			continue
		}
		if row["Cust Name"] == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: Cust Name is required", rowNo))
			continue
		}

		miles := decimal.Zero
		if raw := row["Miles"]; raw != "" {
			parsed, err := decimal.NewFromString(raw)
			if err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: Miles must be numeric, defaulting to 0", rowNo))
			} else {
				miles = parsed
			}
		}
		weight := decimal.Zero
		if raw := row["Weight"]; raw != "" {
			parsed, err := decimal.NewFromString(raw)
			if err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: Weight must be numeric, defaulting to 0", rowNo))
			} else {
				weight = parsed
			}
		}

		stops = append(stops, domain.StopDetail{
			StopID:    uuid.NewString(),
			LoadID:    loadID,
			SeqNo:     seqNo,
			CustName:  row["Cust Name"],
			Address:   row["Address"],
			Miles:     miles,
			Weight:    weight,
			CreatedAt: now,
		})
		loadIDSet[loadID] = struct{}{}
		result.ValidRows++
	}

	if len(stops) == 0 {
		if len(result.Errors) > 0 {
			return result, fmt.Errorf("%w: no valid rows in file", apperrors.ErrValidation)
		}
		return result, nil
	}

	loadIDs := make([]string, 0, len(loadIDSet))
	for id := range loadIDSet {
		loadIDs = append(loadIDs, id)
	}

	if err := s.stopRepo.ReplaceStopsForLoads(ctx, loadIDs, stops); err != nil {
		s.LogError(ctx, err, "failed to replace imported stop details")
		return result, err
	}

	s.LogInfo(ctx, "imported stop details from CSV", "rows", result.RowCount, "valid", result.ValidRows, "loads", len(loadIDs))
	return result, nil
}

// SyncFromWorkbook reconciles loads from an ERP-exported .xlsx sheet. The ERP
// never moves a load backwards: rows whose status does not outrank the app's
// current status are skipped, except that unknown loads are always created.
func (s *importService) SyncFromWorkbook(ctx context.Context, r io.Reader, actor domain.UserProfile) (dto.SyncResult, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return dto.SyncResult{}, fmt.Errorf("%w: could not open workbook: %v", apperrors.ErrValidation, err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return dto.SyncResult{}, fmt.Errorf("%w: workbook has no sheets", apperrors.ErrValidation)
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return dto.SyncResult{}, fmt.Errorf("%w: could not read sheet %q: %v", apperrors.ErrValidation, sheets[0], err)
	}
	if len(rows) < 2 {
		return dto.SyncResult{}, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, col := range rows[0] {
		index[strings.TrimSpace(col)] = i
	}
	if _, ok := index["LOAD_ID"]; !ok {
		return dto.SyncResult{}, fmt.Errorf("%w: missing required column(s): LOAD_ID", apperrors.ErrValidation)
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	result := dto.SyncResult{}
	now := s.now()

	for rowIdx, row := range rows[1:] {
		rowNo := rowIdx + 2

		loadID := cell(row, "LOAD_ID")
		if loadID == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: LOAD_ID is required", rowNo))
			continue
		}

		erpStatus := domain.StatusOpen
		if raw := cell(row, "STATUS"); raw != "" {
			parsed, ok := domain.ParseLoadStatus(raw)
			if !ok {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: unknown status %q", rowNo, raw))
				continue
			}
			erpStatus = parsed
		}

		current, err := s.loadRepo.FindLoadByID(ctx, loadID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: lookup failed for load %s", rowNo, loadID))
			continue
		}

		if current == nil {
			load := domain.Load{
				LoadID:      loadID,
				ShipFromLoc: cell(row, "SHIP_FROM_LOC"),
				CarrierCode: cell(row, "CARRIER_CODE"),
				Status:      erpStatus,
				DriverName:  cell(row, "DRIVER_NAME"),
				TrailerNo:   cell(row, "TRAILER_NO"),
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if raw := cell(row, "SHIP_REQ_DATE"); raw != "" {
				if d, err := time.Parse(importDateLayout, raw); err == nil {
					load.ShipReqDate = &d
				}
			}
			if load.ShipReqDate == nil {
				load.ShipReqDate = &now
			}
			if err := s.loadRepo.UpsertLoads(ctx, []domain.Load{load}); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: could not create load %s", rowNo, loadID))
				continue
			}
			if err := s.audit.RecordAction(ctx, "loads", loadID, domain.ActionCreate, "ERP Sync", fmt.Sprintf("Load %s created from ERP workbook", loadID), actor.Email); err != nil {
				s.LogWarn(ctx, "failed to record sync audit", "loadID", loadID)
			}
			result.Created++
			continue
		}

		erpRank, _ := erpStatus.Rank()
		appRank, _ := current.Status.Rank()

		// The app owns the Open→Ready→Assigned progression; an ERP row still
		// showing Open must not rewind a load the warehouse already staged.
		if erpRank <= appRank {
			result.Skipped++
			continue
		}

		shipFrom := cell(row, "SHIP_FROM_LOC")
		carrier := cell(row, "CARRIER_CODE")
		patch := domain.LoadPatch{Status: &erpStatus}
		if shipFrom != "" {
			patch.ShipFromLoc = &shipFrom
		}
		if carrier != "" {
			patch.CarrierCode = &carrier
		}

		if err := s.loadRepo.UpdateLoad(ctx, loadID, patch, erpStatus, now); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: could not update load %s", rowNo, loadID))
			continue
		}

		change := domain.StatusChange{
			LoadID:         loadID,
			OldStatus:      current.Status,
			NewStatus:      erpStatus,
			ChangedByEmail: actor.Email,
			ChangedAt:      now,
			Notes:          "ERP workbook sync",
		}
		if err := s.audit.RecordStatusChange(ctx, change); err != nil {
			s.LogWarn(ctx, "failed to record sync status change", "loadID", loadID)
		}
		result.Updated++
	}

	if result.Created > 0 || result.Updated > 0 {
		if err := s.loadRepo.NotifyLoadChanged(ctx, "loads", ""); err != nil {
			s.LogWarn(ctx, "failed to publish sync notification")
		}
	}

	s.LogInfo(ctx, "synced loads from workbook", "created", result.Created, "updated", result.Updated, "skipped", result.Skipped)
	return result, nil
}
