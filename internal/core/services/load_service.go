package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/willbanks/load-coordinator/internal/apperrors"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portsrepo "github.com/willbanks/load-coordinator/internal/core/ports/repositories"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
	"github.com/willbanks/load-coordinator/internal/dto"
)

type loadService struct {
	BaseService
	loadRepo   portsrepo.LoadRepositoryFacade
	detailRepo portsrepo.LoadDetailRepositoryFacade
	stopRepo   portsrepo.StopDetailRepositoryFacade
	audit      portssvc.AuditSvc
	documents  portssvc.DocumentSvc
	now        func() time.Time
}

// LoadServiceOption configures a load service.
type LoadServiceOption func(*loadService)

// WithLoadClock overrides the clock used for mutation timestamps.
func WithLoadClock(now func() time.Time) LoadServiceOption {
	return func(s *loadService) {
		s.now = now
	}
}

// NewLoadService creates a new load service instance.
func NewLoadService(
	loadRepo portsrepo.LoadRepositoryFacade,
	detailRepo portsrepo.LoadDetailRepositoryFacade,
	stopRepo portsrepo.StopDetailRepositoryFacade,
	audit portssvc.AuditSvc,
	documents portssvc.DocumentSvc,
	opts ...LoadServiceOption,
) portssvc.LoadSvcFacade {
	svc := &loadService{
		loadRepo:   loadRepo,
		detailRepo: detailRepo,
		stopRepo:   stopRepo,
		audit:      audit,
		documents:  documents,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *loadService) GetLoadByID(ctx context.Context, loadID string) (*domain.Load, error) {
	load, err := s.loadRepo.FindLoadByID(ctx, loadID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to fetch load", "loadID", loadID)
		}
		return nil, err
	}
	return load, nil
}

func (s *loadService) ListLoads(ctx context.Context, profile domain.UserProfile, params dto.ListLoadsParams) ([]domain.Load, string, error) {
	filter := domain.VisibleLoadFilter(profile)

	if params.Status != "" {
		requested, ok := domain.ParseLoadStatus(params.Status)
		if !ok {
			return nil, "", fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, requested) {
			// The requested status is outside the caller's visible set.
			return []domain.Load{}, "", nil
		}
		filter.Statuses = []domain.LoadStatus{requested}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	loads, nextToken, err := s.loadRepo.FindLoads(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "failed to list loads")
		return nil, "", err
	}
	return loads, nextToken, nil
}

func (s *loadService) GetLoadDetails(ctx context.Context, loadID string) ([]domain.LoadDetail, error) {
	if _, err := s.loadRepo.FindLoadByID(ctx, loadID); err != nil {
		return nil, err
	}
	details, err := s.detailRepo.FindDetailsByLoadID(ctx, loadID)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch load details", "loadID", loadID)
		return nil, err
	}
	return details, nil
}

func (s *loadService) GetLoadStops(ctx context.Context, loadID string) ([]domain.StopDetail, error) {
	if _, err := s.loadRepo.FindLoadByID(ctx, loadID); err != nil {
		return nil, err
	}
	stops, err := s.stopRepo.FindStopsByLoadID(ctx, loadID)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch stop details", "loadID", loadID)
		return nil, err
	}
	return stops, nil
}

// UpdateLoad applies a partial update to a load. The primary field write must
// succeed; audit trail writes, the derived status write and the change
// notification are best-effort and surface as warnings instead of errors.
func (s *loadService) UpdateLoad(ctx context.Context, loadID string, patch domain.LoadPatch, actor domain.UserProfile) (*domain.Load, []string, error) {
	current, err := s.loadRepo.FindLoadByID(ctx, loadID)
	if err != nil {
		return nil, nil, err
	}

	// An empty patch is a valid idempotent touch: the write still refreshes
	// updated_at and leaves everything else, status included, as it was.
	finalStatus, autoTransition := domain.ComputeFinalStatus(*current, patch)
	now := s.now()

	if err := s.loadRepo.UpdateLoad(ctx, loadID, patch, finalStatus, now); err != nil {
		s.LogError(ctx, err, "failed to update load", "loadID", loadID)
		return nil, nil, err
	}

	var warnings []string

	// When the rule engine derived the transition, reassert it with a second
	// write. The primary write already carried finalStatus, but the derived
	// status write stays separate and best-effort so a failure here never
	// discards the user's field edit.
	if autoTransition {
		if err := s.loadRepo.UpdateLoadStatus(ctx, loadID, finalStatus, now); err != nil {
			s.LogWarn(ctx, "failed to write derived status", "loadID", loadID, "status", string(finalStatus))
			warnings = append(warnings, "derived status could not be written")
		}
	}

	merged, changes := patch.Apply(*current)
	merged.Status = finalStatus
	merged.UpdatedAt = now

	if patch.Status != nil && *patch.Status != current.Status {
		changes = append(changes, domain.FieldChange{
			FieldName: "status",
			OldValue:  string(current.Status),
			NewValue:  string(*patch.Status),
		})
	}

	if len(changes) > 0 {
		if err := s.audit.RecordFieldChanges(ctx, "loads", loadID, changes, actor.Email); err != nil {
			warnings = append(warnings, "audit trail could not be recorded")
		}
	}

	if finalStatus != current.Status {
		notes := "Manual status change"
		if autoTransition {
			notes = "Automatic transition from driver assignment"
		}
		change := domain.StatusChange{
			LoadID:         loadID,
			OldStatus:      current.Status,
			NewStatus:      finalStatus,
			ChangedByEmail: actor.Email,
			ChangedAt:      now,
			Notes:          notes,
		}
		if err := s.audit.RecordStatusChange(ctx, change); err != nil {
			warnings = append(warnings, "status history could not be recorded")
		}
	}

	if err := s.loadRepo.NotifyLoadChanged(ctx, "loads", loadID); err != nil {
		s.LogWarn(ctx, "failed to publish load change notification", "loadID", loadID)
		warnings = append(warnings, "change notification could not be published")
	}

	refreshed, err := s.loadRepo.FindLoadByID(ctx, loadID)
	if err != nil {
		s.LogWarn(ctx, "failed to refetch load after update", "loadID", loadID)
		warnings = append(warnings, "load could not be refetched after update")
		return &merged, warnings, nil
	}
	return refreshed, warnings, nil
}

func (s *loadService) BulkUpdateStatus(ctx context.Context, loadIDs []string, status domain.LoadStatus, actor domain.UserProfile) (dto.BulkStatusUpdateResponse, error) {
	if len(loadIDs) == 0 {
		return dto.BulkStatusUpdateResponse{}, fmt.Errorf("%w: no load IDs provided", apperrors.ErrValidation)
	}

	result := dto.BulkStatusUpdateResponse{}
	patch := domain.LoadPatch{Status: &status}

	for _, loadID := range loadIDs {
		_, warnings, err := s.UpdateLoad(ctx, loadID, patch, actor)
		if err != nil {
			s.LogWarn(ctx, "bulk status update failed for load", "loadID", loadID, "error", err.Error())
			result.Failed = append(result.Failed, loadID)
			continue
		}
		result.Updated++
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", loadID, w))
		}
	}

	if result.Updated == 0 && len(result.Failed) > 0 {
		return result, fmt.Errorf("%w: all %d updates failed", apperrors.ErrPartialFailure, len(result.Failed))
	}
	return result, nil
}

// ConfirmLoad validates the confirmation gate and, when it passes, persists
// the trailer number and moves the load to Ready. Document generation and
// audit writes after the primary write degrade to warnings.
func (s *loadService) ConfirmLoad(ctx context.Context, loadID, trailerNo string, actor domain.UserProfile) (*domain.Load, []string, error) {
	current, err := s.loadRepo.FindLoadByID(ctx, loadID)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.detailRepo.FindDetailsByLoadID(ctx, loadID)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch load details for confirmation", "loadID", loadID)
		return nil, nil, err
	}

	result := domain.ValidateConfirmation(trailerNo, items)
	if !result.IsValid {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(result.Errors, "; "))
	}

	trimmed := strings.TrimSpace(trailerNo)
	now := s.now()
	patch := domain.LoadPatch{TrailerNo: &trimmed}

	if err := s.loadRepo.UpdateLoad(ctx, loadID, patch, domain.StatusReady, now); err != nil {
		s.LogError(ctx, err, "failed to confirm load", "loadID", loadID)
		return nil, nil, err
	}

	var warnings []string

	if current.Status != domain.StatusReady {
		change := domain.StatusChange{
			LoadID:         loadID,
			OldStatus:      current.Status,
			NewStatus:      domain.StatusReady,
			ChangedByEmail: actor.Email,
			ChangedAt:      now,
			Notes:          "Load confirmed",
		}
		if err := s.audit.RecordStatusChange(ctx, change); err != nil {
			warnings = append(warnings, "status history could not be recorded")
		}
	}

	detail := fmt.Sprintf("Load confirmed with trailer %s. Generated documents.", trimmed)
	if err := s.audit.RecordAction(ctx, "loads", loadID, domain.ActionUpdate, "Load Confirmed", detail, actor.Email); err != nil {
		warnings = append(warnings, "audit trail could not be recorded")
	}

	if _, _, err := s.documents.RenderConfirmedCSV(ctx, loadID, actor); err != nil {
		s.LogWarn(ctx, "failed to generate confirmed csv", "loadID", loadID)
		warnings = append(warnings, "confirmed CSV could not be generated")
	}
	if _, _, err := s.documents.RenderLoadingDoc(ctx, loadID, actor); err != nil {
		s.LogWarn(ctx, "failed to generate loading document", "loadID", loadID)
		warnings = append(warnings, "loading document could not be generated")
	}

	if err := s.loadRepo.NotifyLoadChanged(ctx, "loads", loadID); err != nil {
		warnings = append(warnings, "change notification could not be published")
	}

	refreshed, err := s.loadRepo.FindLoadByID(ctx, loadID)
	if err != nil {
		warnings = append(warnings, "load could not be refetched after confirmation")
		merged := *current
		merged.TrailerNo = trimmed
		merged.Status = domain.StatusReady
		merged.UpdatedAt = now
		return &merged, warnings, nil
	}
	return refreshed, warnings, nil
}

func (s *loadService) UpdateLineItem(ctx context.Context, detailID string, req dto.UpdateLoadDetailRequest, actor domain.UserProfile) (*domain.LoadDetail, error) {
	detail, err := s.detailRepo.FindDetailByID(ctx, detailID)
	if err != nil {
		return nil, err
	}

	load, err := s.loadRepo.FindLoadByID(ctx, detail.LoadID)
	if err != nil {
		return nil, err
	}
	if load.Status != domain.StatusOpen {
		return nil, fmt.Errorf("%w: load %s is already confirmed, line items can no longer be edited", apperrors.ErrValidation, load.LoadID)
	}

	var changes []domain.FieldChange
	updated := *detail

	if req.StatusCode != nil {
		status, ok := domain.ParseDetailStatus(*req.StatusCode)
		if !ok {
			return nil, fmt.Errorf("%w: unknown line status %q", apperrors.ErrValidation, *req.StatusCode)
		}
		if status != detail.StatusCode {
			changes = append(changes, domain.FieldChange{
				FieldName: fmt.Sprintf("status_code (line %d)", detail.Line),
				OldValue:  string(detail.StatusCode),
				NewValue:  string(status),
			})
			updated.StatusCode = status
		}
	}

	if req.MarkoffReason != nil && *req.MarkoffReason != detail.MarkoffReason {
		changes = append(changes, domain.FieldChange{
			FieldName: fmt.Sprintf("markoff_reason (line %d)", detail.Line),
			OldValue:  detail.MarkoffReason,
			NewValue:  *req.MarkoffReason,
		})
		updated.MarkoffReason = *req.MarkoffReason
	}

	// A reason only makes sense on a marked-off line.
	if updated.StatusCode != domain.DetailMarkedOff && updated.MarkoffReason != "" {
		changes = append(changes, domain.FieldChange{
			FieldName: fmt.Sprintf("markoff_reason (line %d)", detail.Line),
			OldValue:  updated.MarkoffReason,
			NewValue:  "",
		})
		updated.MarkoffReason = ""
	}

	if req.QtyShipped != nil && !req.QtyShipped.Equal(detail.QtyShipped) {
		changes = append(changes, domain.FieldChange{
			FieldName: fmt.Sprintf("qty_shipped (line %d)", detail.Line),
			OldValue:  detail.QtyShipped.String(),
			NewValue:  req.QtyShipped.String(),
		})
		updated.QtyShipped = *req.QtyShipped
	}

	if len(changes) == 0 {
		return detail, nil
	}

	updated.UpdatedAt = s.now()
	if err := s.detailRepo.UpdateDetail(ctx, updated); err != nil {
		s.LogError(ctx, err, "failed to update line item", "detailID", detailID)
		return nil, err
	}

	if err := s.audit.RecordFieldChanges(ctx, "load_details", detail.LoadID, changes, actor.Email); err != nil {
		s.LogWarn(ctx, "failed to record line item audit trail", "detailID", detailID)
	}

	if err := s.loadRepo.NotifyLoadChanged(ctx, "load_details", detail.LoadID); err != nil {
		s.LogWarn(ctx, "failed to publish line item change notification", "detailID", detailID)
	}

	return &updated, nil
}

func containsStatus(statuses []domain.LoadStatus, status domain.LoadStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
