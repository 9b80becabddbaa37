package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portsrepo "github.com/willbanks/load-coordinator/internal/core/ports/repositories"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
)

type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
	now       func() time.Time
}

// AuditServiceOption configures an audit service.
type AuditServiceOption func(*auditService)

// WithAuditClock overrides the clock used for event timestamps.
func WithAuditClock(now func() time.Time) AuditServiceOption {
	return func(s *auditService) {
		s.now = now
	}
}

// NewAuditService creates a new audit service instance.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade, opts ...AuditServiceOption) portssvc.AuditSvc {
	svc := &auditService{
		auditRepo: auditRepo,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *auditService) RecordFieldChanges(ctx context.Context, tableName, recordID string, changes []domain.FieldChange, userEmail string) error {
	if len(changes) == 0 {
		return nil
	}

	now := s.now()
	events := make([]domain.AuditEvent, 0, len(changes))
	for _, change := range changes {
		events = append(events, domain.AuditEvent{
			AuditID:   uuid.NewString(),
			TableName: tableName,
			RecordID:  recordID,
			Action:    domain.ActionUpdate,
			FieldName: change.FieldName,
			OldValue:  change.OldValue,
			NewValue:  change.NewValue,
			UserEmail: userEmail,
			CreatedAt: now,
		})
	}

	if err := s.auditRepo.SaveAuditEvents(ctx, events); err != nil {
		s.LogError(ctx, err, "failed to save audit events", "tableName", tableName, "recordID", recordID)
		return fmt.Errorf("failed to save audit events: %w", err)
	}
	return nil
}

func (s *auditService) RecordAction(ctx context.Context, tableName, recordID string, action domain.AuditAction, fieldName, detail, userEmail string) error {
	event := domain.AuditEvent{
		AuditID:   uuid.NewString(),
		TableName: tableName,
		RecordID:  recordID,
		Action:    action,
		FieldName: fieldName,
		NewValue:  detail,
		UserEmail: userEmail,
		CreatedAt: s.now(),
	}

	if err := s.auditRepo.SaveAuditEvents(ctx, []domain.AuditEvent{event}); err != nil {
		s.LogError(ctx, err, "failed to save audit action", "tableName", tableName, "recordID", recordID, "action", string(action))
		return fmt.Errorf("failed to save audit action: %w", err)
	}
	return nil
}

func (s *auditService) RecordStatusChange(ctx context.Context, change domain.StatusChange) error {
	if change.ChangeID == "" {
		change.ChangeID = uuid.NewString()
	}
	if change.ChangedAt.IsZero() {
		change.ChangedAt = s.now()
	}

	if err := s.auditRepo.SaveStatusChange(ctx, change); err != nil {
		s.LogError(ctx, err, "failed to save status change", "loadID", change.LoadID)
		return fmt.Errorf("failed to save status change: %w", err)
	}
	return nil
}

func (s *auditService) GetLoadHistory(ctx context.Context, loadID string) ([]domain.AuditEvent, []domain.StatusChange, error) {
	events, err := s.auditRepo.FindAuditEventsByRecordID(ctx, loadID, 200)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch audit events", "loadID", loadID)
		return nil, nil, fmt.Errorf("failed to fetch audit events: %w", err)
	}

	changes, err := s.auditRepo.FindStatusChangesByLoadID(ctx, loadID, 200)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch status changes", "loadID", loadID)
		return nil, nil, fmt.Errorf("failed to fetch status changes: %w", err)
	}

	return events, changes, nil
}
