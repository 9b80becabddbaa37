package mapping

import (
	"github.com/willbanks/load-coordinator/internal/core/domain"
	"github.com/willbanks/load-coordinator/internal/models"
)

// ToModelAuditLog converts a domain AuditEvent to a model AuditLog
func ToModelAuditLog(d domain.AuditEvent) models.AuditLog {
	return models.AuditLog{
		AuditID:   d.AuditID,
		TableName: d.TableName,
		RecordID:  d.RecordID,
		Action:    string(d.Action),
		FieldName: d.FieldName,
		OldValue:  d.OldValue,
		NewValue:  d.NewValue,
		UserEmail: d.UserEmail,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainAuditEvent converts a model AuditLog to a domain AuditEvent
func ToDomainAuditEvent(m models.AuditLog) domain.AuditEvent {
	return domain.AuditEvent{
		AuditID:   m.AuditID,
		TableName: m.TableName,
		RecordID:  m.RecordID,
		Action:    domain.AuditAction(m.Action),
		FieldName: m.FieldName,
		OldValue:  m.OldValue,
		NewValue:  m.NewValue,
		UserEmail: m.UserEmail,
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainAuditEventSlice converts a slice of model AuditLogs to domain AuditEvents
func ToDomainAuditEventSlice(ms []models.AuditLog) []domain.AuditEvent {
	ds := make([]domain.AuditEvent, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditEvent(m)
	}
	return ds
}

// ToModelStatusHistory converts a domain StatusChange to a model LoadStatusHistory
func ToModelStatusHistory(d domain.StatusChange) models.LoadStatusHistory {
	return models.LoadStatusHistory{
		ChangeID:       d.ChangeID,
		LoadID:         d.LoadID,
		OldStatus:      string(d.OldStatus),
		NewStatus:      string(d.NewStatus),
		ChangedByEmail: d.ChangedByEmail,
		ChangedAt:      d.ChangedAt,
		Notes:          d.Notes,
	}
}

// ToDomainStatusChange converts a model LoadStatusHistory to a domain StatusChange
func ToDomainStatusChange(m models.LoadStatusHistory) domain.StatusChange {
	return domain.StatusChange{
		ChangeID:       m.ChangeID,
		LoadID:         m.LoadID,
		OldStatus:      domain.LoadStatus(m.OldStatus),
		NewStatus:      domain.LoadStatus(m.NewStatus),
		ChangedByEmail: m.ChangedByEmail,
		ChangedAt:      m.ChangedAt,
		Notes:          m.Notes,
	}
}

// ToDomainStatusChangeSlice converts a slice of model LoadStatusHistory rows to domain StatusChanges
func ToDomainStatusChangeSlice(ms []models.LoadStatusHistory) []domain.StatusChange {
	ds := make([]domain.StatusChange, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStatusChange(m)
	}
	return ds
}
