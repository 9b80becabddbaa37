package dto

import (
	"time"

	"github.com/willbanks/load-coordinator/internal/core/domain"
)

// AuditEventResponse defines the data returned for one audit event.
type AuditEventResponse struct {
	AuditID   string    `json:"auditID"`
	TableName string    `json:"tableName"`
	RecordID  string    `json:"recordID"`
	Action    string    `json:"action"`
	FieldName string    `json:"fieldName"`
	OldValue  string    `json:"oldValue"`
	NewValue  string    `json:"newValue"`
	UserEmail string    `json:"userEmail"`
	CreatedAt time.Time `json:"createdAt"`
}

// StatusChangeResponse defines the data returned for one status transition.
type StatusChangeResponse struct {
	ChangeID       string    `json:"changeID"`
	LoadID         string    `json:"loadID"`
	OldStatus      string    `json:"oldStatus"`
	NewStatus      string    `json:"newStatus"`
	ChangedByEmail string    `json:"changedByEmail"`
	ChangedAt      time.Time `json:"changedAt"`
	Notes          string    `json:"notes"`
}

// LoadHistoryResponse bundles both audit trails for a load, newest first.
type LoadHistoryResponse struct {
	AuditEvents   []AuditEventResponse   `json:"auditEvents"`
	StatusChanges []StatusChangeResponse `json:"statusChanges"`
}

// ToLoadHistoryResponse converts both domain trails into the response DTO
func ToLoadHistoryResponse(events []domain.AuditEvent, changes []domain.StatusChange) LoadHistoryResponse {
	resp := LoadHistoryResponse{
		AuditEvents:   make([]AuditEventResponse, len(events)),
		StatusChanges: make([]StatusChangeResponse, len(changes)),
	}
	for i, e := range events {
		resp.AuditEvents[i] = AuditEventResponse{
			AuditID:   e.AuditID,
			TableName: e.TableName,
			RecordID:  e.RecordID,
			Action:    string(e.Action),
			FieldName: e.FieldName,
			OldValue:  e.OldValue,
			NewValue:  e.NewValue,
			UserEmail: e.UserEmail,
			CreatedAt: e.CreatedAt,
		}
	}
	for i, c := range changes {
		resp.StatusChanges[i] = StatusChangeResponse{
			ChangeID:       c.ChangeID,
			LoadID:         c.LoadID,
			OldStatus:      string(c.OldStatus),
			NewStatus:      string(c.NewStatus),
			ChangedByEmail: c.ChangedByEmail,
			ChangedAt:      c.ChangedAt,
			Notes:          c.Notes,
		}
	}
	return resp
}
