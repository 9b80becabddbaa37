package domain

import "time"

// AuditAction classifies an audit event.
type AuditAction string

const (
	ActionCreate AuditAction = "CREATE"
	ActionUpdate AuditAction = "UPDATE"
	ActionDelete AuditAction = "DELETE"
)

// AuditEvent is one immutable record of a field mutation or a named custom
// action (confirmation, document generation) against a load. Events are
// append-only and outlive the record they describe.
type AuditEvent struct {
	AuditID   string      `json:"auditID"`
	TableName string      `json:"tableName"`
	RecordID  string      `json:"recordID"`
	Action    AuditAction `json:"action"`
	FieldName string      `json:"fieldName"`
	OldValue  string      `json:"oldValue"`
	NewValue  string      `json:"newValue"`
	UserEmail string      `json:"userEmail"`
	CreatedAt time.Time   `json:"createdAt"`
}

// StatusChange is one row of the narrower status history trail, written once
// per status transition alongside the field-level audit events.
type StatusChange struct {
	ChangeID       string     `json:"changeID"`
	LoadID         string     `json:"loadID"`
	OldStatus      LoadStatus `json:"oldStatus"`
	NewStatus      LoadStatus `json:"newStatus"`
	ChangedByEmail string     `json:"changedByEmail"`
	ChangedAt      time.Time  `json:"changedAt"`
	Notes          string     `json:"notes"`
}
