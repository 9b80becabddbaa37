package models

import "time"

// AuditLog is the database representation of one append-only audit event.
type AuditLog struct {
	AuditID   string    `json:"auditID" db:"audit_id"`
	TableName string    `json:"tableName" db:"table_name"`
	RecordID  string    `json:"recordID" db:"record_id"`
	Action    string    `json:"action" db:"action"`
	FieldName string    `json:"fieldName" db:"field_name"`
	OldValue  string    `json:"oldValue" db:"old_value"`
	NewValue  string    `json:"newValue" db:"new_value"`
	UserEmail string    `json:"userEmail" db:"user_email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// LoadStatusHistory is the database representation of one status transition.
type LoadStatusHistory struct {
	ChangeID       string    `json:"changeID" db:"change_id"`
	LoadID         string    `json:"loadID" db:"load_id"`
	OldStatus      string    `json:"oldStatus" db:"old_status"`
	NewStatus      string    `json:"newStatus" db:"new_status"`
	ChangedByEmail string    `json:"changedByEmail" db:"changed_by_email"`
	ChangedAt      time.Time `json:"changedAt" db:"changed_at"`
	Notes          string    `json:"notes" db:"notes"`
}
