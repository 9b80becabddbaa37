package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoadDetail is the database representation of one line item of a load.
type LoadDetail struct {
	DetailID      string          `json:"detailID" db:"detail_id"`
	LoadID        string          `json:"loadID" db:"load_id"`
	Line          int             `json:"line" db:"line"`
	ItemDesc      string          `json:"itemDesc" db:"item_desc"`
	HeatNumber    string          `json:"heatNumber" db:"heat_number"`
	QtyOrdered    decimal.Decimal `json:"qtyOrdered" db:"qty_ordered"`
	QtyShipped    decimal.Decimal `json:"qtyShipped" db:"qty_shipped"`
	StatusCode    string          `json:"statusCode" db:"status_code"`
	MarkoffReason string          `json:"markoffReason" db:"markoff_reason"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}
