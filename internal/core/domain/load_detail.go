package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetailStatus is the disposition of a single line item.
type DetailStatus string

const (
	DetailOpen      DetailStatus = "Open"
	DetailLoaded    DetailStatus = "Loaded"
	DetailMarkedOff DetailStatus = "Marked_Off"
)

// ParseDetailStatus returns the DetailStatus for a raw string, or false if
// the value is not one of the known dispositions.
func ParseDetailStatus(raw string) (DetailStatus, bool) {
	switch DetailStatus(raw) {
	case DetailOpen, DetailLoaded, DetailMarkedOff:
		return DetailStatus(raw), true
	}
	return "", false
}

// LoadDetail is one ordered line item belonging to a load. Line is the
// ordinal, unique within the load. MarkoffReason is required exactly when
// StatusCode is Marked_Off.
type LoadDetail struct {
	DetailID      string          `json:"detailID"`
	LoadID        string          `json:"loadID"`
	Line          int             `json:"line"`
	ItemDesc      string          `json:"itemDesc"`
	HeatNumber    string          `json:"heatNumber"`
	QtyOrdered    decimal.Decimal `json:"qtyOrdered"`
	QtyShipped    decimal.Decimal `json:"qtyShipped"`
	StatusCode    DetailStatus    `json:"statusCode"`
	MarkoffReason string          `json:"markoffReason"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
