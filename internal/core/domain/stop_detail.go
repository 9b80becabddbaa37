package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StopDetail is one routing waypoint of a load, ordered by SeqNo. Stops are
// read-only from the core's perspective and are consumed only for the bill
// of lading.
type StopDetail struct {
	StopID    string          `json:"stopID"`
	LoadID    string          `json:"loadID"`
	SeqNo     int             `json:"seqNo"`
	CustName  string          `json:"custName"`
	Address   string          `json:"address"`
	Miles     decimal.Decimal `json:"miles"`
	Weight    decimal.Decimal `json:"weight"`
	CreatedAt time.Time       `json:"createdAt"`
}
