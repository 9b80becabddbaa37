package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StopDetail is the database representation of one routing waypoint of a load.
type StopDetail struct {
	StopID    string          `json:"stopID" db:"stop_id"`
	LoadID    string          `json:"loadID" db:"load_id"`
	SeqNo     int             `json:"seqNo" db:"seq_no"`
	CustName  string          `json:"custName" db:"cust_name"`
	Address   string          `json:"address" db:"address"`
	Miles     decimal.Decimal `json:"miles" db:"miles"`
	Weight    decimal.Decimal `json:"weight" db:"weight"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}
