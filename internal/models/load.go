package models

import (
	"time"
)

// Load is the database representation of one freight shipment.
type Load struct {
	LoadID      string     `json:"loadID" db:"load_id"`
	ShipFromLoc string     `json:"shipFromLoc" db:"ship_from_loc"`
	CarrierCode string     `json:"carrierCode" db:"carrier_code"`
	Status      string     `json:"status" db:"status"`
	DriverName  string     `json:"driverName" db:"driver_name"`
	TrailerNo   string     `json:"trailerNo" db:"trailer_no"`
	ShipReqDate *time.Time `json:"shipReqDate,omitempty" db:"ship_req_date"`
	ETA         *time.Time `json:"eta,omitempty" db:"eta"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
