package domain

import "time"

// LoadStatus is the lifecycle status of a load. The lifecycle is ordered but
// not strictly linear: manual transitions may jump forward, and the automatic
// rule only ever moves between Ready and Assigned.
type LoadStatus string

const (
	StatusOpen      LoadStatus = "Open"
	StatusReady     LoadStatus = "Ready"
	StatusAssigned  LoadStatus = "Assigned"
	StatusShipped   LoadStatus = "Shipped"
	StatusClosed    LoadStatus = "Closed"
	StatusCancelled LoadStatus = "Cancelled"
)

var statusRank = map[LoadStatus]int{
	StatusOpen:      0,
	StatusReady:     1,
	StatusAssigned:  2,
	StatusShipped:   3,
	StatusClosed:    4,
	StatusCancelled: 5,
}

// Rank returns the position of the status in the lifecycle order, and false
// for an unknown status. Used by the ERP sync to decide which side wins.
func (s LoadStatus) Rank() (int, bool) {
	r, ok := statusRank[s]
	return r, ok
}

// ParseLoadStatus returns the LoadStatus for a raw string, or false if the
// value is not one of the known statuses.
func ParseLoadStatus(raw string) (LoadStatus, bool) {
	s := LoadStatus(raw)
	_, ok := statusRank[s]
	return s, ok
}

// Load represents one freight shipment, the central entity of the system.
type Load struct {
	LoadID      string     `json:"loadID"`
	ShipFromLoc string     `json:"shipFromLoc"`
	CarrierCode string     `json:"carrierCode"`
	Status      LoadStatus `json:"status"`
	DriverName  string     `json:"driverName"`
	TrailerNo   string     `json:"trailerNo"`
	ShipReqDate *time.Time `json:"shipReqDate,omitempty"`
	ETA         *time.Time `json:"eta,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// LoadPatch enumerates the mutable fields of a Load. A nil member means the
// caller did not touch that field; a pointer to the zero value means an
// explicit clear. This distinction drives both the status rule and the
// per-field audit trail.
type LoadPatch struct {
	ShipFromLoc *string     `json:"shipFromLoc,omitempty"`
	CarrierCode *string     `json:"carrierCode,omitempty"`
	Status      *LoadStatus `json:"status,omitempty"`
	DriverName  *string     `json:"driverName,omitempty"`
	TrailerNo   *string     `json:"trailerNo,omitempty"`
	ShipReqDate *time.Time  `json:"shipReqDate,omitempty"`
	ETA         *time.Time  `json:"eta,omitempty"`
}

// FieldChange describes one field-level difference produced by applying a
// patch, in the shape the audit trail records it.
type FieldChange struct {
	FieldName string
	OldValue  string
	NewValue  string
}

// Apply returns a copy of the load with the patch merged in, together with the
// list of fields whose stored value actually changed. Status is intentionally
// excluded here: the coordinator resolves it separately through the rule
// engine and records it against the final value.
func (p LoadPatch) Apply(l Load) (Load, []FieldChange) {
	out := l
	var changes []FieldChange

	setStr := func(name string, dst *string, src *string) {
		if src == nil || *src == *dst {
			return
		}
		changes = append(changes, FieldChange{FieldName: name, OldValue: *dst, NewValue: *src})
		*dst = *src
	}
	setTime := func(name string, dst **time.Time, src *time.Time) {
		if src == nil {
			return
		}
		if *dst != nil && src.Equal(**dst) {
			return
		}
		old := ""
		if *dst != nil {
			old = (*dst).Format(time.RFC3339)
		}
		changes = append(changes, FieldChange{FieldName: name, OldValue: old, NewValue: src.Format(time.RFC3339)})
		t := *src
		*dst = &t
	}

	setStr("ship_from_loc", &out.ShipFromLoc, p.ShipFromLoc)
	setStr("carrier_code", &out.CarrierCode, p.CarrierCode)
	setStr("driver_name", &out.DriverName, p.DriverName)
	setStr("trailer_no", &out.TrailerNo, p.TrailerNo)
	setTime("ship_req_date", &out.ShipReqDate, p.ShipReqDate)
	setTime("eta", &out.ETA, p.ETA)

	return out, changes
}
