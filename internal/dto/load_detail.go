package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/willbanks/load-coordinator/internal/core/domain"
)

// UpdateLoadDetailRequest defines the data allowed for updating one line item.
// Pointers distinguish omitted fields from explicit values.
type UpdateLoadDetailRequest struct {
	StatusCode    *string          `json:"statusCode" binding:"omitempty,detailstatus"`
	MarkoffReason *string          `json:"markoffReason"`
	QtyShipped    *decimal.Decimal `json:"qtyShipped"`
}

// LoadDetailResponse defines the data returned for a line item.
type LoadDetailResponse struct {
	DetailID      string          `json:"detailID"`
	LoadID        string          `json:"loadID"`
	Line          int             `json:"line"`
	ItemDesc      string          `json:"itemDesc"`
	HeatNumber    string          `json:"heatNumber"`
	QtyOrdered    decimal.Decimal `json:"qtyOrdered"`
	QtyShipped    decimal.Decimal `json:"qtyShipped"`
	StatusCode    string          `json:"statusCode"`
	MarkoffReason string          `json:"markoffReason"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToLoadDetailResponse converts a domain.LoadDetail to LoadDetailResponse DTO
func ToLoadDetailResponse(d *domain.LoadDetail) LoadDetailResponse {
	return LoadDetailResponse{
		DetailID:      d.DetailID,
		LoadID:        d.LoadID,
		Line:          d.Line,
		ItemDesc:      d.ItemDesc,
		HeatNumber:    d.HeatNumber,
		QtyOrdered:    d.QtyOrdered,
		QtyShipped:    d.QtyShipped,
		StatusCode:    string(d.StatusCode),
		MarkoffReason: d.MarkoffReason,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToListLoadDetailResponse converts a slice of domain.LoadDetail to DTOs
func ToListLoadDetailResponse(details []domain.LoadDetail) []LoadDetailResponse {
	res := make([]LoadDetailResponse, len(details))
	for i := range details {
		res[i] = ToLoadDetailResponse(&details[i])
	}
	return res
}

// StopDetailResponse defines the data returned for a routing stop.
type StopDetailResponse struct {
	StopID   string          `json:"stopID"`
	LoadID   string          `json:"loadID"`
	SeqNo    int             `json:"seqNo"`
	CustName string          `json:"custName"`
	Address  string          `json:"address"`
	Miles    decimal.Decimal `json:"miles"`
	Weight   decimal.Decimal `json:"weight"`
}

// ToListStopDetailResponse converts a slice of domain.StopDetail to DTOs
func ToListStopDetailResponse(stops []domain.StopDetail) []StopDetailResponse {
	res := make([]StopDetailResponse, len(stops))
	for i, s := range stops {
		res[i] = StopDetailResponse{
			StopID:   s.StopID,
			LoadID:   s.LoadID,
			SeqNo:    s.SeqNo,
			CustName: s.CustName,
			Address:  s.Address,
			Miles:    s.Miles,
			Weight:   s.Weight,
		}
	}
	return res
}
