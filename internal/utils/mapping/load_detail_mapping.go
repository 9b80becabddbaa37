package mapping

import (
	"github.com/willbanks/load-coordinator/internal/core/domain"
	"github.com/willbanks/load-coordinator/internal/models"
)

// ToModelLoadDetail converts a domain LoadDetail to a model LoadDetail
func ToModelLoadDetail(d domain.LoadDetail) models.LoadDetail {
	return models.LoadDetail{
		DetailID:      d.DetailID,
		LoadID:        d.LoadID,
		Line:          d.Line,
		ItemDesc:      d.ItemDesc,
		HeatNumber:    d.HeatNumber,
		QtyOrdered:    d.QtyOrdered,
		QtyShipped:    d.QtyShipped,
		StatusCode:    string(d.StatusCode),
		MarkoffReason: d.MarkoffReason,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDomainLoadDetail converts a model LoadDetail to a domain LoadDetail
func ToDomainLoadDetail(m models.LoadDetail) domain.LoadDetail {
	return domain.LoadDetail{
		DetailID:      m.DetailID,
		LoadID:        m.LoadID,
		Line:          m.Line,
		ItemDesc:      m.ItemDesc,
		HeatNumber:    m.HeatNumber,
		QtyOrdered:    m.QtyOrdered,
		QtyShipped:    m.QtyShipped,
		StatusCode:    domain.DetailStatus(m.StatusCode),
		MarkoffReason: m.MarkoffReason,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToDomainLoadDetailSlice converts a slice of model LoadDetails to domain LoadDetails
func ToDomainLoadDetailSlice(ms []models.LoadDetail) []domain.LoadDetail {
	ds := make([]domain.LoadDetail, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoadDetail(m)
	}
	return ds
}

// ToModelStopDetail converts a domain StopDetail to a model StopDetail
func ToModelStopDetail(d domain.StopDetail) models.StopDetail {
	return models.StopDetail{
		StopID:    d.StopID,
		LoadID:    d.LoadID,
		SeqNo:     d.SeqNo,
		CustName:  d.CustName,
		Address:   d.Address,
		Miles:     d.Miles,
		Weight:    d.Weight,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainStopDetail converts a model StopDetail to a domain StopDetail
func ToDomainStopDetail(m models.StopDetail) domain.StopDetail {
	return domain.StopDetail{
		StopID:    m.StopID,
		LoadID:    m.LoadID,
		SeqNo:     m.SeqNo,
		CustName:  m.CustName,
		Address:   m.Address,
		Miles:     m.Miles,
		Weight:    m.Weight,
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainStopDetailSlice converts a slice of model StopDetails to domain StopDetails
func ToDomainStopDetailSlice(ms []models.StopDetail) []domain.StopDetail {
	ds := make([]domain.StopDetail, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStopDetail(m)
	}
	return ds
}
