package mapping

import (
	"github.com/willbanks/load-coordinator/internal/core/domain"
	"github.com/willbanks/load-coordinator/internal/models"
)

// ToModelLoad converts a domain Load to a model Load
func ToModelLoad(d domain.Load) models.Load {
	return models.Load{
		LoadID:      d.LoadID,
		ShipFromLoc: d.ShipFromLoc,
		CarrierCode: d.CarrierCode,
		Status:      string(d.Status),
		DriverName:  d.DriverName,
		TrailerNo:   d.TrailerNo,
		ShipReqDate: d.ShipReqDate,
		ETA:         d.ETA,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDomainLoad converts a model Load to a domain Load
func ToDomainLoad(m models.Load) domain.Load {
	return domain.Load{
		LoadID:      m.LoadID,
		ShipFromLoc: m.ShipFromLoc,
		CarrierCode: m.CarrierCode,
		Status:      domain.LoadStatus(m.Status),
		DriverName:  m.DriverName,
		TrailerNo:   m.TrailerNo,
		ShipReqDate: m.ShipReqDate,
		ETA:         m.ETA,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToDomainLoadSlice converts a slice of model Loads to domain Loads
func ToDomainLoadSlice(ms []models.Load) []domain.Load {
	ds := make([]domain.Load, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoad(m)
	}
	return ds
}
