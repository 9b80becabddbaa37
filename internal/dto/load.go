package dto

import (
	"time"

	"github.com/willbanks/load-coordinator/internal/core/domain"
)

// UpdateLoadRequest defines the data allowed for updating a load.
// Pointers distinguish omitted fields from explicit clears: a missing field
// leaves the stored value alone, an empty string clears it.
type UpdateLoadRequest struct {
	ShipFromLoc *string    `json:"shipFromLoc"`
	CarrierCode *string    `json:"carrierCode"`
	Status      *string    `json:"status" binding:"omitempty,loadstatus"`
	DriverName  *string    `json:"driverName"`
	TrailerNo   *string    `json:"trailerNo"`
	ShipReqDate *time.Time `json:"shipReqDate"`
	ETA         *time.Time `json:"eta"`
}

// ToDomainPatch converts the request into the typed domain patch.
func (r UpdateLoadRequest) ToDomainPatch() domain.LoadPatch {
	patch := domain.LoadPatch{
		ShipFromLoc: r.ShipFromLoc,
		CarrierCode: r.CarrierCode,
		DriverName:  r.DriverName,
		TrailerNo:   r.TrailerNo,
		ShipReqDate: r.ShipReqDate,
		ETA:         r.ETA,
	}
	if r.Status != nil {
		s := domain.LoadStatus(*r.Status)
		patch.Status = &s
	}
	return patch
}

// ConfirmLoadRequest defines the data needed to confirm a load.
type ConfirmLoadRequest struct {
	TrailerNo string `json:"trailerNo" binding:"required"`
}

// BulkStatusUpdateRequest defines the data for the grid's bulk status buttons.
type BulkStatusUpdateRequest struct {
	LoadIDs []string `json:"loadIDs" binding:"required,min=1"`
	Status  string   `json:"status" binding:"required,loadstatus"`
}

// ListLoadsParams defines query parameters for listing loads.
type ListLoadsParams struct {
	Limit     int    `form:"limit,default=50"`
	NextToken string `form:"nextToken"`
	Status    string `form:"status" binding:"omitempty,loadstatus"`
}

// LoadResponse defines the data returned for a load. Mirrors domain.Load.
type LoadResponse struct {
	LoadID      string     `json:"loadID"`
	ShipFromLoc string     `json:"shipFromLoc"`
	CarrierCode string     `json:"carrierCode"`
	Status      string     `json:"status"`
	DriverName  string     `json:"driverName"`
	TrailerNo   string     `json:"trailerNo"`
	ShipReqDate *time.Time `json:"shipReqDate,omitempty"`
	ETA         *time.Time `json:"eta,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToLoadResponse converts a domain.Load to LoadResponse DTO
func ToLoadResponse(l *domain.Load) LoadResponse {
	return LoadResponse{
		LoadID:      l.LoadID,
		ShipFromLoc: l.ShipFromLoc,
		CarrierCode: l.CarrierCode,
		Status:      string(l.Status),
		DriverName:  l.DriverName,
		TrailerNo:   l.TrailerNo,
		ShipReqDate: l.ShipReqDate,
		ETA:         l.ETA,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// ListLoadsResponse wraps a page of loads with the cursor for the next page.
type ListLoadsResponse struct {
	Loads     []LoadResponse `json:"loads"`
	NextToken string         `json:"nextToken,omitempty"`
}

// ToListLoadsResponse converts a slice of domain.Load to ListLoadsResponse DTO
func ToListLoadsResponse(loads []domain.Load, nextToken string) ListLoadsResponse {
	res := make([]LoadResponse, len(loads))
	for i := range loads {
		res[i] = ToLoadResponse(&loads[i])
	}
	return ListLoadsResponse{Loads: res, NextToken: nextToken}
}

// UpdateLoadResponse carries the refreshed load plus any warnings from
// best-effort secondary steps that failed.
type UpdateLoadResponse struct {
	Load     LoadResponse `json:"load"`
	Warnings []string     `json:"warnings,omitempty"`
}

// ConfirmLoadResponse reports the outcome of a confirmation.
type ConfirmLoadResponse struct {
	Load        LoadResponse `json:"load"`
	IsConfirmed bool         `json:"isConfirmed"`
	Warnings    []string     `json:"warnings,omitempty"`
}

// BulkStatusUpdateResponse summarizes a bulk status update.
type BulkStatusUpdateResponse struct {
	Updated  int      `json:"updated"`
	Failed   []string `json:"failed,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
