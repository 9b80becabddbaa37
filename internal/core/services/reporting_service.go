package services

import (
	"context"

	"github.com/willbanks/load-coordinator/internal/core/domain"
	portsrepo "github.com/willbanks/load-coordinator/internal/core/ports/repositories"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
	"github.com/willbanks/load-coordinator/internal/dto"
)

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service instance.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvc {
	return &reportingService{reportingRepo: reportingRepo}
}

// summaryOrder fixes the display order of the per-status counts.
var summaryOrder = []domain.LoadStatus{
	domain.StatusOpen,
	domain.StatusReady,
	domain.StatusAssigned,
	domain.StatusShipped,
	domain.StatusClosed,
	domain.StatusCancelled,
}

func (s *reportingService) StatusSummary(ctx context.Context, profile domain.UserProfile) (dto.StatusSummaryResponse, error) {
	filter := domain.VisibleLoadFilter(profile)

	counts, err := s.reportingRepo.CountLoadsByStatus(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "failed to count loads by status")
		return dto.StatusSummaryResponse{}, err
	}

	resp := dto.StatusSummaryResponse{Counts: make([]dto.StatusCount, 0, len(summaryOrder))}
	for _, status := range summaryOrder {
		count := counts[status]
		resp.Counts = append(resp.Counts, dto.StatusCount{Status: string(status), Count: count})
		resp.Total += count
	}
	return resp, nil
}
