package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/willbanks/load-coordinator/internal/apperrors"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
	"github.com/willbanks/load-coordinator/internal/core/services"
	"github.com/willbanks/load-coordinator/internal/dto"
)

type LoadServiceTestSuite struct {
	suite.Suite
	mockLoadRepo   *MockLoadRepository
	mockDetailRepo *MockLoadDetailRepository
	mockStopRepo   *MockStopDetailRepository
	mockAudit      *MockAuditService
	mockDocuments  *MockDocumentService
	service        portssvc.LoadSvcFacade
	now            time.Time
	actor          domain.UserProfile
}

func (suite *LoadServiceTestSuite) SetupTest() {
	suite.mockLoadRepo = new(MockLoadRepository)
	suite.mockDetailRepo = new(MockLoadDetailRepository)
	suite.mockStopRepo = new(MockStopDetailRepository)
	suite.mockAudit = new(MockAuditService)
	suite.mockDocuments = new(MockDocumentService)
	suite.now = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	suite.actor = domain.UserProfile{
		UserID: "user-1",
		Email:  "dispatch@willbanks.com",
		Role:   domain.RoleAdmin,
	}
	suite.service = services.NewLoadService(
		suite.mockLoadRepo,
		suite.mockDetailRepo,
		suite.mockStopRepo,
		suite.mockAudit,
		suite.mockDocuments,
		services.WithLoadClock(func() time.Time { return suite.now }),
	)
}

func (suite *LoadServiceTestSuite) readyLoad() *domain.Load {
	return &domain.Load{
		LoadID:      "L100",
		ShipFromLoc: "WSI",
		CarrierCode: "Jordan",
		Status:      domain.StatusReady,
	}
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.LoadStatus) *domain.LoadStatus { return &s }

func (suite *LoadServiceTestSuite) TestUpdateLoad_DriverAssignmentPromotes() {
	ctx := context.Background()
	current := suite.readyLoad()
	patch := domain.LoadPatch{DriverName: strPtr("John Smith")}

	refreshed := *current
	refreshed.DriverName = "John Smith"
	refreshed.Status = domain.StatusAssigned

	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(current, nil).Once()
	suite.mockLoadRepo.On("UpdateLoad", ctx, "L100", patch, domain.StatusAssigned, suite.now).Return(nil).Once()
	suite.mockLoadRepo.On("UpdateLoadStatus", ctx, "L100", domain.StatusAssigned, suite.now).Return(nil).Once()
	suite.mockAudit.On("RecordFieldChanges", ctx, "loads", "L100", mock.MatchedBy(func(changes []domain.FieldChange) bool {
		return len(changes) == 1 && changes[0].FieldName == "driver_name" && changes[0].NewValue == "John Smith"
	}), suite.actor.Email).Return(nil).Once()
	suite.mockAudit.On("RecordStatusChange", ctx, mock.MatchedBy(func(change domain.StatusChange) bool {
		return change.OldStatus == domain.StatusReady && change.NewStatus == domain.StatusAssigned
	})).Return(nil).Once()
	suite.mockLoadRepo.On("NotifyLoadChanged", ctx, "loads", "L100").Return(nil).Once()
	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(&refreshed, nil).Once()

	load, warnings, err := suite.service.UpdateLoad(ctx, "L100", patch, suite.actor)

	suite.Require().NoError(err)
	suite.Empty(warnings)
	suite.Equal(domain.StatusAssigned, load.Status)
	suite.Equal("John Smith", load.DriverName)
	suite.mockLoadRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *LoadServiceTestSuite) TestUpdateLoad_ClearingDriverDemotes() {
	ctx := context.Background()
	current := suite.readyLoad()
	current.Status = domain.StatusAssigned
	current.DriverName = "John Smith"
	patch := domain.LoadPatch{DriverName: strPtr("   ")}

	refreshed := *current
	refreshed.DriverName = "   "
	refreshed.Status = domain.StatusReady

	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(current, nil).Once()
	suite.mockLoadRepo.On("UpdateLoad", ctx, "L100", patch, domain.StatusReady, suite.now).Return(nil).Once()
	suite.mockLoadRepo.On("UpdateLoadStatus", ctx, "L100", domain.StatusReady, suite.now).Return(nil).Once()
	suite.mockAudit.On("RecordFieldChanges", ctx, "loads", "L100", mock.Anything, suite.actor.Email).Return(nil).Once()
	suite.mockAudit.On("RecordStatusChange", ctx, mock.MatchedBy(func(change domain.StatusChange) bool {
		return change.OldStatus == domain.StatusAssigned && change.NewStatus == domain.StatusReady
	})).Return(nil).Once()
	suite.mockLoadRepo.On("NotifyLoadChanged", ctx, "loads", "L100").Return(nil).Once()
	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(&refreshed, nil).Once()

	load, warnings, err := suite.service.UpdateLoad(ctx, "L100", patch, suite.actor)

	suite.Require().NoError(err)
	suite.Empty(warnings)
	suite.Equal(domain.StatusReady, load.Status)
	suite.mockLoadRepo.AssertExpectations(suite.T())
}

func (suite *LoadServiceTestSuite) TestUpdateLoad_ExplicitStatusSkipsRule() {
	ctx := context.Background()
	current := suite.readyLoad()
	patch := domain.LoadPatch{
		DriverName: strPtr("John Smith"),
		Status:     statusPtr(domain.StatusShipped),
	}

	refreshed := *current
	refreshed.DriverName = "John Smith"
	refreshed.Status = domain.StatusShipped

	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(current, nil).Once()
	suite.mockLoadRepo.On("UpdateLoad", ctx, "L100", patch, domain.StatusShipped, suite.now).Return(nil).Once()
	suite.mockAudit.On("RecordFieldChanges", ctx, "loads", "L100", mock.MatchedBy(func(changes []domain.FieldChange) bool {
		// driver_name plus the explicit status change
		return len(changes) == 2
	}), suite.actor.Email).Return(nil).Once()
	suite.mockAudit.On("RecordStatusChange", ctx, mock.MatchedBy(func(change domain.StatusChange) bool {
		return change.NewStatus == domain.StatusShipped && change.Notes == "Manual status change"
	})).Return(nil).Once()
	suite.mockLoadRepo.On("NotifyLoadChanged", ctx, "loads", "L100").Return(nil).Once()
	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(&refreshed, nil).Once()

	_, warnings, err := suite.service.UpdateLoad(ctx, "L100", patch, suite.actor)

	suite.Require().NoError(err)
	suite.Empty(warnings)
	// The explicit status suppressed the rule engine, so no derived write.
	suite.mockLoadRepo.AssertNotCalled(suite.T(), "UpdateLoadStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockLoadRepo.AssertExpectations(suite.T())
}

func (suite *LoadServiceTestSuite) TestUpdateLoad_PrimaryWriteFailureAborts() {
	ctx := context.Background()
	current := suite.readyLoad()
	patch := domain.LoadPatch{DriverName: strPtr("John Smith")}

	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(current, nil).Once()
	suite.mockLoadRepo.On("UpdateLoad", ctx, "L100", patch, domain.StatusAssigned, suite.now).
		Return(fmt.Errorf("%w: write failed", apperrors.ErrPersistence)).Once()

	load, warnings, err := suite.service.UpdateLoad(ctx, "L100", patch, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.Nil(load)
	suite.Empty(warnings)
	suite.mockAudit.AssertNotCalled(suite.T(), "RecordFieldChanges", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAudit.AssertNotCalled(suite.T(), "RecordStatusChange", mock.Anything, mock.Anything)
	suite.mockLoadRepo.AssertExpectations(suite.T())
}

func (suite *LoadServiceTestSuite) TestUpdateLoad_SecondaryFailuresBecomeWarnings() {
	ctx := context.Background()
	current := suite.readyLoad()
	patch := domain.LoadPatch{DriverName: strPtr("John Smith")}

	refreshed := *current
	refreshed.DriverName = "John Smith"
	refreshed.Status = domain.StatusAssigned

	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(current, nil).Once()
	suite.mockLoadRepo.On("UpdateLoad", ctx, "L100", patch, domain.StatusAssigned, suite.now).Return(nil).Once()
	suite.mockLoadRepo.On("UpdateLoadStatus", ctx, "L100", domain.StatusAssigned, suite.now).
		Return(fmt.Errorf("%w: write failed", apperrors.ErrPersistence)).Once()
	suite.mockAudit.On("RecordFieldChanges", ctx, "loads", "L100", mock.Anything, suite.actor.Email).
		Return(fmt.Errorf("%w: audit down", apperrors.ErrPersistence)).Once()
	suite.mockAudit.On("RecordStatusChange", ctx, mock.Anything).
		Return(fmt.Errorf("%w: audit down", apperrors.ErrPersistence)).Once()
	suite.mockLoadRepo.On("NotifyLoadChanged", ctx, "loads", "L100").Return(nil).Once()
	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(&refreshed, nil).Once()

	load, warnings, err := suite.service.UpdateLoad(ctx, "L100", patch, suite.actor)

	suite.Require().NoError(err)
	suite.NotNil(load)
	suite.Len(warnings, 3)
	suite.Contains(warnings, "derived status could not be written")
	suite.Contains(warnings, "audit trail could not be recorded")
	suite.Contains(warnings, "status history could not be recorded")
	suite.mockLoadRepo.AssertExpectations(suite.T())
}

func (suite *LoadServiceTestSuite) TestUpdateLoad_EmptyPatchTouchesUpdatedAt() {
	ctx := context.Background()
	current := suite.readyLoad()
	touched := *current
	touched.UpdatedAt = suite.now

	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(current, nil).Once()
	suite.mockLoadRepo.On("UpdateLoad", ctx, "L100", domain.LoadPatch{}, domain.StatusReady, suite.now).Return(nil).Once()
	suite.mockLoadRepo.On("NotifyLoadChanged", ctx, "loads", "L100").Return(nil).Once()
	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(&touched, nil).Once()

	load, warnings, err := suite.service.UpdateLoad(ctx, "L100", domain.LoadPatch{}, suite.actor)

	suite.Require().NoError(err)
	suite.Empty(warnings)
	suite.Equal(domain.StatusReady, load.Status)
	suite.Equal(suite.now, load.UpdatedAt)
	suite.mockAudit.AssertNotCalled(suite.T(), "RecordFieldChanges", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAudit.AssertNotCalled(suite.T(), "RecordStatusChange", mock.Anything, mock.Anything)
	suite.mockLoadRepo.AssertExpectations(suite.T())
}

func (suite *LoadServiceTestSuite) TestUpdateLoad_NotFound() {
	ctx := context.Background()
	suite.mockLoadRepo.On("FindLoadByID", ctx, "L999").
		Return(nil, fmt.Errorf("%w: load L999", apperrors.ErrNotFound)).Once()

	load, _, err := suite.service.UpdateLoad(ctx, "L999", domain.LoadPatch{DriverName: strPtr("x")}, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(load)
}

func (suite *LoadServiceTestSuite) TestConfirmLoad_GateFailureAbortsBeforePersist() {
	ctx := context.Background()
	items := []domain.LoadDetail{
		{Line: 1, StatusCode: domain.DetailOpen},
		{Line: 2, StatusCode: domain.DetailMarkedOff, MarkoffReason: ""},
	}

	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(suite.readyLoad(), nil).Once()
	suite.mockDetailRepo.On("FindDetailsByLoadID", ctx, "L100").Return(items, nil).Once()

	load, _, err := suite.service.ConfirmLoad(ctx, "L100", "", suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "Trailer number is required")
	suite.Contains(err.Error(), `1 line(s) still marked as "Open"`)
	suite.Contains(err.Error(), "1 marked-off line(s) missing reason")
	suite.Nil(load)
	suite.mockLoadRepo.AssertNotCalled(suite.T(), "UpdateLoad", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockDocuments.AssertNotCalled(suite.T(), "RenderConfirmedCSV", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoadServiceTestSuite) TestConfirmLoad_Success() {
	ctx := context.Background()
	current := suite.readyLoad()
	current.Status = domain.StatusOpen
	items := []domain.LoadDetail{
		{Line: 1, StatusCode: domain.DetailLoaded},
		{Line: 2, StatusCode: domain.DetailMarkedOff, MarkoffReason: "damaged"},
	}

	confirmed := *current
	confirmed.Status = domain.StatusReady
	confirmed.TrailerNo = "4512"

	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(current, nil).Once()
	suite.mockDetailRepo.On("FindDetailsByLoadID", ctx, "L100").Return(items, nil).Once()
	suite.mockLoadRepo.On("UpdateLoad", ctx, "L100", domain.LoadPatch{TrailerNo: strPtr("4512")}, domain.StatusReady, suite.now).Return(nil).Once()
	suite.mockAudit.On("RecordStatusChange", ctx, mock.MatchedBy(func(change domain.StatusChange) bool {
		return change.OldStatus == domain.StatusOpen && change.NewStatus == domain.StatusReady
	})).Return(nil).Once()
	suite.mockAudit.On("RecordAction", ctx, "loads", "L100", domain.ActionUpdate, "Load Confirmed",
		"Load confirmed with trailer 4512. Generated documents.", suite.actor.Email).Return(nil).Once()
	suite.mockDocuments.On("RenderConfirmedCSV", ctx, "L100", suite.actor).Return([]byte("csv"), "confirmed_L100.csv", nil).Once()
	suite.mockDocuments.On("RenderLoadingDoc", ctx, "L100", suite.actor).Return([]byte("pdf"), "loading_doc_L100.pdf", nil).Once()
	suite.mockLoadRepo.On("NotifyLoadChanged", ctx, "loads", "L100").Return(nil).Once()
	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(&confirmed, nil).Once()

	load, warnings, err := suite.service.ConfirmLoad(ctx, "L100", " 4512 ", suite.actor)

	suite.Require().NoError(err)
	suite.Empty(warnings)
	suite.Equal(domain.StatusReady, load.Status)
	suite.Equal("4512", load.TrailerNo)
	suite.mockLoadRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
	suite.mockDocuments.AssertExpectations(suite.T())
}

func (suite *LoadServiceTestSuite) TestConfirmLoad_DocumentFailureIsWarning() {
	ctx := context.Background()
	current := suite.readyLoad()
	current.Status = domain.StatusOpen
	items := []domain.LoadDetail{{Line: 1, StatusCode: domain.DetailLoaded}}

	confirmed := *current
	confirmed.Status = domain.StatusReady
	confirmed.TrailerNo = "88"

	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(current, nil).Once()
	suite.mockDetailRepo.On("FindDetailsByLoadID", ctx, "L100").Return(items, nil).Once()
	suite.mockLoadRepo.On("UpdateLoad", ctx, "L100", domain.LoadPatch{TrailerNo: strPtr("88")}, domain.StatusReady, suite.now).Return(nil).Once()
	suite.mockAudit.On("RecordStatusChange", ctx, mock.Anything).Return(nil).Once()
	suite.mockAudit.On("RecordAction", ctx, "loads", "L100", domain.ActionUpdate, "Load Confirmed", mock.Anything, suite.actor.Email).Return(nil).Once()
	suite.mockDocuments.On("RenderConfirmedCSV", ctx, "L100", suite.actor).
		Return(nil, "", fmt.Errorf("%w: render failed", apperrors.ErrPersistence)).Once()
	suite.mockDocuments.On("RenderLoadingDoc", ctx, "L100", suite.actor).Return([]byte("pdf"), "loading_doc_L100.pdf", nil).Once()
	suite.mockLoadRepo.On("NotifyLoadChanged", ctx, "loads", "L100").Return(nil).Once()
	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(&confirmed, nil).Once()

	load, warnings, err := suite.service.ConfirmLoad(ctx, "L100", "88", suite.actor)

	suite.Require().NoError(err)
	suite.NotNil(load)
	suite.Contains(warnings, "confirmed CSV could not be generated")
}

func (suite *LoadServiceTestSuite) TestBulkUpdateStatus_PartialFailure() {
	ctx := context.Background()

	first := suite.readyLoad()
	firstDone := *first
	firstDone.Status = domain.StatusShipped

	patch := domain.LoadPatch{Status: statusPtr(domain.StatusShipped)}

	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(first, nil).Once()
	suite.mockLoadRepo.On("UpdateLoad", ctx, "L100", patch, domain.StatusShipped, suite.now).Return(nil).Once()
	suite.mockAudit.On("RecordFieldChanges", ctx, "loads", "L100", mock.Anything, suite.actor.Email).Return(nil).Once()
	suite.mockAudit.On("RecordStatusChange", ctx, mock.Anything).Return(nil).Once()
	suite.mockLoadRepo.On("NotifyLoadChanged", ctx, "loads", "L100").Return(nil).Once()
	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(&firstDone, nil).Once()

	suite.mockLoadRepo.On("FindLoadByID", ctx, "L999").
		Return(nil, fmt.Errorf("%w: load L999", apperrors.ErrNotFound)).Once()

	result, err := suite.service.BulkUpdateStatus(ctx, []string{"L100", "L999"}, domain.StatusShipped, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(1, result.Updated)
	suite.Equal([]string{"L999"}, result.Failed)
}

func (suite *LoadServiceTestSuite) TestUpdateLineItem_RejectedAfterConfirmation() {
	ctx := context.Background()
	detail := &domain.LoadDetail{DetailID: "d-1", LoadID: "L100", Line: 1, StatusCode: domain.DetailOpen}
	load := suite.readyLoad() // StatusReady, so editing is closed

	suite.mockDetailRepo.On("FindDetailByID", ctx, "d-1").Return(detail, nil).Once()
	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(load, nil).Once()

	updated, err := suite.service.UpdateLineItem(ctx, "d-1", dto.UpdateLoadDetailRequest{StatusCode: strPtr("Loaded")}, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(updated)
	suite.mockDetailRepo.AssertNotCalled(suite.T(), "UpdateDetail", mock.Anything, mock.Anything)
}

func (suite *LoadServiceTestSuite) TestUpdateLineItem_MarkOffWithReason() {
	ctx := context.Background()
	detail := &domain.LoadDetail{DetailID: "d-1", LoadID: "L100", Line: 3, StatusCode: domain.DetailOpen}
	load := suite.readyLoad()
	load.Status = domain.StatusOpen

	suite.mockDetailRepo.On("FindDetailByID", ctx, "d-1").Return(detail, nil).Once()
	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").Return(load, nil).Once()
	suite.mockDetailRepo.On("UpdateDetail", ctx, mock.MatchedBy(func(d domain.LoadDetail) bool {
		return d.StatusCode == domain.DetailMarkedOff && d.MarkoffReason == "short on stock"
	})).Return(nil).Once()
	suite.mockAudit.On("RecordFieldChanges", ctx, "load_details", "L100", mock.MatchedBy(func(changes []domain.FieldChange) bool {
		return len(changes) == 2
	}), suite.actor.Email).Return(nil).Once()
	suite.mockLoadRepo.On("NotifyLoadChanged", ctx, "load_details", "L100").Return(nil).Once()

	updated, err := suite.service.UpdateLineItem(ctx, "d-1", dto.UpdateLoadDetailRequest{
		StatusCode:    strPtr("Marked_Off"),
		MarkoffReason: strPtr("short on stock"),
	}, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.DetailMarkedOff, updated.StatusCode)
	suite.Equal("short on stock", updated.MarkoffReason)
	suite.mockDetailRepo.AssertExpectations(suite.T())
}

func (suite *LoadServiceTestSuite) TestListLoads_StatusOutsideVisibleSet() {
	ctx := context.Background()
	operator := domain.UserProfile{
		Email:         "ops@jordancarriers.com",
		Role:          domain.RoleOperator,
		Organization:  domain.OrgJordan,
		CarrierFilter: "Jordan",
	}

	loads, nextToken, err := suite.service.ListLoads(ctx, operator, dto.ListLoadsParams{Status: "Open"})

	suite.Require().NoError(err)
	suite.Empty(loads)
	suite.Empty(nextToken)
	suite.mockLoadRepo.AssertNotCalled(suite.T(), "FindLoads", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoadServiceTestSuite) TestListLoads_AppliesVisibilityFilter() {
	ctx := context.Background()
	operator := domain.UserProfile{
		Email:          "warehouse@wsi.com",
		Role:           domain.RoleOperator,
		Organization:   domain.OrgWSI,
		LocationFilter: "WSI",
	}

	suite.mockLoadRepo.On("FindLoads", ctx, mock.MatchedBy(func(filter domain.LoadFilter) bool {
		return filter.ShipFromLoc == "WSI" && filter.CarrierCode == ""
	}), 50, "").Return([]domain.Load{{LoadID: "L100"}}, "tok", nil).Once()

	loads, nextToken, err := suite.service.ListLoads(ctx, operator, dto.ListLoadsParams{})

	suite.Require().NoError(err)
	suite.Len(loads, 1)
	suite.Equal("tok", nextToken)
	suite.mockLoadRepo.AssertExpectations(suite.T())
}

func TestLoadServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoadServiceTestSuite))
}
