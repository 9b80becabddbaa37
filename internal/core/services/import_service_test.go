package services_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/willbanks/load-coordinator/internal/apperrors"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
	"github.com/willbanks/load-coordinator/internal/core/services"
	"github.com/xuri/excelize/v2"
)

type ImportServiceTestSuite struct {
	suite.Suite
	mockLoadRepo   *MockLoadRepository
	mockDetailRepo *MockLoadDetailRepository
	mockStopRepo   *MockStopDetailRepository
	mockAudit      *MockAuditService
	service        portssvc.ImportSvc
	now            time.Time
	actor          domain.UserProfile
}

func (suite *ImportServiceTestSuite) SetupTest() {
	suite.mockLoadRepo = new(MockLoadRepository)
	suite.mockDetailRepo = new(MockLoadDetailRepository)
	suite.mockStopRepo = new(MockStopDetailRepository)
	suite.mockAudit = new(MockAuditService)
	suite.now = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	suite.actor = domain.UserProfile{
		UserID: "user-1",
		Email:  "dispatch@willbanks.com",
		Role:   domain.RoleAdmin,
	}
	suite.service = services.NewImportService(
		suite.mockLoadRepo,
		suite.mockDetailRepo,
		suite.mockStopRepo,
		suite.mockAudit,
		services.WithImportClock(func() time.Time { return suite.now }),
	)
}

func (suite *ImportServiceTestSuite) TestImportLoadsCSV_MissingHeader() {
	ctx := context.Background()
	csv := "LOAD_ID,SHIP_FROM_LOC\nL100,WSI\n"

	_, err := suite.service.ImportLoadsCSV(ctx, strings.NewReader(csv), suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "STATUS")
	suite.mockLoadRepo.AssertNotCalled(suite.T(), "UpsertLoads", mock.Anything, mock.Anything)
}

func (suite *ImportServiceTestSuite) TestImportLoadsCSV_MixedRows() {
	ctx := context.Background()
	csv := strings.Join([]string{
		"LOAD_ID,SHIP_FROM_LOC,CARRIER_CODE,STATUS,SHIP_REQ_DATE",
		"L100,WSI,Jordan,Open,2025-03-20",
		"L101,WSI,,Bogus,",
		"L102,Willbanks,,Ready,not-a-date",
		"",
	}, "\n")

	suite.mockLoadRepo.On("UpsertLoads", ctx, mock.MatchedBy(func(loads []domain.Load) bool {
		return len(loads) == 2 && loads[0].LoadID == "L100" && loads[1].LoadID == "L102"
	})).Return(nil).Once()
	suite.mockAudit.On("RecordAction", ctx, "loads", mock.Anything, domain.ActionCreate, "CSV Import", mock.Anything, suite.actor.Email).Return(nil).Twice()
	suite.mockLoadRepo.On("NotifyLoadChanged", ctx, "loads", "").Return(nil).Once()

	result, err := suite.service.ImportLoadsCSV(ctx, strings.NewReader(csv), suite.actor)

	suite.Require().NoError(err)
	suite.Equal(3, result.RowCount)
	suite.Equal(2, result.ValidRows)
	suite.Len(result.Errors, 1)
	suite.Contains(result.Errors[0], `unknown status "Bogus"`)
	suite.Len(result.Warnings, 1)
	suite.Contains(result.Warnings[0], "SHIP_REQ_DATE")
	suite.mockLoadRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestImportDetailsCSV_ReplacesByLoad() {
	ctx := context.Background()
	csv := strings.Join([]string{
		"LOAD_ID,Line,ItemDesc,QtyOrdered,QtyShipped",
		"L100,1,Rebar #5,100,0",
		"L100,2,Wire mesh,abc,0",
		"L101,1,Angle iron,25,25",
		"",
	}, "\n")

	suite.mockDetailRepo.On("ReplaceDetailsForLoads", ctx, mock.MatchedBy(func(loadIDs []string) bool {
		return len(loadIDs) == 2
	}), mock.MatchedBy(func(details []domain.LoadDetail) bool {
		return len(details) == 2
	})).Return(nil).Once()
	suite.mockLoadRepo.On("NotifyLoadChanged", ctx, "load_details", "").Return(nil).Once()

	result, err := suite.service.ImportDetailsCSV(ctx, strings.NewReader(csv), suite.actor)

	suite.Require().NoError(err)
	suite.Equal(3, result.RowCount)
	suite.Equal(2, result.ValidRows)
	suite.Len(result.Errors, 1)
	suite.Contains(result.Errors[0], "QtyOrdered must be numeric")
	suite.mockDetailRepo.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestImportStopsCSV_Valid() {
	ctx := context.Background()
	csv := strings.Join([]string{
		`LOAD_ID,SeqNo,Cust Name,Address,Miles,Weight`,
		`L100,1,Acme Steel,"100 Main St, Waco TX",120.5,44000`,
		"",
	}, "\n")

	suite.mockStopRepo.On("ReplaceStopsForLoads", ctx, []string{"L100"}, mock.MatchedBy(func(stops []domain.StopDetail) bool {
		return len(stops) == 1 && stops[0].CustName == "Acme Steel" && stops[0].Miles.String() == "120.5"
	})).Return(nil).Once()

	result, err := suite.service.ImportStopsCSV(ctx, strings.NewReader(csv), suite.actor)

	suite.Require().NoError(err)
	suite.Equal(1, result.ValidRows)
	suite.Empty(result.Errors)
	suite.mockStopRepo.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) workbook(rows [][]any) *bytes.Buffer {
	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			suite.Require().NoError(err)
			suite.Require().NoError(wb.SetCellValue(sheet, cell, val))
		}
	}
	buf, err := wb.WriteToBuffer()
	suite.Require().NoError(err)
	return buf
}

func (suite *ImportServiceTestSuite) TestSyncFromWorkbook_Precedence() {
	ctx := context.Background()
	buf := suite.workbook([][]any{
		{"LOAD_ID", "SHIP_FROM_LOC", "CARRIER_CODE", "STATUS"},
		{"L200", "WSI", "Jordan", "Open"},     // unknown: created
		{"L100", "WSI", "Jordan", "Shipped"},  // outranks Ready: updated
		{"L101", "WSI", "Jordan", "Open"},     // Assigned locally: skipped
	})

	suite.mockLoadRepo.On("FindLoadByID", ctx, "L200").
		Return(nil, fmt.Errorf("%w: load L200", apperrors.ErrNotFound)).Once()
	suite.mockLoadRepo.On("UpsertLoads", ctx, mock.MatchedBy(func(loads []domain.Load) bool {
		return len(loads) == 1 && loads[0].LoadID == "L200" &&
			loads[0].Status == domain.StatusOpen && loads[0].ShipReqDate != nil
	})).Return(nil).Once()
	suite.mockAudit.On("RecordAction", ctx, "loads", "L200", domain.ActionCreate, "ERP Sync", mock.Anything, suite.actor.Email).Return(nil).Once()

	suite.mockLoadRepo.On("FindLoadByID", ctx, "L100").
		Return(&domain.Load{LoadID: "L100", Status: domain.StatusReady}, nil).Once()
	suite.mockLoadRepo.On("UpdateLoad", ctx, "L100", mock.MatchedBy(func(patch domain.LoadPatch) bool {
		return patch.Status != nil && *patch.Status == domain.StatusShipped
	}), domain.StatusShipped, suite.now).Return(nil).Once()
	suite.mockAudit.On("RecordStatusChange", ctx, mock.MatchedBy(func(change domain.StatusChange) bool {
		return change.LoadID == "L100" && change.NewStatus == domain.StatusShipped && change.Notes == "ERP workbook sync"
	})).Return(nil).Once()

	suite.mockLoadRepo.On("FindLoadByID", ctx, "L101").
		Return(&domain.Load{LoadID: "L101", Status: domain.StatusAssigned}, nil).Once()

	suite.mockLoadRepo.On("NotifyLoadChanged", ctx, "loads", "").Return(nil).Once()

	result, err := suite.service.SyncFromWorkbook(ctx, buf, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(1, result.Created)
	suite.Equal(1, result.Updated)
	suite.Equal(1, result.Skipped)
	suite.Empty(result.Errors)
	suite.mockLoadRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestSyncFromWorkbook_MissingLoadIDColumn() {
	ctx := context.Background()
	buf := suite.workbook([][]any{
		{"SHIP_FROM_LOC", "STATUS"},
		{"WSI", "Open"},
	})

	_, err := suite.service.SyncFromWorkbook(ctx, buf, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "LOAD_ID")
}

func TestImportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ImportServiceTestSuite))
}
