package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/willbanks/load-coordinator/internal/core/domain"
)

// MockLoadRepository is a mock type for the LoadRepositoryFacade interface
type MockLoadRepository struct {
	mock.Mock
}

func (m *MockLoadRepository) FindLoadByID(ctx context.Context, loadID string) (*domain.Load, error) {
	args := m.Called(ctx, loadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Load), args.Error(1)
}

func (m *MockLoadRepository) FindLoads(ctx context.Context, filter domain.LoadFilter, limit int, nextToken string) ([]domain.Load, string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.Load), args.String(1), args.Error(2)
}

func (m *MockLoadRepository) SaveLoad(ctx context.Context, load domain.Load) error {
	args := m.Called(ctx, load)
	return args.Error(0)
}

func (m *MockLoadRepository) UpdateLoad(ctx context.Context, loadID string, patch domain.LoadPatch, finalStatus domain.LoadStatus, updatedAt time.Time) error {
	args := m.Called(ctx, loadID, patch, finalStatus, updatedAt)
	return args.Error(0)
}

func (m *MockLoadRepository) UpdateLoadStatus(ctx context.Context, loadID string, status domain.LoadStatus, updatedAt time.Time) error {
	args := m.Called(ctx, loadID, status, updatedAt)
	return args.Error(0)
}

func (m *MockLoadRepository) UpsertLoads(ctx context.Context, loads []domain.Load) error {
	args := m.Called(ctx, loads)
	return args.Error(0)
}

func (m *MockLoadRepository) NotifyLoadChanged(ctx context.Context, tableName, loadID string) error {
	args := m.Called(ctx, tableName, loadID)
	return args.Error(0)
}

// MockLoadDetailRepository is a mock type for the LoadDetailRepositoryFacade interface
type MockLoadDetailRepository struct {
	mock.Mock
}

func (m *MockLoadDetailRepository) FindDetailByID(ctx context.Context, detailID string) (*domain.LoadDetail, error) {
	args := m.Called(ctx, detailID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoadDetail), args.Error(1)
}

func (m *MockLoadDetailRepository) FindDetailsByLoadID(ctx context.Context, loadID string) ([]domain.LoadDetail, error) {
	args := m.Called(ctx, loadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoadDetail), args.Error(1)
}

func (m *MockLoadDetailRepository) UpdateDetail(ctx context.Context, detail domain.LoadDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *MockLoadDetailRepository) ReplaceDetailsForLoads(ctx context.Context, loadIDs []string, details []domain.LoadDetail) error {
	args := m.Called(ctx, loadIDs, details)
	return args.Error(0)
}

// MockStopDetailRepository is a mock type for the StopDetailRepositoryFacade interface
type MockStopDetailRepository struct {
	mock.Mock
}

func (m *MockStopDetailRepository) FindStopsByLoadID(ctx context.Context, loadID string) ([]domain.StopDetail, error) {
	args := m.Called(ctx, loadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StopDetail), args.Error(1)
}

func (m *MockStopDetailRepository) ReplaceStopsForLoads(ctx context.Context, loadIDs []string, stops []domain.StopDetail) error {
	args := m.Called(ctx, loadIDs, stops)
	return args.Error(0)
}

// MockAuditService is a mock type for the AuditSvc interface
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) RecordFieldChanges(ctx context.Context, tableName, recordID string, changes []domain.FieldChange, userEmail string) error {
	args := m.Called(ctx, tableName, recordID, changes, userEmail)
	return args.Error(0)
}

func (m *MockAuditService) RecordAction(ctx context.Context, tableName, recordID string, action domain.AuditAction, fieldName, detail, userEmail string) error {
	args := m.Called(ctx, tableName, recordID, action, fieldName, detail, userEmail)
	return args.Error(0)
}

func (m *MockAuditService) RecordStatusChange(ctx context.Context, change domain.StatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *MockAuditService) GetLoadHistory(ctx context.Context, loadID string) ([]domain.AuditEvent, []domain.StatusChange, error) {
	args := m.Called(ctx, loadID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.AuditEvent), args.Get(1).([]domain.StatusChange), args.Error(2)
}

// MockDocumentService is a mock type for the DocumentSvc interface
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) RenderLoadingDoc(ctx context.Context, loadID string, actor domain.UserProfile) ([]byte, string, error) {
	args := m.Called(ctx, loadID, actor)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockDocumentService) RenderBillOfLading(ctx context.Context, loadID string, actor domain.UserProfile) ([]byte, string, error) {
	args := m.Called(ctx, loadID, actor)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockDocumentService) RenderConfirmedCSV(ctx context.Context, loadID string, actor domain.UserProfile) ([]byte, string, error) {
	args := m.Called(ctx, loadID, actor)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
