package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ulascansenturk/farm-records/internal/db/farm"
	"ulascansenturk/farm-records/internal/service"
)

type MockFarmService struct {
	mock.Mock
}

func (m *MockFarmService) CreateFarm(ctx context.Context, req service.CreateFarmRequest) (*farm.Farm, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farm.Farm), args.Error(1)
}

func (m *MockFarmService) GetFarm(ctx context.Context, id uint) (*farm.Farm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farm.Farm), args.Error(1)
}

func (m *MockFarmService) ListFarms(ctx context.Context) ([]farm.Farm, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]farm.Farm), args.Error(1)
}

func (m *MockFarmService) DeleteFarm(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func NewMockFarmService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFarmService {
	m := &MockFarmService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
