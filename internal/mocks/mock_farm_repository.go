package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ulascansenturk/farm-records/internal/db/farm"
	"ulascansenturk/farm-records/internal/weather"
)

type MockFarmRepository struct {
	mock.Mock
}

func (m *MockFarmRepository) Create(ctx context.Context, f *farm.Farm) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFarmRepository) Get(ctx context.Context, id uint) (*farm.Farm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farm.Farm), args.Error(1)
}

func (m *MockFarmRepository) List(ctx context.Context) ([]farm.Farm, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]farm.Farm), args.Error(1)
}

func (m *MockFarmRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFarmRepository) UpdateCoordinates(ctx context.Context, id uint, coords weather.Coordinates) error {
	args := m.Called(ctx, id, coords)
	return args.Error(0)
}

func NewMockFarmRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFarmRepository {
	m := &MockFarmRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
