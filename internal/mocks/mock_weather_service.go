package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ulascansenturk/farm-records/internal/db/weatherrecord"
	"ulascansenturk/farm-records/internal/service"
	"ulascansenturk/farm-records/internal/weather"
)

type MockWeatherService struct {
	mock.Mock
}

func (m *MockWeatherService) Ingest(ctx context.Context, farmID uint) (service.IngestResult, error) {
	args := m.Called(ctx, farmID)
	return args.Get(0).(service.IngestResult), args.Error(1)
}

func (m *MockWeatherService) Forecast(ctx context.Context, farmID uint) ([]weather.Observation, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]weather.Observation), args.Error(1)
}

func (m *MockWeatherService) RecentRecords(ctx context.Context, limit int) ([]weatherrecord.WeatherRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]weatherrecord.WeatherRecord), args.Error(1)
}

func (m *MockWeatherService) Shutdown() {
	m.Called()
}

func NewMockWeatherService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWeatherService {
	m := &MockWeatherService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
