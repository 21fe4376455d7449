package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"ulascansenturk/farm-records/internal/db/weatherrecord"
	"ulascansenturk/farm-records/internal/weather"
)

type MockWeatherRecordRepository struct {
	mock.Mock
}

func (m *MockWeatherRecordRepository) Upsert(ctx context.Context, farmID uint, obs weather.Observation) (*weatherrecord.WeatherRecord, error) {
	args := m.Called(ctx, farmID, obs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*weatherrecord.WeatherRecord), args.Error(1)
}

func (m *MockWeatherRecordRepository) Get(ctx context.Context, farmID uint, date time.Time) (*weatherrecord.WeatherRecord, error) {
	args := m.Called(ctx, farmID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*weatherrecord.WeatherRecord), args.Error(1)
}

func (m *MockWeatherRecordRepository) ListRecent(ctx context.Context, limit int) ([]weatherrecord.WeatherRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]weatherrecord.WeatherRecord), args.Error(1)
}

func (m *MockWeatherRecordRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func NewMockWeatherRecordRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWeatherRecordRepository {
	m := &MockWeatherRecordRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
