package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ulascansenturk/farm-records/internal/weather"
)

type MockWeatherProvider struct {
	mock.Mock
}

func (m *MockWeatherProvider) ResolveCoordinates(ctx context.Context, location string) (weather.Coordinates, error) {
	args := m.Called(ctx, location)
	return args.Get(0).(weather.Coordinates), args.Error(1)
}

func (m *MockWeatherProvider) FetchCurrent(ctx context.Context, coords weather.Coordinates) (weather.Observation, error) {
	args := m.Called(ctx, coords)
	return args.Get(0).(weather.Observation), args.Error(1)
}

func (m *MockWeatherProvider) FetchForecast(ctx context.Context, coords weather.Coordinates) []weather.Observation {
	args := m.Called(ctx, coords)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]weather.Observation)
}

func NewMockWeatherProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWeatherProvider {
	m := &MockWeatherProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
