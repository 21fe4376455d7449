package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"ulascansenturk/farm-records/internal/db/farm"
	"ulascansenturk/farm-records/internal/mocks"
	"ulascansenturk/farm-records/internal/service"
	"ulascansenturk/farm-records/internal/weather"
)

type FarmServiceTestSuite struct {
	suite.Suite
	farms   *mocks.MockFarmRepository
	service service.FarmService
	ctx     context.Context
}

func (s *FarmServiceTestSuite) SetupTest() {
	s.farms = mocks.NewMockFarmRepository(s.T())
	s.service = service.NewFarmService(s.farms)
	s.ctx = context.Background()
}

func (s *FarmServiceTestSuite) TestCreateFarmTrimsInput() {
	s.farms.On("Create", mock.Anything, mock.MatchedBy(func(f *farm.Farm) bool {
		return f.Name == "North Field" && f.Location == "Tsukuba" && f.Latitude == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*farm.Farm).ID = 7
	}).Return(nil).Once()

	f, err := s.service.CreateFarm(s.ctx, service.CreateFarmRequest{
		Name:     "  North Field ",
		Location: "Tsukuba  ",
		Area:     1.5,
	})

	s.Require().NoError(err)
	s.Equal(uint(7), f.ID)
	s.Equal(1.5, f.Area)
}

func (s *FarmServiceTestSuite) TestCreateFarmWithCoordinates() {
	s.farms.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	f, err := s.service.CreateFarm(s.ctx, service.CreateFarmRequest{
		Name:      "South Field",
		Location:  "Mito",
		Latitude:  weather.Float(36.37),
		Longitude: weather.Float(140.47),
	})

	s.Require().NoError(err)
	coords, ok := f.Coordinates()
	s.True(ok)
	s.Equal(weather.Coordinates{Lat: 36.37, Lon: 140.47}, coords)
}

func (s *FarmServiceTestSuite) TestCreateFarmValidation() {
	cases := []struct {
		name string
		req  service.CreateFarmRequest
		msg  string
	}{
		{"missing name", service.CreateFarmRequest{Location: "Mito"}, "name cannot be empty"},
		{"blank location", service.CreateFarmRequest{Name: "A", Location: "  "}, "location cannot be empty"},
		{"negative area", service.CreateFarmRequest{Name: "A", Location: "Mito", Area: -1}, "area cannot be negative"},
		{"latitude only", service.CreateFarmRequest{Name: "A", Location: "Mito", Latitude: weather.Float(36)}, "set together"},
		{"latitude range", service.CreateFarmRequest{Name: "A", Location: "Mito", Latitude: weather.Float(91), Longitude: weather.Float(0)}, "latitude out of range"},
		{"longitude range", service.CreateFarmRequest{Name: "A", Location: "Mito", Latitude: weather.Float(0), Longitude: weather.Float(-181)}, "longitude out of range"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.CreateFarm(s.ctx, tc.req)
			s.Require().Error(err)
			s.ErrorIs(err, service.ErrInvalidFarm)
			s.Contains(err.Error(), tc.msg)
		})
	}
	s.farms.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *FarmServiceTestSuite) TestCreateFarmRepositoryError() {
	s.farms.On("Create", mock.Anything, mock.Anything).Return(errors.New("database unavailable")).Once()

	f, err := s.service.CreateFarm(s.ctx, service.CreateFarmRequest{Name: "A", Location: "Mito"})

	s.Nil(f)
	s.EqualError(err, "database unavailable")
}

func (s *FarmServiceTestSuite) TestGetAndDeletePassThroughNotFound() {
	s.farms.On("Get", mock.Anything, uint(9)).Return(nil, farm.ErrFarmNotFound).Once()
	s.farms.On("Delete", mock.Anything, uint(9)).Return(farm.ErrFarmNotFound).Once()

	_, err := s.service.GetFarm(s.ctx, 9)
	s.ErrorIs(err, farm.ErrFarmNotFound)

	err = s.service.DeleteFarm(s.ctx, 9)
	s.ErrorIs(err, farm.ErrFarmNotFound)
}

func (s *FarmServiceTestSuite) TestListFarms() {
	s.farms.On("List", mock.Anything).Return([]farm.Farm{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, nil).Once()

	farms, err := s.service.ListFarms(s.ctx)

	s.Require().NoError(err)
	s.Len(farms, 2)
}

func TestFarmServiceSuite(t *testing.T) {
	suite.Run(t, new(FarmServiceTestSuite))
}
