package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ulascansenturk/farm-records/internal/db/farm"
)

var ErrInvalidFarm = errors.New("invalid farm")

type CreateFarmRequest struct {
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Area      float64  `json:"area"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type FarmService interface {
	CreateFarm(ctx context.Context, req CreateFarmRequest) (*farm.Farm, error)
	GetFarm(ctx context.Context, id uint) (*farm.Farm, error)
	ListFarms(ctx context.Context) ([]farm.Farm, error)
	DeleteFarm(ctx context.Context, id uint) error
}

type farmService struct {
	farms farm.Repository
}

func NewFarmService(farms farm.Repository) FarmService {
	return &farmService{farms: farms}
}

func (s *farmService) CreateFarm(ctx context.Context, req CreateFarmRequest) (*farm.Farm, error) {
	name := strings.TrimSpace(req.Name)
	location := strings.TrimSpace(req.Location)

	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidFarm)
	case location == "":
		return nil, fmt.Errorf("%w: location cannot be empty", ErrInvalidFarm)
	case req.Area < 0:
		return nil, fmt.Errorf("%w: area cannot be negative", ErrInvalidFarm)
	case (req.Latitude == nil) != (req.Longitude == nil):
		return nil, fmt.Errorf("%w: latitude and longitude must be set together", ErrInvalidFarm)
	case req.Latitude != nil && (*req.Latitude < -90 || *req.Latitude > 90):
		return nil, fmt.Errorf("%w: latitude out of range", ErrInvalidFarm)
	case req.Longitude != nil && (*req.Longitude < -180 || *req.Longitude > 180):
		return nil, fmt.Errorf("%w: longitude out of range", ErrInvalidFarm)
	}

	f := &farm.Farm{
		Name:      name,
		Location:  location,
		Area:      req.Area,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := s.farms.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *farmService) GetFarm(ctx context.Context, id uint) (*farm.Farm, error) {
	return s.farms.Get(ctx, id)
}

func (s *farmService) ListFarms(ctx context.Context) ([]farm.Farm, error) {
	return s.farms.List(ctx)
}

func (s *farmService) DeleteFarm(ctx context.Context, id uint) error {
	return s.farms.Delete(ctx, id)
}
