package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"ulascansenturk/farm-records/internal/db/farm"
	"ulascansenturk/farm-records/internal/db/weatherrecord"
	"ulascansenturk/farm-records/internal/inmemorycache"
	"ulascansenturk/farm-records/internal/observability"
	"ulascansenturk/farm-records/internal/providers"
	"ulascansenturk/farm-records/internal/weather"
)

const DefaultRecentLimit = 20

type IngestResult struct {
	Record   weatherrecord.WeatherRecord `json:"record"`
	Forecast []weather.Observation       `json:"forecast"`
}

type WeatherService interface {
	// Ingest stores today's conditions for the farm and returns them with the forecast.
	Ingest(ctx context.Context, farmID uint) (IngestResult, error)
	Forecast(ctx context.Context, farmID uint) ([]weather.Observation, error)
	RecentRecords(ctx context.Context, limit int) ([]weatherrecord.WeatherRecord, error)
	Shutdown()
}

type WeatherServiceOptions struct {
	// GeocodeSuffix is appended to the farm location before geocoding, e.g. ", Japan".
	GeocodeSuffix string
	RecentLimit   int
	IngestTimeout time.Duration

	// ForecastCache is optional. Non-empty forecasts are kept for
	// ForecastCacheTTL per coordinate pair.
	ForecastCache    inmemorycache.Cache
	ForecastCacheTTL time.Duration
}

type weatherService struct {
	provider   providers.WeatherProvider
	farms      farm.Repository
	records    weatherrecord.Repository
	aggregator IngestRequestAggregator
	opts       WeatherServiceOptions
	metrics    *observability.Metrics
	logger     zerolog.Logger
}

func NewWeatherService(
	provider providers.WeatherProvider,
	farms farm.Repository,
	records weatherrecord.Repository,
	opts WeatherServiceOptions,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) WeatherService {
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = DefaultRecentLimit
	}

	s := &weatherService{
		provider: provider,
		farms:    farms,
		records:  records,
		opts:     opts,
		metrics:  metrics,
		logger:   logger.With().Str("component", "weather_service").Logger(),
	}
	s.aggregator = NewIngestRequestAggregator(s.ingest, opts.IngestTimeout, metrics)

	return s
}

func (s *weatherService) Ingest(ctx context.Context, farmID uint) (IngestResult, error) {
	responseChan, err := s.aggregator.AddRequest(ctx, farmID)
	if err != nil {
		return IngestResult{}, err
	}

	select {
	case response := <-responseChan:
		return response.Result, response.Err
	case <-ctx.Done():
		return IngestResult{}, ctx.Err()
	}
}

func (s *weatherService) ingest(ctx context.Context, farmID uint) (IngestResult, error) {
	logger := s.logger.With().Uint("farm_id", farmID).Logger()

	f, err := s.farms.Get(ctx, farmID)
	if err != nil {
		return IngestResult{}, err
	}

	coords, err := s.coordinates(ctx, f)
	if err != nil {
		return IngestResult{}, err
	}

	obs, err := s.provider.FetchCurrent(ctx, coords)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch current weather")
		return IngestResult{}, fmt.Errorf("fetch current weather: %w", err)
	}

	if obs.WeatherCondition != nil {
		obs.SunshineHours = weather.Float(weather.EstimateSunshineHours(*obs.WeatherCondition))
	}

	record, err := s.records.Upsert(ctx, farmID, obs)
	if err != nil {
		s.countUpsert("error")
		logger.Error().Err(err).Msg("failed to store weather record")
		return IngestResult{}, fmt.Errorf("store weather record: %w", err)
	}
	s.countUpsert("success")

	logger.Info().
		Str("date", weather.FormatDate(record.Date)).
		Float64("max_temperature", record.MaxTemperature).
		Float64("rainfall", record.Rainfall).
		Msg("weather record stored")

	return IngestResult{
		Record:   *record,
		Forecast: s.forecast(ctx, coords),
	}, nil
}

func (s *weatherService) Forecast(ctx context.Context, farmID uint) ([]weather.Observation, error) {
	f, err := s.farms.Get(ctx, farmID)
	if err != nil {
		return nil, err
	}

	coords, err := s.coordinates(ctx, f)
	if err != nil {
		return nil, err
	}

	return s.forecast(ctx, coords), nil
}

func (s *weatherService) RecentRecords(ctx context.Context, limit int) ([]weatherrecord.WeatherRecord, error) {
	if limit <= 0 {
		limit = s.opts.RecentLimit
	}
	return s.records.ListRecent(ctx, limit)
}

func (s *weatherService) Shutdown() {
	s.aggregator.Shutdown()
}

// coordinates returns the farm's cached position, geocoding and caching it on
// the farm when missing.
func (s *weatherService) coordinates(ctx context.Context, f *farm.Farm) (weather.Coordinates, error) {
	if coords, ok := f.Coordinates(); ok {
		s.countCoordinates("hit")
		return coords, nil
	}
	s.countCoordinates("miss")

	coords, err := s.provider.ResolveCoordinates(ctx, f.Location+s.opts.GeocodeSuffix)
	if err != nil {
		s.logger.Warn().Err(err).Uint("farm_id", f.ID).Str("location", f.Location).Msg("failed to resolve farm coordinates")
		return weather.Coordinates{}, fmt.Errorf("resolve coordinates: %w", err)
	}

	if err := s.farms.UpdateCoordinates(ctx, f.ID, coords); err != nil {
		// the next ingestion geocodes again; the weather fetch can still go ahead
		s.logger.Error().Err(err).Uint("farm_id", f.ID).Msg("failed to cache farm coordinates")
	} else {
		f.Latitude = weather.Float(coords.Lat)
		f.Longitude = weather.Float(coords.Lon)
	}

	return coords, nil
}

func (s *weatherService) forecast(ctx context.Context, coords weather.Coordinates) []weather.Observation {
	cache := s.opts.ForecastCache
	if cache == nil || s.opts.ForecastCacheTTL <= 0 {
		return s.provider.FetchForecast(ctx, coords)
	}

	days, found, err := cache.Get(coords)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read cached forecast")
	}
	if found {
		return days
	}

	days = s.provider.FetchForecast(ctx, coords)
	if len(days) == 0 {
		return days
	}
	if err := cache.Set(coords, days, s.opts.ForecastCacheTTL); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache forecast")
	}
	return days
}

func (s *weatherService) countCoordinates(result string) {
	if s.metrics != nil {
		s.metrics.CoordinateCache.WithLabelValues(result).Inc()
	}
}

func (s *weatherService) countUpsert(outcome string) {
	if s.metrics != nil {
		s.metrics.WeatherUpserts.WithLabelValues(outcome).Inc()
	}
}
