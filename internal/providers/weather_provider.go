package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"ulascansenturk/farm-records/internal/observability"
	"ulascansenturk/farm-records/internal/weather"
)

const (
	endpointGeocode  = "geocode"
	endpointCurrent  = "current"
	endpointForecast = "forecast"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type WeatherProvider interface {
	ResolveCoordinates(ctx context.Context, location string) (weather.Coordinates, error)
	FetchCurrent(ctx context.Context, coords weather.Coordinates) (weather.Observation, error)
	FetchForecast(ctx context.Context, coords weather.Coordinates) []weather.Observation
}

type Config struct {
	APIKey  string
	BaseURL string
	GeoURL  string
	Lang    string
	Units   string

	// Location decides which calendar day an instant belongs to.
	Location     *time.Location
	ForecastDays int
}

type OpenWeatherClient struct {
	cfg     Config
	client  HTTPClient
	clock   clockwork.Clock
	metrics *observability.Metrics
	logger  zerolog.Logger
}

func NewOpenWeatherClient(
	cfg Config,
	httpClient HTTPClient,
	clock clockwork.Clock,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *OpenWeatherClient {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Units == "" {
		cfg.Units = "metric"
	}
	if cfg.ForecastDays <= 0 {
		cfg.ForecastDays = weather.DefaultForecastDays
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &OpenWeatherClient{
		cfg:     cfg,
		client:  httpClient,
		clock:   clock,
		metrics: metrics,
		logger:  logger.With().Str("component", "openweather").Logger(),
	}
}

// ResolveCoordinates geocodes free-text location to the provider's best match.
func (c *OpenWeatherClient) ResolveCoordinates(ctx context.Context, location string) (weather.Coordinates, error) {
	if c.cfg.APIKey == "" {
		c.observe(endpointGeocode, "unconfigured", 0)
		return weather.Coordinates{}, ErrConfigurationMissing
	}

	params := url.Values{
		"q":     {location},
		"limit": {"1"},
		"appid": {c.cfg.APIKey},
	}

	var results []geocodeResult
	if err := c.getJSON(ctx, endpointGeocode, c.cfg.GeoURL+"/direct", params, &results); err != nil {
		return weather.Coordinates{}, err
	}

	if len(results) == 0 {
		c.logger.Warn().Str("location", location).Msg("geocoding returned no match")
		return weather.Coordinates{}, fmt.Errorf("%w: %q", ErrLocationNotFound, location)
	}

	return weather.Coordinates{Lat: results[0].Lat, Lon: results[0].Lon}, nil
}

// FetchCurrent returns the present conditions as an observation for today.
func (c *OpenWeatherClient) FetchCurrent(ctx context.Context, coords weather.Coordinates) (weather.Observation, error) {
	if c.cfg.APIKey == "" {
		c.observe(endpointCurrent, "unconfigured", 0)
		return weather.Observation{}, ErrConfigurationMissing
	}

	var resp CurrentWeatherResponse
	if err := c.getJSON(ctx, endpointCurrent, c.cfg.BaseURL+"/weather", c.weatherParams(coords), &resp); err != nil {
		return weather.Observation{}, err
	}

	return weather.Observation{
		Date:             weather.CalendarDay(c.clock.Now(), c.cfg.Location),
		MaxTemperature:   resp.Main.TempMax,
		MinTemperature:   resp.Main.TempMin,
		Rainfall:         selectRainfall(resp.Rain),
		Humidity:         weather.Float(resp.Main.Humidity),
		WindSpeed:        weather.Float(resp.Wind.Speed),
		WeatherCondition: firstDescription(resp.Weather),
		Pressure:         weather.Float(resp.Main.Pressure),
		SoilTemperature:  weather.Float(weather.EstimateSoilTemperature(resp.Main.Temp)),
	}, nil
}

// FetchForecast returns up to ForecastDays daily observations. Any failure
// yields an empty slice; the cause is logged.
func (c *OpenWeatherClient) FetchForecast(ctx context.Context, coords weather.Coordinates) []weather.Observation {
	if c.cfg.APIKey == "" {
		c.observe(endpointForecast, "unconfigured", 0)
		c.logger.Error().Err(ErrConfigurationMissing).Msg("forecast skipped")
		return []weather.Observation{}
	}

	var resp ForecastResponse
	if err := c.getJSON(ctx, endpointForecast, c.cfg.BaseURL+"/forecast", c.weatherParams(coords), &resp); err != nil {
		c.logger.Error().Err(err).Msg("forecast unavailable")
		return []weather.Observation{}
	}

	samples := make([]weather.Sample, 0, len(resp.List))
	for _, item := range resp.List {
		var rain3h *float64
		if item.Rain != nil {
			rain3h = item.Rain.ThreeHour
		}
		samples = append(samples, weather.Sample{
			Time:        time.Unix(item.Dt, 0),
			Temperature: item.Main.Temp,
			TempMin:     item.Main.TempMin,
			TempMax:     item.Main.TempMax,
			Humidity:    item.Main.Humidity,
			Pressure:    item.Main.Pressure,
			WindSpeed:   item.Wind.Speed,
			Condition:   firstDescription(item.Weather),
			Rain3h:      rain3h,
		})
	}

	return weather.FoldForecast(samples, c.cfg.Location, c.cfg.ForecastDays)
}

func (c *OpenWeatherClient) weatherParams(coords weather.Coordinates) url.Values {
	params := url.Values{
		"lat":   {strconv.FormatFloat(coords.Lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(coords.Lon, 'f', -1, 64)},
		"appid": {c.cfg.APIKey},
		"units": {c.cfg.Units},
	}
	if c.cfg.Lang != "" {
		params.Set("lang", c.cfg.Lang)
	}
	return params
}

func (c *OpenWeatherClient) getJSON(ctx context.Context, endpoint, rawURL string, params url.Values, out any) error {
	start := c.clock.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		c.observe(endpoint, "error", 0)
		return fmt.Errorf("%w: create %s request: %v", ErrUnavailable, endpoint, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.observe(endpoint, "error", c.clock.Since(start))
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("provider request failed")
		return fmt.Errorf("%w: %s request failed: %v", ErrUnavailable, endpoint, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Error().Err(cerr).Str("endpoint", endpoint).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		c.observe(endpoint, "error", c.clock.Since(start))
		c.logger.Error().Str("endpoint", endpoint).Str("status", resp.Status).Msg("provider returned non-200 status")
		return fmt.Errorf("%w: %s returned status code: %d", ErrUnavailable, endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.observe(endpoint, "error", c.clock.Since(start))
		return fmt.Errorf("%w: %s returned malformed JSON: %v", ErrUnavailable, endpoint, err)
	}

	duration := c.clock.Since(start)
	c.observe(endpoint, "success", duration)
	c.logger.Debug().Str("endpoint", endpoint).Dur("duration", duration).Msg("provider request succeeded")

	return nil
}

func (c *OpenWeatherClient) observe(endpoint, outcome string, d time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.ProviderRequests.WithLabelValues(endpoint, outcome).Inc()
	if d > 0 {
		c.metrics.ProviderDuration.WithLabelValues(endpoint).Observe(d.Seconds())
	}
}
