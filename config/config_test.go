package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ulascansenturk/farm-records/config"
)

func TestLoadConfigDefaults(t *testing.T) {

	conf, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "farm-records", conf.ServiceName)
	assert.Equal(t, config.StorageDriverPostgres, conf.StorageDriver)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5", conf.OpenWeatherBaseURL)
	assert.Equal(t, "https://api.openweathermap.org/geo/1.0", conf.OpenWeatherGeoURL)
	assert.Equal(t, "ja", conf.OpenWeatherLang)
	assert.Equal(t, "metric", conf.OpenWeatherUnits)
	assert.Equal(t, ", Japan", conf.GeocodeQuerySuffix)
	assert.Equal(t, 5, conf.ForecastDays)
	assert.Equal(t, 10*time.Second, conf.ProviderTimeout)
	assert.Equal(t, 10*time.Minute, conf.ForecastCacheTTL)
	assert.Equal(t, 20, conf.RecentRecordsLimit)
	assert.Equal(t, 175*time.Second, conf.HTTPTimeoutDuration())
	assert.True(t, conf.BreakerEnabled)

	loc, err := conf.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "secret")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("TIMEZONE", "Asia/Tokyo")
	t.Setenv("FORECAST_DAYS", "3")
	t.Setenv("PROVIDER_TIMEOUT", "2s")
	t.Setenv("BREAKER_MAX_FAILURES", "2")

	conf, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "secret", conf.OpenWeatherAPIKey)
	assert.Equal(t, config.StorageDriverMemory, conf.StorageDriver)
	assert.Equal(t, 3, conf.ForecastDays)
	assert.Equal(t, 2*time.Second, conf.ProviderTimeout)
	assert.Equal(t, uint32(2), conf.BreakerMaxFailures)

	loc, err := conf.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"storage driver": {"STORAGE_DRIVER", "sqlite"},
		"timezone":       {"TIMEZONE", "Mars/Olympus"},
		"forecast days":  {"FORECAST_DAYS", "0"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])

			_, err := config.LoadConfig()
			assert.Error(t, err)
		})
	}
}
