package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	ServiceName   string
	ServerAddress string

	DBName     string
	DBPassword string
	DBUser     string
	DBPort     string
	DBHost     string

	Env           string
	LogLevel      string
	HTTPTimeout   int32
	StorageDriver string

	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	OpenWeatherGeoURL  string
	OpenWeatherLang    string
	OpenWeatherUnits   string
	GeocodeQuerySuffix string
	Timezone           string
	ForecastDays       int
	ProviderTimeout    time.Duration
	ForecastCacheTTL   time.Duration

	BreakerEnabled     bool
	BreakerInterval    time.Duration
	BreakerTimeout     time.Duration
	BreakerMaxFailures uint32

	RecentRecordsLimit int
	IngestTimeout      time.Duration
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "farm-records")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:3000")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("HTTP_TIMEOUT", 175)
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("OPENWEATHER_GEO_URL", "https://api.openweathermap.org/geo/1.0")
	v.SetDefault("OPENWEATHER_LANG", "ja")
	v.SetDefault("OPENWEATHER_UNITS", "metric")
	v.SetDefault("GEOCODE_QUERY_SUFFIX", ", Japan")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("FORECAST_DAYS", 5)
	v.SetDefault("PROVIDER_TIMEOUT", 10*time.Second)
	v.SetDefault("FORECAST_CACHE_TTL", 10*time.Minute)
	v.SetDefault("BREAKER_ENABLED", true)
	v.SetDefault("BREAKER_INTERVAL", time.Minute)
	v.SetDefault("BREAKER_TIMEOUT", 30*time.Second)
	v.SetDefault("BREAKER_MAX_FAILURES", 5)
	v.SetDefault("RECENT_RECORDS_LIMIT", 20)
	v.SetDefault("INGEST_TIMEOUT", 30*time.Second)

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	config := &Config{
		ServiceName:        v.GetString("SERVICE_NAME"),
		ServerAddress:      v.GetString("SERVER_ADDRESS"),
		DBName:             v.GetString("DATABASE_NAME"),
		DBPassword:         v.GetString("DATABASE_PASSWORD"),
		DBUser:             v.GetString("DATABASE_USER"),
		DBPort:             v.GetString("DATABASE_PORT"),
		DBHost:             v.GetString("DATABASE_HOST"),
		Env:                v.GetString("ENV"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		HTTPTimeout:        v.GetInt32("HTTP_TIMEOUT"),
		StorageDriver:      v.GetString("STORAGE_DRIVER"),
		OpenWeatherAPIKey:  v.GetString("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL: v.GetString("OPENWEATHER_BASE_URL"),
		OpenWeatherGeoURL:  v.GetString("OPENWEATHER_GEO_URL"),
		OpenWeatherLang:    v.GetString("OPENWEATHER_LANG"),
		OpenWeatherUnits:   v.GetString("OPENWEATHER_UNITS"),
		GeocodeQuerySuffix: v.GetString("GEOCODE_QUERY_SUFFIX"),
		Timezone:           v.GetString("TIMEZONE"),
		ForecastDays:       v.GetInt("FORECAST_DAYS"),
		ProviderTimeout:    v.GetDuration("PROVIDER_TIMEOUT"),
		ForecastCacheTTL:   v.GetDuration("FORECAST_CACHE_TTL"),
		BreakerEnabled:     v.GetBool("BREAKER_ENABLED"),
		BreakerInterval:    v.GetDuration("BREAKER_INTERVAL"),
		BreakerTimeout:     v.GetDuration("BREAKER_TIMEOUT"),
		BreakerMaxFailures: v.GetUint32("BREAKER_MAX_FAILURES"),
		RecentRecordsLimit: v.GetInt("RECENT_RECORDS_LIMIT"),
		IngestTimeout:      v.GetDuration("INGEST_TIMEOUT"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.ForecastDays < 1 {
		return fmt.Errorf("FORECAST_DAYS must be positive, got %d", c.ForecastDays)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// Location is the zone whose calendar day a weather reading belongs to.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
