package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ulascansenturk/farm-records/config"
	"ulascansenturk/farm-records/internal/api/v1/handlers"
	"ulascansenturk/farm-records/internal/db/farm"
	"ulascansenturk/farm-records/internal/db/weatherrecord"
	"ulascansenturk/farm-records/internal/inmemorycache"
	"ulascansenturk/farm-records/internal/inmemorystore"
	"ulascansenturk/farm-records/internal/observability"
	"ulascansenturk/farm-records/internal/providers"
	"ulascansenturk/farm-records/internal/service"
)

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Timestamp().
		Logger()
	log.Logger = logger

	ctx, mainCtxStop := context.WithCancel(context.Background())

	farms, records, err := initializeStorage(conf)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", conf.StorageDriver).Msg("failed to initialize storage")
	}

	location, err := conf.Location()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid timezone")
	}

	if conf.OpenWeatherAPIKey == "" {
		logger.Warn().Msg("OPENWEATHER_API_KEY is not set, weather ingestion will be rejected")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	var httpClient providers.HTTPClient = &http.Client{Timeout: conf.ProviderTimeout}
	if conf.BreakerEnabled {
		httpClient = providers.NewBreakerClient("openweather", providers.BreakerConfig{
			Interval:    conf.BreakerInterval,
			Timeout:     conf.BreakerTimeout,
			MaxFailures: conf.BreakerMaxFailures,
		}, httpClient)
	}

	weatherProvider := providers.NewOpenWeatherClient(
		providers.Config{
			APIKey:       conf.OpenWeatherAPIKey,
			BaseURL:      conf.OpenWeatherBaseURL,
			GeoURL:       conf.OpenWeatherGeoURL,
			Lang:         conf.OpenWeatherLang,
			Units:        conf.OpenWeatherUnits,
			Location:     location,
			ForecastDays: conf.ForecastDays,
		},
		httpClient,
		clockwork.NewRealClock(),
		metrics,
		logger,
	)

	forecastCache := inmemorycache.NewInMemoryCacheProvider(clockwork.NewRealClock(), time.Minute)

	weatherService := service.NewWeatherService(
		weatherProvider,
		farms,
		records,
		service.WeatherServiceOptions{
			GeocodeSuffix:    conf.GeocodeQuerySuffix,
			RecentLimit:      conf.RecentRecordsLimit,
			IngestTimeout:    conf.IngestTimeout,
			ForecastCache:    forecastCache,
			ForecastCacheTTL: conf.ForecastCacheTTL,
		},
		metrics,
		logger,
	)
	farmService := service.NewFarmService(farms)

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.Handle("/", handlers.NewRouter(
		handlers.NewFarmHandler(farmService, conf.HTTPTimeoutDuration()),
		handlers.NewWeatherHandler(weatherService, conf.HTTPTimeoutDuration()),
	))

	httpServer := &http.Server{
		Addr:              conf.ServerAddress,
		Handler:           mux,
		ReadHeaderTimeout: conf.HTTPTimeoutDuration(),
	}

	handleSignals(ctx, mainCtxStop, func() {
		shutdownErr := httpServer.Shutdown(ctx)
		if shutdownErr != nil {
			log.Fatal().Err(shutdownErr).Msg("server shutdown failed")
		}
		weatherService.Shutdown()
		forecastCache.Stop()
	})

	log.Info().Str("storage", conf.StorageDriver).Msgf("started server on %s", conf.ServerAddress)

	serverErr := httpServer.ListenAndServe()
	if serverErr != nil {
		log.Err(serverErr).Msg("server stopped")
	}
	<-ctx.Done()
}

func initializeStorage(conf *config.Config) (farm.Repository, weatherrecord.Repository, error) {
	if conf.StorageDriver == config.StorageDriverMemory {
		store := inmemorystore.New(clockwork.NewRealClock())
		return store.Farms(), store.Weather(), nil
	}

	db, err := initializeDatabase(conf)
	if err != nil {
		return nil, nil, err
	}
	return farm.NewRepository(db), weatherrecord.NewRepository(db), nil
}

func initializeDatabase(config *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&farm.Farm{}, &weatherrecord.WeatherRecord{}); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(3 * time.Minute)

	return db, nil
}

func handleSignals(ctx context.Context, cancelCtx context.CancelFunc, callback func()) {
	sig := make(chan os.Signal, 1)

	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	const shutdownDuration = 30 * time.Second

	go func() {
		<-sig

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownDuration)

		go func() {
			<-shutdownCtx.Done()

			if shutdownCtx.Err() == context.DeadlineExceeded {
				panic("graceful shutdown timed out.. forcing exit.")
			}
		}()

		callback()

		cancel()
		cancelCtx()
	}()
}
