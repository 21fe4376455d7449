package weather_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"ulascansenturk/farm-records/internal/weather"
)

type ForecastFoldTestSuite struct {
	suite.Suite
	start time.Time
}

func (s *ForecastFoldTestSuite) SetupTest() {
	s.start = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
}

func (s *ForecastFoldTestSuite) sample(offset time.Duration, temp float64, rain *float64) weather.Sample {
	return weather.Sample{
		Time:        s.start.Add(offset),
		Temperature: temp,
		TempMin:     temp,
		TempMax:     temp,
		Humidity:    60,
		Pressure:    1013,
		WindSpeed:   3.5,
		Condition:   weather.String("晴天"),
		Rain3h:      rain,
	}
}

func (s *ForecastFoldTestSuite) TestFoldsSameDaySamples() {
	samples := []weather.Sample{
		s.sample(0, 18, weather.Float(1.0)),
		s.sample(3*time.Hour, 22, weather.Float(0.5)),
		s.sample(6*time.Hour, 15, nil),
	}

	days := weather.FoldForecast(samples, time.UTC, 5)

	s.Require().Len(days, 1)
	s.Equal(s.start, days[0].Date)
	s.Equal(22.0, days[0].MaxTemperature)
	s.Equal(15.0, days[0].MinTemperature)
	s.InDelta(1.5, days[0].Rainfall, 1e-9)
	s.LessOrEqual(days[0].MinTemperature, days[0].MaxTemperature)
}

func (s *ForecastFoldTestSuite) TestFirstSampleWinsForNonAggregatedFields() {
	first := s.sample(0, 10, nil)
	second := s.sample(3*time.Hour, 30, nil)
	second.Humidity = 90
	second.Pressure = 990
	second.WindSpeed = 12
	second.Condition = weather.String("雷雨")

	days := weather.FoldForecast([]weather.Sample{first, second}, time.UTC, 5)

	s.Require().Len(days, 1)
	s.Equal(60.0, *days[0].Humidity)
	s.Equal(1013.0, *days[0].Pressure)
	s.Equal(3.5, *days[0].WindSpeed)
	s.Equal("晴天", *days[0].WeatherCondition)
	s.Equal(8.0, *days[0].SoilTemperature)
	s.Nil(days[0].SunshineHours)
}

func (s *ForecastFoldTestSuite) TestKeepsAtMostFiveDaysInFirstSeenOrder() {
	var samples []weather.Sample
	for i := 0; i < 40; i++ {
		samples = append(samples, s.sample(time.Duration(i)*3*time.Hour, float64(i), nil))
	}

	days := weather.FoldForecast(samples, time.UTC, 5)

	s.Require().Len(days, 5)
	for i, d := range days {
		s.Equal(s.start.AddDate(0, 0, i), d.Date)
	}
	s.Equal(0.0, days[0].MinTemperature)
	s.Equal(7.0, days[0].MaxTemperature)
	s.Equal(32.0, days[4].MinTemperature)
	s.Equal(39.0, days[4].MaxTemperature)
}

func (s *ForecastFoldTestSuite) TestLateSampleOfKeptDayStillFolds() {
	samples := make([]weather.Sample, 0, 7)
	for i := 0; i < 6; i++ {
		samples = append(samples, s.sample(time.Duration(i)*24*time.Hour, 20, nil))
	}
	samples = append(samples, s.sample(time.Hour, 35, weather.Float(2)))

	days := weather.FoldForecast(samples, time.UTC, 5)

	s.Require().Len(days, 5)
	s.Equal(35.0, days[0].MaxTemperature)
	s.Equal(2.0, days[0].Rainfall)
}

func (s *ForecastFoldTestSuite) TestDaysFollowLocation() {
	tokyo := time.FixedZone("JST", 9*60*60)
	samples := []weather.Sample{
		s.sample(-2*time.Hour, 10, nil),
		s.sample(16*time.Hour, 12, nil),
	}

	utcDays := weather.FoldForecast(samples, time.UTC, 5)
	jstDays := weather.FoldForecast(samples, tokyo, 5)

	s.Len(utcDays, 2)
	s.Require().Len(jstDays, 2)
	s.Equal(s.start, jstDays[0].Date)
	s.Equal(s.start.AddDate(0, 0, 1), jstDays[1].Date)
}

func (s *ForecastFoldTestSuite) TestEmptyInput() {
	s.Empty(weather.FoldForecast(nil, time.UTC, 5))
}

func (s *ForecastFoldTestSuite) TestNonPositiveLimitFallsBackToDefault() {
	var samples []weather.Sample
	for i := 0; i < 8; i++ {
		samples = append(samples, s.sample(time.Duration(i)*24*time.Hour, 20, nil))
	}

	s.Len(weather.FoldForecast(samples, time.UTC, 0), weather.DefaultForecastDays)
}

func TestForecastFoldSuite(t *testing.T) {
	suite.Run(t, new(ForecastFoldTestSuite))
}
