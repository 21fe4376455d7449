package handlers

import (
	"time"

	"ulascansenturk/farm-records/internal/db/farm"
	"ulascansenturk/farm-records/internal/db/weatherrecord"
	"ulascansenturk/farm-records/internal/service"
	"ulascansenturk/farm-records/internal/weather"
)

type FarmResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Area      float64   `json:"area"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

type FarmSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// ObservationResponse renders dates as YYYY-MM-DD.
type ObservationResponse struct {
	Date             string   `json:"date"`
	MaxTemperature   float64  `json:"max_temperature"`
	MinTemperature   float64  `json:"min_temperature"`
	Rainfall         float64  `json:"rainfall"`
	Humidity         *float64 `json:"humidity"`
	WindSpeed        *float64 `json:"wind_speed"`
	SunshineHours    *float64 `json:"sunshine_hours"`
	SoilTemperature  *float64 `json:"soil_temperature"`
	WeatherCondition *string  `json:"weather_condition"`
	Pressure         *float64 `json:"pressure"`
}

type WeatherRecordResponse struct {
	ID     uint         `json:"id"`
	FarmID uint         `json:"farm_id"`
	Farm   *FarmSummary `json:"farm,omitempty"`
	ObservationResponse
	UpdatedAt time.Time `json:"updated_at"`
}

type IngestResponse struct {
	Record   WeatherRecordResponse `json:"record"`
	Forecast []ObservationResponse `json:"forecast"`
}

type ForecastResponse struct {
	FarmID uint                  `json:"farm_id"`
	Days   []ObservationResponse `json:"days"`
}

type RecentRecordsResponse struct {
	Records []WeatherRecordResponse `json:"records"`
}

type Error struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
	Title  string `json:"title"`
}

type ErrorResponse struct {
	Errors []Error `json:"errors"`
}

func newFarmResponse(f farm.Farm) FarmResponse {
	return FarmResponse{
		ID:        f.ID,
		Name:      f.Name,
		Location:  f.Location,
		Area:      f.Area,
		Latitude:  f.Latitude,
		Longitude: f.Longitude,
		CreatedAt: f.CreatedAt,
	}
}

func newObservationResponse(obs weather.Observation) ObservationResponse {
	return ObservationResponse{
		Date:             weather.FormatDate(obs.Date),
		MaxTemperature:   obs.MaxTemperature,
		MinTemperature:   obs.MinTemperature,
		Rainfall:         obs.Rainfall,
		Humidity:         obs.Humidity,
		WindSpeed:        obs.WindSpeed,
		SunshineHours:    obs.SunshineHours,
		SoilTemperature:  obs.SoilTemperature,
		WeatherCondition: obs.WeatherCondition,
		Pressure:         obs.Pressure,
	}
}

func newObservationResponses(days []weather.Observation) []ObservationResponse {
	out := make([]ObservationResponse, 0, len(days))
	for _, d := range days {
		out = append(out, newObservationResponse(d))
	}
	return out
}

func newWeatherRecordResponse(r weatherrecord.WeatherRecord) WeatherRecordResponse {
	resp := WeatherRecordResponse{
		ID:                  r.ID,
		FarmID:              r.FarmID,
		ObservationResponse: newObservationResponse(r.Observation()),
		UpdatedAt:           r.UpdatedAt,
	}
	if r.Farm != nil {
		resp.Farm = &FarmSummary{ID: r.Farm.ID, Name: r.Farm.Name, Location: r.Farm.Location}
	}
	return resp
}

func newIngestResponse(result service.IngestResult) IngestResponse {
	return IngestResponse{
		Record:   newWeatherRecordResponse(result.Record),
		Forecast: newObservationResponses(result.Forecast),
	}
}
