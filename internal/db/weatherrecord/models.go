package weatherrecord

import (
	"time"

	"ulascansenturk/farm-records/internal/db/farm"
	"ulascansenturk/farm-records/internal/weather"
)

// WeatherRecord is one farm's weather for one calendar day. (farm_id, date)
// is unique; re-ingesting a day replaces the row.
type WeatherRecord struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	FarmID           uint       `json:"farm_id" gorm:"not null;uniqueIndex:idx_weather_farm_date"`
	Date             time.Time  `json:"date" gorm:"type:date;not null;uniqueIndex:idx_weather_farm_date;index:idx_weather_date"`
	MaxTemperature   float64    `json:"max_temperature" gorm:"column:max_temperature"`
	MinTemperature   float64    `json:"min_temperature" gorm:"column:min_temperature"`
	Rainfall         float64    `json:"rainfall" gorm:"column:rainfall"`
	Humidity         *float64   `json:"humidity" gorm:"column:humidity"`
	WindSpeed        *float64   `json:"wind_speed" gorm:"column:wind_speed"`
	SunshineHours    *float64   `json:"sunshine_hours" gorm:"column:sunshine_hours"`
	SoilTemperature  *float64   `json:"soil_temperature" gorm:"column:soil_temperature"`
	WeatherCondition *string    `json:"weather_condition" gorm:"column:weather_condition"`
	Pressure         *float64   `json:"pressure" gorm:"column:pressure"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Farm             *farm.Farm `json:"farm,omitempty" gorm:"foreignKey:FarmID;constraint:OnDelete:CASCADE"`
}

func (WeatherRecord) TableName() string {
	return "weather_data"
}

func FromObservation(farmID uint, obs weather.Observation) WeatherRecord {
	return WeatherRecord{
		FarmID:           farmID,
		Date:             obs.Date,
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

func (r WeatherRecord) Observation() weather.Observation {
	return weather.Observation{
		Date:             r.Date,
		MaxTemperature:   r.MaxTemperature,
		MinTemperature:   r.MinTemperature,
		Rainfall:         r.Rainfall,
		Humidity:         r.Humidity,
		WindSpeed:        r.WindSpeed,
		SunshineHours:    r.SunshineHours,
		SoilTemperature:  r.SoilTemperature,
		WeatherCondition: r.WeatherCondition,
		Pressure:         r.Pressure,
	}
}
