package weather

import "time"

// SoilTemperatureOffset is subtracted from the air temperature to estimate
// soil temperature, which the provider does not report.
const SoilTemperatureOffset = 2.0

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Observation is one calendar day's weather for a farm. Optional fields are
// nil when the source did not supply them.
type Observation struct {
	Date             time.Time `json:"date"`
	MaxTemperature   float64   `json:"max_temperature"`
	MinTemperature   float64   `json:"min_temperature"`
	Rainfall         float64   `json:"rainfall"`
	Humidity         *float64  `json:"humidity,omitempty"`
	WindSpeed        *float64  `json:"wind_speed,omitempty"`
	SunshineHours    *float64  `json:"sunshine_hours,omitempty"`
	SoilTemperature  *float64  `json:"soil_temperature,omitempty"`
	WeatherCondition *string   `json:"weather_condition,omitempty"`
	Pressure         *float64  `json:"pressure,omitempty"`
}

func EstimateSoilTemperature(airTemperature float64) float64 {
	return airTemperature - SoilTemperatureOffset
}

// CalendarDay truncates t to its calendar day in loc. The result is midnight
// UTC of that day so values compare equal regardless of the source zone.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

func Float(v float64) *float64 {
	return &v
}

func String(v string) *string {
	return &v
}
