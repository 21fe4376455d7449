package farm

import (
	"time"

	"ulascansenturk/farm-records/internal/weather"
)

type Farm struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;index:idx_farms_name"`
	Location  string    `json:"location" gorm:"not null"`
	Area      float64   `json:"area"`
	Latitude  *float64  `json:"latitude" gorm:"column:latitude"`
	Longitude *float64  `json:"longitude" gorm:"column:longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Farm) TableName() string {
	return "farms"
}

// Coordinates reports the cached position, if both halves are set.
func (f *Farm) Coordinates() (weather.Coordinates, bool) {
	if f.Latitude == nil || f.Longitude == nil {
		return weather.Coordinates{}, false
	}
	return weather.Coordinates{Lat: *f.Latitude, Lon: *f.Longitude}, true
}
