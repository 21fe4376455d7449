package weatherrecord

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ulascansenturk/farm-records/internal/weather"
)

var ErrRecordNotFound = errors.New("weather record not found")

type Repository interface {
	Upsert(ctx context.Context, farmID uint, obs weather.Observation) (*WeatherRecord, error)
	Get(ctx context.Context, farmID uint, date time.Time) (*WeatherRecord, error)
	ListRecent(ctx context.Context, limit int) ([]WeatherRecord, error)
	Delete(ctx context.Context, id uint) error
}

type WeatherSQLRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &WeatherSQLRepository{db: db}
}

// Upsert writes obs for (farmID, obs.Date), replacing every observation
// column of an existing row for that key.
func (r *WeatherSQLRepository) Upsert(ctx context.Context, farmID uint, obs weather.Observation) (*WeatherRecord, error) {
	record := FromObservation(farmID, obs)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "farm_id"}, {Name: "date"}},
			UpdateAll: true,
		}).
		Create(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *WeatherSQLRepository) Get(ctx context.Context, farmID uint, date time.Time) (*WeatherRecord, error) {
	var record WeatherRecord
	err := r.db.WithContext(ctx).
		Where("farm_id = ? AND date = ?", farmID, weather.FormatDate(date)).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListRecent returns the newest records across all farms with their farm loaded.
func (r *WeatherSQLRepository) ListRecent(ctx context.Context, limit int) ([]WeatherRecord, error) {
	var records []WeatherRecord
	err := r.db.WithContext(ctx).
		Preload("Farm").
		Order("date DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *WeatherSQLRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&WeatherRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
