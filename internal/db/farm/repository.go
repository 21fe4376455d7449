package farm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ulascansenturk/farm-records/internal/weather"
)

var ErrFarmNotFound = errors.New("farm not found")

type Repository interface {
	Create(ctx context.Context, farm *Farm) error
	Get(ctx context.Context, id uint) (*Farm, error)
	List(ctx context.Context) ([]Farm, error)
	Delete(ctx context.Context, id uint) error
	UpdateCoordinates(ctx context.Context, id uint, coords weather.Coordinates) error
}

type FarmSQLRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &FarmSQLRepository{db: db}
}

func (r *FarmSQLRepository) Create(ctx context.Context, farm *Farm) error {
	return r.db.WithContext(ctx).Create(farm).Error
}

func (r *FarmSQLRepository) Get(ctx context.Context, id uint) (*Farm, error) {
	var farm Farm
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&farm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFarmNotFound
	}
	if err != nil {
		return nil, err
	}
	return &farm, nil
}

func (r *FarmSQLRepository) List(ctx context.Context) ([]Farm, error) {
	var farms []Farm
	if err := r.db.WithContext(ctx).Order("name").Find(&farms).Error; err != nil {
		return nil, err
	}
	return farms, nil
}

func (r *FarmSQLRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Farm{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFarmNotFound
	}
	return nil
}

func (r *FarmSQLRepository) UpdateCoordinates(ctx context.Context, id uint, coords weather.Coordinates) error {
	result := r.db.WithContext(ctx).
		Model(&Farm{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"latitude":  coords.Lat,
			"longitude": coords.Lon,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFarmNotFound
	}
	return nil
}
