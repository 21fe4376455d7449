package weatherrecord_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ulascansenturk/farm-records/internal/db/weatherrecord"
	"ulascansenturk/farm-records/internal/weather"
)

type WeatherRecordRepositorySuite struct {
	suite.Suite
	DB   *gorm.DB
	mock sqlmock.Sqlmock
	repo weatherrecord.Repository
	ctx  context.Context
	day  time.Time
}

func (s *WeatherRecordRepositorySuite) SetupSuite() {
	var err error

	var db *sql.DB
	db, s.mock, err = sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	s.Require().NoError(err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	s.DB, err = gorm.Open(dialector, &gorm.Config{})
	s.Require().NoError(err)

	s.repo = weatherrecord.NewRepository(s.DB)
	s.ctx = context.Background()
	s.day = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
}

func (s *WeatherRecordRepositorySuite) TearDownTest() {
	s.Require().NoError(s.mock.ExpectationsWereMet())
}

func (s *WeatherRecordRepositorySuite) observation() weather.Observation {
	return weather.Observation{
		Date:             s.day,
		MaxTemperature:   23,
		MinTemperature:   17,
		Rainfall:         2,
		Humidity:         weather.Float(65),
		WindSpeed:        weather.Float(4.2),
		SunshineHours:    weather.Float(1),
		SoilTemperature:  weather.Float(18.5),
		WeatherCondition: weather.String("小雨"),
		Pressure:         weather.Float(1012),
	}
}

func (s *WeatherRecordRepositorySuite) TestUpsert() {
	upsertRegex := `INSERT INTO "weather_data" .* ON CONFLICT \("farm_id","date"\) DO UPDATE SET .*"max_temperature"="excluded"."max_temperature".* RETURNING "id"`

	s.Run("Inserts or replaces the record for the farm and day", func() {
		s.mock.ExpectBegin()
		s.mock.ExpectQuery(upsertRegex).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		s.mock.ExpectCommit()

		record, err := s.repo.Upsert(s.ctx, 3, s.observation())

		s.Require().NoError(err)
		s.Require().Equal(uint(11), record.ID)
		s.Require().Equal(uint(3), record.FarmID)
		s.Require().Equal(s.day, record.Date)
		s.Require().Equal("小雨", *record.WeatherCondition)
	})

	s.Run("Returns error when database operation fails", func() {
		s.mock.ExpectBegin()
		s.mock.ExpectQuery(upsertRegex).WillReturnError(errors.New("database error"))
		s.mock.ExpectRollback()

		record, err := s.repo.Upsert(s.ctx, 3, s.observation())

		s.Require().Error(err)
		s.Require().Equal("database error", err.Error())
		s.Require().Nil(record)
	})
}

func (s *WeatherRecordRepositorySuite) TestGet() {
	queryRegex := `SELECT \* FROM "weather_data" WHERE farm_id = \$1 AND date = \$2 ORDER BY "weather_data"."id" LIMIT \$3`

	s.Run("Successfully retrieves the record", func() {
		rows := sqlmock.NewRows([]string{"id", "farm_id", "date", "max_temperature", "min_temperature", "rainfall"}).
			AddRow(11, 3, s.day, 23.0, 17.0, 2.0)

		s.mock.ExpectQuery(queryRegex).WithArgs(3, "2026-10-17", 1).WillReturnRows(rows)

		record, err := s.repo.Get(s.ctx, 3, s.day)

		s.Require().NoError(err)
		s.Require().Equal(23.0, record.MaxTemperature)
		s.Require().Nil(record.Humidity)
	})

	s.Run("Maps missing row to ErrRecordNotFound", func() {
		s.mock.ExpectQuery(queryRegex).WithArgs(3, "2026-10-17", 1).WillReturnError(gorm.ErrRecordNotFound)

		record, err := s.repo.Get(s.ctx, 3, s.day)

		s.Require().ErrorIs(err, weatherrecord.ErrRecordNotFound)
		s.Require().Nil(record)
	})
}

func (s *WeatherRecordRepositorySuite) TestListRecent() {
	s.Run("Loads records newest first with their farm", func() {
		rows := sqlmock.NewRows([]string{"id", "farm_id", "date", "max_temperature", "min_temperature", "rainfall"}).
			AddRow(12, 3, s.day, 23.0, 17.0, 0.0).
			AddRow(11, 3, s.day.AddDate(0, 0, -1), 21.0, 15.0, 4.5)
		s.mock.ExpectQuery(`SELECT \* FROM "weather_data" ORDER BY date DESC LIMIT \$1`).
			WithArgs(20).
			WillReturnRows(rows)

		farmRows := sqlmock.NewRows([]string{"id", "name", "location"}).AddRow(3, "North Field", "Tsukuba")
		s.mock.ExpectQuery(`SELECT \* FROM "farms" WHERE "farms"."id"`).WillReturnRows(farmRows)

		records, err := s.repo.ListRecent(s.ctx, 20)

		s.Require().NoError(err)
		s.Require().Len(records, 2)
		s.Require().NotNil(records[0].Farm)
		s.Require().Equal("North Field", records[0].Farm.Name)
		s.Require().Equal(4.5, records[1].Rainfall)
	})

	s.Run("Returns error when query fails", func() {
		s.mock.ExpectQuery(`SELECT \* FROM "weather_data"`).WillReturnError(errors.New("connection error"))

		records, err := s.repo.ListRecent(s.ctx, 20)

		s.Require().Error(err)
		s.Require().Nil(records)
	})
}

func (s *WeatherRecordRepositorySuite) TestDelete() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`DELETE FROM "weather_data" WHERE "weather_data"."id" = \$1`).
		WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	s.Require().NoError(s.repo.Delete(s.ctx, 11))
}

func TestWeatherRecordRepositorySuite(t *testing.T) {
	suite.Run(t, new(WeatherRecordRepositorySuite))
}
