package inmemorystore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"ulascansenturk/farm-records/internal/db/farm"
	"ulascansenturk/farm-records/internal/db/weatherrecord"
	"ulascansenturk/farm-records/internal/weather"
)

type recordKey struct {
	farmID uint
	date   time.Time
}

// Store keeps farms and weather records in memory. It satisfies both
// farm.Repository and weatherrecord.Repository through Farms and Weather.
type Store struct {
	mutex   sync.Mutex
	clock   clockwork.Clock
	farms   map[uint]farm.Farm
	records map[recordKey]weatherrecord.WeatherRecord

	nextFarmID   uint
	nextRecordID uint
}

func New(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		clock:   clock,
		farms:   make(map[uint]farm.Farm),
		records: make(map[recordKey]weatherrecord.WeatherRecord),
	}
}

func (s *Store) Farms() farm.Repository {
	return (*farmStore)(s)
}

func (s *Store) Weather() weatherrecord.Repository {
	return (*weatherStore)(s)
}

type farmStore Store

func (f *farmStore) Create(_ context.Context, fm *farm.Farm) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.nextFarmID++
	now := f.clock.Now()
	fm.ID = f.nextFarmID
	fm.CreatedAt = now
	fm.UpdatedAt = now
	f.farms[fm.ID] = *fm
	return nil
}

func (f *farmStore) Get(_ context.Context, id uint) (*farm.Farm, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	fm, ok := f.farms[id]
	if !ok {
		return nil, farm.ErrFarmNotFound
	}
	return &fm, nil
}

func (f *farmStore) List(_ context.Context) ([]farm.Farm, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	out := make([]farm.Farm, 0, len(f.farms))
	for _, fm := range f.farms {
		out = append(out, fm)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *farmStore) Delete(_ context.Context, id uint) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if _, ok := f.farms[id]; !ok {
		return farm.ErrFarmNotFound
	}
	delete(f.farms, id)
	for k := range f.records {
		if k.farmID == id {
			delete(f.records, k)
		}
	}
	return nil
}

func (f *farmStore) UpdateCoordinates(_ context.Context, id uint, coords weather.Coordinates) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	fm, ok := f.farms[id]
	if !ok {
		return farm.ErrFarmNotFound
	}
	fm.Latitude = weather.Float(coords.Lat)
	fm.Longitude = weather.Float(coords.Lon)
	fm.UpdatedAt = f.clock.Now()
	f.farms[id] = fm
	return nil
}

type weatherStore Store

// Upsert replaces every observation field of an existing (farm, date) row and
// keeps its ID and CreatedAt.
func (w *weatherStore) Upsert(_ context.Context, farmID uint, obs weather.Observation) (*weatherrecord.WeatherRecord, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if _, ok := w.farms[farmID]; !ok {
		return nil, farm.ErrFarmNotFound
	}

	obs.Date = weather.CalendarDay(obs.Date, time.UTC)
	key := recordKey{farmID: farmID, date: obs.Date}
	now := w.clock.Now()

	record := weatherrecord.FromObservation(farmID, obs)
	if existing, ok := w.records[key]; ok {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	} else {
		w.nextRecordID++
		record.ID = w.nextRecordID
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	w.records[key] = record

	return &record, nil
}

func (w *weatherStore) Get(_ context.Context, farmID uint, date time.Time) (*weatherrecord.WeatherRecord, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	record, ok := w.records[recordKey{farmID: farmID, date: weather.CalendarDay(date, time.UTC)}]
	if !ok {
		return nil, weatherrecord.ErrRecordNotFound
	}
	return &record, nil
}

func (w *weatherStore) ListRecent(_ context.Context, limit int) ([]weatherrecord.WeatherRecord, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	out := make([]weatherrecord.WeatherRecord, 0, len(w.records))
	for _, r := range w.records {
		if fm, ok := w.farms[r.FarmID]; ok {
			r.Farm = &fm
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID > out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (w *weatherStore) Delete(_ context.Context, id uint) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	for k, r := range w.records {
		if r.ID == id {
			delete(w.records, k)
			return nil
		}
	}
	return weatherrecord.ErrRecordNotFound
}
