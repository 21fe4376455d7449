package weather

import "time"

// DefaultForecastDays is the number of distinct calendar days a forecast keeps.
const DefaultForecastDays = 5

// Sample is one point-in-time forecast entry as reported by the provider.
type Sample struct {
	Time        time.Time
	Temperature float64
	TempMin     float64
	TempMax     float64
	Humidity    float64
	Pressure    float64
	WindSpeed   float64
	Condition   *string
	Rain3h      *float64
}

type day struct {
	year  int
	month time.Month
	day   int
}

// dailyBuckets is a day-keyed map that remembers the order in which days
// were first seen.
type dailyBuckets struct {
	order []day
	byDay map[day]*Observation
}

func newDailyBuckets() *dailyBuckets {
	return &dailyBuckets{byDay: make(map[day]*Observation)}
}

func (b *dailyBuckets) get(d day) (*Observation, bool) {
	obs, ok := b.byDay[d]
	return obs, ok
}

func (b *dailyBuckets) put(d day, obs *Observation) {
	b.order = append(b.order, d)
	b.byDay[d] = obs
}

func (b *dailyBuckets) len() int {
	return len(b.order)
}

func (b *dailyBuckets) values() []Observation {
	out := make([]Observation, 0, len(b.order))
	for _, d := range b.order {
		out = append(out, *b.byDay[d])
	}
	return out
}

// FoldForecast reduces samples into at most maxDays daily observations in
// first-seen order. Temperatures fold to min/max, rainfall is summed, and
// the remaining fields come from the first sample of each day.
func FoldForecast(samples []Sample, loc *time.Location, maxDays int) []Observation {
	if maxDays <= 0 {
		maxDays = DefaultForecastDays
	}

	buckets := newDailyBuckets()
	for _, s := range samples {
		date := CalendarDay(s.Time, loc)
		key := day{year: date.Year(), month: date.Month(), day: date.Day()}

		rain := 0.0
		if s.Rain3h != nil {
			rain = *s.Rain3h
		}

		if existing, ok := buckets.get(key); ok {
			existing.MaxTemperature = max(existing.MaxTemperature, s.TempMax)
			existing.MinTemperature = min(existing.MinTemperature, s.TempMin)
			existing.Rainfall += rain
			continue
		}

		// Later days are dropped, but samples of days already kept still fold.
		if buckets.len() >= maxDays {
			continue
		}

		buckets.put(key, &Observation{
			Date:             date,
			MaxTemperature:   s.TempMax,
			MinTemperature:   s.TempMin,
			Rainfall:         rain,
			Humidity:         Float(s.Humidity),
			WindSpeed:        Float(s.WindSpeed),
			WeatherCondition: s.Condition,
			Pressure:         Float(s.Pressure),
			SoilTemperature:  Float(EstimateSoilTemperature(s.Temperature)),
		})
	}

	return buckets.values()
}
