package providers

type geocodeResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
}

type mainBlock struct {
	Temp     float64 `json:"temp"`
	TempMin  float64 `json:"temp_min"`
	TempMax  float64 `json:"temp_max"`
	Humidity float64 `json:"humidity"`
	Pressure float64 `json:"pressure"`
}

type conditionBlock struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type windBlock struct {
	Speed float64 `json:"speed"`
}

// rainBlock carries the two accumulation windows the provider may report.
// Absent keys stay nil so presence can be told apart from zero.
type rainBlock struct {
	OneHour   *float64 `json:"1h"`
	ThreeHour *float64 `json:"3h"`
}

type CurrentWeatherResponse struct {
	Main    mainBlock        `json:"main"`
	Weather []conditionBlock `json:"weather"`
	Wind    windBlock        `json:"wind"`
	Rain    *rainBlock       `json:"rain,omitempty"`
	Dt      int64            `json:"dt"`
}

type ForecastResponse struct {
	List []ForecastItem `json:"list"`
}

type ForecastItem struct {
	Dt      int64            `json:"dt"`
	Main    mainBlock        `json:"main"`
	Weather []conditionBlock `json:"weather"`
	Wind    windBlock        `json:"wind"`
	Rain    *rainBlock       `json:"rain,omitempty"`
}

// selectRainfall picks the 1h bucket if present, else the 3h bucket, else 0.
func selectRainfall(rain *rainBlock) float64 {
	switch {
	case rain == nil:
		return 0
	case rain.OneHour != nil:
		return *rain.OneHour
	case rain.ThreeHour != nil:
		return *rain.ThreeHour
	default:
		return 0
	}
}

func firstDescription(conditions []conditionBlock) *string {
	if len(conditions) == 0 {
		return nil
	}
	d := conditions[0].Description
	return &d
}
