package weather

import "strings"

var sunshineRules = []struct {
	keywords []string
	hours    float64
}{
	{keywords: []string{"storm", "thunder", "雷", "嵐"}, hours: 0.5},
	{keywords: []string{"rain", "drizzle", "shower", "雨"}, hours: 1},
	{keywords: []string{"cloud", "overcast", "曇", "雲"}, hours: 4},
	{keywords: []string{"clear", "sunny", "晴"}, hours: 8},
}

const defaultSunshineHours = 6.0

// EstimateSunshineHours classifies a weather description into an estimated
// number of daily sunshine hours. Rules are checked in order and the first
// match wins, so "thunderstorm with rain" counts as a storm.
func EstimateSunshineHours(condition string) float64 {
	c := strings.ToLower(condition)
	for _, rule := range sunshineRules {
		for _, kw := range rule.keywords {
			if strings.Contains(c, kw) {
				return rule.hours
			}
		}
	}
	return defaultSunshineHours
}
