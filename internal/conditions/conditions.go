// Package conditions derives the synthetic time-of-day, weather and prayer
// context that modulates productivity and risk.
package conditions

import (
	"time"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/sim"
)

// WeatherWeight is one entry of a per-bucket weather distribution.
type WeatherWeight struct {
	Type   domain.WeatherType
	Weight float64
}

// WeatherDistribution is the fixed probability table per time-of-day bucket.
// Weights in each row sum to 100.
var WeatherDistribution = map[domain.TimeOfDay][]WeatherWeight{
	domain.Morning:   {{domain.WeatherClear, 55}, {domain.WeatherCloudy, 25}, {domain.WeatherHeat, 0}, {domain.WeatherRain, 15}, {domain.WeatherStorm, 5}},
	domain.Midday:    {{domain.WeatherClear, 40}, {domain.WeatherCloudy, 20}, {domain.WeatherHeat, 25}, {domain.WeatherRain, 10}, {domain.WeatherStorm, 5}},
	domain.Afternoon: {{domain.WeatherClear, 35}, {domain.WeatherCloudy, 20}, {domain.WeatherHeat, 15}, {domain.WeatherRain, 20}, {domain.WeatherStorm, 10}},
	domain.Evening:   {{domain.WeatherClear, 40}, {domain.WeatherCloudy, 25}, {domain.WeatherHeat, 0}, {domain.WeatherRain, 25}, {domain.WeatherStorm, 10}},
	domain.Night:     {{domain.WeatherClear, 50}, {domain.WeatherCloudy, 30}, {domain.WeatherHeat, 0}, {domain.WeatherRain, 15}, {domain.WeatherStorm, 5}},
}

// ProductivityImpact per weather type, in percent.
var ProductivityImpact = map[domain.WeatherType]float64{
	domain.WeatherClear:  0,
	domain.WeatherCloudy: -5,
	domain.WeatherHeat:   -12,
	domain.WeatherRain:   -25,
	domain.WeatherStorm:  -40,
}

var weatherDescriptions = map[domain.WeatherType]string{
	domain.WeatherClear:  "Clear skies, full outdoor work",
	domain.WeatherCloudy: "Overcast, minor visibility loss",
	domain.WeatherHeat:   "Heat advisory, extended breaks required",
	domain.WeatherRain:   "Monsoon rain, concrete pours suspended",
	domain.WeatherStorm:  "Nor'wester storm warning, crane operations halted",
}

// shiftFactor is the workforce output multiplier per bucket.
var shiftFactor = map[domain.TimeOfDay]float64{
	domain.Morning:   1.0,
	domain.Midday:    0.9,
	domain.Afternoon: 0.95,
	domain.Evening:   0.8,
	domain.Night:     0.6,
}

var baseTemperature = map[domain.TimeOfDay]float64{
	domain.Morning:   27,
	domain.Midday:    33,
	domain.Afternoon: 32,
	domain.Evening:   29,
	domain.Night:     25,
}

// PrayerFactor scales output during a prayer break.
const PrayerFactor = 0.85

type window struct{ from, to int } // minutes since midnight, half-open

var prayerWindows = []window{
	{5 * 60, 5*60 + 30},
	{13*60 + 15, 13*60 + 45},
	{16*60 + 30, 17 * 60},
	{17*60 + 50, 18*60 + 15},
	{19*60 + 30, 19*60 + 50},
}

// Bucket maps the wall-clock hour of t to its time-of-day bucket.
func Bucket(t time.Time) domain.TimeOfDay {
	switch h := t.Hour(); {
	case h >= 6 && h < 11:
		return domain.Morning
	case h >= 11 && h < 14:
		return domain.Midday
	case h >= 14 && h < 17:
		return domain.Afternoon
	case h >= 17 && h < 20:
		return domain.Evening
	default:
		return domain.Night
	}
}

// IsPrayerTime reports whether t falls inside one of the daily prayer breaks.
func IsPrayerTime(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	for _, w := range prayerWindows {
		if m >= w.from && m < w.to {
			return true
		}
	}
	return false
}

// ShiftFactor is the workforce output multiplier for the bucket.
func ShiftFactor(bucket domain.TimeOfDay) float64 {
	if f, ok := shiftFactor[bucket]; ok {
		return f
	}
	return 1
}

// DrawWeather picks a weather type for the bucket from WeatherDistribution.
func DrawWeather(r sim.Rand, bucket domain.TimeOfDay) domain.WeatherType {
	row := WeatherDistribution[bucket]
	if len(row) == 0 {
		return domain.WeatherClear
	}
	weights := make([]float64, len(row))
	for i, w := range row {
		weights[i] = w.Weight
	}
	return row[sim.Weighted(r, weights)].Type
}

// NewWeather builds the weather record for a given type. Temperature and
// humidity carry jitter; the productivity impact is fixed per type.
func NewWeather(r sim.Rand, bucket domain.TimeOfDay, kind domain.WeatherType) domain.Weather {
	temp := baseTemperature[bucket]
	humidity := 65.0
	switch kind {
	case domain.WeatherHeat:
		temp += 5
		humidity = 55
	case domain.WeatherRain:
		temp -= 3
		humidity = 90
	case domain.WeatherStorm:
		temp -= 5
		humidity = 95
	}
	return domain.Weather{
		Type:               kind,
		Description:        weatherDescriptions[kind],
		TemperatureC:       sim.Round1(temp + sim.Between(r, -1.5, 1.5)),
		Humidity:           sim.Round1(sim.ClampPercent(humidity + sim.Between(r, -5, 5))),
		ProductivityImpact: ProductivityImpact[kind],
	}
}

// RateFactor is the per-worker output multiplier for weather and prayer
// breaks. ProductivityFactor is RateFactor scaled by the shift factor.
func RateFactor(w domain.Weather, prayer bool) float64 {
	f := 1 + w.ProductivityImpact/100
	if prayer {
		f *= PrayerFactor
	}
	return f
}

// Generate derives the full context for t.
func Generate(r sim.Rand, t time.Time) domain.Conditions {
	bucket := Bucket(t)
	return WithWeather(t, NewWeather(r, bucket, DrawWeather(r, bucket)))
}

// WithWeather derives the context for t under a fixed weather.
func WithWeather(t time.Time, w domain.Weather) domain.Conditions {
	bucket := Bucket(t)
	prayer := IsPrayerTime(t)
	factor := ShiftFactor(bucket) * RateFactor(w, prayer)
	return domain.Conditions{
		Time:               t,
		TimeOfDay:          bucket,
		Weather:            w,
		PrayerTime:         prayer,
		ProductivityFactor: sim.Round2(sim.Clamp(factor, 0, 1)),
	}
}
