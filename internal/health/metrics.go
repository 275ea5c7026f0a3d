// Package health holds the derived-metric calculators. Everything here is a
// pure function over already-validated inputs; callers are responsible for
// range-checking via ValidateVitals before computing scores.
package health

import (
	"errors"
	"math"
)

// ErrVitalsOutOfRange is returned when age, weight or height falls outside the
// supported measurement ranges.
var ErrVitalsOutOfRange = errors.New("vitals out of supported range")

// ValidateVitals rejects inputs outside the supported physical ranges:
// age 5-100 years, weight 20-200 kg, height 100-220 cm. Violations are a
// request-level error, not a computed result.
func ValidateVitals(age int, weightKg, heightCm float64) error {
	if age < 5 || age > 100 ||
		weightKg < 20 || weightKg > 200 ||
		heightCm < 100 || heightCm > 220 {
		return ErrVitalsOutOfRange
	}
	return nil
}

// BMI computes the body mass index from weight in kilograms and height in
// centimeters, rounded to 2 decimals. Height must be non-zero.
func BMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return round2(weightKg / (heightM * heightM))
}

// WASI computes the Wellness-Adjusted Score Index: a BMI band score scaled by
// an age factor that decays 0.5% per year past age 20, floored at 0.7.
func WASI(age int, weightKg, heightCm float64) float64 {
	bmi := BMI(weightKg, heightCm)

	var bmiScore float64
	switch {
	case bmi < 18.5:
		bmiScore = 50
	case bmi <= 24.9:
		bmiScore = 100
	case bmi <= 29.9:
		bmiScore = 70
	default:
		bmiScore = 40
	}

	ageFactor := math.Max(0.7, 1-float64(age-20)*0.005)
	return round1(bmiScore * ageFactor)
}

// MLS computes the Mechanical Load Score: actual weight relative to the ideal
// weight for the height (BMI 22), scaled by an age multiplier.
func MLS(age int, weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	idealWeight := 22 * heightM * heightM
	loadRatio := weightKg / idealWeight

	var ageMultiplier float64
	switch {
	case age < 30:
		ageMultiplier = 1.0
	case age < 45:
		ageMultiplier = 1.1
	default:
		ageMultiplier = 1.2
	}

	return round1(loadRatio * ageMultiplier * 100)
}

// USAQIFromPM25 converts a raw PM2.5 concentration (µg/m³) to the US EPA AQI
// scale using the piecewise-linear breakpoint table. A nil reading yields nil,
// negative readings clamp to 0, and concentrations above 500.4 clamp to 500.
func USAQIFromPM25(pm25 *float64) *int {
	if pm25 == nil {
		return nil
	}
	c := *pm25
	var aqi int
	switch {
	case c < 0:
		aqi = 0
	case c <= 12.0:
		aqi = lerpAQI(c, 0, 12.0, 0, 50)
	case c <= 35.4:
		aqi = lerpAQI(c, 12.1, 35.4, 51, 100)
	case c <= 55.4:
		aqi = lerpAQI(c, 35.5, 55.4, 101, 150)
	case c <= 150.4:
		aqi = lerpAQI(c, 55.5, 150.4, 151, 200)
	case c <= 250.4:
		aqi = lerpAQI(c, 150.5, 250.4, 201, 300)
	case c <= 350.4:
		aqi = lerpAQI(c, 250.5, 350.4, 301, 400)
	case c <= 500.4:
		aqi = lerpAQI(c, 350.5, 500.4, 401, 500)
	default:
		aqi = 500
	}
	return &aqi
}

// DietRecommendation maps a heart rate to a coarse diet suggestion.
func DietRecommendation(bpm int) string {
	switch {
	case bpm < 60:
		return "Energy-support diet (complex carbs, hydration)"
	case bpm <= 90:
		return "Balanced heart-healthy diet"
	default:
		return "Stress-reduction & low-salt diet"
	}
}

// lerpAQI interpolates a concentration within one EPA breakpoint band.
func lerpAQI(c, cLow, cHigh, aqiLow, aqiHigh float64) int {
	return int(math.Round((aqiHigh-aqiLow)/(cHigh-cLow)*(c-cLow) + aqiLow))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
