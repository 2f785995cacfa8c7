// Package coach holds the stateless rules of the app: body metrics and the
// goal-driven plan selection. Everything here is a pure function of a
// Profile value.
package coach

import (
	"math"

	"alcyxob/fitcoach/internal/domain"
)

// Harris-Benedict coefficients. Every non-male gender uses the female set.
type bmrCoefficients struct {
	base, weight, height, age float64
}

var (
	maleBMR   = bmrCoefficients{base: 88.362, weight: 13.397, height: 4.799, age: 5.677}
	femaleBMR = bmrCoefficients{base: 447.593, weight: 9.247, height: 3.098, age: 4.330}
)

const (
	baseActivityFactor    = 1.2
	activityPerSession    = 0.1
	goalCalorieAdjustment = 500
)

// BMI returns weight / height(m)² rounded to one decimal place, or 0 when
// weight or height is missing.
func BMI(p domain.Profile) float64 {
	if p.Weight == 0 || p.Height == 0 {
		return 0
	}
	meters := p.Height / 100
	return roundTo(p.Weight/(meters*meters), 1)
}

// BMR is the Harris-Benedict basal metabolic rate in kcal/day, or 0 when
// weight, height, age or gender is missing.
func BMR(p domain.Profile) float64 {
	if !hasBMRInputs(p) {
		return 0
	}
	c := femaleBMR
	if p.Gender == domain.GenderMale {
		c = maleBMR
	}
	return c.base + c.weight*p.Weight + c.height*p.Height - c.age*p.Age
}

// ActivityFactor scales BMR by weekly training frequency.
func ActivityFactor(frequency int) float64 {
	if frequency == 0 {
		return baseActivityFactor
	}
	return baseActivityFactor + float64(frequency)*activityPerSession
}

// GoalAdjustment is the kcal offset applied for a goal.
func GoalAdjustment(goal domain.Goal) float64 {
	switch goal {
	case domain.GoalLoseWeight:
		return -goalCalorieAdjustment
	case domain.GoalGainMuscle:
		return goalCalorieAdjustment
	}
	return 0
}

// DailyCalories is the daily kcal target, or 0 when BMR inputs are missing.
func DailyCalories(p domain.Profile) int {
	if !hasBMRInputs(p) {
		return 0
	}
	kcal := BMR(p)*ActivityFactor(p.Frequency) + GoalAdjustment(p.Goal)
	// halves round up, so -0.5 becomes 0 rather than -1
	return int(math.Floor(kcal + 0.5))
}

func hasBMRInputs(p domain.Profile) bool {
	return p.Weight != 0 && p.Height != 0 && p.Age != 0 && p.Gender != ""
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
