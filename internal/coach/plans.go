package coach

import (
	"alcyxob/fitcoach/internal/catalog"
	"alcyxob/fitcoach/internal/domain"
)

// Selector picks plans out of a catalog. Experience, equipment and
// restrictions are collected during onboarding but do not influence the
// choice; only the goal does.
type Selector struct {
	cat *catalog.Catalog
}

// NewSelector binds a selector to a catalog. A nil catalog means the
// embedded default.
func NewSelector(cat *catalog.Catalog) *Selector {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Selector{cat: cat}
}

// bucket maps a goal to its plan bucket. Goals other than lose_weight and
// gain_muscle, including a missing goal, share the default bucket.
func bucket(goal domain.Goal) string {
	switch goal {
	case domain.GoalLoseWeight:
		return catalog.BucketLoseWeight
	case domain.GoalGainMuscle:
		return catalog.BucketGainMuscle
	}
	return catalog.BucketDefault
}

// WorkoutPlan returns a fresh copy of the weekly schedule for goal.
func (s *Selector) WorkoutPlan(goal domain.Goal) []domain.WorkoutPlan {
	return domain.CloneWorkouts(s.cat.Workouts[bucket(goal)])
}

// MealPlan returns a fresh copy of the daily meal sequence for goal.
func (s *Selector) MealPlan(goal domain.Goal) []domain.MealPlan {
	return domain.CloneMeals(s.cat.Meals[bucket(goal)])
}

// Supplements lists the supplement cards shown for goal.
func (s *Selector) Supplements(goal domain.Goal) []catalog.Supplement {
	var out []catalog.Supplement
	for _, item := range s.cat.Supplements.Items {
		if item.AppliesTo(goal) {
			out = append(out, item)
		}
	}
	return out
}

// Result is everything derived when onboarding finishes.
type Result struct {
	BMI      float64
	Calories int
	Workouts []domain.WorkoutPlan
	Meals    []domain.MealPlan
}

// Derive computes metrics and plans from a profile snapshot.
func (s *Selector) Derive(p domain.Profile) Result {
	return Result{
		BMI:      BMI(p),
		Calories: DailyCalories(p),
		Workouts: s.WorkoutPlan(p.Goal),
		Meals:    s.MealPlan(p.Goal),
	}
}

// DailyMacros sums the macros of a meal sequence.
func DailyMacros(meals []domain.MealPlan) domain.Macros {
	var total domain.Macros
	for _, m := range meals {
		total = total.Add(m.Macros)
	}
	return total
}
