// internal/domain/plan.go
package domain

// Exercise is one entry of a workout day. Reps and Rest are free text since
// they can be counts ("12"), ranges ("8-12") or durations ("30 min").
type Exercise struct {
	Name     string `bson:"name" json:"name" yaml:"name"`
	Sets     int    `bson:"sets" json:"sets" yaml:"sets"`
	Reps     string `bson:"reps" json:"reps" yaml:"reps"`
	Rest     string `bson:"rest" json:"rest" yaml:"rest"`
	VideoURL string `bson:"videoUrl,omitempty" json:"videoUrl,omitempty" yaml:"videoUrl,omitempty"` // embeddable third-party link
}

// WorkoutPlan is a single training day of the weekly schedule.
type WorkoutPlan struct {
	Day       string     `bson:"day" json:"day" yaml:"day"`
	Exercises []Exercise `bson:"exercises" json:"exercises" yaml:"exercises"`
}

// Macros is the macronutrient breakdown of a meal: grams, plus kcal.
type Macros struct {
	Protein  int `bson:"protein" json:"protein" yaml:"protein"`
	Carbs    int `bson:"carbs" json:"carbs" yaml:"carbs"`
	Fats     int `bson:"fats" json:"fats" yaml:"fats"`
	Calories int `bson:"calories" json:"calories" yaml:"calories"`
}

// Add returns the sum of two macro records.
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fats:     m.Fats + o.Fats,
		Calories: m.Calories + o.Calories,
	}
}

// MealPlan is one meal of the daily plan.
type MealPlan struct {
	Meal   string   `bson:"meal" json:"meal" yaml:"meal"`
	Time   string   `bson:"time" json:"time" yaml:"time"` // HH:MM
	Foods  []string `bson:"foods" json:"foods" yaml:"foods"`
	Macros Macros   `bson:"macros" json:"macros" yaml:"macros"`
}

// CloneWorkouts deep-copies a weekly schedule.
func CloneWorkouts(in []WorkoutPlan) []WorkoutPlan {
	if in == nil {
		return nil
	}
	out := make([]WorkoutPlan, len(in))
	for i, day := range in {
		out[i] = WorkoutPlan{
			Day:       day.Day,
			Exercises: append([]Exercise(nil), day.Exercises...),
		}
	}
	return out
}

// CloneMeals deep-copies a daily meal sequence.
func CloneMeals(in []MealPlan) []MealPlan {
	if in == nil {
		return nil
	}
	out := make([]MealPlan, len(in))
	for i, m := range in {
		out[i] = m
		out[i].Foods = append([]string(nil), m.Foods...)
	}
	return out
}
