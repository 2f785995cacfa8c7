package domain

// Gender as selected on the first onboarding step.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Experience is the self-reported training experience level.
type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// Goal is the user's main objective. It drives plan selection and the
// calorie adjustment.
type Goal string

const (
	GoalLoseWeight Goal = "lose_weight"
	GoalGainMuscle Goal = "gain_muscle"
	GoalMaintain   Goal = "maintain"
	GoalEndurance  Goal = "endurance"
)

// Valid reports whether g is one of the selectable genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

func (e Experience) Valid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

func (g Goal) Valid() bool {
	switch g {
	case GoalLoseWeight, GoalGainMuscle, GoalMaintain, GoalEndurance:
		return true
	}
	return false
}

// Profile holds everything collected during onboarding.
// Zero numbers and empty enums mean "not provided". BMI and Calories stay nil
// until the last onboarding step is left.
type Profile struct {
	Name         string     `bson:"name,omitempty" json:"name,omitempty"`
	Age          float64    `bson:"age,omitempty" json:"age,omitempty"`       // years
	Weight       float64    `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	Height       float64    `bson:"height,omitempty" json:"height,omitempty"` // cm
	Gender       Gender     `bson:"gender,omitempty" json:"gender,omitempty"`
	Experience   Experience `bson:"experience,omitempty" json:"experience,omitempty"`
	Goal         Goal       `bson:"goal,omitempty" json:"goal,omitempty"`
	Restrictions []string   `bson:"restrictions,omitempty" json:"restrictions"`
	Frequency    int        `bson:"frequency,omitempty" json:"frequency,omitempty"` // sessions per week
	Equipment    []string   `bson:"equipment,omitempty" json:"equipment"`

	BMI      *float64 `bson:"bmi,omitempty" json:"bmi,omitempty"`
	Calories *int     `bson:"calories,omitempty" json:"calories,omitempty"`
}

// Clone returns a deep copy so callers can hand out snapshots.
func (p Profile) Clone() Profile {
	out := p
	out.Restrictions = append([]string(nil), p.Restrictions...)
	out.Equipment = append([]string(nil), p.Equipment...)
	if p.BMI != nil {
		v := *p.BMI
		out.BMI = &v
	}
	if p.Calories != nil {
		v := *p.Calories
		out.Calories = &v
	}
	return out
}

// UniqueLabels drops blanks and duplicates while keeping first-seen order.
func UniqueLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
