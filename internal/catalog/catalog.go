// Package catalog loads the fixed content of the coaching app: plans, meals,
// supplements, progress and community fixtures, and onboarding choices.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"alcyxob/fitcoach/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Bucket keys under workouts and meals.
const (
	BucketLoseWeight = "lose_weight"
	BucketGainMuscle = "gain_muscle"
	BucketDefault    = "default"
)

// Option is a selectable value with its display label.
type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

type Onboarding struct {
	Steps       []string `yaml:"steps" json:"steps"`
	Genders     []Option `yaml:"genders" json:"genders"`
	Experience  []Option `yaml:"experience" json:"experience"`
	Goals       []Option `yaml:"goals" json:"goals"`
	Frequencies []int    `yaml:"frequencies" json:"frequencies"`
	Injuries    []string `yaml:"injuries" json:"injuries"`
	Diets       []string `yaml:"diets" json:"diets"`
	Equipment   []string `yaml:"equipment" json:"equipment"`
	Disclaimer  string   `yaml:"disclaimer" json:"disclaimer"`
}

type ShoppingCategory struct {
	Category string   `yaml:"category" json:"category"`
	Items    []string `yaml:"items" json:"items"`
}

type Nutrition struct {
	Hydration    string             `yaml:"hydration"`
	ShoppingList []ShoppingCategory `yaml:"shoppingList"`
}

// Supplement is a recommendation card. Goals restricts it to the listed
// goals; empty means it applies to everyone.
type Supplement struct {
	Name        string        `yaml:"name" json:"name"`
	Description string        `yaml:"description" json:"description"`
	Dosage      string        `yaml:"dosage" json:"dosage"`
	Reference   string        `yaml:"reference" json:"reference"`
	Goals       []domain.Goal `yaml:"goals,omitempty" json:"-"`
}

// AppliesTo reports whether the supplement is shown for goal.
func (s Supplement) AppliesTo(goal domain.Goal) bool {
	if len(s.Goals) == 0 {
		return true
	}
	for _, g := range s.Goals {
		if g == goal {
			return true
		}
	}
	return false
}

type Supplements struct {
	Disclaimer string       `yaml:"disclaimer"`
	Items      []Supplement `yaml:"items"`
	Tip        string       `yaml:"tip"`
}

type PhotoSlot struct {
	Slot  domain.PhotoSlot `yaml:"slot"`
	Label string           `yaml:"label"`
}

type Progress struct {
	WeightKg          []float64   `yaml:"weightKg"`
	WorkoutsCompleted []int       `yaml:"workoutsCompleted"`
	TotalWorkouts     int         `yaml:"totalWorkouts"`
	CaloriesBurned    int         `yaml:"caloriesBurned"`
	StreakDays        int         `yaml:"streakDays"`
	PhotoSlots        []PhotoSlot `yaml:"photoSlots"`
	Message           string      `yaml:"message"`
}

type ChatMessage struct {
	From string `yaml:"from" json:"from"`
	Text string `yaml:"text" json:"text"`
}

type ForumPost struct {
	User    string `yaml:"user" json:"user"`
	Topic   string `yaml:"topic" json:"topic"`
	Replies int    `yaml:"replies" json:"replies"`
	Time    string `yaml:"time" json:"time"`
}

type Wearables struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Providers   []string `yaml:"providers" json:"providers"`
}

type Community struct {
	Chat      []ChatMessage `yaml:"chat"`
	Forum     []ForumPost   `yaml:"forum"`
	Wearables Wearables     `yaml:"wearables"`
}

// Catalog is the whole fixture set. Treat it as read-only.
type Catalog struct {
	Onboarding  Onboarding                      `yaml:"onboarding"`
	Workouts    map[string][]domain.WorkoutPlan `yaml:"workouts"`
	WorkoutTip  string                          `yaml:"workoutTip"`
	Meals       map[string][]domain.MealPlan    `yaml:"meals"`
	Nutrition   Nutrition                       `yaml:"nutrition"`
	Supplements Supplements                     `yaml:"supplements"`
	Progress    Progress                        `yaml:"progress"`
	Community   Community                       `yaml:"community"`
}

// Parse decodes a catalog document and checks that every plan bucket exists.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for _, bucket := range []string{BucketLoseWeight, BucketGainMuscle, BucketDefault} {
		if len(c.Workouts[bucket]) == 0 {
			return nil, fmt.Errorf("catalog: workouts bucket %q is empty", bucket)
		}
		if len(c.Meals[bucket]) == 0 {
			return nil, fmt.Errorf("catalog: meals bucket %q is empty", bucket)
		}
	}
	if len(c.Onboarding.Steps) != domain.StepCount {
		return nil, errors.New("catalog: onboarding must list exactly five steps")
	}
	return &c, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the embedded catalog. It panics if the embedded document
// is malformed, which only a broken build can cause.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalog)
		if err != nil {
			panic(err)
		}
		defaultCat = c
	})
	return defaultCat
}
