package domain

import "time"

// Onboarding runs through five steps, 0 to 4.
const (
	FirstStep = 0
	LastStep  = 4
	StepCount = LastStep + 1
)

// Tab is a dashboard section.
type Tab string

const (
	TabDashboard   Tab = "dashboard"
	TabWorkouts    Tab = "workouts"
	TabNutrition   Tab = "nutrition"
	TabSupplements Tab = "supplements"
	TabProgress    Tab = "progress"
	TabCommunity   Tab = "community"
)

func (t Tab) Valid() bool {
	switch t {
	case TabDashboard, TabWorkouts, TabNutrition, TabSupplements, TabProgress, TabCommunity:
		return true
	}
	return false
}

// PhotoSlot names one of the progress photo placeholders.
type PhotoSlot string

const (
	PhotoStart  PhotoSlot = "start"
	PhotoWeek4  PhotoSlot = "week4"
	PhotoWeek8  PhotoSlot = "week8"
	PhotoWeek12 PhotoSlot = "week12"
)

// PhotoSlots lists the slots in display order.
var PhotoSlots = []PhotoSlot{PhotoStart, PhotoWeek4, PhotoWeek8, PhotoWeek12}

func (p PhotoSlot) Valid() bool {
	for _, s := range PhotoSlots {
		if s == p {
			return true
		}
	}
	return false
}

// Session is everything a logged-in user has produced since login.
// It is discarded on logout and never outlives its expiry.
type Session struct {
	ID        string `bson:"_id" json:"id"`
	Step      int    `bson:"step" json:"step"`
	Completed bool   `bson:"completed" json:"completed"` // onboarding finished, dashboard visible

	Profile     Profile       `bson:"profile" json:"profile"`
	WorkoutPlan []WorkoutPlan `bson:"workoutPlan,omitempty" json:"workoutPlan,omitempty"`
	MealPlan    []MealPlan    `bson:"mealPlan,omitempty" json:"mealPlan,omitempty"`
	ActiveTab   Tab           `bson:"activeTab" json:"activeTab"`

	// Object keys of uploaded progress photos, by slot.
	Photos map[PhotoSlot]string `bson:"photos,omitempty" json:"-"`

	// Bumped on every stored change.
	Version int64 `bson:"version" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
}

// NewSession returns a session positioned on the first onboarding step.
func NewSession(id string, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        id,
		Step:      FirstStep,
		ActiveTab: TabDashboard,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Back moves one step backwards. It is a no-op on the first step.
func (s *Session) Back() {
	if s.Step > FirstStep {
		s.Step--
	}
}

// Next moves one step forward and reports false, or reports true without
// moving when the current step is the last one. The caller finishes the
// flow in that case.
func (s *Session) Next() (finishing bool) {
	if s.Step < LastStep {
		s.Step++
		return false
	}
	return true
}

// Finish stores the derived metrics and plans and opens the dashboard.
func (s *Session) Finish(bmi float64, calories int, workouts []WorkoutPlan, meals []MealPlan) {
	s.Profile.BMI = &bmi
	s.Profile.Calories = &calories
	s.WorkoutPlan = workouts
	s.MealPlan = meals
	s.Completed = true
	s.ActiveTab = TabDashboard
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	out := *s
	out.Profile = s.Profile.Clone()
	out.WorkoutPlan = CloneWorkouts(s.WorkoutPlan)
	out.MealPlan = CloneMeals(s.MealPlan)
	if s.Photos != nil {
		out.Photos = make(map[PhotoSlot]string, len(s.Photos))
		for k, v := range s.Photos {
			out.Photos[k] = v
		}
	}
	return &out
}
