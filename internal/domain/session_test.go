package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStepStaysInRange(t *testing.T) {
	s := NewSession("s-1", time.Now(), time.Hour)

	for i := 0; i < 10; i++ {
		s.Back()
		require.Equal(t, FirstStep, s.Step)
	}

	finishing := 0
	for i := 0; i < 20; i++ {
		if s.Next() {
			finishing++
		}
		require.GreaterOrEqual(t, s.Step, FirstStep)
		require.LessOrEqual(t, s.Step, LastStep)
	}
	assert.Equal(t, LastStep, s.Step)
	assert.Equal(t, 16, finishing, "every next on the last step asks to finish")

	// Interleaved moves never escape the bounds either.
	moves := []bool{true, false, false, true, false, false, false, false, true, true, true, true, true, true}
	for _, forward := range moves {
		if forward {
			s.Next()
		} else {
			s.Back()
		}
		require.GreaterOrEqual(t, s.Step, FirstStep)
		require.LessOrEqual(t, s.Step, LastStep)
	}
}

func TestSessionFinishOpensDashboard(t *testing.T) {
	s := NewSession("s-1", time.Now(), time.Hour)
	s.ActiveTab = TabNutrition
	require.Nil(t, s.Profile.BMI)
	require.Nil(t, s.Profile.Calories)

	s.Finish(22.9, 2586, []WorkoutPlan{{Day: "Segunda-feira"}}, []MealPlan{{Meal: "Almoço"}})

	assert.True(t, s.Completed)
	assert.Equal(t, TabDashboard, s.ActiveTab)
	require.NotNil(t, s.Profile.BMI)
	assert.InDelta(t, 22.9, *s.Profile.BMI, 1e-9)
	require.NotNil(t, s.Profile.Calories)
	assert.Equal(t, 2586, *s.Profile.Calories)
	assert.Len(t, s.WorkoutPlan, 1)
	assert.Len(t, s.MealPlan, 1)
}

func TestSessionCloneIsDeep(t *testing.T) {
	s := NewSession("s-1", time.Now(), time.Hour)
	s.Profile.Restrictions = []string{"Joelho"}
	s.Finish(20, 2000, []WorkoutPlan{{Day: "A", Exercises: []Exercise{{Name: "Flexão"}}}},
		[]MealPlan{{Meal: "Jantar", Foods: []string{"Salada"}}})
	s.Photos = map[PhotoSlot]string{PhotoStart: "k"}

	c := s.Clone()
	c.Profile.Restrictions[0] = "Ombro"
	*c.Profile.BMI = 99
	c.WorkoutPlan[0].Exercises[0].Name = "Burpees"
	c.MealPlan[0].Foods[0] = "Arroz"
	c.Photos[PhotoWeek4] = "x"

	assert.Equal(t, "Joelho", s.Profile.Restrictions[0])
	assert.InDelta(t, 20.0, *s.Profile.BMI, 1e-9)
	assert.Equal(t, "Flexão", s.WorkoutPlan[0].Exercises[0].Name)
	assert.Equal(t, "Salada", s.MealPlan[0].Foods[0])
	assert.Len(t, s.Photos, 1)
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	s := NewSession("s-1", now, time.Hour)

	assert.False(t, s.Expired(now))
	assert.False(t, s.Expired(now.Add(59*time.Minute)))
	assert.True(t, s.Expired(now.Add(time.Hour)))
}

func TestUniqueLabels(t *testing.T) {
	got := UniqueLabels([]string{"Joelho", "", "Ombro", "Joelho", "Vegano"})
	assert.Equal(t, []string{"Joelho", "Ombro", "Vegano"}, got)
	assert.Empty(t, UniqueLabels(nil))
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, GenderOther.Valid())
	assert.False(t, Gender("robot").Valid())
	assert.True(t, ExperienceAdvanced.Valid())
	assert.False(t, Experience("").Valid())
	assert.True(t, GoalEndurance.Valid())
	assert.False(t, Goal("bulk").Valid())
	assert.True(t, TabCommunity.Valid())
	assert.False(t, Tab("settings").Valid())
	assert.True(t, PhotoWeek12.Valid())
	assert.False(t, PhotoSlot("week2").Valid())
}
