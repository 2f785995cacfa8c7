package coach

import (
	"math"
	"testing"

	"alcyxob/fitcoach/internal/domain"

	"github.com/stretchr/testify/assert"
)

func reference() domain.Profile {
	return domain.Profile{
		Age:       25,
		Weight:    70,
		Height:    175,
		Gender:    domain.GenderMale,
		Goal:      domain.GoalMaintain,
		Frequency: 3,
	}
}

func TestBMI(t *testing.T) {
	assert.InDelta(t, 22.9, BMI(reference()), 1e-9)

	tests := []struct {
		name   string
		weight float64
		height float64
		want   float64
	}{
		{"missing weight", 0, 175, 0},
		{"missing height", 70, 0, 0},
		{"both missing", 0, 0, 0},
		{"rounds to one decimal", 80, 180, 24.7},
		{"negative weight is not rejected", -70, 175, -22.9},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := domain.Profile{Weight: tc.weight, Height: tc.height}
			assert.InDelta(t, tc.want, BMI(p), 1e-9)
		})
	}
}

func TestDailyCaloriesMaintain(t *testing.T) {
	want := int(math.Round((88.362 + 13.397*70 + 4.799*175 - 5.677*25) * 1.5))
	assert.Equal(t, want, DailyCalories(reference()))
	assert.Equal(t, 2586, DailyCalories(reference()))
}

func TestDailyCaloriesGoalAdjustment(t *testing.T) {
	base := DailyCalories(reference())

	p := reference()
	p.Goal = domain.GoalLoseWeight
	assert.Equal(t, base-500, DailyCalories(p))

	p.Goal = domain.GoalGainMuscle
	assert.Equal(t, base+500, DailyCalories(p))

	p.Goal = domain.GoalEndurance
	assert.Equal(t, base, DailyCalories(p))

	p.Goal = ""
	assert.Equal(t, base, DailyCalories(p))
}

func TestDailyCaloriesNonMaleUsesFemaleCoefficients(t *testing.T) {
	p := reference()
	p.Gender = domain.GenderFemale
	female := DailyCalories(p)

	p.Gender = domain.GenderOther
	assert.Equal(t, female, DailyCalories(p))

	want := int(math.Round((447.593 + 9.247*70 + 3.098*175 - 4.330*25) * 1.5))
	assert.Equal(t, want, female)
}

func TestDailyCaloriesFrequencyFallback(t *testing.T) {
	p := reference()
	p.Frequency = 0
	want := int(math.Round((88.362 + 13.397*70 + 4.799*175 - 5.677*25) * 1.2))
	assert.Equal(t, want, DailyCalories(p))
}

func TestDailyCaloriesMissingInput(t *testing.T) {
	mutations := map[string]func(*domain.Profile){
		"weight": func(p *domain.Profile) { p.Weight = 0 },
		"height": func(p *domain.Profile) { p.Height = 0 },
		"age":    func(p *domain.Profile) { p.Age = 0 },
		"gender": func(p *domain.Profile) { p.Gender = "" },
	}
	for field, mutate := range mutations {
		t.Run(field, func(t *testing.T) {
			p := reference()
			p.Goal = domain.GoalGainMuscle
			mutate(&p)
			assert.Zero(t, DailyCalories(p))
			assert.Zero(t, BMR(p))
		})
	}
}

func TestActivityFactor(t *testing.T) {
	assert.InDelta(t, 1.2, ActivityFactor(0), 1e-9)
	assert.InDelta(t, 1.4, ActivityFactor(2), 1e-9)
	assert.InDelta(t, 1.8, ActivityFactor(6), 1e-9)
}
