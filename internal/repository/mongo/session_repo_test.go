package mongo

import (
	"alcyxob/fitcoach/internal/domain"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func ptr[T any](v T) *T { return &v }

func finishedSessionDocument() *domain.Session {
	// BSON datetimes keep milliseconds and decode as UTC.
	created := time.Date(2024, 3, 1, 9, 30, 0, 123_000_000, time.UTC)
	return &domain.Session{
		ID:        "3f2a",
		Step:      domain.LastStep,
		Completed: true,
		Profile: domain.Profile{
			Name:         "Ana",
			Age:          25,
			Weight:       70,
			Height:       175,
			Gender:       domain.GenderFemale,
			Experience:   domain.ExperienceBeginner,
			Goal:         domain.GoalLoseWeight,
			Restrictions: []string{"Joelho"},
			Frequency:    3,
			Equipment:    []string{"Halteres"},
			BMI:          ptr(22.86),
			Calories:     ptr(2086),
		},
		WorkoutPlan: []domain.WorkoutPlan{
			{Day: "Segunda", Exercises: []domain.Exercise{{Name: "Agachamento", Sets: 3, Reps: "12", Rest: "60s"}}},
		},
		MealPlan: []domain.MealPlan{
			{Meal: "Café", Time: "07:00", Foods: []string{"Ovos"}, Macros: domain.Macros{Protein: 20, Carbs: 30, Fats: 10, Calories: 300}},
		},
		ActiveTab: domain.TabProgress,
		Photos: map[domain.PhotoSlot]string{
			domain.PhotoStart: "sessions/3f2a/progress/start",
			domain.PhotoWeek4: "sessions/3f2a/progress/week4",
		},
		Version:   7,
		CreatedAt: created,
		UpdatedAt: created.Add(time.Minute),
		ExpiresAt: created.Add(12 * time.Hour),
	}
}

func TestSessionDocumentRoundTrip(t *testing.T) {
	want := finishedSessionDocument()

	raw, err := bson.Marshal(want)
	require.NoError(t, err)

	var got domain.Session
	require.NoError(t, bson.Unmarshal(raw, &got))
	if diff := cmp.Diff(want, &got); diff != "" {
		t.Errorf("session changed through bson (-want +got):\n%s", diff)
	}
}

func TestSessionDocumentFieldNames(t *testing.T) {
	raw, err := bson.Marshal(finishedSessionDocument())
	require.NoError(t, err)
	doc := bson.Raw(raw)

	assert.Equal(t, "3f2a", doc.Lookup("_id").StringValue())
	assert.Equal(t, int64(7), doc.Lookup("version").Int64())
	assert.Equal(t, "sessions/3f2a/progress/week4", doc.Lookup("photos", "week4").StringValue())
	assert.Equal(t, 22.86, doc.Lookup("profile", "bmi").Double())
	// expiresAt must be a BSON date for the TTL index to apply.
	assert.Equal(t, bson.TypeDateTime, doc.Lookup("expiresAt").Type)
}

func TestSessionDocumentKeepsZeroMetrics(t *testing.T) {
	s := domain.NewSession("s0", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Hour)
	s.Profile.BMI = ptr(0.0)
	s.Profile.Calories = ptr(0)

	raw, err := bson.Marshal(s)
	require.NoError(t, err)
	var got domain.Session
	require.NoError(t, bson.Unmarshal(raw, &got))

	require.NotNil(t, got.Profile.BMI, "a derived zero BMI is not dropped")
	require.NotNil(t, got.Profile.Calories)
	assert.Equal(t, 0.0, *got.Profile.BMI)
	assert.Equal(t, 0, *got.Profile.Calories)
	assert.Nil(t, got.Photos)
}

func TestVersionFilter(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	want := bson.M{
		"_id":       "s1",
		"version":   int64(3),
		"expiresAt": bson.M{"$gt": now},
	}
	assert.Equal(t, want, versionFilter("s1", 3, now))
}
