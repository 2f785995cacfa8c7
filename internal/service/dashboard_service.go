package service

import (
	"alcyxob/fitcoach/internal/catalog"
	"alcyxob/fitcoach/internal/coach"
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/repository"
	"alcyxob/fitcoach/internal/storage"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	overviewWorkoutDays = 2
	overviewMeals       = 3
)

// Allowed content types for progress photos.
var photoContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
}

// --- Views ---

type WorkoutDaySummary struct {
	Day       string `json:"day"`
	Exercises int    `json:"exercises"`
}

type Overview struct {
	Weight      float64             `json:"weight"`
	BMI         float64             `json:"bmi"`
	Calories    int                 `json:"calories"`
	Frequency   int                 `json:"frequency"`
	WorkoutDays []WorkoutDaySummary `json:"workoutDays"`
	Meals       []domain.MealPlan   `json:"meals"`
	ActiveTab   domain.Tab          `json:"activeTab"`
}

type WorkoutsView struct {
	Plan []domain.WorkoutPlan `json:"plan"`
	Tip  string               `json:"tip"`
}

type NutritionView struct {
	Calories     int                        `json:"calories"`
	Meals        []domain.MealPlan          `json:"meals"`
	Totals       domain.Macros              `json:"totals"`
	Hydration    string                     `json:"hydration"`
	ShoppingList []catalog.ShoppingCategory `json:"shoppingList"`
}

type SupplementsView struct {
	Disclaimer string               `json:"disclaimer"`
	Items      []catalog.Supplement `json:"items"`
	Tip        string               `json:"tip"`
}

// SeriesPoint is one week of a progress chart.
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type PhotoSlotView struct {
	Slot     domain.PhotoSlot `json:"slot"`
	Label    string           `json:"label"`
	Uploaded bool             `json:"uploaded"`
}

type ProgressView struct {
	Weight         []SeriesPoint   `json:"weight"`
	Workouts       []SeriesPoint   `json:"workouts"`
	TotalWorkouts  int             `json:"totalWorkouts"`
	CaloriesBurned int             `json:"caloriesBurned"`
	StreakDays     int             `json:"streakDays"`
	Photos         []PhotoSlotView `json:"photos"`
	PhotoStorage   bool            `json:"photoStorage"`
	Message        string          `json:"message"`
}

type CommunityView struct {
	Chat      []catalog.ChatMessage `json:"chat"`
	Forum     []catalog.ForumPost   `json:"forum"`
	Wearables catalog.Wearables     `json:"wearables"`
}

// PresignedPhoto is a temporary URL for one progress photo.
type PresignedPhoto struct {
	Slot      domain.PhotoSlot `json:"slot"`
	URL       string           `json:"url"`
	ObjectKey string           `json:"objectKey"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

// DashboardService serves the tabs shown after onboarding.
type DashboardService interface {
	Overview(ctx context.Context, sessionID string) (*Overview, error)
	Workouts(ctx context.Context, sessionID string) (*WorkoutsView, error)
	Nutrition(ctx context.Context, sessionID string) (*NutritionView, error)
	Supplements(ctx context.Context, sessionID string) (*SupplementsView, error)
	Progress(ctx context.Context, sessionID string) (*ProgressView, error)
	Community(ctx context.Context, sessionID string) (*CommunityView, error)
	SetActiveTab(ctx context.Context, sessionID string, tab domain.Tab) error

	PhotoUploadURL(ctx context.Context, sessionID string, slot domain.PhotoSlot, contentType string) (*PresignedPhoto, error)
	PhotoDownloadURL(ctx context.Context, sessionID string, slot domain.PhotoSlot) (*PresignedPhoto, error)
}

type dashboardService struct {
	sessionRepo   repository.SessionRepository
	files         storage.FileStorage // nil when photo storage is off
	presignExpiry time.Duration
	selector      *coach.Selector
	cat           *catalog.Catalog
	logger        *zap.Logger
	now           func() time.Time
}

// NewDashboardService creates the dashboard service. files may be nil, in
// which case the photo operations return ErrPhotoStorageDisabled.
func NewDashboardService(sessionRepo repository.SessionRepository, files storage.FileStorage, presignExpiry time.Duration, cat *catalog.Catalog, logger *zap.Logger) DashboardService {
	if cat == nil {
		cat = catalog.Default()
	}
	if presignExpiry <= 0 {
		presignExpiry = storage.DefaultPresignedURLExpiry
	}
	return &dashboardService{
		sessionRepo:   sessionRepo,
		files:         files,
		presignExpiry: presignExpiry,
		selector:      coach.NewSelector(cat),
		cat:           cat,
		logger:        logger,
		now:           time.Now,
	}
}

// completedSession loads a session whose onboarding is finished.
func (s *dashboardService) completedSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := loadSession(ctx, s.sessionRepo, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Completed {
		return nil, ErrOnboardingIncomplete
	}
	return session, nil
}

func (s *dashboardService) Overview(ctx context.Context, sessionID string) (*Overview, error) {
	session, err := s.completedSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	days := session.WorkoutPlan
	if len(days) > overviewWorkoutDays {
		days = days[:overviewWorkoutDays]
	}
	summaries := make([]WorkoutDaySummary, 0, len(days))
	for _, d := range days {
		summaries = append(summaries, WorkoutDaySummary{Day: d.Day, Exercises: len(d.Exercises)})
	}

	meals := session.MealPlan
	if len(meals) > overviewMeals {
		meals = meals[:overviewMeals]
	}

	return &Overview{
		Weight:      session.Profile.Weight,
		BMI:         derefFloat(session.Profile.BMI),
		Calories:    derefInt(session.Profile.Calories),
		Frequency:   session.Profile.Frequency,
		WorkoutDays: summaries,
		Meals:       meals,
		ActiveTab:   session.ActiveTab,
	}, nil
}

func (s *dashboardService) Workouts(ctx context.Context, sessionID string) (*WorkoutsView, error) {
	session, err := s.completedSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &WorkoutsView{Plan: session.WorkoutPlan, Tip: s.cat.WorkoutTip}, nil
}

func (s *dashboardService) Nutrition(ctx context.Context, sessionID string) (*NutritionView, error) {
	session, err := s.completedSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &NutritionView{
		Calories:     derefInt(session.Profile.Calories),
		Meals:        session.MealPlan,
		Totals:       coach.DailyMacros(session.MealPlan),
		Hydration:    s.cat.Nutrition.Hydration,
		ShoppingList: s.cat.Nutrition.ShoppingList,
	}, nil
}

func (s *dashboardService) Supplements(ctx context.Context, sessionID string) (*SupplementsView, error) {
	session, err := s.completedSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &SupplementsView{
		Disclaimer: s.cat.Supplements.Disclaimer,
		Items:      s.selector.Supplements(session.Profile.Goal),
		Tip:        s.cat.Supplements.Tip,
	}, nil
}

func (s *dashboardService) Progress(ctx context.Context, sessionID string) (*ProgressView, error) {
	session, err := s.completedSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	p := s.cat.Progress
	view := &ProgressView{
		Weight:         make([]SeriesPoint, 0, len(p.WeightKg)),
		Workouts:       make([]SeriesPoint, 0, len(p.WorkoutsCompleted)),
		TotalWorkouts:  p.TotalWorkouts,
		CaloriesBurned: p.CaloriesBurned,
		StreakDays:     p.StreakDays,
		Photos:         make([]PhotoSlotView, 0, len(p.PhotoSlots)),
		PhotoStorage:   s.files != nil,
		Message:        p.Message,
	}
	for i, w := range p.WeightKg {
		view.Weight = append(view.Weight, SeriesPoint{Label: weekLabel(i), Value: w})
	}
	for i, n := range p.WorkoutsCompleted {
		view.Workouts = append(view.Workouts, SeriesPoint{Label: weekLabel(i), Value: float64(n)})
	}
	for _, slot := range p.PhotoSlots {
		view.Photos = append(view.Photos, PhotoSlotView{
			Slot:     slot.Slot,
			Label:    slot.Label,
			Uploaded: s.photoUploaded(ctx, session, slot.Slot),
		})
	}
	return view, nil
}

func (s *dashboardService) Community(ctx context.Context, sessionID string) (*CommunityView, error) {
	if _, err := s.completedSession(ctx, sessionID); err != nil {
		return nil, err
	}
	c := s.cat.Community
	return &CommunityView{Chat: c.Chat, Forum: c.Forum, Wearables: c.Wearables}, nil
}

func (s *dashboardService) SetActiveTab(ctx context.Context, sessionID string, tab domain.Tab) error {
	if !tab.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTab, tab)
	}
	_, err := mutateSession(ctx, s.sessionRepo, sessionID, func(session *domain.Session) error {
		if !session.Completed {
			return ErrOnboardingIncomplete
		}
		session.ActiveTab = tab
		return nil
	})
	return err
}

// PhotoUploadURL presigns a PUT for slot and records the object key on the
// session. The slot only counts as uploaded once the object exists in the
// bucket. Uploading again to the same slot overwrites the object.
func (s *dashboardService) PhotoUploadURL(ctx context.Context, sessionID string, slot domain.PhotoSlot, contentType string) (*PresignedPhoto, error) {
	if s.files == nil {
		return nil, ErrPhotoStorageDisabled
	}
	if !slot.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPhotoSlot, slot)
	}
	if !photoContentTypes[contentType] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentType, contentType)
	}
	session, err := s.completedSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	key := storage.PhotoObjectKey(session.ID, string(slot))
	url, err := s.files.GeneratePresignedUploadURL(ctx, key, contentType, s.presignExpiry)
	if err != nil {
		s.logger.Error("presign upload failed", zap.String("session", session.ID), zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("could not generate upload URL: %w", err)
	}

	_, err = mutateSession(ctx, s.sessionRepo, session.ID, func(session *domain.Session) error {
		if !session.Completed {
			return ErrOnboardingIncomplete
		}
		if session.Photos == nil {
			session.Photos = make(map[domain.PhotoSlot]string)
		}
		session.Photos[slot] = key
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PresignedPhoto{Slot: slot, URL: url, ObjectKey: key, ExpiresAt: s.now().UTC().Add(s.presignExpiry)}, nil
}

// PhotoDownloadURL presigns a GET for a slot whose object is in the bucket.
func (s *dashboardService) PhotoDownloadURL(ctx context.Context, sessionID string, slot domain.PhotoSlot) (*PresignedPhoto, error) {
	if s.files == nil {
		return nil, ErrPhotoStorageDisabled
	}
	if !slot.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPhotoSlot, slot)
	}
	session, err := s.completedSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	key, ok := session.Photos[slot]
	if !ok {
		return nil, ErrPhotoNotFound
	}
	exists, err := s.files.ObjectExists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("could not check photo: %w", err)
	}
	if !exists {
		return nil, ErrPhotoNotFound
	}
	url, err := s.files.GeneratePresignedDownloadURL(ctx, key, s.presignExpiry)
	if err != nil {
		s.logger.Error("presign download failed", zap.String("session", session.ID), zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("could not generate download URL: %w", err)
	}
	return &PresignedPhoto{Slot: slot, URL: url, ObjectKey: key, ExpiresAt: s.now().UTC().Add(s.presignExpiry)}, nil
}

// photoUploaded reports whether the slot's object is in the bucket. A failed
// check counts as not uploaded.
func (s *dashboardService) photoUploaded(ctx context.Context, session *domain.Session, slot domain.PhotoSlot) bool {
	key, ok := session.Photos[slot]
	if !ok || s.files == nil {
		return false
	}
	exists, err := s.files.ObjectExists(ctx, key)
	if err != nil {
		s.logger.Warn("photo check failed", zap.String("session", session.ID), zap.String("key", key), zap.Error(err))
		return false
	}
	return exists
}

func weekLabel(i int) string {
	return fmt.Sprintf("S%d", i+1)
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
