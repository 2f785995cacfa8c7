package service

import (
	"alcyxob/fitcoach/internal/catalog"
	"alcyxob/fitcoach/internal/coach"
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/observability"
	"alcyxob/fitcoach/internal/repository"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ProfilePatch carries the fields a wizard step submits. Nil fields are left
// untouched. Set-valued fields replace the whole set.
type ProfilePatch struct {
	Name         *string
	Age          *float64
	Weight       *float64
	Height       *float64
	Gender       *domain.Gender
	Experience   *domain.Experience
	Goal         *domain.Goal
	Frequency    *int
	Restrictions *[]string
	Equipment    *[]string
}

// Preview is the live summary shown on the last step, before the values are
// committed to the profile.
type Preview struct {
	BMI      float64 `json:"bmi"`
	Calories int     `json:"calories"`
}

// OnboardingState is the wizard as the client renders it.
type OnboardingState struct {
	Step      int            `json:"step"`
	StepCount int            `json:"stepCount"`
	Title     string         `json:"title"`
	Percent   int            `json:"percent"`
	Completed bool           `json:"completed"`
	Profile   domain.Profile `json:"profile"`
	Preview   Preview        `json:"preview"`
	Warnings  []string       `json:"warnings"`
}

// OnboardingService drives the five-step wizard of a session.
type OnboardingService interface {
	GetState(ctx context.Context, sessionID string) (*OnboardingState, error)
	UpdateProfile(ctx context.Context, sessionID string, patch ProfilePatch) (*OnboardingState, error)
	Next(ctx context.Context, sessionID string) (*OnboardingState, error)
	Back(ctx context.Context, sessionID string) (*OnboardingState, error)
	Options() catalog.Onboarding
}

type onboardingService struct {
	sessionRepo repository.SessionRepository
	selector    *coach.Selector
	cat         *catalog.Catalog
	logger      *zap.Logger
}

// NewOnboardingService creates the wizard service. A nil catalog means the
// embedded default.
func NewOnboardingService(sessionRepo repository.SessionRepository, cat *catalog.Catalog, logger *zap.Logger) OnboardingService {
	if cat == nil {
		cat = catalog.Default()
	}
	return &onboardingService{
		sessionRepo: sessionRepo,
		selector:    coach.NewSelector(cat),
		cat:         cat,
		logger:      logger,
	}
}

func (s *onboardingService) GetState(ctx context.Context, sessionID string) (*OnboardingState, error) {
	session, err := loadSession(ctx, s.sessionRepo, sessionID)
	if err != nil {
		return nil, err
	}
	return s.state(session), nil
}

// UpdateProfile merges the patch into the profile. Numbers are stored as
// given, without range checks. Enum values must be known ones.
func (s *onboardingService) UpdateProfile(ctx context.Context, sessionID string, patch ProfilePatch) (*OnboardingState, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	session, err := mutateSession(ctx, s.sessionRepo, sessionID, func(session *domain.Session) error {
		if session.Completed {
			return ErrOnboardingComplete
		}
		applyPatch(&session.Profile, patch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.state(session), nil
}

// Next advances one step. On the last step it derives metrics and plans
// from the profile and opens the dashboard.
func (s *onboardingService) Next(ctx context.Context, sessionID string) (*OnboardingState, error) {
	session, err := mutateSession(ctx, s.sessionRepo, sessionID, func(session *domain.Session) error {
		if session.Completed {
			return ErrOnboardingComplete
		}
		if session.Next() {
			res := s.selector.Derive(session.Profile.Clone())
			session.Finish(res.BMI, res.Calories, res.Workouts, res.Meals)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.RecordOnboardingTransition("next")
	if session.Completed {
		observability.RecordOnboardingCompleted(string(session.Profile.Goal))
		s.logger.Info("onboarding finished",
			zap.String("session", session.ID),
			zap.String("goal", string(session.Profile.Goal)),
			zap.Int("workoutDays", len(session.WorkoutPlan)),
			zap.Int("meals", len(session.MealPlan)))
	}
	return s.state(session), nil
}

// Back returns one step. It is a no-op on the first step.
func (s *onboardingService) Back(ctx context.Context, sessionID string) (*OnboardingState, error) {
	session, err := mutateSession(ctx, s.sessionRepo, sessionID, func(session *domain.Session) error {
		if session.Completed {
			return ErrOnboardingComplete
		}
		session.Back()
		return nil
	})
	if err != nil {
		return nil, err
	}
	observability.RecordOnboardingTransition("back")
	return s.state(session), nil
}

func (s *onboardingService) Options() catalog.Onboarding {
	return s.cat.Onboarding
}

func (s *onboardingService) state(session *domain.Session) *OnboardingState {
	p := session.Profile.Clone()
	return &OnboardingState{
		Step:      session.Step,
		StepCount: domain.StepCount,
		Title:     s.cat.Onboarding.Steps[session.Step],
		Percent:   (session.Step + 1) * 100 / domain.StepCount,
		Completed: session.Completed,
		Profile:   p,
		Preview: Preview{
			BMI:      coach.BMI(p),
			Calories: coach.DailyCalories(p),
		},
		Warnings: coach.ProfileWarnings(p),
	}
}

func validatePatch(patch ProfilePatch) error {
	if patch.Gender != nil && *patch.Gender != "" && !patch.Gender.Valid() {
		return fmt.Errorf("%w: gender %q", ErrInvalidProfile, *patch.Gender)
	}
	if patch.Experience != nil && *patch.Experience != "" && !patch.Experience.Valid() {
		return fmt.Errorf("%w: experience %q", ErrInvalidProfile, *patch.Experience)
	}
	if patch.Goal != nil && *patch.Goal != "" && !patch.Goal.Valid() {
		return fmt.Errorf("%w: goal %q", ErrInvalidProfile, *patch.Goal)
	}
	return nil
}

func applyPatch(p *domain.Profile, patch ProfilePatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Age != nil {
		p.Age = *patch.Age
	}
	if patch.Weight != nil {
		p.Weight = *patch.Weight
	}
	if patch.Height != nil {
		p.Height = *patch.Height
	}
	if patch.Gender != nil {
		p.Gender = *patch.Gender
	}
	if patch.Experience != nil {
		p.Experience = *patch.Experience
	}
	if patch.Goal != nil {
		p.Goal = *patch.Goal
	}
	if patch.Frequency != nil {
		p.Frequency = *patch.Frequency
	}
	if patch.Restrictions != nil {
		p.Restrictions = domain.UniqueLabels(*patch.Restrictions)
	}
	if patch.Equipment != nil {
		p.Equipment = domain.UniqueLabels(*patch.Equipment)
	}
}
