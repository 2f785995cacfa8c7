package service

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/repository"
	"context"
	"errors"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound      = errors.New("session not found or expired")
	ErrTokenGeneration      = errors.New("failed to generate session token")
	ErrOnboardingIncomplete = errors.New("onboarding is not finished yet")
	ErrOnboardingComplete   = errors.New("onboarding is already finished")
	ErrInvalidProfile       = errors.New("invalid profile field")
	ErrInvalidTab           = errors.New("unknown dashboard tab")
	ErrInvalidPhotoSlot     = errors.New("unknown progress photo slot")
	ErrInvalidContentType   = errors.New("unsupported photo content type")
	ErrPhotoNotFound        = errors.New("no photo uploaded for this slot")
	ErrPhotoStorageDisabled = errors.New("progress photo storage is not configured")
)

// loadSession fetches a live session and maps a missing one to ErrSessionNotFound.
func loadSession(ctx context.Context, repo repository.SessionRepository, id string) (*domain.Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	session, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// mutateSession applies fn atomically and maps a vanished session to
// ErrSessionNotFound. Errors returned by fn pass through unchanged.
func mutateSession(ctx context.Context, repo repository.SessionRepository, id string, fn repository.MutateFunc) (*domain.Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	session, err := repo.Mutate(ctx, id, fn)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}
