package repository

import (
	"alcyxob/fitcoach/internal/domain"
	"context"
)

// Error constants for the repository layer
var (
	ErrNotFound = RepositoryError("not found")
	ErrConflict = RepositoryError("already exists")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// MutateFunc edits a session in place. Returning an error discards the edit.
type MutateFunc func(session *domain.Session) error

// SessionRepository stores live sessions. Implementations hand out copies.
// Expired sessions behave as if they did not exist.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	// Mutate applies fn to the current session and stores the result
	// atomically: concurrent mutations of one session never overwrite each
	// other. It returns the stored session.
	Mutate(ctx context.Context, id string, fn MutateFunc) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
