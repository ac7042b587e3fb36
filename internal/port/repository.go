package port

import (
	"context"

	"idsync/internal/domain"
)

// UserRepository defines the contract for local user persistence, keyed by
// the provider subject id.
type UserRepository interface {
	// GetBySubjectID returns domain.ErrNotFound when no user has the subject id.
	GetBySubjectID(ctx context.Context, subjectID string) (*domain.User, error)
	// Upsert inserts the user or, when the subject id already exists, overwrites
	// its mutable fields in the same statement. It returns the stored row and
	// domain.ErrDuplicateEmail when the email belongs to another subject.
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
	Ping(ctx context.Context) error
}
