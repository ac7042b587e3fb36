package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"idsync/internal/domain"
	"idsync/internal/logger"
	"idsync/internal/port"
)

// SyncResult is the outcome of reconciling a claim with the local store.
type SyncResult struct {
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user"`
}

// UserSyncService reconciles identity claims with local user records.
type UserSyncService interface {
	Sync(ctx context.Context, claim *port.IdentityClaim) (*SyncResult, error)
}

type userSyncService struct {
	userRepo port.UserRepository
}

// NewUserSyncService creates a new UserSyncService.
func NewUserSyncService(userRepo port.UserRepository) UserSyncService {
	return &userSyncService{userRepo: userRepo}
}

func (s *userSyncService) Sync(ctx context.Context, claim *port.IdentityClaim) (*SyncResult, error) {
	// 1. Every required field must be present
	if missing := missingClaimFields(claim); len(missing) > 0 {
		slog.WarnContext(ctx, "identity claim is incomplete",
			logger.Component("user_sync"),
			slog.Any("missing_fields", missing))
		return nil, domain.NewInvalidClaim(missing)
	}

	// 2. Look up the subject to decide whether this is a first login
	user, err := s.userRepo.GetBySubjectID(ctx, claim.Subject)
	isNew := false
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		isNew = true
		user = &domain.User{ID: uuid.New(), SubjectID: claim.Subject}
	default:
		return nil, fmt.Errorf("looking up user by subject: %w", err)
	}

	// 3. Last write wins on every mutable field
	user.Name = claim.Name
	user.Email = claim.Email
	user.PictureURL = claim.Picture

	stored, err := s.userRepo.Upsert(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			slog.WarnContext(ctx, "email is bound to another subject",
				logger.Component("user_sync"))
			return nil, domain.NewFailure(domain.FailureConflictingIdentity, err)
		}
		return nil, fmt.Errorf("upserting user: %w", err)
	}

	return &SyncResult{User: stored, IsNewUser: isNew}, nil
}

// missingClaimFields lists absent required fields in a fixed order.
func missingClaimFields(claim *port.IdentityClaim) []string {
	if claim == nil {
		return []string{"sub", "name", "email", "picture"}
	}
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"sub", claim.Subject},
		{"name", claim.Name},
		{"email", claim.Email},
		{"picture", claim.Picture},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
