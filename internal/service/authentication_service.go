package service

import (
	"context"
	"fmt"
	"log/slog"

	"idsync/internal/auth/bearer"
	"idsync/internal/domain"
	"idsync/internal/logger"
	"idsync/internal/port"
)

// Stage is a step of the authentication pipeline.
type Stage string

const (
	StageStart           Stage = "start"
	StageTokenExtracted  Stage = "token_extracted"
	StageIdentityFetched Stage = "identity_fetched"
	StageReconciled      Stage = "reconciled"
	StageDone            Stage = "done"
	StageFailed          Stage = "failed"
)

// Outcome is the result of authenticating one request. Exactly one of User
// and Failure is set.
type Outcome struct {
	User      *domain.User
	IsNewUser bool
	Failure   *domain.Failure
	Status    domain.StatusClass
	// Stage is StageDone on success. On failure it is StageFailed and
	// FailedAt names the last stage that completed before the failure.
	Stage    Stage
	FailedAt Stage
}

// OK reports whether authentication succeeded.
func (o Outcome) OK() bool {
	return o.Failure == nil
}

// AuthenticationService resolves a raw Authorization header to a local user.
type AuthenticationService interface {
	Authenticate(ctx context.Context, rawHeader string) Outcome
}

type authenticationService struct {
	provider port.IdentityProvider
	syncSvc  UserSyncService
}

// NewAuthenticationService creates a new AuthenticationService.
func NewAuthenticationService(provider port.IdentityProvider, syncSvc UserSyncService) AuthenticationService {
	return &authenticationService{provider: provider, syncSvc: syncSvc}
}

// Authenticate never panics and always returns an Outcome.
func (s *authenticationService) Authenticate(ctx context.Context, rawHeader string) (out Outcome) {
	stage := StageStart
	defer func() {
		if r := recover(); r != nil {
			out = s.fail(ctx, stage, domain.NewFailure(domain.FailureInternal, fmt.Errorf("panic: %v", r)))
		}
	}()

	token, err := bearer.Extract(rawHeader)
	if err != nil {
		return s.fail(ctx, stage, err)
	}
	stage = StageTokenExtracted

	claim, err := s.provider.FetchIdentity(ctx, token)
	if err != nil {
		return s.fail(ctx, stage, err)
	}
	stage = StageIdentityFetched

	result, err := s.syncSvc.Sync(ctx, claim)
	if err != nil {
		return s.fail(ctx, stage, err)
	}
	if result == nil || result.User == nil {
		return s.fail(ctx, stage, fmt.Errorf("reconciliation returned no user"))
	}
	stage = StageReconciled

	slog.InfoContext(ctx, "request authenticated",
		logger.Component("authentication"),
		logger.UserID(result.User.ID),
		slog.Bool("is_new_user", result.IsNewUser),
		slog.String("stage", string(stage)),
		slog.String("provider", s.provider.Provider()))

	return Outcome{
		User:      result.User,
		IsNewUser: result.IsNewUser,
		Status:    domain.StatusOK,
		Stage:     StageDone,
	}
}

func (s *authenticationService) fail(ctx context.Context, stage Stage, err error) Outcome {
	failure := domain.AsFailure(err)
	status := domain.StatusClassFor(failure.Kind)

	attrs := []any{
		logger.Component("authentication"),
		slog.String("kind", string(failure.Kind)),
		slog.String("stage", string(stage)),
		slog.String("status", string(status)),
	}
	switch {
	case domain.IsCallerFault(failure.Kind):
		slog.InfoContext(ctx, "authentication rejected", attrs...)
	case status == domain.StatusUnprocessable:
		if len(failure.Fields) > 0 {
			attrs = append(attrs, slog.Any("missing_fields", failure.Fields))
		}
		slog.WarnContext(ctx, "identity could not be reconciled", attrs...)
	default:
		attrs = append(attrs, logger.Error(failure.Err))
		slog.ErrorContext(ctx, "authentication failed", attrs...)
	}

	return Outcome{
		Failure:  failure,
		Status:   status,
		Stage:    StageFailed,
		FailedAt: stage,
	}
}
