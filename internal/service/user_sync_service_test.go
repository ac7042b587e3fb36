package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"idsync/internal/domain"
	"idsync/internal/port"
	"idsync/internal/service"
	"idsync/mocks"
)

func fullClaim() *port.IdentityClaim {
	return &port.IdentityClaim{
		Subject: "u1",
		Name:    "Ann",
		Email:   "ann@x.com",
		Picture: "http://img/ann.png",
	}
}

func echoUpsert(userRepo *mocks.MockUserRepo) *mock.Call {
	return userRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return(func(_ context.Context, u *domain.User) *domain.User {
			stored := *u
			return &stored
		}, nil)
}

func TestSync_NewUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewUserSyncService(userRepo)

	userRepo.On("GetBySubjectID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
	echoUpsert(userRepo)

	result, err := svc.Sync(context.Background(), fullClaim())

	require.NoError(t, err)
	assert.True(t, result.IsNewUser)
	assert.NotEqual(t, uuid.Nil, result.User.ID)
	assert.Equal(t, "u1", result.User.SubjectID)
	assert.Equal(t, "Ann", result.User.Name)
	assert.Equal(t, "ann@x.com", result.User.Email)
	assert.Equal(t, "http://img/ann.png", result.User.PictureURL)
	userRepo.AssertExpectations(t)
}

func TestSync_ExistingUserIsOverwritten(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewUserSyncService(userRepo)

	existing := &domain.User{
		ID:         uuid.New(),
		SubjectID:  "u1",
		Name:       "Old Name",
		Email:      "old@x.com",
		PictureURL: "http://img/old.png",
		CreatedAt:  time.Now().Add(-time.Hour),
	}
	userRepo.On("GetBySubjectID", mock.Anything, "u1").Return(existing, nil)
	userRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == existing.ID && u.Name == "Ann" && u.Email == "ann@x.com" && u.PictureURL == "http://img/ann.png"
	})).Return(func(_ context.Context, u *domain.User) *domain.User {
		stored := *u
		return &stored
	}, nil)

	result, err := svc.Sync(context.Background(), fullClaim())

	require.NoError(t, err)
	assert.False(t, result.IsNewUser)
	assert.Equal(t, existing.ID, result.User.ID)
	assert.Equal(t, existing.CreatedAt, result.User.CreatedAt)
	userRepo.AssertExpectations(t)
}

func TestSync_IdempotentForSameClaim(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewUserSyncService(userRepo)

	userRepo.On("GetBySubjectID", mock.Anything, "u1").Return(nil, domain.ErrNotFound).Once()
	echoUpsert(userRepo)

	first, err := svc.Sync(context.Background(), fullClaim())
	require.NoError(t, err)

	userRepo.On("GetBySubjectID", mock.Anything, "u1").Return(first.User, nil).Once()

	second, err := svc.Sync(context.Background(), fullClaim())
	require.NoError(t, err)

	assert.False(t, second.IsNewUser)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, first.User.Email, second.User.Email)
}

func TestSync_MissingFieldsReportedTogether(t *testing.T) {
	tests := []struct {
		name   string
		claim  *port.IdentityClaim
		fields []string
	}{
		{"no email", &port.IdentityClaim{Subject: "u1", Name: "Ann", Picture: "p"}, []string{"email"}},
		{"no name or picture", &port.IdentityClaim{Subject: "u1", Email: "a@x.com"}, []string{"name", "picture"}},
		{"blank values", &port.IdentityClaim{Subject: " ", Name: "\t", Email: "a@x.com", Picture: "p"}, []string{"sub", "name"}},
		{"nil claim", nil, []string{"sub", "name", "email", "picture"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(mocks.MockUserRepo)
			svc := service.NewUserSyncService(userRepo)

			result, err := svc.Sync(context.Background(), tt.claim)

			assert.Nil(t, result)
			require.True(t, domain.IsKind(err, domain.FailureInvalidClaim), "got %v", err)
			assert.Equal(t, tt.fields, domain.AsFailure(err).Fields)
			userRepo.AssertNotCalled(t, "GetBySubjectID", mock.Anything, mock.Anything)
			userRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestSync_DuplicateEmail(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewUserSyncService(userRepo)

	userRepo.On("GetBySubjectID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
	userRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateEmail)

	_, err := svc.Sync(context.Background(), fullClaim())

	assert.True(t, domain.IsKind(err, domain.FailureConflictingIdentity))
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestSync_RepositoryErrorsAreUnclassified(t *testing.T) {
	dbErr := errors.New("connection reset")

	t.Run("lookup", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepo)
		svc := service.NewUserSyncService(userRepo)
		userRepo.On("GetBySubjectID", mock.Anything, "u1").Return(nil, dbErr)

		_, err := svc.Sync(context.Background(), fullClaim())

		assert.ErrorIs(t, err, dbErr)
		assert.Equal(t, domain.FailureInternal, domain.AsFailure(err).Kind)
		userRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("upsert", func(t *testing.T) {
		userRepo := new(mocks.MockUserRepo)
		svc := service.NewUserSyncService(userRepo)
		userRepo.On("GetBySubjectID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
		userRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil, dbErr)

		_, err := svc.Sync(context.Background(), fullClaim())

		assert.ErrorIs(t, err, dbErr)
		assert.Equal(t, domain.FailureInternal, domain.AsFailure(err).Kind)
	})
}
