package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"idsync/internal/domain"
	"idsync/internal/port"
)

// uniqueViolation is the SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

const userColumns = "id, subject_id, name, email, picture_url, created_at, updated_at"

type userRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new PostgreSQL-backed UserRepository.
func NewUserRepo(db *sqlx.DB) port.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetBySubjectID(ctx context.Context, subjectID string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		"SELECT "+userColumns+" FROM users WHERE subject_id = $1", subjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetBySubjectID: %w", err)
	}
	return &user, nil
}

// Upsert relies on the users_subject_id_key constraint to turn a concurrent
// first login for the same subject into an update instead of a second row.
func (r *userRepo) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()

	query := `INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (subject_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			picture_url = EXCLUDED.picture_url,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + userColumns

	var stored domain.User
	err := r.db.GetContext(ctx, &stored, query,
		user.ID, user.SubjectID, user.Name, user.Email, user.PictureURL, now)
	if err != nil {
		if isUniqueViolation(err, "email") {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("userRepo.Upsert: %w", err)
	}
	return &stored, nil
}

func (r *userRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// isUniqueViolation reports whether err is a unique violation on a constraint
// whose name mentions column.
func isUniqueViolation(err error, column string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation && strings.Contains(pgErr.ConstraintName, column)
	}
	return strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), column)
}
