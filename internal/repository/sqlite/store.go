// Package sqlite provides an embedded SQLite user store for local
// development and single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"idsync/internal/domain"
	"idsync/internal/port"
)

//go:embed schema.sql
var schema string

const userColumns = "id, subject_id, name, email, picture_url, created_at, updated_at"

// Store persists users in SQLite. Timestamps are stored as unix milliseconds.
type Store struct {
	db *sqlx.DB
}

type userRow struct {
	ID         string `db:"id"`
	SubjectID  string `db:"subject_id"`
	Name       string `db:"name"`
	Email      string `db:"email"`
	PictureURL string `db:"picture_url"`
	CreatedAt  int64  `db:"created_at"`
	UpdatedAt  int64  `db:"updated_at"`
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// Open opens the database at path and creates the schema if needed.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer keeps upserts serialized without SQLITE_BUSY retries.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) GetBySubjectID(ctx context.Context, subjectID string) (*domain.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row,
		"SELECT "+userColumns+" FROM users WHERE subject_id = ?", subjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite.GetBySubjectID: %w", err)
	}
	return row.toDomain()
}

func (s *Store) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := toMillis(time.Now())

	query := `INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(subject_id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			picture_url = excluded.picture_url,
			updated_at = excluded.updated_at
		RETURNING ` + userColumns

	var row userRow
	err := s.db.GetContext(ctx, &row, query,
		user.ID.String(), user.SubjectID, user.Name, user.Email, user.PictureURL, now, now)
	if err != nil {
		if isEmailUniqueViolation(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("sqlite.Upsert: %w", err)
	}
	return row.toDomain()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (r userRow) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user id %q: %w", r.ID, err)
	}
	return &domain.User{
		ID:         id,
		SubjectID:  r.SubjectID,
		Name:       r.Name,
		Email:      r.Email,
		PictureURL: r.PictureURL,
		CreatedAt:  fromMillis(r.CreatedAt),
		UpdatedAt:  fromMillis(r.UpdatedAt),
	}, nil
}

func isEmailUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		default:
			return false
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "users.email")
}

var _ port.UserRepository = (*Store)(nil)
