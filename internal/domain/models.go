package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the local record reconciled from an identity provider claim.
// SubjectID and Email are each unique across the store.
type User struct {
	ID         uuid.UUID `db:"id" json:"id"`
	SubjectID  string    `db:"subject_id" json:"subject_id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	PictureURL string    `db:"picture_url" json:"picture_url"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
