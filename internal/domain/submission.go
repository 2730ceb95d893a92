package domain

import (
	"time"

	"github.com/google/uuid"
)

type Submission struct {
	ID           uuid.UUID `json:"id"`
	AssignmentID uuid.UUID `json:"assignment_id"`
	URL          string    `json:"submission_url"`
	AccountEmail string    `json:"-"`
	// Version is the count of previously accepted submissions for the
	// same (assignment, submitter) pair, zero-based.
	Version   int       `json:"-"`
	CreatedAt time.Time `json:"submission_date"`
	UpdatedAt time.Time `json:"submission_updated"`
}
