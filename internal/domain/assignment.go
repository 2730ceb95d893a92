package domain

import (
	"time"

	"github.com/google/uuid"
)

type Assignment struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"-"`
	Name          string    `json:"name"`
	Points        int       `json:"points"`
	NumOfAttempts int       `json:"num_of_attempts"`
	Deadline      time.Time `json:"deadline"`
	CreatedAt     time.Time `json:"assignment_created"`
	UpdatedAt     time.Time `json:"assignment_updated"`
}

const (
	MinPoints   = 1
	MaxPoints   = 10
	MinAttempts = 1
	MaxAttempts = 3
)
