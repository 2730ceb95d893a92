package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"assignment_service/internal/domain"
	"assignment_service/internal/errdefs"
)

type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

const uniqueViolation = "23505"

// CreateCapped inserts a submission with version = count of prior
// submissions for the (assignment, submitter) pair, but only while that
// count is below maxAttempts. The guarded insert plus the unique index on
// (assignment_id, account_email, version) keeps the cap exact under
// concurrency: two racers compute the same version, the index rejects the
// loser, and the loser re-runs the guard against the fresh count.
func (r *SubmissionRepository) CreateCapped(ctx context.Context, submission *domain.Submission, maxAttempts int) error {
	query := `
		INSERT INTO submissions
			(id, assignment_id, account_email, submission_url, version, submission_date, submission_updated)
		SELECT $1, $2, $3, $4,
		       (SELECT COUNT(*) FROM submissions WHERE assignment_id = $2 AND account_email = $3),
		       $5, $5
		WHERE (SELECT COUNT(*) FROM submissions WHERE assignment_id = $2 AND account_email = $3) < $6
		RETURNING version, submission_date, submission_updated
	`

	for attempt := 0; attempt <= maxAttempts; attempt++ {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate UUID: %w", err)
		}

		err = r.db.QueryRowContext(ctx, query,
			id,
			submission.AssignmentID,
			submission.AccountEmail,
			submission.URL,
			time.Now(),
			maxAttempts,
		).Scan(&submission.Version, &submission.CreatedAt, &submission.UpdatedAt)

		if err == nil {
			submission.ID = id
			return nil
		}

		if errors.Is(err, sql.ErrNoRows) {
			return errdefs.ErrAttemptLimit
		}

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			// lost the race for this version, re-check the cap
			continue
		}

		return fmt.Errorf("failed to create submission: %w", err)
	}

	return errdefs.ErrAttemptLimit
}

func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error) {
	query := `
		SELECT id, assignment_id, account_email, submission_url, version, submission_date, submission_updated
		FROM submissions
		WHERE assignment_id = $1
		ORDER BY submission_date
	`

	rows, err := r.db.QueryContext(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var submissions []*domain.Submission
	for rows.Next() {
		var s domain.Submission
		if err := rows.Scan(
			&s.ID,
			&s.AssignmentID,
			&s.AccountEmail,
			&s.URL,
			&s.Version,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return submissions, nil
}
