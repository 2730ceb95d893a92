package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"assignment_service/internal/domain"
	"assignment_service/internal/errdefs"
)

type AssignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *domain.Assignment) error {
	query := `
		INSERT INTO assignments
			(id, user_id, name, points, num_of_attempts, deadline, assignment_created, assignment_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate UUID: %w", err)
	}

	now := time.Now()
	_, err = r.db.ExecContext(ctx, query,
		id,
		assignment.UserID,
		assignment.Name,
		assignment.Points,
		assignment.NumOfAttempts,
		assignment.Deadline,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	assignment.ID = id
	assignment.CreatedAt = now
	assignment.UpdatedAt = now
	return nil
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	query := `
		SELECT id, user_id, name, points, num_of_attempts, deadline,
		       assignment_created, assignment_updated
		FROM assignments
		WHERE id = $1
	`

	var assignment domain.Assignment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&assignment.ID,
		&assignment.UserID,
		&assignment.Name,
		&assignment.Points,
		&assignment.NumOfAttempts,
		&assignment.Deadline,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errdefs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	return &assignment, nil
}

func (r *AssignmentRepository) List(ctx context.Context) ([]*domain.Assignment, error) {
	query := `
		SELECT id, user_id, name, points, num_of_attempts, deadline,
		       assignment_created, assignment_updated
		FROM assignments
		ORDER BY assignment_created
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var assignments []*domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Name,
			&a.Points,
			&a.NumOfAttempts,
			&a.Deadline,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return assignments, nil
}

func (r *AssignmentRepository) Update(ctx context.Context, assignment *domain.Assignment) error {
	query := `
		UPDATE assignments
		SET name = $1, points = $2, num_of_attempts = $3, deadline = $4, assignment_updated = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		assignment.Name,
		assignment.Points,
		assignment.NumOfAttempts,
		assignment.Deadline,
		time.Now(),
		assignment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errdefs.ErrNotFound
	}

	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM assignments WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errdefs.ErrNotFound
	}

	return nil
}
