package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"assignment_service/internal/ctxauth"
	"assignment_service/internal/domain"
	"assignment_service/internal/errdefs"
)

type AssignmentStore interface {
	Create(ctx context.Context, assignment *domain.Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error)
	List(ctx context.Context) ([]*domain.Assignment, error)
	Update(ctx context.Context, assignment *domain.Assignment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type AssignmentService struct {
	repo AssignmentStore
	now  func() time.Time
}

func NewAssignmentService(repo AssignmentStore) *AssignmentService {
	return &AssignmentService{repo: repo, now: time.Now}
}

func validateAssignment(assignment *domain.Assignment, now time.Time) error {
	if assignment.Name == "" {
		return fmt.Errorf("content can not be empty: %w", errdefs.ErrValidation)
	}
	if assignment.Points < domain.MinPoints || assignment.Points > domain.MaxPoints {
		return fmt.Errorf("points must be between %d and %d: %w",
			domain.MinPoints, domain.MaxPoints, errdefs.ErrValidation)
	}
	if assignment.NumOfAttempts < domain.MinAttempts || assignment.NumOfAttempts > domain.MaxAttempts {
		return fmt.Errorf("num_of_attempts must be between %d and %d: %w",
			domain.MinAttempts, domain.MaxAttempts, errdefs.ErrValidation)
	}
	if !assignment.Deadline.After(now) {
		return fmt.Errorf("deadline must be greater than the current date: %w", errdefs.ErrValidation)
	}
	return nil
}

func (s *AssignmentService) Create(ctx context.Context, assignment *domain.Assignment) (*domain.Assignment, error) {
	user, ok := ctxauth.GetUser(ctx)
	if !ok {
		return nil, errdefs.ErrUnauthorized
	}

	if err := validateAssignment(assignment, s.now()); err != nil {
		return nil, err
	}

	assignment.UserID = user.ID
	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	return assignment, nil
}

func (s *AssignmentService) Get(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AssignmentService) List(ctx context.Context) ([]*domain.Assignment, error) {
	return s.repo.List(ctx)
}

func (s *AssignmentService) Update(ctx context.Context, assignment *domain.Assignment) error {
	user, ok := ctxauth.GetUser(ctx)
	if !ok {
		return errdefs.ErrUnauthorized
	}

	existing, err := s.repo.GetByID(ctx, assignment.ID)
	if err != nil {
		return err
	}

	if existing.UserID != user.ID {
		return errdefs.ErrPermissionDenied
	}

	if err := validateAssignment(assignment, s.now()); err != nil {
		return err
	}

	return s.repo.Update(ctx, assignment)
}

func (s *AssignmentService) Delete(ctx context.Context, id uuid.UUID) error {
	user, ok := ctxauth.GetUser(ctx)
	if !ok {
		return errdefs.ErrUnauthorized
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.UserID != user.ID {
		return errdefs.ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}
