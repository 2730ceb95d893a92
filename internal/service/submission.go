package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"assignment_service/internal/ctxauth"
	"assignment_service/internal/domain"
	"assignment_service/internal/errdefs"
)

type AssignmentGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error)
}

type SubmissionStore interface {
	CreateCapped(ctx context.Context, submission *domain.Submission, maxAttempts int) error
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error)
}

// EventPublisher queues one envelope per accepted submission on the
// durable channel.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.SubmissionEvent) error
}

type SubmissionService struct {
	assignmentRepo AssignmentGetter
	submissionRepo SubmissionStore
	publisher      EventPublisher
	now            func() time.Time
}

func NewSubmissionService(
	assignmentRepo AssignmentGetter,
	submissionRepo SubmissionStore,
	publisher EventPublisher,
) *SubmissionService {
	return &SubmissionService{
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		publisher:      publisher,
		now:            time.Now,
	}
}

// Submit validates and persists one submission, then publishes its
// envelope. Checks run in a fixed order: URL presence, URL shape,
// assignment existence, deadline, attempt cap. A publish failure surfaces
// as an error even though the submission row stays persisted; the caller
// must not report success for an event that was never queued.
func (s *SubmissionService) Submit(ctx context.Context, assignmentID uuid.UUID, submissionURL string) (*domain.Submission, error) {
	if submissionURL == "" {
		return nil, fmt.Errorf("content can not be empty: %w", errdefs.ErrValidation)
	}

	if !strings.HasSuffix(submissionURL, ".zip") {
		return nil, fmt.Errorf("invalid submission_url: %w", errdefs.ErrValidation)
	}

	user, ok := ctxauth.GetUser(ctx)
	if !ok {
		return nil, errdefs.ErrUnauthorized
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	if !s.now().Before(assignment.Deadline) {
		return nil, errdefs.ErrDeadlinePassed
	}

	submission := &domain.Submission{
		AssignmentID: assignment.ID,
		URL:          submissionURL,
		AccountEmail: user.Email,
	}

	if err := s.submissionRepo.CreateCapped(ctx, submission, assignment.NumOfAttempts); err != nil {
		return nil, err
	}

	event := &domain.SubmissionEvent{
		Email:      user.Email,
		URL:        submission.URL,
		Assignment: assignment.Name,
		Version:    submission.Version,
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to publish submission event: %w", errdefs.ErrDependency)
	}

	return submission, nil
}

// ListSubmissions returns an assignment's submissions, oldest first. Only
// the assignment owner may view them.
func (s *SubmissionService) ListSubmissions(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error) {
	user, ok := ctxauth.GetUser(ctx)
	if !ok {
		return nil, errdefs.ErrUnauthorized
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	if assignment.UserID != user.ID {
		return nil, errdefs.ErrPermissionDenied
	}

	return s.submissionRepo.ListByAssignment(ctx, assignmentID)
}
