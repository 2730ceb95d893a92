package httpapi

import (
	"context"

	"github.com/google/uuid"

	"assignment_service/internal/domain"
	"assignment_service/pkg/logger"
)

type AssignmentService interface {
	Create(ctx context.Context, assignment *domain.Assignment) (*domain.Assignment, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Assignment, error)
	List(ctx context.Context) ([]*domain.Assignment, error)
	Update(ctx context.Context, assignment *domain.Assignment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SubmissionService interface {
	Submit(ctx context.Context, assignmentID uuid.UUID, submissionURL string) (*domain.Submission, error)
	ListSubmissions(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error)
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	assignments AssignmentService
	submissions SubmissionService
	health      HealthChecker
	log         *logger.Logger
}

func NewHandler(
	assignments AssignmentService,
	submissions SubmissionService,
	health HealthChecker,
	log *logger.Logger,
) *Handler {
	return &Handler{
		assignments: assignments,
		submissions: submissions,
		health:      health,
		log:         log,
	}
}
