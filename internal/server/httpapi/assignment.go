package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"assignment_service/internal/domain"
)

type assignmentRequest struct {
	Name          *string    `json:"name"`
	Points        *int       `json:"points"`
	NumOfAttempts *int       `json:"num_of_attempts"`
	Deadline      *time.Time `json:"deadline"`
}

func decodeAssignmentRequest(w http.ResponseWriter, r *http.Request) (*assignmentRequest, bool) {
	var req assignmentRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid fields in the request body")
		return nil, false
	}
	return &req, true
}

func (req *assignmentRequest) toDomain() *domain.Assignment {
	assignment := &domain.Assignment{}
	if req.Name != nil {
		assignment.Name = *req.Name
	}
	if req.Points != nil {
		assignment.Points = *req.Points
	}
	if req.NumOfAttempts != nil {
		assignment.NumOfAttempts = *req.NumOfAttempts
	}
	if req.Deadline != nil {
		assignment.Deadline = *req.Deadline
	}
	return assignment
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAssignmentRequest(w, r)
	if !ok {
		return
	}

	created, err := h.assignments.Create(r.Context(), req.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}

	h.log.Info("Created assignment", zap.String("assignment_id", created.ID.String()))
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetAllAssignments(w http.ResponseWriter, r *http.Request) {
	if rejectBody(w, r) {
		return
	}

	assignments, err := h.assignments.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if assignments == nil {
		assignments = []*domain.Assignment{}
	}
	writeJSON(w, http.StatusOK, assignments)
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	if rejectBody(w, r) {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorJSON(w, http.StatusNotFound, "assignment not found")
		return
	}

	assignment, err := h.assignments.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assignment)
}

// UpdateAssignment replaces the full assignment; all fields are required,
// matching the create shape.
func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorJSON(w, http.StatusNotFound, "assignment not found")
		return
	}

	req, ok := decodeAssignmentRequest(w, r)
	if !ok {
		return
	}

	if req.Name == nil || req.Points == nil || req.NumOfAttempts == nil || req.Deadline == nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid or incomplete fields in the request body")
		return
	}

	assignment := req.toDomain()
	assignment.ID = id

	if err := h.assignments.Update(r.Context(), assignment); err != nil {
		writeError(w, err)
		return
	}

	h.log.Info("Updated assignment", zap.String("assignment_id", id.String()))
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	if rejectBody(w, r) {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorJSON(w, http.StatusNotFound, "assignment not found")
		return
	}

	if err := h.assignments.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	h.log.Info("Deleted assignment", zap.String("assignment_id", id.String()))
	writeJSON(w, http.StatusNoContent, nil)
}
