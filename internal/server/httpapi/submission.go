package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"assignment_service/internal/domain"
)

type submitRequest struct {
	SubmissionURL string `json:"submission_url"`
}

// SubmitAssignment accepts one submission for an assignment. The body is
// decoded and validated before the path identifier is resolved: unknown
// fields, an empty URL and a non-zip URL are all rejected with 400 even
// when the identifier is malformed.
func (h *Handler) SubmitAssignment(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			writeErrorJSON(w, http.StatusBadRequest, "content can not be empty")
			return
		}
		h.log.Warn("Invalid submission body", zap.Error(err))
		writeErrorJSON(w, http.StatusBadRequest, "invalid fields in the request body")
		return
	}

	if req.SubmissionURL == "" {
		writeErrorJSON(w, http.StatusBadRequest, "content can not be empty")
		return
	}

	if !strings.HasSuffix(req.SubmissionURL, ".zip") {
		writeErrorJSON(w, http.StatusBadRequest, "invalid submission_url")
		return
	}

	assignmentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorJSON(w, http.StatusNotFound, "assignment not found")
		return
	}

	submission, err := h.submissions.Submit(r.Context(), assignmentID, req.SubmissionURL)
	if err != nil {
		h.log.Warn("Submission rejected",
			zap.String("assignment_id", assignmentID.String()),
			zap.Error(err),
		)
		writeError(w, err)
		return
	}

	h.log.Info("Created submission",
		zap.String("submission_id", submission.ID.String()),
		zap.String("assignment_id", assignmentID.String()),
		zap.Int("version", submission.Version),
	)
	writeJSON(w, http.StatusCreated, submission)
}

// GetSubmissions lists an assignment's submissions, oldest first. Only the
// assignment owner may view them.
func (h *Handler) GetSubmissions(w http.ResponseWriter, r *http.Request) {
	if rejectBody(w, r) {
		return
	}

	assignmentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorJSON(w, http.StatusNotFound, "assignment not found")
		return
	}

	submissions, err := h.submissions.ListSubmissions(r.Context(), assignmentID)
	if err != nil {
		writeError(w, err)
		return
	}

	if submissions == nil {
		submissions = []*domain.Submission{}
	}
	writeJSON(w, http.StatusOK, submissions)
}
