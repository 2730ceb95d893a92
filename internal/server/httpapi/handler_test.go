package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"assignment_service/internal/ctxauth"
	"assignment_service/internal/domain"
	"assignment_service/internal/errdefs"
	"assignment_service/pkg/logger"
)

type MockAssignmentService struct {
	mock.Mock
}

func (m *MockAssignmentService) Create(ctx context.Context, assignment *domain.Assignment) (*domain.Assignment, error) {
	args := m.Called(ctx, assignment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentService) Get(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentService) List(ctx context.Context) ([]*domain.Assignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentService) Update(ctx context.Context, assignment *domain.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) Submit(ctx context.Context, assignmentID uuid.UUID, submissionURL string) (*domain.Submission, error) {
	args := m.Called(ctx, assignmentID, submissionURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *MockSubmissionService) ListSubmissions(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Submission), args.Error(1)
}

type fakeHealth struct {
	err error
}

func (f *fakeHealth) Ping(context.Context) error {
	return f.err
}

func passthrough(next http.Handler) http.Handler {
	return next
}

func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := ctxauth.WithUser(r.Context(), &domain.User{ID: uuid.New(), Email: "student@example.com"})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newTestRouter(assignments *MockAssignmentService, submissions *MockSubmissionService, health *fakeHealth) http.Handler {
	if health == nil {
		health = &fakeHealth{}
	}
	h := NewHandler(assignments, submissions, health, logger.NewDevelopment())
	return NewRouter(h, fakeAuth, passthrough)
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSubmitAssignment_Created(t *testing.T) {
	assignmentID := uuid.New()
	submission := &domain.Submission{
		ID:           uuid.New(),
		AssignmentID: assignmentID,
		URL:          "https://example.com/release.zip",
		Version:      0,
		CreatedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	submissions := new(MockSubmissionService)
	submissions.On("Submit", mock.Anything, assignmentID, "https://example.com/release.zip").
		Return(submission, nil)

	router := newTestRouter(new(MockAssignmentService), submissions, nil)
	rec := doRequest(router, http.MethodPost, "/v2/assignments/"+assignmentID.String()+"/submission",
		`{"submission_url":"https://example.com/release.zip"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, submission.ID.String(), resp["id"])
	assert.Equal(t, assignmentID.String(), resp["assignment_id"])
	assert.Equal(t, "https://example.com/release.zip", resp["submission_url"])
	assert.Contains(t, resp, "submission_date")
	assert.Contains(t, resp, "submission_updated")
	// identity-linking fields stay internal
	assert.NotContains(t, resp, "email")
	assert.NotContains(t, rec.Body.String(), "student@example.com")
}

func TestSubmitAssignment_UnknownField(t *testing.T) {
	submissions := new(MockSubmissionService)
	router := newTestRouter(new(MockAssignmentService), submissions, nil)

	rec := doRequest(router, http.MethodPost, "/v2/assignments/"+uuid.NewString()+"/submission",
		`{"submission_url":"https://example.com/release.zip","extra":"nope"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	submissions.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitAssignment_EmptyBody(t *testing.T) {
	router := newTestRouter(new(MockAssignmentService), new(MockSubmissionService), nil)

	rec := doRequest(router, http.MethodPost, "/v2/assignments/"+uuid.NewString()+"/submission", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "content can not be empty")
}

func TestSubmitAssignment_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", errdefs.ErrNotFound, http.StatusNotFound},
		{"deadline passed", errdefs.ErrDeadlinePassed, http.StatusBadRequest},
		{"attempt limit", errdefs.ErrAttemptLimit, http.StatusBadRequest},
		{"bad url", errdefs.ErrValidation, http.StatusBadRequest},
		{"publish failed", errdefs.ErrDependency, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submissions := new(MockSubmissionService)
			submissions.On("Submit", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			router := newTestRouter(new(MockAssignmentService), submissions, nil)
			rec := doRequest(router, http.MethodPost, "/v2/assignments/"+uuid.NewString()+"/submission",
				`{"submission_url":"https://example.com/release.zip"}`)

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestSubmitAssignment_BodyValidatedBeforeID(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown field", `{"submission_url":"https://example.com/release.zip","extra":"x"}`},
		{"empty url", `{"submission_url":""}`},
		{"not a zip", `{"submission_url":"https://example.com/release.tar.gz"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submissions := new(MockSubmissionService)
			router := newTestRouter(new(MockAssignmentService), submissions, nil)

			rec := doRequest(router, http.MethodPost, "/v2/assignments/not-a-uuid/submission", tt.body)

			// the body is rejected before the identifier is resolved
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			submissions.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGetSubmissions(t *testing.T) {
	assignmentID := uuid.New()
	stored := []*domain.Submission{
		{ID: uuid.New(), AssignmentID: assignmentID, URL: "https://example.com/release.zip", Version: 0},
	}

	submissions := new(MockSubmissionService)
	submissions.On("ListSubmissions", mock.Anything, assignmentID).Return(stored, nil)

	router := newTestRouter(new(MockAssignmentService), submissions, nil)
	rec := doRequest(router, http.MethodGet, "/v2/assignments/"+assignmentID.String()+"/submission", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, stored[0].ID.String(), resp[0]["id"])
}

func TestGetSubmissions_NotOwner(t *testing.T) {
	submissions := new(MockSubmissionService)
	submissions.On("ListSubmissions", mock.Anything, mock.Anything).Return(nil, errdefs.ErrPermissionDenied)

	router := newTestRouter(new(MockAssignmentService), submissions, nil)
	rec := doRequest(router, http.MethodGet, "/v2/assignments/"+uuid.NewString()+"/submission", "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetSubmissions_BodyRejected(t *testing.T) {
	router := newTestRouter(new(MockAssignmentService), new(MockSubmissionService), nil)

	rec := doRequest(router, http.MethodGet, "/v2/assignments/"+uuid.NewString()+"/submission", `{"x":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitAssignment_MalformedID(t *testing.T) {
	router := newTestRouter(new(MockAssignmentService), new(MockSubmissionService), nil)

	rec := doRequest(router, http.MethodPost, "/v2/assignments/not-a-uuid/submission",
		`{"submission_url":"https://example.com/release.zip"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAssignment(t *testing.T) {
	assignments := new(MockAssignmentService)
	created := &domain.Assignment{
		ID:            uuid.New(),
		Name:          "hw1",
		Points:        5,
		NumOfAttempts: 2,
		Deadline:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	assignments.On("Create", mock.Anything, mock.Anything).Return(created, nil)

	router := newTestRouter(assignments, new(MockSubmissionService), nil)
	rec := doRequest(router, http.MethodPost, "/v2/assignments",
		`{"name":"hw1","points":5,"num_of_attempts":2,"deadline":"2024-06-01T12:00:00Z"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "user_id")
}

func TestCreateAssignment_UnknownField(t *testing.T) {
	router := newTestRouter(new(MockAssignmentService), new(MockSubmissionService), nil)

	rec := doRequest(router, http.MethodPost, "/v2/assignments",
		`{"name":"hw1","points":5,"num_of_attempts":2,"deadline":"2024-06-01T12:00:00Z","owner":"x"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAllAssignments_BodyRejected(t *testing.T) {
	router := newTestRouter(new(MockAssignmentService), new(MockSubmissionService), nil)

	rec := doRequest(router, http.MethodGet, "/v2/assignments", `{"x":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAssignment_IncompleteFields(t *testing.T) {
	router := newTestRouter(new(MockAssignmentService), new(MockSubmissionService), nil)

	rec := doRequest(router, http.MethodPut, "/v2/assignments/"+uuid.NewString(),
		`{"name":"hw1","points":5}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAssignment_NotOwner(t *testing.T) {
	assignments := new(MockAssignmentService)
	assignments.On("Update", mock.Anything, mock.Anything).Return(errdefs.ErrPermissionDenied)

	router := newTestRouter(assignments, new(MockSubmissionService), nil)
	rec := doRequest(router, http.MethodPut, "/v2/assignments/"+uuid.NewString(),
		`{"name":"hw1","points":5,"num_of_attempts":2,"deadline":"2024-06-01T12:00:00Z"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteAssignment_NoContent(t *testing.T) {
	assignments := new(MockAssignmentService)
	id := uuid.New()
	assignments.On("Delete", mock.Anything, id).Return(nil)

	router := newTestRouter(assignments, new(MockSubmissionService), nil)
	rec := doRequest(router, http.MethodDelete, "/v2/assignments/"+id.String(), "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(new(MockAssignmentService), new(MockSubmissionService), &fakeHealth{})
	rec := doRequest(router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthCheck_DBDown(t *testing.T) {
	router := newTestRouter(new(MockAssignmentService), new(MockSubmissionService), &fakeHealth{err: assert.AnError})
	rec := doRequest(router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthCheck_QueryRejected(t *testing.T) {
	router := newTestRouter(new(MockAssignmentService), new(MockSubmissionService), &fakeHealth{})
	rec := doRequest(router, http.MethodGet, "/healthz?probe=1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter(new(MockAssignmentService), new(MockSubmissionService), nil)
	rec := doRequest(router, http.MethodPatch, "/v2/assignments/"+uuid.NewString(), `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
