package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter mounts the health endpoint unauthenticated and the assignment
// resource behind the auth gate.
func NewRouter(h *Handler, auth, logging func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(logging)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	r.Get("/healthz", h.HealthCheck)

	r.Route("/v2/assignments", func(r chi.Router) {
		r.Use(auth)
		r.Get("/", h.GetAllAssignments)
		r.Post("/", h.CreateAssignment)
		r.Get("/{id}", h.GetAssignment)
		r.Put("/{id}", h.UpdateAssignment)
		r.Delete("/{id}", h.DeleteAssignment)
		r.Post("/{id}/submission", h.SubmitAssignment)
		r.Get("/{id}/submission", h.GetSubmissions)
	})

	return r
}
