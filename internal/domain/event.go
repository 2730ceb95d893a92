package domain

// SubmissionEvent is the envelope published once per accepted submission.
// It carries everything the fulfillment worker needs without re-querying
// the originating request.
type SubmissionEvent struct {
	Email      string `json:"email"`
	URL        string `json:"url"`
	Assignment string `json:"assignment"`
	Version    int    `json:"version"`
}
