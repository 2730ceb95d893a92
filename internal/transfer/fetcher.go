package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"assignment_service/internal/errdefs"
)

type Fetcher struct {
	client *http.Client
}

func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client}
}

// Fetch streams the artifact at url. A 404-class response is classified
// as an invalid submission URL; other failures keep their underlying
// message for the failure notification.
func (f *Fetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", errdefs.ErrTransfer, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", errdefs.ErrTransfer, err)
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		_ = resp.Body.Close()
		return nil, "", errdefs.ErrArtifactNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, "", fmt.Errorf("%w: unexpected status %s", errdefs.ErrTransfer, resp.Status)
	}

	return resp.Body, resp.Header.Get("Content-Type"), nil
}
