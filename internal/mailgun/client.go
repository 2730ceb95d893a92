package mailgun

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	configs "assignment_service/config"
	"assignment_service/internal/errdefs"
)

// Client talks to the Mailgun REST API: messages for sending and bounces
// for the provider-maintained bounce list.
type Client struct {
	baseURL    string
	domain     string
	apiKey     string
	httpClient *http.Client
}

func New(cfg configs.MailgunConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		domain:     cfg.Domain,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}
}

func (c *Client) Send(ctx context.Context, to, subject, html string) error {
	form := url.Values{}
	form.Set("from", "no-reply@"+c.domain)
	form.Set("to", to)
	form.Set("subject", subject)
	form.Set("html", html)
	form.Set("h:X-MSMail-Priority", "High")

	endpoint := fmt.Sprintf("%s/%s/messages", c.baseURL, c.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", errdefs.ErrNotification, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errdefs.ErrNotification, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: send failed with status %s: %s",
			errdefs.ErrNotification, resp.Status, strings.TrimSpace(string(body)))
	}

	return nil
}

type bounceItem struct {
	Address string `json:"address"`
}

type bouncesResponse struct {
	Items []bounceItem `json:"items"`
}

// BounceList fetches the full provider bounce list. Callers re-fetch per
// ledger write; there is no cache.
func (c *Client) BounceList(ctx context.Context) ([]string, error) {
	endpoint := fmt.Sprintf("%s/%s/bounces", c.baseURL, c.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth("api", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("bounce list fetch failed with status %s", resp.Status)
	}

	var parsed bouncesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode bounce list: %w", err)
	}

	addresses := make([]string, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		addresses = append(addresses, item.Address)
	}
	return addresses, nil
}
