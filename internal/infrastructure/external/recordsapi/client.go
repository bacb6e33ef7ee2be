package recordsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/assessment-records/internal/domain/entities"
	"github.com/johnquangdev/assessment-records/pkg/config"
)

// maxBodyBytes caps how much of a response body is read into memory
const maxBodyBytes = 16 << 20

// Client is a minimal client for the records backend
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a records API client using the provided config
func NewClient(cfg *config.BackendConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/") + "/",
		client:  &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP creates a client around an existing *http.Client
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		client:  hc,
	}
}

// DownloadResponse is the body of GET download
type DownloadResponse struct {
	URL string `json:"url"`
}

// ListRecords issues the structured request and decodes the body directly
// into the results envelope.
func (c *Client) ListRecords(ctx context.Context, email string) (*entities.RecordsEnvelope, error) {
	req, err := c.newRequest(ctx, "records", url.Values{"email": {email}})
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: records returned status %d", entities.ErrNetwork, resp.StatusCode)
	}

	var env entities.RecordsEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrMalformedPayload, err)
	}
	return &env, nil
}

// ListRecordsRaw issues a manual request with explicit JSON headers and returns
// the body untouched. A non-2xx status is only an error when the body is empty.
func (c *Client) ListRecordsRaw(ctx context.Context, email string) ([]byte, error) {
	req, err := c.newRequest(ctx, "records", url.Values{"email": {email}})
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", entities.ErrNetwork, err)
	}

	if (resp.StatusCode < 200 || resp.StatusCode >= 300) && len(strings.TrimSpace(string(body))) == 0 {
		return nil, fmt.Errorf("%w: records returned status %d with empty body", entities.ErrNetwork, resp.StatusCode)
	}
	return body, nil
}

// DownloadURL resolves a video key into a time-limited playable link
func (c *Client) DownloadURL(ctx context.Context, filename string) (string, error) {
	req, err := c.newRequest(ctx, "download", url.Values{"filename": {filename}})
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entities.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: download returned status %d", entities.ErrNetwork, resp.StatusCode)
	}

	var dr DownloadResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&dr); err != nil {
		return "", fmt.Errorf("%w: %v", entities.ErrMalformedPayload, err)
	}
	if dr.URL == "" {
		return "", fmt.Errorf("%w: download response has no url", entities.ErrMalformedPayload)
	}
	return dr.URL, nil
}

func (c *Client) newRequest(ctx context.Context, path string, query url.Values) (*http.Request, error) {
	endpoint := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", entities.ErrNetwork, err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}
