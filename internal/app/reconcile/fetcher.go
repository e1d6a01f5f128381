// internal/app/reconcile/fetcher.go
package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/syncboard/syncboard/internal/domain/models"
	"go.uber.org/zap"
)

// FetchError reports a failed retrieval of the remote user dataset: a
// transport failure, a non-2xx response, or an undecodable body.
type FetchError struct {
	URL        string
	StatusCode int // zero when the request never produced a response
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher retrieves the current snapshot of external user records. It is
// read-only: a single GET with no retries or pagination. Failures surface as
// *FetchError and abort the reconciliation run.
type Fetcher struct {
	client *http.Client
	url    string
	log    *zap.Logger
}

// NewFetcher creates a Fetcher for the given source URL. timeout bounds the
// whole request; zero keeps the client's default of no timeout (the caller's
// context still applies).
func NewFetcher(url string, timeout time.Duration, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		url:    url,
		log:    logger,
	}
}

// Fetch performs the GET and decodes the JSON array of user records.
func (f *Fetcher) Fetch(ctx context.Context) ([]models.SourceUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Warn("source fetch failed", zap.String("url", f.url), zap.Error(err))
		return nil, &FetchError{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.log.Warn("source returned non-success status",
			zap.String("url", f.url), zap.Int("status", resp.StatusCode))
		return nil, &FetchError{URL: f.url, StatusCode: resp.StatusCode}
	}

	var users []models.SourceUser
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, &FetchError{URL: f.url, Err: fmt.Errorf("decode response: %w", err)}
	}

	f.log.Debug("fetched source snapshot",
		zap.String("url", f.url), zap.Int("records", len(users)))
	return users, nil
}
