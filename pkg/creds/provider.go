package creds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Provider downloads a service-account credentials file from object storage
// once and caches it for the process lifetime. A failed download is retried
// on the next Get instead of poisoning the process.
type Provider struct {
	url        string
	httpClient *http.Client

	mu     sync.Mutex
	cached []byte
}

func NewProvider(url string, timeout time.Duration) *Provider {
	return &Provider{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *Provider) Get(ctx context.Context) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil {
		return p.cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}

	res, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download credentials: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download credentials: unexpected status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	p.cached = body
	return p.cached, nil
}
