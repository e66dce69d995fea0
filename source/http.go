package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Pedreb/cronogramadefolgas/schedule"
)

// HTTPProvider downloads the schedule as CSV from a remote document store.
// Token, when set, is sent as a bearer credential; this covers sheets
// exported behind Graph-style APIs without the engine knowing about them.
type HTTPProvider struct {
	URL    string
	Token  string
	Client *http.Client
}

func NewHTTPProvider(url, token string) *HTTPProvider {
	return &HTTPProvider{
		URL:    url,
		Token:  token,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *HTTPProvider) Fetch(ctx context.Context) (schedule.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return schedule.Dataset{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")
	if p.Token != "" {
		req.Header.Set("Authorization", "Bearer "+p.Token)
	}

	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return schedule.Dataset{}, fmt.Errorf("fetch schedule: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return schedule.Dataset{}, fmt.Errorf("fetch schedule: status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(b)))
	}

	ds, err := parseCSV(resp.Body)
	if err != nil {
		return schedule.Dataset{}, fmt.Errorf("parse response: %w", err)
	}
	return ds, nil
}
