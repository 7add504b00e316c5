package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ReportSource lists the wells reported for a mode and day and fetches a
// single well's description. The backing store publishes one sheet per day,
// so the date parameter is a consistency guard, not a lookup key.
type ReportSource interface {
	ListWells(ctx context.Context, mode string, date time.Time) ([]string, error)
	GetDescription(ctx context.Context, mode, wellNumber string, date time.Time) (string, error)
}

var ErrWellNotFound = errors.New("well not found")

const (
	apiBaseURL    = "https://sheets.googleapis.com/v4/spreadsheets"
	readOnlyScope = "https://www.googleapis.com/auth/spreadsheets.readonly"
)

// Per-mode tab names inside the daily report spreadsheets.
var sheetNames = map[string]string{
	"drilling":   "08:00",
	"completion": "08:00 ОСВ",
}

// CredentialSource supplies the raw service-account JSON.
type CredentialSource interface {
	Get(ctx context.Context) ([]byte, error)
}

type valuesResponse struct {
	Values [][]string `json:"values"`
}

type Client struct {
	baseURL  string
	sheetIDs map[string]string
	creds    CredentialSource
	timeout  time.Duration

	mu         sync.Mutex
	httpClient *http.Client
}

func NewClient(drillingSheetID, completionSheetID string, creds CredentialSource, timeout time.Duration) *Client {
	return &Client{
		baseURL: apiBaseURL,
		sheetIDs: map[string]string{
			"drilling":   drillingSheetID,
			"completion": completionSheetID,
		},
		creds:   creds,
		timeout: timeout,
	}
}

func (c *Client) ListWells(ctx context.Context, mode string, date time.Time) ([]string, error) {
	rows, err := c.getValues(ctx, mode, "A2:A")
	if err != nil {
		return nil, err
	}

	wells := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) > 0 && strings.TrimSpace(row[0]) != "" {
			wells = append(wells, strings.TrimSpace(row[0]))
		}
	}
	return wells, nil
}

func (c *Client) GetDescription(ctx context.Context, mode, wellNumber string, date time.Time) (string, error) {
	rows, err := c.getValues(ctx, mode, "A2:B")
	if err != nil {
		return "", err
	}

	want := strings.TrimSpace(wellNumber)
	for _, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) != want {
			continue
		}
		if len(row) < 2 || strings.TrimSpace(row[1]) == "" {
			return "", fmt.Errorf("%w: no description for well %s", ErrWellNotFound, wellNumber)
		}
		return row[1], nil
	}
	return "", fmt.Errorf("%w: %s", ErrWellNotFound, wellNumber)
}

func (c *Client) getValues(ctx context.Context, mode, cells string) ([][]string, error) {
	sheetID, ok := c.sheetIDs[mode]
	if !ok || sheetID == "" {
		return nil, fmt.Errorf("no sheet configured for mode %q", mode)
	}
	tab, ok := sheetNames[mode]
	if !ok {
		return nil, fmt.Errorf("no sheet tab for mode %q", mode)
	}

	httpClient, err := c.client(ctx)
	if err != nil {
		return nil, err
	}

	rangeRef := url.PathEscape(fmt.Sprintf("%s!%s", tab, cells))
	reqURL := fmt.Sprintf("%s/%s/values/%s", c.baseURL, sheetID, rangeRef)

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheets values.get: status %d", res.StatusCode)
	}

	var parsed valuesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	return parsed.Values, nil
}

// client builds the authenticated HTTP client on first use. The JWT token
// source refreshes itself, so one client serves the process lifetime.
func (c *Client) client(ctx context.Context) (*http.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpClient != nil {
		return c.httpClient, nil
	}

	raw, err := c.creds.Get(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := google.JWTConfigFromJSON(raw, readOnlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}

	c.httpClient = oauth2.NewClient(context.Background(), cfg.TokenSource(context.Background()))
	c.httpClient.Timeout = c.timeout
	return c.httpClient, nil
}
