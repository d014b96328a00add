// Package todoist is a thin wrapper over the provider's REST and Sync APIs:
// label listing, user lookup, and batched sync commands.
package todoist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmelnik/taskfence/internal/config"
	"github.com/dmelnik/taskfence/internal/util"
)

// Client handles communication with the task provider.
type Client struct {
	httpClient *http.Client
	syncURL    string
	restURL    string
}

// NewClient creates a provider client for the configured endpoints.
func NewClient(cfg config.TodoistConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		syncURL: cfg.SyncURL,
		restURL: strings.TrimRight(cfg.RestURL, "/"),
	}
}

// Label is one label definition from the provider.
type Label struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Color     int    `json:"color"`
	ItemOrder int    `json:"item_order"`
}

// SyncUser is the provider's user resource, trimmed to what we read.
type SyncUser struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Labels fetches the account's label definitions. The endpoint
// authenticates through the token query parameter.
func (c *Client) Labels(ctx context.Context, token string) ([]Label, error) {
	endpoint := c.restURL + "/labels?" + url.Values{"token": {token}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("labels request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("labels request returned %d: %s", resp.StatusCode, util.TruncateBytes(body))
	}

	var labels []Label
	if err := json.Unmarshal(body, &labels); err != nil {
		return nil, fmt.Errorf("parse labels response: %w", err)
	}
	return labels, nil
}

// User fetches the account's user resource through a sync read.
func (c *Client) User(ctx context.Context, token string) (*SyncUser, error) {
	form := url.Values{
		"token":          {token},
		"sync_token":     {"*"},
		"resource_types": {`["user"]`},
	}

	body, err := c.postSync(ctx, form)
	if err != nil {
		return nil, err
	}

	var result struct {
		User *SyncUser `json:"user"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse user response: %w", err)
	}
	if result.User == nil {
		return nil, fmt.Errorf("sync response missing user resource: %s", util.TruncateBytes(body))
	}
	return result.User, nil
}

func (c *Client) postSync(ctx context.Context, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.syncURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sync request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sync request returned %d: %s", resp.StatusCode, util.TruncateBytes(body))
	}
	return body, nil
}
