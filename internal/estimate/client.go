// Package estimate asks an external text-generation provider for an
// onboarding completion-date estimate. The integration is optional and
// advisory only; nothing in the primary flow depends on it.
package estimate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrDisabled is returned when no provider URL is configured.
var ErrDisabled = errors.New("estimate provider not configured")

// Client calls the provider's JSON endpoint.
type Client struct {
	url    string
	apiKey string
	http   *http.Client
}

// New returns a client; an empty url yields a disabled client.
func New(url, apiKey string) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
		http:   &http.Client{Timeout: 20 * time.Second},
	}
}

// Enabled reports whether a provider is configured.
func (c *Client) Enabled() bool {
	return c.url != ""
}

// CompletionDate asks the provider for an estimated completion date given
// the customer's current progress.
func (c *Client) CompletionDate(ctx context.Context, businessName string, percentComplete int, stagesRemaining int) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	prompt := fmt.Sprintf(
		"Customer %q is %d%% through laundry-equipment onboarding with %d stages remaining. "+
			"Estimate a realistic completion date as a single short sentence.",
		businessName, percentComplete, stagesRemaining)

	body, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("estimate provider returned %d", resp.StatusCode)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Text, nil
}
