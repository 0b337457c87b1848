/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mikeb26/swisspair/internal"
)

const apiBase = "https://ratings-api.uschess.org/api/v1"

type Client struct {
	// rated events are rarely (if ever) revised once posted
	httpClient30day *http.Client
	// events still in progress get new rounds posted
	httpClient1hour *http.Client
}

func NewClient(ctx context.Context) *Client {
	ret := &Client{
		httpClient30day: internal.NewCachedHttpClient(ctx, 30*24*time.Hour),
		httpClient1hour: internal.NewCachedHttpClient(ctx, time.Hour),
	}

	return ret
}

// NewClientWithHTTPClient returns a Client issuing every request through hc.
func NewClientWithHTTPClient(hc *http.Client) *Client {
	return &Client{httpClient30day: hc, httpClient1hour: hc}
}

func (client *Client) getJSON(ctx context.Context, hc *http.Client,
	url string, what string, out any) error {

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("unable to create %v request: %w", what, err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("unable to fetch %v: %w", what, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %v", ErrNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected %v status %d: %s", what,
			resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse %v JSON: %w", what, err)
	}

	return nil
}
