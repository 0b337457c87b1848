/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package bcc reads posted pairings from the Boylston Chess Club website and
// turns them into standings for predicting the next round.
package bcc

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/swisspair/internal"
)

const siteBase = "https://boylstonchess.org"

type Client struct {
	httpClient *http.Client
}

// NewClient returns a Client whose responses are cached briefly; results are
// entered on the pairings page as games finish.
func NewClient(ctx context.Context) *Client {
	return &Client{
		httpClient: internal.NewCachedHttpClient(ctx, 5*time.Minute),
	}
}

// NewClientWithHTTPClient returns a Client issuing every request through hc.
func NewClientWithHTTPClient(hc *http.Client) *Client {
	return &Client{httpClient: hc}
}

// FetchPairings fetches and parses the posted pairings of an event.
func (client *Client) FetchPairings(ctx context.Context,
	eventID int64) (*PairingsPage, error) {

	url := fmt.Sprintf("%v/files/event/%d/pairings", siteBase, eventID)
	doc, err := client.fetchDoc(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch pairings page: %w", err)
	}

	page, err := parsePairingsDoc(doc)
	if err != nil {
		return nil, fmt.Errorf("unable to parse pairings page: %w", err)
	}
	return page, nil
}

// fetchDoc gets the HTML document at the given URL using the configured
// User-Agent.
func (client *Client) fetchDoc(ctx context.Context,
	url string) (*goquery.Document, error) {

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}
