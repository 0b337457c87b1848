/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"time"

	"github.com/mikeb26/swisspair/internal"
)

// EventSummary is one entry of an affiliate's event history.
type EventSummary struct {
	ID      EventID
	Name    string
	EndDate time.Time
}

type apiAffiliateEventsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		EndDate string `json:"endDate"`
	} `json:"items"`
	Offset      int  `json:"offset"`
	PageSize    int  `json:"pageSize"`
	HasNextPage bool `json:"hasNextPage"`
}

// AffiliateEvents returns up to limit of the most recent rated events run by
// the given affiliate. limit <= 0 returns the full history.
func (client *Client) AffiliateEvents(ctx context.Context,
	affiliateCode string, limit int) ([]EventSummary, error) {

	const pageSize = 100
	var events []EventSummary

	for offset := 0; ; offset += pageSize {
		q := url.Values{}
		q.Set("offset", strconv.Itoa(offset))
		q.Set("pageSize", strconv.Itoa(pageSize))
		eventsURL := fmt.Sprintf("%v/affiliates/%v/events?%v", apiBase,
			url.PathEscape(affiliateCode), q.Encode())

		var page apiAffiliateEventsResponse
		err := client.getJSON(ctx, client.httpClient1hour, eventsURL,
			"affiliate events", &page)
		if err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			id, err := strconv.Atoi(item.ID)
			if err != nil {
				continue
			}
			endDate, err := internal.ParseDateOrZero(item.EndDate)
			if err != nil {
				log.Printf("uschess.affiliate: unable to parse end date %v of event %v: %v",
					item.EndDate, item.ID, err)
			}
			events = append(events, EventSummary{
				ID:      EventID(id),
				Name:    item.Name,
				EndDate: endDate,
			})
			if limit > 0 && len(events) == limit {
				return events, nil
			}
		}

		if !page.HasNextPage || len(page.Items) == 0 {
			break
		}
	}

	return events, nil
}
