/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mikeb26/swisspair/internal"
	"github.com/mikeb26/swisspair/uschess"
)

// this program exists just to seed the http cache with the club's recent
// rated events so /swiss predict answers from S3

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
	affiliate := flag.String("affiliate", internal.BccUSCFAffiliateID,
		"USCF affiliate id")
	limit := flag.Int("limit", 25, "Number of recent events to seed")
	pause := flag.Duration("pause", 2*time.Second,
		"Delay between requests to avoid pegging uschess.org")
	flag.Parse()

	ctx := context.Background()
	client := uschess.NewClient(ctx)

	events, err := client.AffiliateEvents(ctx, *affiliate, *limit)
	if err != nil {
		log.Printf("cacheseed: failed to list events: %v", err)
		os.Exit(1)
	}
	for _, ev := range events {
		event, err := client.FetchEvent(ctx, ev.ID)
		time.Sleep(*pause)
		if err != nil {
			// best effort
			log.Printf("cacheseed: skipping %v: %v", ev.ID, err)
			continue
		}

		fmt.Printf("seeded ev:%v (%d sections)\n", event.Name,
			len(event.Sections))
	}
}
