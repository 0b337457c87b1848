/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/swisspair/s3store"
)

// NewCachedHttpClient returns an http.Client that caches via S3-backed
// httpcache. If the S3 cache cannot be initialized it falls back to an
// in-memory cache. Origin cache headers are rewritten so every response is
// kept for maxAge.
func NewCachedHttpClient(ctx context.Context, maxAge time.Duration) *http.Client {
	var cache httpcache.Cache

	store := s3store.New(ctx, Bucket(), true, true)
	if err := store.Init(); err != nil {
		log.Printf("httpcache: warning failed to init S3 cache: %v; falling back to in-memory cache",
			err)
		cache = httpcache.NewMemoryCache()
	} else {
		cache = store
	}

	return newCachingClient(cache, maxAge, http.DefaultTransport)
}

func newCachingClient(cache httpcache.Cache, maxAge time.Duration,
	upstream http.RoundTripper) *http.Client {

	hc := httpcache.NewTransport(cache)
	// origin servers often forbid caching; override so our TTL applies
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: upstream,
		Request: func(req *http.Request) {
			if req.Header.Get("User-Agent") == "" {
				req.Header.Set("User-Agent", UserAgent)
			}
		},
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don't stomp on the caller's original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			resp.Body.Close()
			return nil, err
		}
	}
	return resp, nil
}
