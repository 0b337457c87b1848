/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package s3store

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"path"

	"github.com/gregjones/httpcache"
)

const cachePrefix = "webcache"

var _ httpcache.Cache = (*Store)(nil)

// Get, Set and Delete implement httpcache.Cache. Failures are logged (when
// enabled) and reported as cache misses.

func (s *Store) Get(key string) ([]byte, bool) {
	data, err := s.getObject(s.ctx, cacheObjectKey(key))
	if err != nil {
		// not found just indicates a cache miss
		if s.logErrors && !errors.Is(err, ErrNotFound) {
			log.Printf("s3store.get: %v", err)
		}
		return nil, false
	}

	return data, true
}

func (s *Store) Set(key string, data []byte) {
	err := s.putObject(s.ctx, cacheObjectKey(key), data, "")
	if err != nil && s.logErrors {
		log.Printf("s3store.set: %v", err)
	}
}

func (s *Store) Delete(key string) {
	err := s.deleteObject(s.ctx, cacheObjectKey(key))
	if err != nil && s.logErrors {
		log.Printf("s3store.delete: %v", err)
	}
}

// cacheObjectKey hashes cache keys (request URLs) into flat object names.
func cacheObjectKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)

	return path.Join(cachePrefix, hex.EncodeToString(h.Sum(nil)))
}
