/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package s3store

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mikeb26/swisspair/swiss"
)

const roundsPrefix = "rounds"

// RoundKey identifies one archived round of one section of an event.
type RoundKey struct {
	Event   string
	Section string
	Round   int
}

func (k RoundKey) validate() error {
	if k.Event == "" || k.Section == "" || k.Round < 1 {
		return fmt.Errorf("s3store: invalid round key %+v", k)
	}
	if strings.Contains(k.Event, "/") || strings.Contains(k.Section, "/") {
		return fmt.Errorf("s3store: round key %+v may not contain '/'", k)
	}
	return nil
}

func (k RoundKey) sectionPrefix() string {
	return path.Join(roundsPrefix, k.Event, k.Section) + "/"
}

func (k RoundKey) objectKey() string {
	return k.sectionPrefix() + strconv.Itoa(k.Round) + ".json"
}

// SaveRound archives the matches emitted for a round, replacing any earlier
// copy.
func (s *Store) SaveRound(ctx context.Context, key RoundKey,
	matches []swiss.Match) error {

	if err := key.validate(); err != nil {
		return err
	}
	data, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("s3store.save: failed to marshal round: %w", err)
	}
	if err := s.putObject(ctx, key.objectKey(), data,
		"application/json"); err != nil {

		return fmt.Errorf("s3store.save: %w", err)
	}

	return nil
}

// LoadRound returns a previously archived round. A missing round yields an
// error wrapping ErrNotFound.
func (s *Store) LoadRound(ctx context.Context,
	key RoundKey) ([]swiss.Match, error) {

	if err := key.validate(); err != nil {
		return nil, err
	}
	data, err := s.getObject(ctx, key.objectKey())
	if err != nil {
		return nil, fmt.Errorf("s3store.load: %w", err)
	}

	var matches []swiss.Match
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil, fmt.Errorf("s3store.load: failed to parse round %v: %w",
			key.objectKey(), err)
	}

	return matches, nil
}

// ListRounds returns the archived round numbers of a section in ascending
// order.
func (s *Store) ListRounds(ctx context.Context, event string,
	section string) ([]int, error) {

	key := RoundKey{Event: event, Section: section, Round: 1}
	if err := key.validate(); err != nil {
		return nil, err
	}
	prefix := key.sectionPrefix()

	var rounds []int
	pager := s3.NewListObjectsV2Paginator(s.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(prefix),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3store.list: failed to list %v: %w",
				prefix, err)
		}
		for _, obj := range page.Contents {
			if r, ok := s.roundFromObjectKey(prefix, aws.ToString(obj.Key)); ok {
				rounds = append(rounds, r)
			}
		}
	}
	sort.Ints(rounds)

	return rounds, nil
}

func (s *Store) roundFromObjectKey(prefix string, objKey string) (int, bool) {
	name, ok := strings.CutPrefix(objKey, prefix)
	if !ok {
		return 0, false
	}
	if s.gzip {
		if name, ok = strings.CutSuffix(name, ".gz"); !ok {
			return 0, false
		}
	}
	name, ok = strings.CutSuffix(name, ".json")
	if !ok {
		return 0, false
	}
	r, err := strconv.Atoi(name)
	if err != nil || r < 1 {
		return 0, false
	}

	return r, true
}
