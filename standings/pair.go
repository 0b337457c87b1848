/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"context"
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/swisspair/swiss"
)

// PairOptions controls PairSections.
type PairOptions struct {
	swiss.Options

	// Seed, when non-zero, gives each section its own deterministic
	// shuffle and overrides Options.Shuffler. Otherwise Options.Shuffler is
	// shared by every section and must be safe for concurrent use.
	Seed uint64
}

// SectionPairings are the pairings of one section's next round.
type SectionPairings struct {
	Section string        `json:"section"`
	Round   int           `json:"round"`
	Matches []swiss.Match `json:"matches"`

	sec *Section
}

// Entry returns the section entry for a player id in the pairings.
func (sp *SectionPairings) Entry(id string) (Entry, bool) {
	if sp.sec == nil {
		return Entry{Player: swiss.Player{ID: id}}, false
	}
	e, ok := sp.sec.Lookup(id)
	if !ok {
		e.ID = id
	}
	return e, ok
}

// PairSections pairs every non-empty section concurrently. Sections never
// share players so each is an independent call to swiss.Pair. The first
// failure cancels the remaining sections.
func PairSections(ctx context.Context, sections []Section,
	opts PairOptions) ([]SectionPairings, error) {

	results := make([]*SectionPairings, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	for i := range sections {
		sec := &sections[i]
		if len(sec.Entries) == 0 {
			continue
		}
		secOpts := opts.Options
		if opts.Seed != 0 {
			secOpts.Shuffler = rand.New(rand.NewPCG(opts.Seed, uint64(i)))
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			matches, err := swiss.Pair(sec.Players(), sec.Round, secOpts)
			if err != nil {
				return fmt.Errorf("standings.pair: section %q: %w", sec.Name,
					err)
			}
			results[i] = &SectionPairings{
				Section: sec.Name,
				Round:   sec.Round,
				Matches: matches,
				sec:     sec,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var ret []SectionPairings
	for _, sp := range results {
		if sp != nil {
			ret = append(ret, *sp)
		}
	}

	return ret, nil
}
