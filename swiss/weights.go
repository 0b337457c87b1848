/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"math"
	"sort"

	"github.com/mikeb26/swisspair/blossom"
)

const (
	sumTierFactor      = 14.0
	nearGroupFactor    = 3.0
	farGroupFactor     = 1.0
	upDownBonus        = 1.2
	ratingDivisor      = 3.0
	firstStreakBonus   = 7.0
	secondStreakBonus  = 8.0
	streakOffsetFactor = 2.0
	byeDamping         = 1.5

	// clamps keeping the logarithmic seat terms finite
	maxStreakColorScore = 2.0
	maxColorScoreDiff   = 4.0
)

type avoidSet map[string]map[string]bool

func newAvoidSet(pool []entrant) avoidSet {
	as := make(avoidSet)
	for i := range pool {
		for _, id := range pool[i].Avoid {
			if as[pool[i].ID] == nil {
				as[pool[i].ID] = make(map[string]bool)
			}
			as[pool[i].ID][id] = true
		}
	}
	return as
}

// blocks reports whether either player asked to avoid the other.
func (as avoidSet) blocks(a, b string) bool {
	return as[a][b] || as[b][a]
}

// buildEdges weighs every allowed pairing in pool. pool must be in index
// order with score group ranks assigned.
func buildEdges(pool []entrant, sums []float64, opts Options) []blossom.Edge {
	avoid := newAvoidSet(pool)
	var edges []blossom.Edge

	for i := range pool {
		curr := &pool[i]
		next := pool[i+1:]
		var ratingRank []int
		if opts.Rated {
			ratingRank = rankByRating(curr, next)
		}
		for j := range next {
			opp := &next[j]
			if avoid.blocks(curr.ID, opp.ID) {
				continue
			}
			r := -1
			if opts.Rated {
				r = ratingRank[j]
			}
			wt, ok := edgeWeight(curr, opp, sums, r, len(next), opts)
			if !ok {
				continue
			}
			edges = append(edges, blossom.Edge{U: curr.index, V: opp.index,
				Weight: wt})
		}
	}

	return edges
}

// edgeWeight returns the desirability of pairing curr with opp, or false if
// the pair must not be offered. ratingRank is opp's position among curr's
// numCandidates remaining opponents ordered by rating distance.
func edgeWeight(curr, opp *entrant, sums []float64, ratingRank int,
	numCandidates int, opts Options) (float64, bool) {

	sumRank := rankOf(sums, curr.Score+opp.Score)
	wt := sumTierFactor * math.Log10(float64(sumRank)+1)

	d := curr.group - opp.group
	if d < 0 {
		d = -d
	}
	if d < 2 {
		wt += nearGroupFactor / math.Log10(float64(d)+2)
	} else {
		wt += farGroupFactor / math.Log10(float64(d)+2)
	}

	if d == 1 && !curr.PairedUpDown && !opp.PairedUpDown {
		wt += upDownBonus
	}

	if opts.Rated {
		wt += (math.Log2(float64(numCandidates)) -
			math.Log2(float64(ratingRank)+1)) / ratingDivisor
	}

	if opts.Seating {
		sw, ok := seatingWeight(curr, opp)
		if !ok {
			return 0, false
		}
		wt += sw
	}

	if curr.ReceivedBye || opp.ReceivedBye {
		wt *= byeDamping
	}

	return wt, true
}

// seatingWeight scores how well two seat histories complement each other.
// A player who sat on the same side twice running must not meet another
// player with the same streak.
func seatingWeight(curr, opp *entrant) (float64, bool) {
	a, b := curr, opp
	if a.streak == 0 {
		a, b = opp, curr
	}
	if a.streak == 0 {
		diff := math.Abs(float64(curr.colorScore - opp.colorScore))
		diff = math.Min(diff, maxColorScoreDiff)
		return 5 / (4 * math.Log10(6-diff)), true
	}

	switch b.streak {
	case a.streak:
		return 0, false
	case -a.streak:
		if a.streak == SeatFirst {
			return firstStreakBonus, true
		}
		return secondStreakBonus, true
	}
	c := math.Min(math.Abs(float64(b.colorScore)), maxStreakColorScore)

	return streakOffsetFactor / math.Log(4-c), true
}

// rankByRating returns, for each player in next, their 0-based position when
// next is ordered by absolute rating distance from curr. Equal distances
// keep index order.
func rankByRating(curr *entrant, next []entrant) []int {
	order := make([]int, len(next))
	for i := range order {
		order[i] = i
	}
	dist := func(i int) float64 {
		return math.Abs(curr.Rating - next[i].Rating)
	}
	sort.SliceStable(order, func(x, y int) bool {
		return dist(order[x]) < dist(order[y])
	})

	ranks := make([]int, len(next))
	for r, i := range order {
		ranks[i] = r
	}

	return ranks
}
