/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package swiss pairs one round of a Swiss-system tournament. Every
// candidate pairing is weighted by score proximity, pairing history, rating
// proximity and seat balance, and a maximum-weight perfect matching over
// those weights selects the round's pairings.
package swiss

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/mikeb26/swisspair/blossom"
)

// entrant is the working copy of a Player for the duration of one call.
type entrant struct {
	Player

	index      int
	group      int
	colorScore int
	streak     Seat
	last       Seat
}

// Pair computes the pairings for round. players is never modified. If the
// number of players is odd one of them receives a bye, emitted as the last
// match.
func Pair(players []Player, round int, opts Options) ([]Match, error) {
	if err := validate(players, round); err != nil {
		return nil, err
	}

	pool := make([]entrant, len(players))
	for i, p := range players {
		pool[i] = newEntrant(p)
	}

	var byePlayer *Player
	if len(pool)%2 == 1 {
		idx, err := selectBye(pool, opts.ByePolicy)
		if err != nil {
			return nil, err
		}
		p := pool[idx].Player
		byePlayer = &p
		pool = append(pool[:idx:idx], pool[idx+1:]...)
	}

	opts.shuffler().Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	for i := range pool {
		pool[i].index = i
	}

	scores := make([]float64, len(pool))
	for i := range pool {
		scores[i] = pool[i].Score
	}
	groups := ScoreGroups(scores)
	sums := ScoreSums(groups)
	for i := range pool {
		pool[i].group = rankOf(groups, pool[i].Score)
	}

	var matches []Match
	if len(pool) > 0 {
		edges := buildEdges(pool, sums, opts)
		mate, err := opts.solver().Solve(len(pool), edges, true)
		if err != nil {
			if errors.Is(err, blossom.ErrNoPerfectMatching) {
				return nil, fmt.Errorf("%w: %w", ErrInfeasibleMatching, err)
			}
			return nil, fmt.Errorf("swiss: matching solver failed: %w", err)
		}
		matches, err = assemble(pool, mate, round, opts.Seating)
		if err != nil {
			return nil, err
		}
	}

	if byePlayer != nil {
		matches = append(matches, Match{
			Round:   round,
			Number:  len(matches) + 1,
			Player1: byePlayer.ID,
		})
	}

	return matches, nil
}

// PairCount pairs n anonymous players with ids "1" through "n", all on a
// score of zero.
func PairCount(n int, round int, opts Options) ([]Match, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: player count %d", ErrInvalidInput, n)
	}
	players := make([]Player, n)
	for i := range players {
		players[i] = Player{ID: strconv.Itoa(i + 1)}
	}

	return Pair(players, round, opts)
}

func validate(players []Player, round int) error {
	if round < 1 {
		return fmt.Errorf("%w: round %d", ErrInvalidInput, round)
	}
	if len(players) == 0 {
		return fmt.Errorf("%w: no players", ErrInvalidInput)
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if p.ID == "" {
			return fmt.Errorf("%w: player with empty id", ErrInvalidInput)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate player id %q", ErrInvalidInput, p.ID)
		}
		seen[p.ID] = true
		if math.IsNaN(p.Score) || math.IsInf(p.Score, 0) || p.Score < 0 {
			return fmt.Errorf("%w: player %q has score %v", ErrInvalidInput,
				p.ID, p.Score)
		}
		if math.IsNaN(p.Rating) || math.IsInf(p.Rating, 0) {
			return fmt.Errorf("%w: player %q has rating %v", ErrInvalidInput,
				p.ID, p.Rating)
		}
		for _, s := range p.Seating {
			if s != SeatFirst && s != SeatSecond {
				return fmt.Errorf("%w: player %q has seat %d", ErrInvalidInput,
					p.ID, int(s))
			}
		}
	}

	return nil
}

func newEntrant(p Player) entrant {
	e := entrant{Player: p}
	for _, s := range p.Seating {
		e.colorScore += int(s)
	}
	if n := len(p.Seating); n > 0 {
		e.last = p.Seating[n-1]
		if n > 1 && p.Seating[n-2] == e.last {
			e.streak = e.last
		}
	}

	return e
}
