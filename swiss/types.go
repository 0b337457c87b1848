/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"github.com/mikeb26/swisspair/blossom"
)

// Seat is one side of the board: SeatFirst plays white, SeatSecond black.
type Seat int

const (
	SeatSecond Seat = -1
	SeatFirst  Seat = 1
)

func (s Seat) String() string {
	switch s {
	case SeatFirst:
		return "first"
	case SeatSecond:
		return "second"
	default:
		return "?"
	}
}

// Player is a participant's standing going into the round being paired.
type Player struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
	// Rating is only consulted when rated pairing is enabled and to break
	// ties when selecting the bye; absent ratings are 0.
	Rating float64 `json:"rating,omitempty"`
	// PairedUpDown marks a player who has already been paired outside of
	// their score group in an earlier round.
	PairedUpDown bool     `json:"pairedUpDown,omitempty"`
	ReceivedBye  bool     `json:"receivedBye,omitempty"`
	Avoid        []string `json:"avoid,omitempty"`
	// Seating is the player's seat history, oldest first.
	Seating []Seat `json:"seating,omitempty"`
}

// Match is one pairing of a round. Player2 is nil for a bye.
type Match struct {
	Round   int     `json:"round"`
	Number  int     `json:"match"`
	Player1 string  `json:"player1"`
	Player2 *string `json:"player2"`
}

func (m Match) IsBye() bool {
	return m.Player2 == nil
}

// Opponent returns the id of the second player, or "" for a bye.
func (m Match) Opponent() string {
	if m.Player2 == nil {
		return ""
	}
	return *m.Player2
}

// ByePolicy decides what happens when a bye is needed but every player has
// already received one.
type ByePolicy int

const (
	// ByeRepeat gives a second bye to the lowest (score, rating) player.
	ByeRepeat ByePolicy = iota
	// ByeStrict fails the call with ErrAllPlayersByed.
	ByeStrict
)

// MatchingSolver finds a maximum-weight matching over vertices 0..n-1 and
// returns each vertex's partner, -1 meaning unmatched.
type MatchingSolver interface {
	Solve(n int, edges []blossom.Edge, requirePerfect bool) ([]int, error)
}

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Options controls a pairing call. The zero value pairs on score and history
// alone with a random shuffle and the blossom solver.
type Options struct {
	Rated     bool
	Seating   bool
	ByePolicy ByePolicy
	Solver    MatchingSolver
	Shuffler  Shuffler
}

func (o Options) solver() MatchingSolver {
	if o.Solver == nil {
		return blossom.Solver{}
	}
	return o.Solver
}

func (o Options) shuffler() Shuffler {
	if o.Shuffler == nil {
		return randomShuffler{}
	}
	return o.Shuffler
}
