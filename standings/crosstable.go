/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"fmt"
	"strconv"

	"github.com/mikeb26/swisspair/swiss"
	"github.com/mikeb26/swisspair/uschess"
)

// Latest selects every round a cross table has results for.
const Latest = -1

// FromEvent converts each section of a rated event into the standings after
// round through (or after its last round when through is Latest).
func FromEvent(event *uschess.Event, through int) (*Standings, error) {
	st := &Standings{
		Event: event.Name,
		Date:  event.EndDate,
	}
	for _, xt := range event.Sections {
		sec, err := FromCrossTable(xt, through)
		if err != nil {
			return nil, err
		}
		st.Sections = append(st.Sections, sec)
	}

	return st, nil
}

// FromCrossTable rebuilds a section's standings as they stood after round
// through, ready to pair round through+1. Prior opponents become Avoid,
// played games become Seating history (white first), a full-point bye sets
// ReceivedBye, and a played game against someone on a different score sets
// PairedUpDown.
func FromCrossTable(xt *uschess.CrossTable, through int) (Section, error) {
	if through == Latest {
		through = xt.NumRounds
	}
	if through < 0 || through > xt.NumRounds {
		return Section{}, fmt.Errorf("%w: section %v has %d rounds; asked for %d",
			ErrRoundOutOfRange, xt.SectionName, xt.NumRounds, through)
	}

	// running[pairNum][r] is the score going into round r+1
	running := make(map[int][]float64, len(xt.Entries))
	for _, e := range xt.Entries {
		scores := make([]float64, through+1)
		for r := 0; r < through; r++ {
			scores[r+1] = scores[r] + e.Results[r].Outcome.Points()
		}
		running[e.PairNum] = scores
	}

	sec := Section{
		Name:  xt.SectionName,
		Round: through + 1,
	}
	for _, e := range xt.Entries {
		own := running[e.PairNum]
		p := swiss.Player{
			ID:     strconv.Itoa(e.PairNum),
			Score:  own[through],
			Rating: float64(e.RatingPre),
		}

		seen := make(map[int]bool)
		for r := 0; r < through; r++ {
			res := e.Results[r]
			if res.Outcome == uschess.ResultFullBye {
				p.ReceivedBye = true
			}
			if res.Opponent <= 0 || res.Opponent == e.PairNum {
				continue
			}
			if !seen[res.Opponent] {
				seen[res.Opponent] = true
				p.Avoid = append(p.Avoid, strconv.Itoa(res.Opponent))
			}
			if !res.Outcome.IsPlayed() {
				continue
			}
			switch res.Color {
			case uschess.ColorWhite:
				p.Seating = append(p.Seating, swiss.SeatFirst)
			case uschess.ColorBlack:
				p.Seating = append(p.Seating, swiss.SeatSecond)
			}
			if opp, ok := running[res.Opponent]; ok && opp[r] != own[r] {
				p.PairedUpDown = true
			}
		}

		sec.Entries = append(sec.Entries, Entry{Name: e.Name, Player: p})
	}

	return sec, nil
}
