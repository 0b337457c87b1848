/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "fmt"

// assemble walks pool in index order and emits one Match per matched pair.
// Every player must have a partner.
func assemble(pool []entrant, mate []int, round int,
	seating bool) ([]Match, error) {

	if len(mate) != len(pool) {
		return nil, fmt.Errorf("%w: solver returned %d partners for %d players",
			ErrInfeasibleMatching, len(mate), len(pool))
	}

	done := make([]bool, len(pool))
	matches := make([]Match, 0, len(pool)/2+1)
	for i := range pool {
		if done[i] {
			continue
		}
		j := mate[i]
		if j < 0 || j >= len(pool) || j == i || mate[j] != i || done[j] {
			return nil, fmt.Errorf("%w: player %q has no partner",
				ErrInfeasibleMatching, pool[i].ID)
		}
		done[i], done[j] = true, true

		a, b := &pool[i], &pool[j]
		if seating && secondSitsFirst(a, b) {
			a, b = b, a
		}
		p2 := b.ID
		matches = append(matches, Match{
			Round:   round,
			Number:  len(matches) + 1,
			Player1: a.ID,
			Player2: &p2,
		})
	}

	return matches, nil
}

// secondSitsFirst reports whether b rather than a should take the first
// seat.
func secondSitsFirst(a, b *entrant) bool {
	// due after two second seats in a row
	if a.streak == SeatSecond && b.streak != SeatSecond {
		return false
	}
	if b.streak == SeatSecond && a.streak != SeatSecond {
		return true
	}
	// not after two first seats in a row
	if a.streak == SeatFirst && b.streak != SeatFirst {
		return true
	}
	if b.streak == SeatFirst && a.streak != SeatFirst {
		return false
	}
	// alternate from the previous round
	if a.last == SeatSecond && b.last == SeatFirst {
		return false
	}
	if b.last == SeatSecond && a.last == SeatFirst {
		return true
	}

	return b.colorScore < a.colorScore
}
