/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "fmt"

// selectBye returns the position in pool of the player sitting out: the
// lowest score, then lowest rating, among those without a prior bye. Equal
// candidates resolve to the earliest in input order.
func selectBye(pool []entrant, policy ByePolicy) (int, error) {
	best := -1
	for i := range pool {
		if pool[i].ReceivedBye {
			continue
		}
		if best == -1 || ranksBelow(pool[i].Player, pool[best].Player) {
			best = i
		}
	}
	if best != -1 {
		return best, nil
	}

	if policy == ByeStrict {
		return -1, fmt.Errorf("%w: %d players", ErrAllPlayersByed, len(pool))
	}
	best = 0
	for i := 1; i < len(pool); i++ {
		if ranksBelow(pool[i].Player, pool[best].Player) {
			best = i
		}
	}

	return best, nil
}

func ranksBelow(a, b Player) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Rating < b.Rating
}
