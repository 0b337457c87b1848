/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"math/rand/v2"
)

type randomShuffler struct{}

func (randomShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

type identityShuffler struct{}

func (identityShuffler) Shuffle(int, func(i, j int)) {}

// Identity keeps players in input order, making a call fully deterministic.
var Identity Shuffler = identityShuffler{}
