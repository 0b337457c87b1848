/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "errors"

var (
	ErrInvalidInput       = errors.New("swiss: invalid input")
	ErrAllPlayersByed     = errors.New("swiss: every player already received a bye")
	ErrInfeasibleMatching = errors.New("swiss: no complete set of pairings exists")
)
