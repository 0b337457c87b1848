/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "sort"

// ScoreGroups returns the distinct scores in ascending order. A player's
// score group rank is the position of their score in this list.
func ScoreGroups(scores []float64) []float64 {
	return distinctSorted(scores)
}

// ScoreSums returns every sum of two score groups (a group with itself
// included), deduplicated and in ascending order.
func ScoreSums(groups []float64) []float64 {
	var sums []float64
	for i := range groups {
		for j := i; j < len(groups); j++ {
			sums = append(sums, groups[i]+groups[j])
		}
	}

	return distinctSorted(sums)
}

func distinctSorted(vals []float64) []float64 {
	seen := make(map[float64]bool, len(vals))
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Float64s(out)

	return out
}

// rankOf returns the position of v in the ascending list sorted, which must
// contain it.
func rankOf(sorted []float64, v float64) int {
	return sort.SearchFloat64s(sorted, v)
}
