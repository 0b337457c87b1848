/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package blossom

import (
	"errors"
	"math/rand"
	"testing"
)

func TestMaxWeightMatchingSmall(t *testing.T) {
	cases := []struct {
		name    string
		n       int
		edges   []Edge
		maxCard bool
		want    []int
	}{
		{
			name: "empty",
			n:    3,
			want: []int{-1, -1, -1},
		},
		{
			name:  "single edge",
			n:     2,
			edges: []Edge{{0, 1, 1}},
			want:  []int{1, 0},
		},
		{
			name:  "path prefers heavier middle",
			n:     4,
			edges: []Edge{{1, 2, 10}, {2, 3, 11}},
			want:  []int{-1, -1, 3, 2},
		},
		{
			name:  "path weight beats cardinality",
			n:     5,
			edges: []Edge{{1, 2, 5}, {2, 3, 11}, {3, 4, 5}},
			want:  []int{-1, -1, 3, 2, -1},
		},
		{
			name:    "path cardinality beats weight",
			n:       5,
			edges:   []Edge{{1, 2, 5}, {2, 3, 11}, {3, 4, 5}},
			maxCard: true,
			want:    []int{-1, 2, 1, 4, 3},
		},
		{
			name:  "S-blossom",
			n:     5,
			edges: []Edge{{1, 2, 8}, {1, 3, 9}, {2, 3, 10}, {3, 4, 7}},
			want:  []int{-1, 2, 1, 4, 3},
		},
		{
			name: "S-blossom augmented through",
			n:    7,
			edges: []Edge{{1, 2, 8}, {1, 3, 9}, {2, 3, 10}, {3, 4, 7},
				{1, 6, 5}, {4, 5, 6}},
			want: []int{-1, 6, 3, 2, 5, 4, 1},
		},
		{
			name: "T-blossom",
			n:    7,
			edges: []Edge{{1, 2, 9}, {1, 3, 8}, {2, 3, 10}, {1, 4, 5},
				{4, 5, 4}, {1, 6, 3}},
			want: []int{-1, 6, 3, 2, 5, 4, 1},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := MaxWeightMatching(c.n, c.edges, c.maxCard)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(c.want) {
				t.Fatalf("mate = %v; want %v", got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("mate = %v; want %v", got, c.want)
				}
			}
		})
	}
}

func TestMaxWeightMatchingInvalidEdges(t *testing.T) {
	cases := []struct {
		name  string
		n     int
		edges []Edge
	}{
		{"self loop", 3, []Edge{{1, 1, 2}}},
		{"out of range", 3, []Edge{{0, 3, 2}}},
		{"negative vertex", 3, []Edge{{-1, 2, 2}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := MaxWeightMatching(c.n, c.edges, false)
			if !errors.Is(err, ErrInvalidEdge) {
				t.Fatalf("err = %v; want ErrInvalidEdge", err)
			}
		})
	}
}

func TestSolverRequirePerfect(t *testing.T) {
	var s Solver

	// 0-1-2-3 path: only perfect matching is {0-1, 2-3} even though 1-2
	// is the heaviest edge
	mate, err := s.Solve(4, []Edge{{0, 1, 1}, {1, 2, 100}, {2, 3, 1}}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mate[0] != 1 || mate[2] != 3 {
		t.Errorf("mate = %v; want [1 0 3 2]", mate)
	}

	// vertex 3 is isolated
	_, err = s.Solve(4, []Edge{{0, 1, 1}, {1, 2, 1}, {0, 2, 1}}, true)
	if !errors.Is(err, ErrNoPerfectMatching) {
		t.Errorf("err = %v; want ErrNoPerfectMatching", err)
	}
}

// TestMaxWeightMatchingAgainstBruteForce compares the blossom result against
// exhaustive search on random small graphs.
func TestMaxWeightMatchingAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(20260401))
	for iter := 0; iter < 400; iter++ {
		n := 2 + rng.Intn(8)
		density := 0.3 + rng.Float64()*0.7
		var edges []Edge
		w := make([][]float64, n)
		for i := range w {
			w[i] = make([]float64, n)
		}
		has := make([][]bool, n)
		for i := range has {
			has[i] = make([]bool, n)
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if rng.Float64() > density {
					continue
				}
				wt := float64(rng.Intn(40) - 5)
				edges = append(edges, Edge{i, j, wt})
				w[i][j], w[j][i] = wt, wt
				has[i][j], has[j][i] = true, true
			}
		}

		for _, maxCard := range []bool{false, true} {
			mate, err := MaxWeightMatching(n, edges, maxCard)
			if err != nil {
				t.Fatalf("iter %d: unexpected error: %v", iter, err)
			}
			card, total := checkMate(t, mate, has, w)
			bestCard, bestTotal := bruteForce(n, has, w, maxCard)
			if maxCard && card != bestCard {
				t.Fatalf("iter %d: cardinality %d; want %d (edges %v)",
					iter, card, bestCard, edges)
			}
			if total != bestTotal {
				t.Fatalf("iter %d maxCard=%v: weight %v; want %v (edges %v, mate %v)",
					iter, maxCard, total, bestTotal, edges, mate)
			}
		}
	}
}

func checkMate(t *testing.T, mate []int, has [][]bool,
	w [][]float64) (int, float64) {

	t.Helper()
	card := 0
	total := 0.0
	for v, u := range mate {
		if u == -1 {
			continue
		}
		if mate[u] != v {
			t.Fatalf("mate not symmetric: %v", mate)
		}
		if !has[v][u] {
			t.Fatalf("matched %d-%d without an edge", v, u)
		}
		if v < u {
			card++
			total += w[v][u]
		}
	}
	return card, total
}

func bruteForce(n int, has [][]bool, w [][]float64, maxCard bool) (int, float64) {
	used := make([]bool, n)
	bestCard, bestTotal := 0, 0.0

	var rec func(v, card int, total float64)
	rec = func(v, card int, total float64) {
		for v < n && used[v] {
			v++
		}
		if v >= n {
			better := false
			if maxCard {
				better = card > bestCard ||
					(card == bestCard && total > bestTotal)
			} else {
				better = total > bestTotal
			}
			if better {
				bestCard, bestTotal = card, total
			}
			return
		}
		used[v] = true
		// leave v unmatched
		rec(v+1, card, total)
		for u := v + 1; u < n; u++ {
			if used[u] || !has[v][u] {
				continue
			}
			used[u] = true
			rec(v+1, card+1, total+w[v][u])
			used[u] = false
		}
		used[v] = false
	}
	rec(0, 0, 0)

	return bestCard, bestTotal
}
