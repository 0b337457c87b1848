/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package blossom computes maximum-weight matchings on general undirected
// graphs using Edmonds' blossom algorithm with dual variables, as described
// by Galil ("Efficient algorithms for finding maximum matching in graphs",
// 1986). Weights are converted to fixed point so the primal-dual updates run
// in exact integer arithmetic. Running time is O(n^3).
package blossom

import (
	"errors"
	"fmt"
	"math"
)

// Edge is an undirected, weighted edge between vertices U and V.
type Edge struct {
	U      int
	V      int
	Weight float64
}

var (
	ErrInvalidEdge       = errors.New("blossom: invalid edge")
	ErrNoPerfectMatching = errors.New("blossom: no perfect matching")
)

// weights are multiplied by weightScale and rounded before solving
const weightScale = 1e6

// Solver is the default matching solver used for Swiss pairings.
type Solver struct{}

// Solve returns the mate of every vertex in 0..n-1 (-1 when unmatched) for a
// maximum-weight matching over edges. When requirePerfect is set the
// matching is computed with maximum cardinality first, and
// ErrNoPerfectMatching is returned if any vertex is left unmatched.
func (Solver) Solve(n int, edges []Edge, requirePerfect bool) ([]int, error) {
	mate, err := MaxWeightMatching(n, edges, requirePerfect)
	if err != nil {
		return nil, err
	}
	if requirePerfect {
		for v, w := range mate {
			if w == -1 {
				return mate, fmt.Errorf("%w: vertex %d has no partner",
					ErrNoPerfectMatching, v)
			}
		}
	}

	return mate, nil
}

// MaxWeightMatching computes a maximum-weight matching of the graph with
// vertices 0..n-1. If maxCardinality is true, only maximum-cardinality
// matchings are considered and the heaviest of those is returned.
func MaxWeightMatching(n int, edges []Edge, maxCardinality bool) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative vertex count %d", ErrInvalidEdge, n)
	}
	wedges := make([]wedge, len(edges))
	for k, e := range edges {
		if e.U < 0 || e.V < 0 || e.U >= n || e.V >= n || e.U == e.V {
			return nil, fmt.Errorf("%w: (%d,%d) with %d vertices",
				ErrInvalidEdge, e.U, e.V, n)
		}
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return nil, fmt.Errorf("%w: (%d,%d) weight %v", ErrInvalidEdge,
				e.U, e.V, e.Weight)
		}
		wedges[k] = wedge{i: e.U, j: e.V, w: int64(math.Round(e.Weight * weightScale))}
	}

	mate := make([]int, n)
	for i := range mate {
		mate[i] = -1
	}
	if len(wedges) == 0 {
		return mate, nil
	}

	m := newMatcher(n, wedges, maxCardinality)
	m.solve()
	for v := 0; v < n; v++ {
		if m.mate[v] >= 0 {
			mate[v] = m.endpoint[m.mate[v]]
		}
	}

	return mate, nil
}

type wedge struct {
	i, j int
	w    int64
}

// matcher holds the state of one run. Vertices are 0..n-1, non-trivial
// blossoms are n..2n-1. Edge k has endpoints 2k (i side) and 2k+1 (j side);
// mate and labelend refer to endpoints rather than vertices.
type matcher struct {
	n              int
	edges          []wedge
	maxCardinality bool

	endpoint  []int
	neighbend [][]int

	mate             []int
	label            []int
	labelend         []int
	inblossom        []int
	blossomparent    []int
	blossomchilds    [][]int
	blossombase      []int
	blossomendps     [][]int
	bestedge         []int
	blossombestedges [][]int
	unusedblossoms   []int
	dualvar          []int64
	allowedge        []bool
	queue            []int
}

func newMatcher(n int, edges []wedge, maxCardinality bool) *matcher {
	m := &matcher{
		n:              n,
		edges:          edges,
		maxCardinality: maxCardinality,
	}

	var maxweight int64
	for _, e := range edges {
		if e.w > maxweight {
			maxweight = e.w
		}
	}

	m.endpoint = make([]int, 2*len(edges))
	m.neighbend = make([][]int, n)
	for k, e := range edges {
		m.endpoint[2*k] = e.i
		m.endpoint[2*k+1] = e.j
		m.neighbend[e.i] = append(m.neighbend[e.i], 2*k+1)
		m.neighbend[e.j] = append(m.neighbend[e.j], 2*k)
	}

	m.mate = filled(n, -1)
	m.label = make([]int, 2*n)
	m.labelend = filled(2*n, -1)
	m.inblossom = make([]int, n)
	for i := range m.inblossom {
		m.inblossom[i] = i
	}
	m.blossomparent = filled(2*n, -1)
	m.blossomchilds = make([][]int, 2*n)
	m.blossombase = filled(2*n, -1)
	for i := 0; i < n; i++ {
		m.blossombase[i] = i
	}
	m.blossomendps = make([][]int, 2*n)
	m.bestedge = filled(2*n, -1)
	m.blossombestedges = make([][]int, 2*n)
	for b := n; b < 2*n; b++ {
		m.unusedblossoms = append(m.unusedblossoms, b)
	}
	m.dualvar = make([]int64, 2*n)
	for i := 0; i < n; i++ {
		m.dualvar[i] = maxweight
	}
	m.allowedge = make([]bool, len(edges))

	return m
}

func filled(n, v int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// at indexes s the way a negative offset counts back from the end.
func at(s []int, i int) int {
	if i < 0 {
		return s[len(s)+i]
	}
	return s[i]
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func rotate(s []int, i int) []int {
	out := make([]int, 0, len(s))
	out = append(out, s[i:]...)
	return append(out, s[:i]...)
}

func (m *matcher) slack(k int) int64 {
	e := m.edges[k]
	return m.dualvar[e.i] + m.dualvar[e.j] - 2*e.w
}

func (m *matcher) leaves(b int, out []int) []int {
	if b < m.n {
		return append(out, b)
	}
	for _, t := range m.blossomchilds[b] {
		if t < m.n {
			out = append(out, t)
		} else {
			out = m.leaves(t, out)
		}
	}
	return out
}

// assignLabel labels the top-level blossom containing w with t (1=S, 2=T)
// reached through endpoint p.
func (m *matcher) assignLabel(w, t, p int) {
	b := m.inblossom[w]
	m.label[w], m.label[b] = t, t
	m.labelend[w], m.labelend[b] = p, p
	m.bestedge[w], m.bestedge[b] = -1, -1
	if t == 1 {
		m.queue = m.leaves(b, m.queue)
	} else if t == 2 {
		base := m.blossombase[b]
		m.assignLabel(m.endpoint[m.mate[base]], 1, m.mate[base]^1)
	}
}

// scanBlossom traces back from v and w to find either a new blossom (its
// base is returned) or an augmenting path (-1 is returned).
func (m *matcher) scanBlossom(v, w int) int {
	var path []int
	base := -1
	for v != -1 || w != -1 {
		b := m.inblossom[v]
		if m.label[b]&4 != 0 {
			base = m.blossombase[b]
			break
		}
		path = append(path, b)
		m.label[b] = 5
		if m.labelend[b] == -1 {
			v = -1
		} else {
			v = m.endpoint[m.labelend[b]]
			b = m.inblossom[v]
			v = m.endpoint[m.labelend[b]]
		}
		if w != -1 {
			v, w = w, v
		}
	}
	for _, b := range path {
		m.label[b] = 1
	}

	return base
}

func (m *matcher) addBlossom(base, k int) {
	v, w := m.edges[k].i, m.edges[k].j
	bb := m.inblossom[base]
	bv := m.inblossom[v]
	bw := m.inblossom[w]

	b := m.unusedblossoms[len(m.unusedblossoms)-1]
	m.unusedblossoms = m.unusedblossoms[:len(m.unusedblossoms)-1]
	m.blossombase[b] = base
	m.blossomparent[b] = -1
	m.blossomparent[bb] = b

	var path, endps []int
	for bv != bb {
		m.blossomparent[bv] = b
		path = append(path, bv)
		endps = append(endps, m.labelend[bv])
		v = m.endpoint[m.labelend[bv]]
		bv = m.inblossom[v]
	}
	path = append(path, bb)
	reverse(path)
	reverse(endps)
	endps = append(endps, 2*k)
	for bw != bb {
		m.blossomparent[bw] = b
		path = append(path, bw)
		endps = append(endps, m.labelend[bw]^1)
		w = m.endpoint[m.labelend[bw]]
		bw = m.inblossom[w]
	}
	m.blossomchilds[b] = path
	m.blossomendps[b] = endps

	m.label[b] = 1
	m.labelend[b] = m.labelend[bb]
	m.dualvar[b] = 0
	for _, lv := range m.leaves(b, nil) {
		if m.label[m.inblossom[lv]] == 2 {
			// former T-vertices become S-vertices inside the new blossom
			m.queue = append(m.queue, lv)
		}
		m.inblossom[lv] = b
	}

	bestedgeto := filled(2*m.n, -1)
	for _, bv := range path {
		var nblists [][]int
		if m.blossombestedges[bv] == nil {
			for _, lv := range m.leaves(bv, nil) {
				nb := make([]int, len(m.neighbend[lv]))
				for i, p := range m.neighbend[lv] {
					nb[i] = p / 2
				}
				nblists = append(nblists, nb)
			}
		} else {
			nblists = [][]int{m.blossombestedges[bv]}
		}
		for _, nblist := range nblists {
			for _, k := range nblist {
				j := m.edges[k].j
				if m.inblossom[j] == b {
					j = m.edges[k].i
				}
				bj := m.inblossom[j]
				if bj != b && m.label[bj] == 1 &&
					(bestedgeto[bj] == -1 || m.slack(k) < m.slack(bestedgeto[bj])) {
					bestedgeto[bj] = k
				}
			}
		}
		m.blossombestedges[bv] = nil
		m.bestedge[bv] = -1
	}

	best := make([]int, 0)
	for _, k := range bestedgeto {
		if k != -1 {
			best = append(best, k)
		}
	}
	m.blossombestedges[b] = best
	m.bestedge[b] = -1
	for _, k := range best {
		if m.bestedge[b] == -1 || m.slack(k) < m.slack(m.bestedge[b]) {
			m.bestedge[b] = k
		}
	}
}

func (m *matcher) expandBlossom(b int, endstage bool) {
	for _, s := range m.blossomchilds[b] {
		m.blossomparent[s] = -1
		if s < m.n {
			m.inblossom[s] = s
		} else if endstage && m.dualvar[s] == 0 {
			m.expandBlossom(s, endstage)
		} else {
			for _, v := range m.leaves(s, nil) {
				m.inblossom[v] = s
			}
		}
	}

	if !endstage && m.label[b] == 2 {
		// relabel the sub-blossoms on the even path from the entry child
		// back to the base
		childs := m.blossomchilds[b]
		endps := m.blossomendps[b]
		entrychild := m.inblossom[m.endpoint[m.labelend[b]^1]]
		j := indexOf(childs, entrychild)
		var jstep, endptrick int
		if j&1 != 0 {
			j -= len(childs)
			jstep = 1
			endptrick = 0
		} else {
			jstep = -1
			endptrick = 1
		}
		p := m.labelend[b]
		for j != 0 {
			m.label[m.endpoint[p^1]] = 0
			m.label[m.endpoint[at(endps, j-endptrick)^endptrick^1]] = 0
			m.assignLabel(m.endpoint[p^1], 2, p)
			m.allowedge[at(endps, j-endptrick)/2] = true
			j += jstep
			p = at(endps, j-endptrick) ^ endptrick
			m.allowedge[p/2] = true
			j += jstep
		}
		bv := at(childs, j)
		m.label[m.endpoint[p^1]] = 2
		m.label[bv] = 2
		m.labelend[m.endpoint[p^1]] = p
		m.labelend[bv] = p
		m.bestedge[bv] = -1
		j += jstep
		for at(childs, j) != entrychild {
			bv = at(childs, j)
			if m.label[bv] == 1 {
				j += jstep
				continue
			}
			v, found := 0, false
			for _, lv := range m.leaves(bv, nil) {
				if m.label[lv] != 0 {
					v, found = lv, true
					break
				}
			}
			if found {
				m.label[v] = 0
				m.label[m.endpoint[m.mate[m.blossombase[bv]]]] = 0
				m.assignLabel(v, 2, m.labelend[v])
			}
			j += jstep
		}
	}

	m.label[b] = -1
	m.labelend[b] = -1
	m.blossomchilds[b] = nil
	m.blossomendps[b] = nil
	m.blossombase[b] = -1
	m.blossombestedges[b] = nil
	m.bestedge[b] = -1
	m.unusedblossoms = append(m.unusedblossoms, b)
}

// augmentBlossom swaps matched/unmatched edges along the even path inside b
// from vertex v to the base, making v the new base.
func (m *matcher) augmentBlossom(b, v int) {
	t := v
	for m.blossomparent[t] != b {
		t = m.blossomparent[t]
	}
	if t >= m.n {
		m.augmentBlossom(t, v)
	}
	childs := m.blossomchilds[b]
	endps := m.blossomendps[b]
	i := indexOf(childs, t)
	j := i
	var jstep, endptrick int
	if i&1 != 0 {
		j -= len(childs)
		jstep = 1
		endptrick = 0
	} else {
		jstep = -1
		endptrick = 1
	}
	for j != 0 {
		j += jstep
		t = at(childs, j)
		p := at(endps, j-endptrick) ^ endptrick
		if t >= m.n {
			m.augmentBlossom(t, m.endpoint[p])
		}
		j += jstep
		t = at(childs, j)
		if t >= m.n {
			m.augmentBlossom(t, m.endpoint[p^1])
		}
		m.mate[m.endpoint[p]] = p ^ 1
		m.mate[m.endpoint[p^1]] = p
	}
	m.blossomchilds[b] = rotate(childs, i)
	m.blossomendps[b] = rotate(endps, i)
	m.blossombase[b] = m.blossombase[m.blossomchilds[b][0]]
}

func (m *matcher) augmentMatching(k int) {
	v, w := m.edges[k].i, m.edges[k].j
	for _, sp := range [2][2]int{{v, 2*k + 1}, {w, 2 * k}} {
		s, p := sp[0], sp[1]
		for {
			bs := m.inblossom[s]
			if bs >= m.n {
				m.augmentBlossom(bs, s)
			}
			m.mate[s] = p
			if m.labelend[bs] == -1 {
				// reached a single free vertex
				break
			}
			t := m.endpoint[m.labelend[bs]]
			bt := m.inblossom[t]
			s = m.endpoint[m.labelend[bt]]
			j := m.endpoint[m.labelend[bt]^1]
			if bt >= m.n {
				m.augmentBlossom(bt, j)
			}
			m.mate[j] = m.labelend[bt]
			p = m.labelend[bt] ^ 1
		}
	}
}

const (
	deltaNone = iota
	deltaVertexDual
	deltaFreeEdge
	deltaSSEdge
	deltaTBlossom
)

func (m *matcher) solve() {
	n := m.n
	for stage := 0; stage < n; stage++ {
		for i := range m.label {
			m.label[i] = 0
			m.bestedge[i] = -1
		}
		for b := n; b < 2*n; b++ {
			m.blossombestedges[b] = nil
		}
		for k := range m.allowedge {
			m.allowedge[k] = false
		}
		m.queue = m.queue[:0]

		for v := 0; v < n; v++ {
			if m.mate[v] == -1 && m.label[m.inblossom[v]] == 0 {
				m.assignLabel(v, 1, -1)
			}
		}

		augmented := false
		for {
			for len(m.queue) > 0 && !augmented {
				v := m.queue[len(m.queue)-1]
				m.queue = m.queue[:len(m.queue)-1]

				for _, p := range m.neighbend[v] {
					k := p / 2
					w := m.endpoint[p]
					if m.inblossom[v] == m.inblossom[w] {
						continue
					}
					var kslack int64
					if !m.allowedge[k] {
						kslack = m.slack(k)
						if kslack <= 0 {
							m.allowedge[k] = true
						}
					}
					if m.allowedge[k] {
						if m.label[m.inblossom[w]] == 0 {
							m.assignLabel(w, 2, p^1)
						} else if m.label[m.inblossom[w]] == 1 {
							base := m.scanBlossom(v, w)
							if base >= 0 {
								m.addBlossom(base, k)
							} else {
								m.augmentMatching(k)
								augmented = true
								break
							}
						} else if m.label[w] == 0 {
							m.label[w] = 2
							m.labelend[w] = p ^ 1
						}
					} else if m.label[m.inblossom[w]] == 1 {
						b := m.inblossom[v]
						if m.bestedge[b] == -1 || kslack < m.slack(m.bestedge[b]) {
							m.bestedge[b] = k
						}
					} else if m.label[w] == 0 {
						if m.bestedge[w] == -1 || kslack < m.slack(m.bestedge[w]) {
							m.bestedge[w] = k
						}
					}
				}
			}
			if augmented {
				break
			}

			deltatype := deltaNone
			var delta int64
			deltaedge, deltablossom := -1, -1

			if !m.maxCardinality {
				deltatype = deltaVertexDual
				delta = m.minVertexDual()
			}
			for v := 0; v < n; v++ {
				if m.label[m.inblossom[v]] == 0 && m.bestedge[v] != -1 {
					d := m.slack(m.bestedge[v])
					if deltatype == deltaNone || d < delta {
						delta = d
						deltatype = deltaFreeEdge
						deltaedge = m.bestedge[v]
					}
				}
			}
			for b := 0; b < 2*n; b++ {
				if m.blossomparent[b] == -1 && m.label[b] == 1 && m.bestedge[b] != -1 {
					d := m.slack(m.bestedge[b]) / 2
					if deltatype == deltaNone || d < delta {
						delta = d
						deltatype = deltaSSEdge
						deltaedge = m.bestedge[b]
					}
				}
			}
			for b := n; b < 2*n; b++ {
				if m.blossombase[b] >= 0 && m.blossomparent[b] == -1 &&
					m.label[b] == 2 &&
					(deltatype == deltaNone || m.dualvar[b] < delta) {
					delta = m.dualvar[b]
					deltatype = deltaTBlossom
					deltablossom = b
				}
			}
			if deltatype == deltaNone {
				// no further improvement possible; max-cardinality
				// optimum reached, finish with a vertex dual step
				deltatype = deltaVertexDual
				delta = m.minVertexDual()
				if delta < 0 {
					delta = 0
				}
			}

			for v := 0; v < n; v++ {
				switch m.label[m.inblossom[v]] {
				case 1:
					m.dualvar[v] -= delta
				case 2:
					m.dualvar[v] += delta
				}
			}
			for b := n; b < 2*n; b++ {
				if m.blossombase[b] >= 0 && m.blossomparent[b] == -1 {
					switch m.label[b] {
					case 1:
						m.dualvar[b] += delta
					case 2:
						m.dualvar[b] -= delta
					}
				}
			}

			if deltatype == deltaVertexDual {
				break
			} else if deltatype == deltaFreeEdge {
				m.allowedge[deltaedge] = true
				i := m.edges[deltaedge].i
				if m.label[m.inblossom[i]] == 0 {
					i = m.edges[deltaedge].j
				}
				m.queue = append(m.queue, i)
			} else if deltatype == deltaSSEdge {
				m.allowedge[deltaedge] = true
				m.queue = append(m.queue, m.edges[deltaedge].i)
			} else if deltatype == deltaTBlossom {
				m.expandBlossom(deltablossom, false)
			}
		}

		if !augmented {
			break
		}

		for b := n; b < 2*n; b++ {
			if m.blossomparent[b] == -1 && m.blossombase[b] >= 0 &&
				m.label[b] == 1 && m.dualvar[b] == 0 {
				m.expandBlossom(b, true)
			}
		}
	}
}

func (m *matcher) minVertexDual() int64 {
	lowest := m.dualvar[0]
	for v := 1; v < m.n; v++ {
		if m.dualvar[v] < lowest {
			lowest = m.dualvar[v]
		}
	}
	return lowest
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
