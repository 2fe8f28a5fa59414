// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package impl

import "sort"

// patience implements the patience diff algorithm.
//
// The algorithm anchors the diff on elements that appear exactly once in both inputs: These are
// provably 1:1 correspondences. The longest increasing subsequence of these anchors (ordered by
// their position in x, increasing in their position in y) is used as the skeleton of the diff. The
// gaps between the anchors are diffed independently, again using patience, until a gap has no
// anchors left. Such gaps are delegated to Myers' algorithm.
//
// The gaps are processed with an explicit work list instead of recursion to bound the stack usage
// for inputs with many small gaps.
type patience struct {
	m *myers

	// Scratch space indexed by ID, all zero between two calls to anchors.
	counts []int // 0, 1, 2 (many) occurrences in x plus 0, 4, 8 (many) occurrences in y
	tpos   []int // position in y of an ID that appears exactly once in y

	work []span
}

type span struct{ smin, smax, tmin, tmax int }

type pair struct{ s, t int }

func newPatience(m *myers, nids int) *patience {
	buf := make([]int, 2*nids)
	return &patience{
		m:      m,
		counts: buf[:nids:nids],
		tpos:   buf[nids:],
	}
}

// compare finds a patience diff from (smin, tmin) to (smax, tmax).
func (p *patience) compare(smin, smax, tmin, tmax int) {
	x, y := p.m.x, p.m.y
	p.work = append(p.work[:0], span{smin, smax, tmin, tmax})
	for len(p.work) > 0 {
		r := p.work[len(p.work)-1]
		p.work = p.work[:len(p.work)-1]

		// Strip common prefix and suffix. This also extends the anchors of the parent span to
		// cover all adjacent matches.
		for r.smin < r.smax && r.tmin < r.tmax && x[r.smin] == y[r.tmin] {
			r.smin++
			r.tmin++
		}
		for r.smax > r.smin && r.tmax > r.tmin && x[r.smax-1] == y[r.tmax-1] {
			r.smax--
			r.tmax--
		}

		if r.smin == r.smax || r.tmin == r.tmax || p.m.exceeded() {
			p.m.giveUp(r.smin, r.smax, r.tmin, r.tmax)
			continue
		}

		anchors := p.anchors(r)
		if len(anchors) == 0 {
			p.m.compare(r.smin, r.smax, r.tmin, r.tmax)
			continue
		}

		// Push the gaps in reverse order, so that they are processed from the start to the end.
		// The order doesn't matter for the result, but it makes the processing easier to follow.
		end := pair{r.smax, r.tmax}
		for i := len(anchors) - 1; i >= 0; i-- {
			a := anchors[i]
			if gap := (span{a.s + 1, end.s, a.t + 1, end.t}); gap.smin < gap.smax || gap.tmin < gap.tmax {
				p.work = append(p.work, gap)
			}
			end = a
		}
		if gap := (span{r.smin, end.s, r.tmin, end.t}); gap.smin < gap.smax || gap.tmin < gap.tmax {
			p.work = append(p.work, gap)
		}
	}
}

// anchors returns the longest increasing subsequence of elements that appear exactly once in
// both x[smin:smax] and y[tmin:tmax].
//
// The longest increasing subsequence algorithm is as described in Thomas G. Szymanski, “A Special
// Case of the Maximal Common Subsequence Problem,” Princeton TR #170 (January 1975), available at
// https://research.swtch.com/tgs170.pdf.
func (p *patience) anchors(r span) []pair {
	x, y := p.m.x, p.m.y
	counts, tpos := p.counts, p.tpos

	// Count the number of occurrences as 0, 1, many for both x and y. Using 0, 1, 2 for counts of
	// elements in x and 0, 4, 8 for counts of elements in y. With that, a count of 1+4 means the
	// element is an anchor.
	for _, e := range x[r.smin:r.smax] {
		if c := counts[e]; c&3 < 2 {
			counts[e] = c + 1
		}
	}
	for i, e := range y[r.tmin:r.tmax] {
		if c := counts[e]; c>>2 < 2 {
			counts[e] = c + 4
			tpos[e] = r.tmin + i
		}
	}

	// Gather the anchors in the order of x and remember their positions in y:
	//	xi[i] = increasing indexes of anchors in x.
	//	J[i] = index in y of the anchor x[xi[i]].
	var xi, J []int
	for i, e := range x[r.smin:r.smax] {
		if counts[e] == 1+4 {
			xi = append(xi, r.smin+i)
			J = append(J, tpos[e])
		}
	}

	// Reset the scratch space for the next call.
	for _, e := range x[r.smin:r.smax] {
		counts[e] = 0
	}
	for _, e := range y[r.tmin:r.tmax] {
		counts[e] = 0
	}

	n := len(xi)
	if n == 0 {
		return nil
	}

	// Apply Algorithm A from Szymanski's paper. T[k] is the smallest y-position that ends an
	// increasing subsequence of length k+1, L[i] is the length of the longest increasing
	// subsequence ending in anchor i.
	T := make([]int, 0, n)
	L := make([]int, n)
	for i := range n {
		k := sort.Search(len(T), func(k int) bool {
			return T[k] >= J[i]
		})
		if k == len(T) {
			T = append(T, J[i])
		} else {
			T[k] = J[i]
		}
		L[i] = k + 1
	}

	// Walk backwards to pick one subsequence. The last anchor with L[i] == k and a y-position
	// below the previously picked one always exists.
	k := len(T)
	anchors := make([]pair, k)
	lastj := r.tmax
	for i := n - 1; i >= 0 && k > 0; i-- {
		if L[i] == k && J[i] < lastj {
			k--
			anchors[k] = pair{xi[i], J[i]}
			lastj = J[i]
		}
	}
	return anchors
}
