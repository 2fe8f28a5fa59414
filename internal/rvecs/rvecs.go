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

// Package rvecs contains functions to work with the result vectors, the internal representation
// that's used by the diff backends and is then translated to a user facing API.
//
// The result vectors rx and ry have one entry per element of x and y plus a border element that
// is always false. rx[s] is true if x[s] is deleted and ry[t] is true if y[t] is inserted. Every
// element that's not marked is matched with the corresponding unmarked element on the other side,
// in order. The representation is independent of the order in which a backend resolves the
// sub-problems, which makes it easy to split a problem into independent pieces.
package rvecs

import "iter"

// Make allocates result vectors for x and y with a single allocation.
func Make[T any](x, y []T) (rx, ry []bool) {
	r := make([]bool, (len(x) + len(y) + 2))
	rx = r[: len(x)+1 : len(x)+1]
	ry = r[len(x)+1:]
	return
}

// Block is a maximal run of matches: x[S+i] matches y[T+i] for i in [0, N).
type Block struct {
	S, T int // Start in x and y.
	N    int // Number of matches, always > 0.
}

// Blocks returns the match blocks described by rx and ry in increasing order.
func Blocks(rx, ry []bool) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		n, m := len(rx)-1, len(ry)-1
		for s, t := 0, 0; s < n || t < m; {
			for s < n && rx[s] {
				s++
			}
			for t < m && ry[t] {
				t++
			}
			s0, t0 := s, t
			for s < n && t < m && !rx[s] && !ry[t] {
				s++
				t++
			}
			if s == s0 {
				// Only possible at the end of both inputs, anything else means that an unmarked
				// element has no partner on the other side.
				if s < n || t < m {
					panic("result vectors out of sync")
				}
				break
			}
			if !yield(Block{s0, t0, s - s0}) {
				return
			}
		}
	}
}

// Matches returns the total number of matched elements in rx and ry.
func Matches(rx []bool) int {
	n := 0
	for _, del := range rx[:len(rx)-1] {
		if !del {
			n++
		}
	}
	return n
}
