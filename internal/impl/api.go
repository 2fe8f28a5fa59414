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

// Package impl contains the diff backends and the preprocessing they share.
//
// All backends operate on integer IDs instead of the caller's elements. The IDs are assigned by
// hashing every element and confirming every hash match with the real equality function, so the
// backends can compare IDs with == without ever reporting unequal elements as a match.
//
// The result of every backend is a pair of result vectors, see package rvecs.
package impl

import (
	"fmt"
	"hash/maphash"

	"znkr.io/seqdiff/internal/config"
	"znkr.io/seqdiff/internal/rvecs"
)

// Diff compares the contents of x and y and returns the changes necessary to convert from one to
// the other.
//
// The optimal result is false if the configured deadline expired before the backend was done and
// some of the changes have been approximated.
func Diff[T comparable](x, y []T, cfg config.Config) (rx, ry []bool, optimal bool) {
	seed := maphash.MakeSeed()
	hash := func(e T) uint64 { return maphash.Comparable(seed, e) }
	eq := func(a, b T) bool { return a == b }
	return DiffFunc(x, y, hash, eq, cfg)
}

// DiffFunc compares the contents of x and y and returns the changes necessary to convert from one
// to the other.
//
// Elements with equal hash values are only considered equal if eq confirms it. However, elements
// that are equal according to eq must have the same hash value.
func DiffFunc[T any](x, y []T, hash func(T) uint64, eq func(a, b T) bool, cfg config.Config) (rx, ry []bool, optimal bool) {
	rx, ry = rvecs.Make(x, y)

	smin, smax, tmin, tmax := findChangeBounds(x, y, eq)
	if handleTrivialBounds(rx, ry, smin, smax, tmin, tmax) {
		return rx, ry, true
	}

	// Preprocess x and y to reduce the problem size and to work with integer IDs instead of Ts.
	x0, y0, xidx, yidx, nids := preprocess(rx, ry, smin, smax, tmin, tmax, x, y, hash, eq)

	var m myers
	m.xidx, m.yidx = xidx, yidx
	m.rx, m.ry = rx, ry
	m.setDeadline(cfg.Deadline)
	smin0, smax0, tmin0, tmax0 := m.init(x0, y0)

	switch cfg.Algorithm {
	case config.Myers:
		m.compare(smin0, smax0, tmin0, tmax0)

	case config.Patience:
		p := newPatience(&m, nids)
		p.compare(smin0, smax0, tmin0, tmax0)

	case config.LCS:
		diffLCS(&m, smin0, smax0, tmin0, tmax0)

	default:
		panic(fmt.Sprintf("unknown algorithm: %v", cfg.Algorithm))
	}

	return rx, ry, !m.expired
}

// findChangeBounds returns the upper and lower bounds for the changed portion of the inputs.
func findChangeBounds[T any](x, y []T, eq func(a, b T) bool) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = len(x), len(y)

	// Strip common prefix.
	for smin < smax && tmin < tmax && eq(x[smin], y[tmin]) {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && eq(x[smax-1], y[tmax-1]) {
		smax--
		tmax--
	}

	return
}

// handleTrivialBounds handles trivial bounds. It returns true if the bounds are trivial.
func handleTrivialBounds(rx, ry []bool, smin, smax, tmin, tmax int) bool {
	switch {
	case smin != smax && tmin == tmax:
		for s := smin; s < smax; s++ {
			rx[s] = true
		}
		return true
	case smin == smax && tmin != tmax:
		for t := tmin; t < tmax; t++ {
			ry[t] = true
		}
		return true
	case smin == smax && tmin == tmax:
		return true
	default:
		return false
	}
}

// preprocess performs an important optimization that significantly reduces the problem size and
// time complexity.
//
// Assign an ID to every element in x[smin:smax] and look up every element of y[tmin:tmax]. IDs
// are verified with eq, see interner. This allows us to run the backends on integers instead of
// T and provides a dense ID space that makes it possible to use slices instead of maps for
// bookkeeping in the backends.
//
// Drop all elements that only appear in x or y. These are always deletions and insertions
// respectively. This optimization dramatically reduces the time it takes to compute very large
// diffs, because in practice those diffs will have many elements unique to x or y. It doesn't
// change the length of the longest common subsequence, so minimal diffs stay minimal.
//
// The results are the following slices:
//   - x0:   x[smin:smax] as IDs except for elements that appear only in x
//   - y0:   y[tmin:tmax] as IDs except for elements that appear only in y
//   - xidx: A mapping from x0 to x: x0[s] corresponds to x[xidx[s]]
//   - yidx: A mapping from y0 to y: y0[t] corresponds to y[yidx[t]]
//   - nids: The number of IDs, all IDs are in [0, nids).
func preprocess[T any](rx, ry []bool, smin, smax, tmin, tmax int, x, y []T, hash func(T) uint64, eq func(a, b T) bool) (x0, y0, xidx, yidx []int, nids int) {
	in := newInterner(x, hash, eq, smax-smin)
	buf := make([]int, 2*(smax-smin)+2*(tmax-tmin))
	x0, buf = buf[:0:smax-smin], buf[smax-smin:]
	xidx, buf = buf[:0:smax-smin], buf[smax-smin:]
	y0, buf = buf[:0:tmax-tmin], buf[tmax-tmin:]
	yidx, buf = buf[:0:tmax-tmin], buf[tmax-tmin:]
	if len(buf) != 0 && cap(buf) != 0 {
		panic("something went wrong during buffer assignments")
	}

	// Step 1: Create an ID for every element in x[smin:smax].
	for s := smin; s < smax; s++ {
		id, _ := in.intern(s)
		x0 = append(x0, id)
	}
	nids = in.size()

	// Step 2: Do the same for y, but ignore everything that's not in x, except for marking these
	// elements as insertions.
	inY := make([]bool, nids)
	for t := tmin; t < tmax; t++ {
		id, ok := in.lookup(y[t])
		if !ok {
			// Not in x, this is always an insertion.
			ry[t] = true
			continue
		}
		inY[id] = true
		yidx = append(yidx, t)
		y0 = append(y0, id)
	}

	// Step 3: Filter out elements from x0 that are not in y.
	i := 0
	for j, id := range x0 {
		if inY[id] {
			xidx = append(xidx, j+smin)
			x0[i] = id
			i++
		} else {
			rx[j+smin] = true // always a deletion
		}
	}
	x0 = x0[:i]
	return
}
