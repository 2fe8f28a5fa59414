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

package seqdiff

import (
	"errors"
	"fmt"
	"sort"

	"znkr.io/seqdiff/internal/config"
	"znkr.io/seqdiff/internal/impl"
	"znkr.io/seqdiff/internal/rvecs"
)

// ErrInvalidConfig is returned if a function is called with invalid arguments.
var ErrInvalidConfig = errors.New("invalid configuration")

// Ratio returns the similarity of r's inputs as a number in [0, 1].
//
// The ratio is 2*M/(n+m) where M is the number of matching elements and n and m are the lengths of
// the inputs. It's 1 if both inputs are empty.
func (r Result) Ratio() float64 {
	return ratio(r.Matched(), r.OldLen+r.NewLen)
}

func ratio(matches, total int) float64 {
	if total == 0 {
		return 1
	}
	return 2 * float64(matches) / float64(total)
}

// Ratio compares the contents of x and y and returns their similarity as a number in [0, 1], see
// [Result.Ratio].
//
// With [Myers] and [LCS], Ratio(x, y) == Ratio(y, x), because both find a longest common
// subsequence. This isn't guaranteed for [Patience] or if the deadline expired.
//
// The following options are supported: [seqdiff.UseAlgorithm], [seqdiff.Deadline],
// [seqdiff.Timeout]
func Ratio[T comparable](x, y []T, opts ...Option) float64 {
	return Compare(x, y, opts...).Ratio()
}

// RealQuickRatio returns an upper bound on [Ratio] that only depends on the lengths of x and y.
func RealQuickRatio[T any](x, y []T) float64 {
	return ratio(min(len(x), len(y)), len(x)+len(y))
}

// QuickRatio returns an upper bound on [Ratio] that ignores the order of elements. It's more
// expensive to compute than [RealQuickRatio], but much cheaper than [Ratio].
func QuickRatio[T comparable](x, y []T) float64 {
	return newQuickRatio(x).ratio(y)
}

// quickRatio computes QuickRatio for a fixed x and many y.
type quickRatio[T comparable] struct {
	n      int
	counts map[T]int // number of occurrences of every element in x
	avail  map[T]int // scratch space
}

func newQuickRatio[T comparable](x []T) *quickRatio[T] {
	counts := make(map[T]int, len(x))
	for _, e := range x {
		counts[e]++
	}
	return &quickRatio[T]{
		n:      len(x),
		counts: counts,
		avail:  make(map[T]int, len(counts)),
	}
}

func (q *quickRatio[T]) ratio(y []T) float64 {
	clear(q.avail)
	matches := 0
	for _, e := range y {
		n, ok := q.avail[e]
		if !ok {
			n = q.counts[e]
		}
		q.avail[e] = n - 1
		if n > 0 {
			matches++
		}
	}
	return ratio(matches, q.n+len(y))
}

// CloseMatches returns up to n candidates whose ratio to target is at least cutoff. The result is
// ordered by decreasing ratio, candidates with the same ratio keep their relative order.
//
// It returns an error wrapping [ErrInvalidConfig] if n < 1 or cutoff isn't in [0, 1].
//
// The following options are supported: [seqdiff.UseAlgorithm], [seqdiff.Deadline],
// [seqdiff.Timeout]. A deadline applies to the ranking as a whole.
func CloseMatches[S ~[]E, E comparable](target S, candidates []S, n int, cutoff float64, opts ...Option) ([]S, error) {
	idx, err := closeMatches([]E(target), len(candidates), func(i int) []E { return []E(candidates[i]) }, n, cutoff, opts)
	if err != nil {
		return nil, err
	}
	out := make([]S, len(idx))
	for i, j := range idx {
		out[i] = candidates[j]
	}
	return out, nil
}

// CloseStrings is like [CloseMatches], but compares strings rune by rune.
func CloseStrings(target string, candidates []string, n int, cutoff float64, opts ...Option) ([]string, error) {
	idx, err := closeMatches([]rune(target), len(candidates), func(i int) []rune { return []rune(candidates[i]) }, n, cutoff, opts)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = candidates[j]
	}
	return out, nil
}

// closeMatches returns the indices of the best matching candidates.
func closeMatches[E comparable](target []E, ncandidates int, candidate func(int) []E, n int, cutoff float64, opts []Option) ([]int, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n must be at least 1, got %d", ErrInvalidConfig, n)
	}
	if !(cutoff >= 0 && cutoff <= 1) {
		return nil, fmt.Errorf("%w: cutoff must be in [0, 1], got %v", ErrInvalidConfig, cutoff)
	}
	cfg := config.FromOptions(opts, config.Algo|config.Deadline)

	type match struct {
		index int
		ratio float64
	}
	var matches []match
	quick := newQuickRatio(target)
	for i := range ncandidates {
		c := candidate(i)
		// Skip candidates that can't reach the cutoff, starting with the cheapest upper bound.
		if RealQuickRatio(target, c) < cutoff || quick.ratio(c) < cutoff {
			continue
		}
		rx, _, _ := impl.Diff(target, c, cfg)
		if r := ratio(rvecs.Matches(rx), len(target)+len(c)); r >= cutoff {
			matches = append(matches, match{i, r})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].ratio > matches[j].ratio
	})
	matches = matches[:min(n, len(matches))]

	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.index
	}
	return out, nil
}
