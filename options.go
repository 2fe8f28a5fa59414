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
	"time"

	"znkr.io/seqdiff/internal/config"
)

// Option configures the behavior of comparison functions.
type Option = config.Option

// Algorithm selects the algorithm used to compute a diff.
type Algorithm = config.Algorithm

const (
	// Myers computes a minimal diff, i.e., a diff with the fewest possible deletions and
	// insertions. Whenever there are multiple minimal diffs, deletions are placed before
	// insertions. This is the default.
	Myers = config.Myers

	// Patience anchors the diff on elements that occur exactly once in both inputs. The result is
	// not necessarily minimal, but it's often easier to read for inputs with many repeated
	// elements, e.g., lines of source code with lots of braces.
	Patience = config.Patience

	// LCS computes a longest common subsequence using dynamic programming. It's mainly useful as a
	// reference, large inputs are compared using [Myers] instead.
	LCS = config.LCS
)

// Context sets the number of matches to include as a prefix and postfix for hunks returned by
// [Hunks]. The default is 3, negative values are treated as 0.
func Context(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Context = max(0, n)
		return config.Context
	}
}

// UseAlgorithm selects the diff algorithm. The default is [Myers].
func UseAlgorithm(algo Algorithm) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Algorithm = algo
		return config.Algo
	}
}

// Deadline limits the time spent on searching for a diff. Once the deadline has passed, the
// remaining differences are reported as a deletion followed by an insertion. The result is still
// a valid diff, but it's not necessarily minimal anymore; see [Result.Optimal].
func Deadline(deadline time.Time) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Deadline = deadline
		return config.Deadline
	}
}

// Timeout is like [Deadline], but the deadline is relative to the start of the comparison.
func Timeout(d time.Duration) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Deadline = time.Now().Add(d)
		return config.Deadline
	}
}
