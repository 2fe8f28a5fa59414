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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// seqdiff.Option.
package config

import "time"

// Algorithm selects the backend that computes the raw matches.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Algorithm
type Algorithm int

const (
	// Myers finds a minimal edit script using the linear space variant of Myers' algorithm.
	Myers Algorithm = iota

	// Patience anchors the diff on elements that occur exactly once in both inputs and diffs the
	// gaps in between. The result is not necessarily minimal, but often easier to read.
	Patience

	// LCS computes a longest common subsequence with dynamic programming. Large inputs fall back
	// to Myers.
	LCS
)

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// Context is the number of matches to include as a prefix and postfix for hunks returned.
	Context int

	// Backend used to compute the matches.
	Algorithm Algorithm

	// If non-zero, the Myers backend stops searching for a minimal diff once the deadline has
	// passed and finishes with a valid, but possibly non-minimal, result.
	Deadline time.Time
}

// Default is the default configuration.
var Default = Config{
	Context:   3,
	Algorithm: Myers,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	Context Flag = 1 << iota
	Algo
	Deadline
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	switch cfg.Algorithm {
	case Myers, Patience, LCS:
	default:
		panic("unknown algorithm: " + cfg.Algorithm.String())
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Context:
		return "seqdiff.Context"
	case Algo:
		return "seqdiff.UseAlgorithm"
	case Deadline:
		return "seqdiff.Deadline"
	default:
		panic("never reached")
	}
}
