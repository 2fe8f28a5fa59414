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

// Package seqdiff compares two slices and describes their differences as operations, hunks, and a
// similarity ratio.
//
// The main function is [Compare], which returns a [Result] with the canonical list of operations.
// Every operation covers a contiguous range in both inputs and the ranges of all operations
// concatenate to the inputs without gaps or overlaps. [Result.Hunks] groups the operations into
// regions of changes with some surrounding context and [Result.Ratio] measures the similarity of
// the inputs. [CloseMatches] ranks candidates by their similarity to a target.
//
// Three algorithms are available, see [UseAlgorithm]:
//
//   - [Myers] finds a minimal diff in O((N+M)D) time and O(N+M) space, where N and M are the
//     lengths of the inputs and D is the number of deletions and insertions. Among all minimal
//     diffs it prefers deletions before insertions. This is the default.
//   - [Patience] anchors the diff on elements that appear exactly once in both inputs. The result
//     isn't necessarily minimal, but easier to read for inputs with many repeated elements.
//   - [LCS] uses dynamic programming in O(NM) time and space and falls back to [Myers] for large
//     inputs.
//
// All algorithms strip the common prefix and suffix first and remove all elements that appear only
// in one of the inputs. For typical inputs with few changes this reduces the problem size
// dramatically.
//
// A [Deadline] or [Timeout] bounds the time spent searching for a diff. Once the deadline passes,
// the unresolved parts of the inputs are reported as deletions followed by insertions and
// [Result.Optimal] is false. The result is always a valid diff.
//
// The package doesn't tokenize or render anything: Splitting text into lines or words and printing
// the result is left to the caller.
package seqdiff
