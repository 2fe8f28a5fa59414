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
	"slices"

	"znkr.io/seqdiff/internal/config"
	"znkr.io/seqdiff/internal/impl"
)

// Hunk describes a contiguous region of changes together with the matching elements around it.
type Hunk struct {
	OldStart, OldEnd int  // Range in x.
	NewStart, NewEnd int  // Range in y.
	Ops              []Op // Operations to transform x[OldStart:OldEnd] to y[NewStart:NewEnd].
}

// OldLen returns the number of elements of x covered by the hunk.
func (h Hunk) OldLen() int { return h.OldEnd - h.OldStart }

// NewLen returns the number of elements of y covered by the hunk.
func (h Hunk) NewLen() int { return h.NewEnd - h.NewStart }

// Hunks groups the operations of r into hunks.
//
// Every hunk starts and ends with up to context matching elements. If two changes are separated by
// at most 2*context matching elements, they are part of the same hunk. Negative values of context
// are treated as 0.
//
// If there are no changes, the output has length zero.
func (r Result) Hunks(context int) []Hunk {
	context = max(0, context)
	ops := r.Ops

	var out []Hunk
	start := -1 // index of the first change of the open hunk, -1 if there's none
	var cur []Op
	for i, op := range ops {
		switch {
		case op.Tag != Equal:
			if start < 0 {
				start = i
				// Leading context. Operations alternate between Equal and changes, so the
				// previous one is always an Equal.
				if i > 0 {
					prev := ops[i-1]
					if n := min(context, prev.OldLen()); n > 0 {
						cur = append(cur, Op{
							Tag:      Equal,
							OldStart: prev.OldEnd - n,
							OldEnd:   prev.OldEnd,
							NewStart: prev.NewEnd - n,
							NewEnd:   prev.NewEnd,
						})
					}
				}
			}
			cur = append(cur, op)
		case start < 0:
			// Unchanged region before the first change or between two hunks.
		case i < len(ops)-1 && op.OldLen() <= 2*context:
			// The context windows of the changes before and after overlap.
			cur = append(cur, op)
		default:
			// Trailing context.
			if n := min(context, op.OldLen()); n > 0 {
				cur = append(cur, Op{
					Tag:      Equal,
					OldStart: op.OldStart,
					OldEnd:   op.OldStart + n,
					NewStart: op.NewStart,
					NewEnd:   op.NewStart + n,
				})
			}
			out = append(out, newHunk(cur))
			cur = cur[len(cur):]
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, newHunk(cur))
	}
	return out
}

func newHunk(ops []Op) Hunk {
	first, last := ops[0], ops[len(ops)-1]
	return Hunk{
		OldStart: first.OldStart,
		OldEnd:   last.OldEnd,
		NewStart: first.NewStart,
		NewEnd:   last.NewEnd,
		Ops:      slices.Clip(ops),
	}
}

// Hunks compares the contents of x and y and returns the changes necessary to convert from one to
// the other.
//
// The output is a sequence of hunks. A hunk represents a contiguous block of changes along with
// some surrounding context. The amount of context can be configured using [Context].
//
// If x and y are identical, the output has length zero.
//
// The following options are supported: [seqdiff.Context], [seqdiff.UseAlgorithm],
// [seqdiff.Deadline], [seqdiff.Timeout]
func Hunks[T comparable](x, y []T, opts ...Option) []Hunk {
	cfg := config.FromOptions(opts, config.Context|config.Algo|config.Deadline)
	rx, ry, optimal := impl.Diff(x, y, cfg)
	return newResult(rx, ry, cfg, optimal).Hunks(cfg.Context)
}

// HunksFunc compares the contents of x and y using the provided hash and equality functions and
// returns the changes necessary to convert from one to the other grouped into hunks. See
// [CompareFunc] for the requirements on hash and eq.
//
// The following options are supported: [seqdiff.Context], [seqdiff.UseAlgorithm],
// [seqdiff.Deadline], [seqdiff.Timeout]
func HunksFunc[T any](x, y []T, hash func(T) uint64, eq func(a, b T) bool, opts ...Option) []Hunk {
	cfg := config.FromOptions(opts, config.Context|config.Algo|config.Deadline)
	rx, ry, optimal := impl.DiffFunc(x, y, hash, eq, cfg)
	return newResult(rx, ry, cfg, optimal).Hunks(cfg.Context)
}
