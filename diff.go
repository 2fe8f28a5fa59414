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
	"znkr.io/seqdiff/internal/config"
	"znkr.io/seqdiff/internal/impl"
)

// Tag describes the kind of an [Op] or [Edit].
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Tag
type Tag int

const (
	Equal   Tag = iota // Elements in the old and new range match
	Delete             // Elements in the old range are deleted, the new range is empty
	Insert             // Elements in the new range are inserted, the old range is empty
	Replace            // Elements in the old range are replaced by the elements in the new range
)

// Op describes an operation on a contiguous range of elements.
//
// The old ranges x[OldStart:OldEnd] of all operations of a diff concatenate to x and the new
// ranges y[NewStart:NewEnd] concatenate to y.
type Op struct {
	Tag              Tag
	OldStart, OldEnd int // Range in x.
	NewStart, NewEnd int // Range in y.
}

// OldLen returns the number of elements in the old range.
func (op Op) OldLen() int { return op.OldEnd - op.OldStart }

// NewLen returns the number of elements in the new range.
func (op Op) NewLen() int { return op.NewEnd - op.NewStart }

// Block describes a maximal run of matching elements: x[Old+i] == y[New+i] for i in [0, Len).
type Block struct {
	Old, New int // Start position in x and y.
	Len      int // Number of matching elements, always > 0.
}

// Edit describes a single edit of a diff.
//
//   - For Equal, both Old and New contain the matching element.
//   - For Delete, Old contains the deleted element and New is unset (zero value).
//   - For Insert, New contains the inserted element and Old is unset (zero value).
//
// Edits never use Replace, a replacement is expressed as deletions followed by insertions.
type Edit[T any] struct {
	Tag      Tag
	Old, New T
}

// Result is the outcome of a comparison.
//
// It only refers to the inputs by position. All derived values are computed from Ops, a Result can
// therefore be inspected many times without comparing the inputs again.
type Result struct {
	// Ops is the canonical list of operations. Adjacent operations never have the same tag.
	Ops []Op

	// Lengths of the compared inputs.
	OldLen, NewLen int

	// Algorithm used to compute the result.
	Algorithm Algorithm

	// Optimal is false if the comparison ran past its deadline and some of the changes have been
	// approximated. If the algorithm is [Myers] or [LCS] and Optimal is true, the diff is minimal.
	Optimal bool
}

// Blocks returns the match blocks of the diff.
func (r Result) Blocks() []Block {
	var out []Block
	for _, op := range r.Ops {
		if op.Tag == Equal {
			out = append(out, Block{Old: op.OldStart, New: op.NewStart, Len: op.OldLen()})
		}
	}
	return out
}

// Matched returns the total number of matching elements.
func (r Result) Matched() int {
	n := 0
	for _, op := range r.Ops {
		if op.Tag == Equal {
			n += op.OldLen()
		}
	}
	return n
}

// Compare compares the contents of x and y and returns the changes necessary to convert from one
// to the other.
//
// If x and y are identical, the result has a single Equal operation. If only one of them is empty,
// the result has a single Delete or Insert operation. If both are empty, there are no operations.
//
// The following options are supported: [seqdiff.UseAlgorithm], [seqdiff.Deadline],
// [seqdiff.Timeout]
func Compare[T comparable](x, y []T, opts ...Option) Result {
	cfg := config.FromOptions(opts, config.Algo|config.Deadline)
	rx, ry, optimal := impl.Diff(x, y, cfg)
	return newResult(rx, ry, cfg, optimal)
}

// CompareFunc compares the contents of x and y using the provided hash and equality functions and
// returns the changes necessary to convert from one to the other.
//
// The hash value is only used to find candidates, two elements are considered equal only if eq
// reports them as equal. Elements that are equal according to eq must have the same hash value. A
// poor hash function slows the comparison down, but it doesn't change the result.
//
// The following options are supported: [seqdiff.UseAlgorithm], [seqdiff.Deadline],
// [seqdiff.Timeout]
func CompareFunc[T any](x, y []T, hash func(T) uint64, eq func(a, b T) bool, opts ...Option) Result {
	cfg := config.FromOptions(opts, config.Algo|config.Deadline)
	rx, ry, optimal := impl.DiffFunc(x, y, hash, eq, cfg)
	return newResult(rx, ry, cfg, optimal)
}

func newResult(rx, ry []bool, cfg config.Config, optimal bool) Result {
	return Result{
		Ops:       buildOps(rx, ry),
		OldLen:    len(rx) - 1,
		NewLen:    len(ry) - 1,
		Algorithm: cfg.Algorithm,
		Optimal:   optimal,
	}
}

// Ops compares the contents of x and y and returns the operations necessary to convert from one
// to the other. It's a shorthand for Compare(x, y, opts...).Ops.
//
// The following options are supported: [seqdiff.UseAlgorithm], [seqdiff.Deadline],
// [seqdiff.Timeout]
func Ops[T comparable](x, y []T, opts ...Option) []Op {
	return Compare(x, y, opts...).Ops
}

// Blocks compares the contents of x and y and returns the blocks of matching elements.
//
// The following options are supported: [seqdiff.UseAlgorithm], [seqdiff.Deadline],
// [seqdiff.Timeout]
func Blocks[T comparable](x, y []T, opts ...Option) []Block {
	return Compare(x, y, opts...).Blocks()
}

// Edits compares the contents of x and y and returns the changes necessary to convert from one to
// the other.
//
// Edits returns one edit for every element in the input slices. If x and y are identical, the
// output will consist of an Equal edit for every input element.
//
// The following options are supported: [seqdiff.UseAlgorithm], [seqdiff.Deadline],
// [seqdiff.Timeout]
func Edits[T comparable](x, y []T, opts ...Option) []Edit[T] {
	return edits(x, y, Compare(x, y, opts...).Ops)
}

// EditsFunc compares the contents of x and y using the provided hash and equality functions and
// returns the changes necessary to convert from one to the other. See [CompareFunc] for the
// requirements on hash and eq.
//
// The following options are supported: [seqdiff.UseAlgorithm], [seqdiff.Deadline],
// [seqdiff.Timeout]
func EditsFunc[T any](x, y []T, hash func(T) uint64, eq func(a, b T) bool, opts ...Option) []Edit[T] {
	return edits(x, y, CompareFunc(x, y, hash, eq, opts...).Ops)
}

func edits[T any](x, y []T, ops []Op) []Edit[T] {
	// Compute the number of edits, this is cheap and allows us to preallocate the return value.
	var nedits int
	for _, op := range ops {
		if op.Tag == Equal {
			nedits += op.OldLen()
		} else {
			nedits += op.OldLen() + op.NewLen()
		}
	}
	if nedits == 0 {
		return nil
	}

	eout := make([]Edit[T], 0, nedits)
	for _, op := range ops {
		if op.Tag == Equal {
			for i := range op.OldLen() {
				eout = append(eout, Edit[T]{
					Tag: Equal,
					Old: x[op.OldStart+i],
					New: y[op.NewStart+i],
				})
			}
			continue
		}
		for s := op.OldStart; s < op.OldEnd; s++ {
			eout = append(eout, Edit[T]{
				Tag: Delete,
				Old: x[s],
			})
		}
		for t := op.NewStart; t < op.NewEnd; t++ {
			eout = append(eout, Edit[T]{
				Tag: Insert,
				New: y[t],
			})
		}
	}
	return eout
}
