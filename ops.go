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
	"fmt"

	"znkr.io/seqdiff/internal/rvecs"
)

// buildOps converts result vectors into the canonical list of operations.
//
// Every gap between two match blocks (and before the first and after the last) becomes a Delete,
// an Insert, or a Replace depending on which side of the gap is non-empty.
func buildOps(rx, ry []bool) []Op {
	n, m := len(rx)-1, len(ry)-1
	var ops []Op
	s, t := 0, 0
	for b := range rvecs.Blocks(rx, ry) {
		ops = appendGap(ops, s, b.S, t, b.T)
		ops = appendOp(ops, Op{
			Tag:      Equal,
			OldStart: b.S,
			OldEnd:   b.S + b.N,
			NewStart: b.T,
			NewEnd:   b.T + b.N,
		})
		s, t = b.S+b.N, b.T+b.N
	}
	return appendGap(ops, s, n, t, m)
}

func appendGap(ops []Op, smin, smax, tmin, tmax int) []Op {
	var tag Tag
	switch {
	case smin < smax && tmin < tmax:
		tag = Replace
	case smin < smax:
		tag = Delete
	case tmin < tmax:
		tag = Insert
	default:
		return ops
	}
	return appendOp(ops, Op{
		Tag:      tag,
		OldStart: smin,
		OldEnd:   smax,
		NewStart: tmin,
		NewEnd:   tmax,
	})
}

// appendOp appends op to ops. If the last operation has the same tag and ends where op starts, op
// is merged into it instead.
func appendOp(ops []Op, op Op) []Op {
	if k := len(ops) - 1; k >= 0 && ops[k].Tag == op.Tag && ops[k].OldEnd == op.OldStart && ops[k].NewEnd == op.NewStart {
		ops[k].OldEnd = op.OldEnd
		ops[k].NewEnd = op.NewEnd
		return ops
	}
	return append(ops, op)
}

// validateOps checks that ops is a canonical list of operations for inputs of length n and m:
// The old and new ranges are contiguous and cover [0, n) and [0, m) respectively, every range is
// consistent with its tag, and adjacent operations have different tags.
func validateOps(ops []Op, n, m int) error {
	s, t := 0, 0
	for i, op := range ops {
		if op.OldStart != s || op.NewStart != t {
			return fmt.Errorf("op %d starts at (%d, %d), want (%d, %d)", i, op.OldStart, op.NewStart, s, t)
		}
		if op.OldEnd < op.OldStart || op.NewEnd < op.NewStart {
			return fmt.Errorf("op %d has a negative range: %+v", i, op)
		}
		ok := false
		switch op.Tag {
		case Equal:
			ok = op.OldLen() > 0 && op.OldLen() == op.NewLen()
		case Delete:
			ok = op.OldLen() > 0 && op.NewLen() == 0
		case Insert:
			ok = op.OldLen() == 0 && op.NewLen() > 0
		case Replace:
			ok = op.OldLen() > 0 && op.NewLen() > 0
		}
		if !ok {
			return fmt.Errorf("op %d has ranges inconsistent with its tag: %+v", i, op)
		}
		if i > 0 && ops[i-1].Tag == op.Tag {
			return fmt.Errorf("ops %d and %d have the same tag %v", i-1, i, op.Tag)
		}
		s, t = op.OldEnd, op.NewEnd
	}
	if s != n || t != m {
		return fmt.Errorf("ops end at (%d, %d), want (%d, %d)", s, t, n, m)
	}
	return nil
}
