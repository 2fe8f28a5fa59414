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

// interner assigns dense integer IDs to the elements of x.
//
// Elements are bucketed by their hash key, but a key is only ever a candidate: two elements get
// the same ID only after eq confirmed that they are equal. Elements with colliding keys are kept
// in a chain per key, so a bad hash function degrades performance but never correctness.
type interner[T any] struct {
	x    []T
	hash func(T) uint64
	eq   func(a, b T) bool

	heads map[uint64]int // key -> most recently assigned ID with that key
	next  []int          // next[id] is the previous ID with the same key or -1
	reps  []int          // reps[id] is the index of the first element in x with that ID
}

func newInterner[T any](x []T, hash func(T) uint64, eq func(a, b T) bool, sizeHint int) *interner[T] {
	return &interner[T]{
		x:     x,
		hash:  hash,
		eq:    eq,
		heads: make(map[uint64]int, sizeHint),
		next:  make([]int, 0, sizeHint),
		reps:  make([]int, 0, sizeHint),
	}
}

// intern returns the ID of x[s], assigning a new ID if no equal element was interned before.
func (in *interner[T]) intern(s int) (id int, added bool) {
	e := in.x[s]
	key := in.hash(e)
	head, ok := in.heads[key]
	if ok {
		for c := head; c >= 0; c = in.next[c] {
			if in.eq(in.x[in.reps[c]], e) {
				return c, false
			}
		}
	} else {
		head = -1
	}
	id = len(in.reps)
	in.reps = append(in.reps, s)
	in.next = append(in.next, head)
	in.heads[key] = id
	return id, true
}

// lookup returns the ID of an element equal to e or false if there's none.
func (in *interner[T]) lookup(e T) (int, bool) {
	head, ok := in.heads[in.hash(e)]
	if !ok {
		return 0, false
	}
	for id := head; id >= 0; id = in.next[id] {
		if in.eq(in.x[in.reps[id]], e) {
			return id, true
		}
	}
	return 0, false
}

// size returns the number of IDs assigned so far.
func (in *interner[T]) size() int { return len(in.reps) }
