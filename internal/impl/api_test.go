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

import (
	"crypto/sha256"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"znkr.io/seqdiff/internal/config"
)

var algorithms = []config.Algorithm{config.Myers, config.Patience, config.LCS}

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		x, y []string
		want map[config.Algorithm]string // missing algorithms use want[config.Myers]
	}{
		{
			name: "identical",
			x:    []string{"foo", "bar", "baz"},
			y:    []string{"foo", "bar", "baz"},
			want: map[config.Algorithm]string{config.Myers: "MMM"},
		},
		{
			name: "empty",
			x:    nil,
			y:    nil,
			want: map[config.Algorithm]string{config.Myers: ""},
		},
		{
			name: "x-empty",
			x:    nil,
			y:    []string{"foo", "bar", "baz"},
			want: map[config.Algorithm]string{config.Myers: "III"},
		},
		{
			name: "y-empty",
			x:    []string{"foo", "bar", "baz"},
			y:    nil,
			want: map[config.Algorithm]string{config.Myers: "DDD"},
		},
		{
			name: "ABCABBA_to_CBABAC",
			x:    strings.Split("ABCABBA", ""),
			y:    strings.Split("CBABAC", ""),
			want: map[config.Algorithm]string{
				config.Myers:    "DIMDMMDMI",
				config.Patience: "DIMDMMDMI",
				config.LCS:      "DDMDMIMMI",
			},
		},
		{
			name: "same-prefix",
			x:    []string{"foo", "bar"},
			y:    []string{"foo", "baz"},
			want: map[config.Algorithm]string{config.Myers: "MDI"},
		},
		{
			name: "same-suffix",
			x:    []string{"foo", "bar"},
			y:    []string{"loo", "bar"},
			want: map[config.Algorithm]string{config.Myers: "DIM"},
		},
		{
			name: "moved-element",
			x:    strings.Split("abcXdef", ""),
			y:    strings.Split("Xabcdef", ""),
			want: map[config.Algorithm]string{config.Myers: "IMMMDMMM"},
		},
		{
			name: "unique-anchor",
			x:    strings.Split("cca", ""),
			y:    strings.Split("acc", ""),
			want: map[config.Algorithm]string{
				config.Myers:    "IMMD",
				config.Patience: "DDMII",
				config.LCS:      "IMMD",
			},
		},
		{
			name: "largish",
			x:    strings.Split("xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaay", ""),
			y:    strings.Split("waaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaait", ""),
			want: map[config.Algorithm]string{config.Myers: "DIMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMDII"},
		},
	}

	for _, tt := range tests {
		for _, algo := range algorithms {
			t.Run(fmt.Sprintf("%s/%v", tt.name, algo), func(t *testing.T) {
				want, ok := tt.want[algo]
				if !ok {
					want = tt.want[config.Myers]
				}
				cfg := config.Default
				cfg.Algorithm = algo

				t.Run("diff", func(t *testing.T) {
					rx, ry, optimal := Diff(tt.x, tt.y, cfg)
					got := render(rx, ry, len(tt.x), len(tt.y))
					if diff := cmp.Diff(want, got); diff != "" {
						t.Errorf("Diff(...) differs [-want,+got]:\n%s", diff)
					}
					if !optimal {
						t.Errorf("Diff(...) is not optimal without a deadline")
					}
				})

				t.Run("diff_func_colliding_hash", func(t *testing.T) {
					hash := func(string) uint64 { return 42 }
					eq := func(a, b string) bool { return a == b }
					rx, ry, _ := DiffFunc(tt.x, tt.y, hash, eq, cfg)
					got := render(rx, ry, len(tt.x), len(tt.y))
					if diff := cmp.Diff(want, got); diff != "" {
						t.Errorf("DiffFunc(...) differs [-want,+got]:\n%s", diff)
					}
				})
			})
		}
	}
}

func TestDiff_expiredDeadline(t *testing.T) {
	x := strings.Split("ABCABBA", "")
	y := strings.Split("CBABAC", "")
	for _, algo := range algorithms {
		t.Run(algo.String(), func(t *testing.T) {
			cfg := config.Default
			cfg.Algorithm = algo
			cfg.Deadline = time.Now().Add(-time.Hour)

			rx, ry, optimal := Diff(x, y, cfg)
			if optimal {
				t.Errorf("Diff(...) is optimal after the deadline expired")
			}
			got := render(rx, ry, len(x), len(y))
			if diff := cmp.Diff("DDDDDDDIIIIII", got); diff != "" {
				t.Errorf("Diff(...) differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestDiff_expiredDeadlineTrivial(t *testing.T) {
	cfg := config.Default
	cfg.Deadline = time.Now().Add(-time.Hour)
	x := []string{"a", "b", "c"}
	y := []string{"a", "c"}
	rx, ry, optimal := Diff(x, y, cfg)
	if !optimal {
		t.Errorf("Diff(...) is not optimal for a trivial diff")
	}
	if diff := cmp.Diff("MDM", render(rx, ry, len(x), len(y))); diff != "" {
		t.Errorf("Diff(...) differs [-want,+got]:\n%s", diff)
	}
}

func TestDiff_farDeadline(t *testing.T) {
	rng := newRand(t.Name())
	x, y := randomPair(rng, 2000, 8)
	want := lcsLen(x, y)

	cfg := config.Default
	cfg.Deadline = time.Now().Add(time.Hour)
	rx, ry, optimal := Diff(x, y, cfg)
	if !optimal {
		t.Errorf("Diff(...) is not optimal before the deadline")
	}
	if got := matches(rx, ry, x, y); got != want {
		t.Errorf("Diff(...) found %d matches, want %d", got, want)
	}
}

// Without duplicates, every common element is an anchor and all backends find a longest common
// subsequence.
func TestDiff_crossBackendWithoutDuplicates(t *testing.T) {
	rng := newRand(t.Name())
	for i := range 200 {
		x := rng.Perm(1 + rng.IntN(60))
		y := rng.Perm(1 + rng.IntN(60))
		want := lcsLen(x, y)
		for _, algo := range algorithms {
			cfg := config.Default
			cfg.Algorithm = algo
			rx, ry, _ := Diff(x, y, cfg)
			if got := matches(rx, ry, x, y); got != want {
				t.Fatalf("#%d: Diff(%v, %v) with %v found %d matches, want %d", i, x, y, algo, got, want)
			}
		}
	}
}

func TestDiff_large(t *testing.T) {
	rng := newRand(t.Name())
	// Exceeds lcsMaxCells, LCS falls back to Myers.
	x, y := randomPair(rng, 3000, 50)
	want := lcsLen(x, y)
	for _, algo := range []config.Algorithm{config.Myers, config.LCS} {
		cfg := config.Default
		cfg.Algorithm = algo
		rx, ry, _ := Diff(x, y, cfg)
		if got := matches(rx, ry, x, y); got != want {
			t.Errorf("Diff(...) with %v found %d matches, want %d", algo, got, want)
		}
	}

	cfg := config.Default
	cfg.Algorithm = config.Patience
	rx, ry, _ := Diff(x, y, cfg)
	if got := matches(rx, ry, x, y); got > want {
		t.Errorf("Diff(...) with Patience found %d matches, more than the maximum %d", got, want)
	}
}

func FuzzDiff(f *testing.F) {
	f.Add([]byte("ABCABBA"), []byte("CBABAC"), uint8(0))
	f.Add([]byte("cca"), []byte("acc"), uint8(1))
	f.Add([]byte(""), []byte("abc"), uint8(2))
	f.Add([]byte("abcXdef"), []byte("Xabcdef"), uint8(1))
	f.Fuzz(func(t *testing.T, x, y []byte, a uint8) {
		if len(x)*len(y) > 1<<16 {
			t.Skip()
		}
		cfg := config.Default
		cfg.Algorithm = algorithms[int(a)%len(algorithms)]
		rx, ry, optimal := Diff(x, y, cfg)
		if !optimal {
			t.Fatalf("Diff(...) is not optimal without a deadline")
		}
		got := matches(rx, ry, x, y) // validates the matches
		want := lcsLen(x, y)
		switch {
		case cfg.Algorithm == config.Patience && got > want:
			t.Errorf("Diff(%q, %q) found %d matches, more than the maximum %d", x, y, got, want)
		case cfg.Algorithm != config.Patience && got != want:
			t.Errorf("Diff(%q, %q) found %d matches, want %d", x, y, got, want)
		}
	})
}

func TestInterner(t *testing.T) {
	x := []string{"a", "b", "a", "c", "b"}
	in := newInterner(x, func(string) uint64 { return 0 }, func(a, b string) bool { return a == b }, len(x))
	var ids []int
	var added []bool
	for s := range x {
		id, ok := in.intern(s)
		ids = append(ids, id)
		added = append(added, ok)
	}
	if diff := cmp.Diff([]int{0, 1, 0, 2, 1}, ids); diff != "" {
		t.Errorf("intern(...) IDs differ [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff([]bool{true, true, false, true, false}, added); diff != "" {
		t.Errorf("intern(...) added differs [-want,+got]:\n%s", diff)
	}
	if got := in.size(); got != 3 {
		t.Errorf("size() = %d, want 3", got)
	}
	if id, ok := in.lookup("c"); !ok || id != 2 {
		t.Errorf("lookup(%q) = %d, %v, want 2, true", "c", id, ok)
	}
	if _, ok := in.lookup("d"); ok {
		t.Errorf("lookup(%q) found an ID for an element that was never interned", "d")
	}
}

func render(rx, ry []bool, n, m int) string {
	var sb strings.Builder
	for s, t := 0, 0; s < n || t < m; {
		if rx[s] {
			sb.WriteRune('D')
			s++
		} else if ry[t] {
			sb.WriteRune('I')
			t++
		} else {
			sb.WriteRune('M')
			s++
			t++
		}
	}
	return sb.String()
}

// matches returns the number of matches in the result vectors and panics if a match pairs unequal
// elements or if the result vectors are inconsistent.
func matches[T comparable](rx, ry []bool, x, y []T) int {
	if len(rx) != len(x)+1 || len(ry) != len(y)+1 {
		panic("result vectors have the wrong size")
	}
	n := 0
	s, t := 0, 0
	for s < len(x) || t < len(y) {
		switch {
		case s < len(x) && rx[s]:
			s++
		case t < len(y) && ry[t]:
			t++
		case s < len(x) && t < len(y):
			if x[s] != y[t] {
				panic(fmt.Sprintf("match of unequal elements x[%d] = %v and y[%d] = %v", s, x[s], t, y[t]))
			}
			n++
			s++
			t++
		default:
			panic("result vectors out of sync")
		}
	}
	return n
}

func lcsLen[T comparable](x, y []T) int {
	prev := make([]int, len(y)+1)
	cur := make([]int, len(y)+1)
	for i := range x {
		for j := range y {
			if x[i] == y[j] {
				cur[j+1] = prev[j] + 1
			} else {
				cur[j+1] = max(prev[j+1], cur[j])
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(y)]
}

func newRand(name string) *rand.Rand {
	seed := sha256.Sum256([]byte(name))
	return rand.New(rand.NewChaCha8(seed))
}

// randomPair returns a random input of length n over an alphabet of size k and a mutated copy.
func randomPair(rng *rand.Rand, n, k int) (x, y []int) {
	x = make([]int, n)
	for i := range x {
		x[i] = rng.IntN(k)
	}
	for _, e := range x {
		switch rng.IntN(10) {
		case 0: // delete
		case 1: // insert
			y = append(y, rng.IntN(k), e)
		case 2: // replace
			y = append(y, rng.IntN(k))
		default:
			y = append(y, e)
		}
	}
	return x, y
}
