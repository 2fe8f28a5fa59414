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
	"math/rand/v2"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Both diffmatchpatch and Myers find a minimal diff, so they must agree on the number of matches.
func TestMatchesAgreeWithDiffMatchPatch(t *testing.T) {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // no deadline, no half-match heuristic

	rng := newRand(t.Name())
	for i := range 300 {
		x, y := randomText(rng, "abcd", 120), randomText(rng, "abcd", 120)

		want := 0
		for _, d := range dmp.DiffMain(x, y, false) {
			if d.Type == diffmatchpatch.DiffEqual {
				want += utf8.RuneCountInString(d.Text)
			}
		}

		for _, algo := range []Algorithm{Myers, LCS} {
			if got := Compare([]rune(x), []rune(y), UseAlgorithm(algo)).Matched(); got != want {
				t.Errorf("#%d: Compare(%q, %q) with %v matched %d elements, diffmatchpatch matched %d", i, x, y, algo, got, want)
			}
		}
	}
}

// The matching blocks of difflib form a common subsequence, but not necessarily a longest one.
// Therefore, its ratio is a lower bound for the ratio of a minimal diff. Both libraries use the
// same definition for the quick upper bounds.
//
// The inputs are kept below 200 elements, otherwise difflib treats popular elements as junk.
func TestRatioBoundedByDifflib(t *testing.T) {
	rng := newRand(t.Name())
	for i := range 300 {
		x := strings.Split(randomText(rng, "abcdef", 100), "")
		y := strings.Split(randomText(rng, "abcdef", 100), "")
		m := difflib.NewMatcher(x, y)

		if got, lower := Ratio(x, y), m.Ratio(); got < lower {
			t.Errorf("#%d: Ratio(%q, %q) = %v, less than difflib's %v", i, x, y, got, lower)
		}
		if got, want := QuickRatio(x, y), m.QuickRatio(); got != want {
			t.Errorf("#%d: QuickRatio(%q, %q) = %v, difflib reports %v", i, x, y, got, want)
		}
		if got, want := RealQuickRatio(x, y), m.RealQuickRatio(); got != want {
			t.Errorf("#%d: RealQuickRatio(%q, %q) = %v, difflib reports %v", i, x, y, got, want)
		}
	}
}

func randomText(rng *rand.Rand, alphabet string, maxLen int) string {
	var sb strings.Builder
	for range rng.IntN(maxLen) {
		sb.WriteByte(alphabet[rng.IntN(len(alphabet))])
	}
	return sb.String()
}
