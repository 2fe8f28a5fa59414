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

// Maximum size of the dynamic programming table. Larger inputs use Myers' algorithm.
const lcsMaxCells = 1 << 22

// diffLCS finds a longest common subsequence from (smin, tmin) to (smax, tmax) using the textbook
// dynamic programming algorithm in O(NM) time and space.
func diffLCS(m *myers, smin, smax, tmin, tmax int) {
	N, M := smax-smin, tmax-tmin
	if N == 0 || M == 0 || m.exceeded() {
		m.giveUp(smin, smax, tmin, tmax)
		return
	}
	if N*M > lcsMaxCells {
		m.compare(smin, smax, tmin, tmax)
		return
	}

	x, y := m.x[smin:smax], m.y[tmin:tmax]

	// L[i*(M+1)+j] is the length of the longest common subsequence of x[i:] and y[j:].
	stride := M + 1
	L := make([]int32, (N+1)*stride)
	for i := N - 1; i >= 0; i-- {
		for j := M - 1; j >= 0; j-- {
			if x[i] == y[j] {
				L[i*stride+j] = L[(i+1)*stride+j+1] + 1
			} else {
				L[i*stride+j] = max(L[(i+1)*stride+j], L[i*stride+j+1])
			}
		}
	}

	// Walk the table forwards. Taking a match whenever possible is always optimal, otherwise
	// prefer deletions over insertions if both are optimal.
	i, j := 0, 0
	for i < N && j < M {
		switch {
		case x[i] == y[j]:
			i++
			j++
		case L[(i+1)*stride+j] >= L[i*stride+j+1]:
			m.rx[m.xidx[smin+i]] = true
			i++
		default:
			m.ry[m.yidx[tmin+j]] = true
			j++
		}
	}
	m.giveUp(smin+i, smax, tmin+j, tmax)
}
