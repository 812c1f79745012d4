// Copyright 2021 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sort

import "golang.org/x/exp/constraints"

// MergeSort sorts vs in ascending order with merge sort.
func MergeSort[E constraints.Ordered](vs []E) Stats {
	return MergeSortFunc(vs, less[E])
}

// MergeSortFunc is a top-down merge sort. Each merge copies both runs
// into scratch slices that live only for that merge.
func MergeSortFunc[E any](vs []E, less func(a, b E) bool) (st Stats) {
	mergeSortRange(vs, 0, len(vs)-1, less, &st)
	return
}

// mergeSortRange sorts the inclusive range [l, r]; l >= r is a no-op.
func mergeSortRange[E any](vs []E, l, r int, less func(a, b E) bool, st *Stats) {
	if l >= r {
		return
	}
	m := l + (r-l)/2
	mergeSortRange(vs, l, m, less, st)
	mergeSortRange(vs, m+1, r, less, st)
	mergeRuns(vs, l, m, r, less, st)
}

// mergeRuns merges the sorted runs [l, m] and [m+1, r]. Ties take the
// left run first.
func mergeRuns[E any](vs []E, l, m, r int, less func(a, b E) bool, st *Stats) {
	left := make([]E, m-l+1)
	right := make([]E, r-m)
	copy(left, vs[l:m+1])
	copy(right, vs[m+1:r+1])
	st.Merges++

	i, j, k := 0, 0, l
	for i < len(left) && j < len(right) {
		st.Comparisons++
		if less(right[j], left[i]) {
			vs[k] = right[j]
			j++
		} else {
			vs[k] = left[i]
			i++
		}
		k++
	}
	k += copy(vs[k:r+1], left[i:])
	copy(vs[k:r+1], right[j:])
}
