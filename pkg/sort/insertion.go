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

// InsertionSort sorts vs in ascending order with insertion sort.
func InsertionSort[E constraints.Ordered](vs []E) Stats {
	return InsertionSortFunc(vs, less[E])
}

// InsertionSortFunc grows a sorted prefix one key at a time, shifting
// strictly greater predecessors right to open the key's slot.
func InsertionSortFunc[E any](vs []E, less func(a, b E) bool) (st Stats) {
	for i := 1; i < len(vs); i++ {
		key := vs[i]
		j := i - 1
		for ; j >= 0; j-- {
			st.Comparisons++
			if !less(key, vs[j]) {
				break
			}
			vs[j+1] = vs[j]
			st.Shifts++
		}
		vs[j+1] = key
	}
	return
}
