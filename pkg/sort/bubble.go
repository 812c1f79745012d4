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

// BubbleSort sorts vs in ascending order with bubble sort.
func BubbleSort[E constraints.Ordered](vs []E) Stats {
	return BubbleSortFunc(vs, less[E])
}

// BubbleSortFunc exchanges adjacent out-of-order pairs until a full pass
// makes no exchange. After each pass the largest unsorted element is in
// its final slot, so the scan boundary shrinks by one.
func BubbleSortFunc[E any](vs []E, less func(a, b E) bool) (st Stats) {
	n := len(vs)
	if n < 2 {
		return
	}
	for pass, swapped := 0, true; swapped; pass++ {
		swapped = false
		st.Passes++
		for i := 0; i < n-1-pass; i++ {
			st.Comparisons++
			if less(vs[i+1], vs[i]) {
				vs[i], vs[i+1] = vs[i+1], vs[i]
				st.Exchanges++
				swapped = true
			}
		}
	}
	return
}
