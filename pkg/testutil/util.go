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

package testutil

import (
	"fmt"
	"math/rand"
)

// Layout is the shape of a generated test sequence.
type Layout int

const (
	Ascending Layout = iota
	Descending
	Random
	// FewDistinct draws from a handful of values, so equal keys are common.
	FewDistinct
)

func (l Layout) String() string {
	switch l {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	case Random:
		return "random"
	case FewDistinct:
		return "few-distinct"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

func Layouts() []Layout {
	return []Layout{Ascending, Descending, Random, FewDistinct}
}

func NewInt64s(r *rand.Rand, n int, layout Layout) []int64 {
	vs := make([]int64, n)
	for i := range vs {
		switch layout {
		case Ascending:
			vs[i] = int64(i)
		case Descending:
			vs[i] = int64(n - i)
		case Random:
			vs[i] = r.Int63() - r.Int63()
		case FewDistinct:
			vs[i] = r.Int63n(4)
		default:
			panic(fmt.Errorf("unsupport layout '%v'", layout))
		}
	}
	return vs
}

// CountValues returns the multiset of vs.
func CountValues(vs []int64) map[int64]int {
	m := make(map[int64]int, len(vs))
	for _, v := range vs {
		m[v]++
	}
	return m
}
