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

// Package sequence generates, renders and checks the integer buffers
// handed to the sorting routines.
package sequence

import (
	"context"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/matrixorigin/matrixsort/pkg/common/moerr"
)

// MaxLength is the longest sequence a run may generate.
const MaxLength = 1 << 24

// now is replaced in tests.
var now = time.Now

// NewRand returns a generator for seed. A zero seed is taken from the
// clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Generate returns n values drawn uniformly from [0, bound).
// n must be non-negative and bound positive.
func Generate(r *rand.Rand, n int, bound int64) []int64 {
	vs := make([]int64, n)
	Fill(r, vs, bound)
	return vs
}

// Fill overwrites vs with values drawn uniformly from [0, bound).
func Fill(r *rand.Rand, vs []int64, bound int64) {
	for i := range vs {
		vs[i] = r.Int63n(bound)
	}
}

// Format renders vs as space-separated decimals.
func Format(vs []int64) string {
	var sb strings.Builder
	sb.Grow(len(vs) * 4)
	for i, v := range vs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	return sb.String()
}

// Print writes Format(vs) followed by a newline.
func Print(w io.Writer, vs []int64) error {
	_, err := io.WriteString(w, Format(vs)+"\n")
	return err
}

// Parse reads whitespace separated decimals. A token that is not an
// integer yields ErrParseError.
func Parse(s string) ([]int64, error) {
	fields := strings.Fields(s)
	vs := make([]int64, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, moerr.NewParseError(context.Background(), "value %d %q is not an integer", i, f)
		}
		vs = append(vs, v)
	}
	return vs, nil
}

func IsSorted(vs []int64) bool {
	for i := 1; i < len(vs); i++ {
		if vs[i] < vs[i-1] {
			return false
		}
	}
	return true
}

// IsPermutation reports whether a and b hold the same multiset of values.
func IsPermutation(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int64]int, len(a))
	for _, v := range a {
		seen[v]++
	}
	for _, v := range b {
		if seen[v] == 0 {
			return false
		}
		seen[v]--
	}
	return true
}
