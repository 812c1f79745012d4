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

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/matrixsort/pkg/common/moerr"
)

// Algorithm names one of the in-place sorting routines.
type Algorithm int8

const (
	Bubble Algorithm = iota
	Insertion
	Merge
)

var algorithmNames = [...]string{
	Bubble:    "bubble",
	Insertion: "insertion",
	Merge:     "merge",
}

func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return fmt.Sprintf("Algorithm(%d)", int8(a))
	}
	return algorithmNames[a]
}

// Stable reports whether equal elements keep their relative order.
// Bubble sort only exchanges on strict inequality, so all three are.
func (a Algorithm) Stable() bool {
	return a >= Bubble && a <= Merge
}

// Algorithms returns every algorithm in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{Bubble, Insertion, Merge}
}

// ParseAlgorithm accepts an algorithm name, case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range algorithmNames {
		if n == name {
			return Algorithm(i), nil
		}
	}
	return 0, moerr.NewInvalidArg(context.Background(), "algorithm", s)
}

func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	v, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Stats counts the work one sort call performed.
type Stats struct {
	// Passes is the number of full scans bubble sort made.
	Passes int
	// Comparisons counts every element comparison. For insertion sort
	// these are the shift-checks.
	Comparisons int
	// Exchanges counts adjacent swaps made by bubble sort.
	Exchanges int
	// Shifts counts elements insertion sort moved one slot right.
	Shifts int
	// Merges counts merge steps over ranges of two or more elements.
	Merges int
}

func (s *Stats) Add(o Stats) {
	s.Passes += o.Passes
	s.Comparisons += o.Comparisons
	s.Exchanges += o.Exchanges
	s.Shifts += o.Shifts
	s.Merges += o.Merges
}

func (s Stats) String() string {
	return fmt.Sprintf("passes=%d comparisons=%d exchanges=%d shifts=%d merges=%d",
		s.Passes, s.Comparisons, s.Exchanges, s.Shifts, s.Merges)
}

func (s Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("passes", s.Passes)
	enc.AddInt("comparisons", s.Comparisons)
	enc.AddInt("exchanges", s.Exchanges)
	enc.AddInt("shifts", s.Shifts)
	enc.AddInt("merges", s.Merges)
	return nil
}

// Sort sorts vs in place with the given algorithm.
func Sort[E constraints.Ordered](alg Algorithm, vs []E) Stats {
	return SortFunc(alg, vs, less[E])
}

// SortFunc sorts vs in place with the given algorithm, ordered by less.
// It panics on an unknown algorithm.
func SortFunc[E any](alg Algorithm, vs []E, less func(a, b E) bool) Stats {
	switch alg {
	case Bubble:
		return BubbleSortFunc(vs, less)
	case Insertion:
		return InsertionSortFunc(vs, less)
	case Merge:
		return MergeSortFunc(vs, less)
	}
	panic(moerr.NewNotSupported(context.Background(), "sort algorithm %s", alg))
}

func less[E constraints.Ordered](a, b E) bool {
	return a < b
}
