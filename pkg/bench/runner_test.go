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

package bench

import (
	"context"
	"math"
	"testing"

	"github.com/lni/goutils/leaktest"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/matrixsort/pkg/common/moerr"
	"github.com/matrixorigin/matrixsort/pkg/sort"
)

func TestRunnerRun(t *testing.T) {
	defer leaktest.AfterTest(t)()
	r := NewRunner(Options{
		Trials:  5,
		Length:  64,
		Bound:   20,
		Seed:    3,
		Workers: 3,
	})
	report, err := r.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, report.RunID)
	require.Len(t, report.Results, 5*3)

	algs := sort.Algorithms()
	for i, res := range report.Results {
		require.Equal(t, report.RunID, res.RunID)
		require.Equal(t, i/3, res.Trial)
		require.Equal(t, algs[i%3], res.Algorithm)
	}

	sums := report.Summary()
	require.Len(t, sums, 3)
	for i, s := range sums {
		require.Equal(t, algs[i], s.Algorithm)
		require.Equal(t, 5, s.Trials)
		require.Positive(t, s.Stats.Comparisons)
	}
	require.Positive(t, sums[0].Stats.Exchanges)
	require.Positive(t, sums[1].Stats.Shifts)
	require.Equal(t, 5*63, sums[2].Stats.Merges)
}

func TestRunnerRepeatedAlgorithm(t *testing.T) {
	defer leaktest.AfterTest(t)()
	r := NewRunner(Options{Trials: 4, Length: 10, Bound: 10, Seed: 9, Workers: 2,
		Algorithms: []sort.Algorithm{sort.Bubble, sort.Merge, sort.Bubble}})
	report, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 4*2)

	sums := report.Summary()
	require.Len(t, sums, 2)
	require.Equal(t, sort.Bubble, sums[0].Algorithm)
	require.Equal(t, 4, sums[0].Trials)
	require.Equal(t, sort.Merge, sums[1].Algorithm)
	require.Equal(t, 4, sums[1].Trials)
}

func TestRunnerSameSeedSameWork(t *testing.T) {
	defer leaktest.AfterTest(t)()
	opts := Options{Trials: 3, Length: 30, Bound: 100, Seed: 17, Workers: 2,
		Algorithms: []sort.Algorithm{sort.Insertion}}
	a, err := NewRunner(opts).Run(context.Background())
	require.NoError(t, err)
	b, err := NewRunner(opts).Run(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, a.RunID, b.RunID)
	for i := range a.Results {
		require.Equal(t, a.Results[i].Stats, b.Results[i].Stats)
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"trials", Options{Trials: 0, Length: 1, Bound: 1, Workers: 1}},
		{"length", Options{Trials: 1, Length: -1, Bound: 1, Workers: 1}},
		{"huge length", Options{Trials: 1, Length: math.MaxInt, Bound: 1, Workers: 1}},
		{"too many trials", Options{Trials: maxTrials + 1, Length: 1, Bound: 1, Workers: 1}},
		{"bound", Options{Trials: 1, Length: 1, Bound: 0, Workers: 1}},
		{"workers", Options{Trials: 1, Length: 1, Bound: 1, Workers: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(tt.opts).Run(context.Background())
			require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))
		})
	}
}

func TestRunnerCancelled(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(Options{Trials: 2, Length: 8, Bound: 8, Seed: 1, Workers: 1}).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunnerDetectsBrokenSort(t *testing.T) {
	defer leaktest.AfterTest(t)()
	opts := Options{Trials: 1, Length: 2, Bound: 10, Seed: 5, Workers: 1,
		Algorithms: []sort.Algorithm{sort.Bubble}}

	stubs := gostub.Stub(&sortSequence, func(alg sort.Algorithm, vs []int64) sort.Stats {
		vs[0], vs[1] = 1, 0
		return sort.Stats{}
	})
	defer stubs.Reset()
	_, err := NewRunner(opts).Run(context.Background())
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInternal))
	require.Contains(t, err.Error(), "unsorted")

	stubs.Stub(&sortSequence, func(alg sort.Algorithm, vs []int64) sort.Stats {
		vs[0], vs[1] = -1, -1
		return sort.Stats{}
	})
	_, err = NewRunner(opts).Run(context.Background())
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInternal))
	require.Contains(t, err.Error(), "changed the values")
}

func TestRunnerRecoversPanic(t *testing.T) {
	defer leaktest.AfterTest(t)()
	stubs := gostub.Stub(&sortSequence, func(alg sort.Algorithm, vs []int64) sort.Stats {
		panic("boom")
	})
	defer stubs.Reset()

	_, err := NewRunner(Options{Trials: 1, Length: 4, Bound: 10, Seed: 1, Workers: 1}).Run(context.Background())
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInternal))
	require.Contains(t, err.Error(), "boom")
}
