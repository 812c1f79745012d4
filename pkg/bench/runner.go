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

// Package bench runs the sorting algorithms side by side over many
// generated sequences.
package bench

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/matrixorigin/matrixsort/pkg/common/moerr"
	"github.com/matrixorigin/matrixsort/pkg/logutil"
	"github.com/matrixorigin/matrixsort/pkg/logutil/logutil2"
	"github.com/matrixorigin/matrixsort/pkg/sequence"
	"github.com/matrixorigin/matrixsort/pkg/sort"
)

// sortSequence is replaced in tests.
var sortSequence = sort.Sort[int64]

type Options struct {
	Trials int
	Length int
	Bound  int64
	// Seed of trial i is Seed+i. Zero picks a base seed from the clock.
	Seed       int64
	Workers    int
	Algorithms []sort.Algorithm
}

// Result of sorting one trial's sequence with one algorithm.
type Result struct {
	RunID     string
	Trial     int
	Algorithm sort.Algorithm
	Stats     sort.Stats
	Elapsed   time.Duration
}

// Summary aggregates the results of one algorithm.
type Summary struct {
	Algorithm sort.Algorithm
	Trials    int
	Stats     sort.Stats
	Elapsed   time.Duration
}

type Report struct {
	RunID   string
	Options Options
	// Results are ordered by trial, then by algorithm.
	Results []Result
}

// Summary returns one entry per algorithm, in the order of Options.Algorithms.
func (r *Report) Summary() []Summary {
	idx := make(map[sort.Algorithm]int, len(r.Options.Algorithms))
	sums := make([]Summary, len(r.Options.Algorithms))
	for i, alg := range r.Options.Algorithms {
		idx[alg] = i
		sums[i].Algorithm = alg
	}
	for _, res := range r.Results {
		s := &sums[idx[res.Algorithm]]
		s.Trials++
		s.Stats.Add(res.Stats)
		s.Elapsed += res.Elapsed
	}
	return sums
}

// maxTrials bounds the number of sequences one run generates.
const maxTrials = 1 << 16

type Runner struct {
	opts Options
}

// NewRunner runs every algorithm when opts lists none. Repeated
// algorithms run once.
func NewRunner(opts Options) *Runner {
	if len(opts.Algorithms) == 0 {
		opts.Algorithms = sort.Algorithms()
	} else {
		seen := make(map[sort.Algorithm]bool, len(opts.Algorithms))
		algs := make([]sort.Algorithm, 0, len(opts.Algorithms))
		for _, alg := range opts.Algorithms {
			if !seen[alg] {
				seen[alg] = true
				algs = append(algs, alg)
			}
		}
		opts.Algorithms = algs
	}
	return &Runner{opts: opts}
}

func (r *Runner) validate(ctx context.Context) error {
	o := r.opts
	switch {
	case o.Trials <= 0:
		return moerr.NewInvalidInput(ctx, "trials %d must be positive", o.Trials)
	case o.Trials > maxTrials:
		return moerr.NewInvalidInput(ctx, "trials %d exceeds %d", o.Trials, maxTrials)
	case o.Length < 0:
		return moerr.NewInvalidInput(ctx, "sequence length %d is negative", o.Length)
	case o.Length > sequence.MaxLength:
		return moerr.NewInvalidInput(ctx, "sequence length %d exceeds %d", o.Length, sequence.MaxLength)
	case o.Bound <= 0:
		return moerr.NewInvalidInput(ctx, "max %d must be positive", o.Bound)
	case o.Workers <= 0:
		return moerr.NewInvalidInput(ctx, "workers %d must be positive", o.Workers)
	}
	return nil
}

// Run generates one sequence per trial and sorts a private copy of it
// with every algorithm on the worker pool.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if err := r.validate(ctx); err != nil {
		return nil, err
	}
	pool, err := ants.NewPool(r.opts.Workers)
	if err != nil {
		return nil, moerr.ConvertGoError(ctx, err)
	}
	defer pool.Release()

	report := &Report{
		RunID:   uuid.NewString(),
		Options: r.opts,
	}
	ctx = logutil.ContextWithRun(ctx, report.RunID)

	seed := r.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		runErr  error
		results = make([]Result, 0, r.opts.Trials*len(r.opts.Algorithms))
	)
	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if runErr == nil {
			runErr = err
		}
	}

	start := time.Now()
submit:
	for trial := 0; trial < r.opts.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			setErr(err)
			break
		}
		src := sequence.Generate(rand.New(rand.NewSource(seed+int64(trial))), r.opts.Length, r.opts.Bound)
		for _, alg := range r.opts.Algorithms {
			trial, alg := trial, alg
			wg.Add(1)
			err := pool.Submit(func() {
				defer wg.Done()
				res, err := runTrial(ctx, report.RunID, trial, alg, src)
				if err != nil {
					setErr(err)
					return
				}
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
			})
			if err != nil {
				wg.Done()
				setErr(moerr.ConvertGoError(ctx, err))
				break submit
			}
		}
	}
	wg.Wait()
	if runErr != nil {
		return nil, runErr
	}

	order := make(map[sort.Algorithm]int, len(r.opts.Algorithms))
	for i, alg := range r.opts.Algorithms {
		order[alg] = i
	}
	sort.MergeSortFunc(results, func(a, b Result) bool {
		if a.Trial != b.Trial {
			return a.Trial < b.Trial
		}
		return order[a.Algorithm] < order[b.Algorithm]
	})
	report.Results = results

	logutil2.Info(ctx, "bench finished",
		zap.Int("trials", r.opts.Trials),
		zap.Int("length", r.opts.Length),
		zap.Int("workers", r.opts.Workers),
		logutil.Elapsed(time.Since(start)))
	return report, nil
}

// runTrial sorts its own copy of src; src is shared read-only.
func runTrial(ctx context.Context, runID string, trial int, alg sort.Algorithm, src []int64) (res Result, err error) {
	defer func() {
		if e := recover(); e != nil {
			err = moerr.ConvertPanicError(ctx, e)
		}
	}()
	vs := make([]int64, len(src))
	copy(vs, src)

	start := time.Now()
	st := sortSequence(alg, vs)
	elapsed := time.Since(start)

	if !sequence.IsSorted(vs) {
		return res, moerr.NewInternalError(ctx, "%s sort left trial %d unsorted", alg, trial)
	}
	if !sequence.IsPermutation(src, vs) {
		return res, moerr.NewInternalError(ctx, "%s sort changed the values of trial %d", alg, trial)
	}
	logutil2.Debug(ctx, "trial sorted",
		zap.Int("trial", trial),
		zap.Stringer("algorithm", alg),
		zap.Object("stats", st),
		logutil.Elapsed(elapsed))
	return Result{
		RunID:     runID,
		Trial:     trial,
		Algorithm: alg,
		Stats:     st,
		Elapsed:   elapsed,
	}, nil
}
