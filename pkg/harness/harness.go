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

// Package harness drives one sorting run: generate or read a sequence,
// print it, sort it in place and print it again.
package harness

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/matrixorigin/matrixsort/pkg/common/moerr"
	"github.com/matrixorigin/matrixsort/pkg/config"
	"github.com/matrixorigin/matrixsort/pkg/logutil"
	"github.com/matrixorigin/matrixsort/pkg/sequence"
	"github.com/matrixorigin/matrixsort/pkg/sort"
)

const (
	lengthPrompt = "sequence length: "
	maxPrompt    = "max: "
)

// Result of one run. Input is a copy taken before sorting.
type Result struct {
	Algorithm sort.Algorithm
	Input     []int64
	Output    []int64
	Stats     sort.Stats
	Elapsed   time.Duration
}

type Harness struct {
	params *config.Parameters
	out    io.Writer
}

func New(params *config.Parameters, out io.Writer) *Harness {
	return &Harness{
		params: params,
		out:    out,
	}
}

// Run validates the parameters, builds the buffer once, and prints it
// before and after sorting.
func (h *Harness) Run(ctx context.Context) (*Result, error) {
	p := h.params
	if err := p.Validate(ctx); err != nil {
		return nil, err
	}
	alg, err := sort.ParseAlgorithm(p.Algorithm)
	if err != nil {
		return nil, err
	}

	var vs []int64
	if p.Input != "" {
		if vs, err = sequence.Parse(p.Input); err != nil {
			return nil, err
		}
	} else {
		vs = make([]int64, p.Length)
		sequence.Fill(sequence.NewRand(p.Seed), vs, p.Max)
	}
	res := &Result{
		Algorithm: alg,
		Input:     append([]int64(nil), vs...),
	}

	if err = sequence.Print(h.out, vs); err != nil {
		return nil, moerr.ConvertGoError(ctx, err)
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	res.Stats = sort.Sort(alg, vs)
	res.Elapsed = time.Since(start)
	res.Output = vs

	if err = sequence.Print(h.out, vs); err != nil {
		return nil, moerr.ConvertGoError(ctx, err)
	}
	logutil.Info("sequence sorted",
		zap.Stringer("algorithm", alg),
		zap.Int("length", len(vs)),
		zap.Object("stats", res.Stats),
		logutil.Elapsed(res.Elapsed))
	return res, nil
}

// Prompt asks the operator for whatever length or bound params still
// lacks. Lines that are not integers are asked again, as are lengths
// outside [0, sequence.MaxLength] and bounds below 1.
func Prompt(ctx context.Context, in io.Reader, out io.Writer, params *config.Parameters) error {
	scanner := bufio.NewScanner(in)
	if params.NeedsLength() {
		n, err := askInt(ctx, scanner, out, lengthPrompt, 0, sequence.MaxLength)
		if err != nil {
			return err
		}
		params.Length = int(n)
	}
	if params.NeedsMax() {
		m, err := askInt(ctx, scanner, out, maxPrompt, 1, math.MaxInt64)
		if err != nil {
			return err
		}
		params.Max = m
	}
	return nil
}

// askInt repeats prompt until a line holds an integer in [min, max].
func askInt(ctx context.Context, scanner *bufio.Scanner, out io.Writer, prompt string, min, max int64) (int64, error) {
	for {
		if _, err := fmt.Fprint(out, prompt); err != nil {
			return 0, moerr.ConvertGoError(ctx, err)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, moerr.ConvertGoError(ctx, err)
			}
			return 0, moerr.NewUnexpectedEOF(ctx, "stdin")
		}
		v, err := strconv.ParseInt(strings.TrimSpace(scanner.Text()), 10, 64)
		if err != nil || v < min || v > max {
			continue
		}
		return v, nil
	}
}
