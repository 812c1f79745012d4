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

package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/matrixorigin/matrixsort/pkg/bench"
	"github.com/matrixorigin/matrixsort/pkg/config"
	"github.com/matrixorigin/matrixsort/pkg/sort"
)

func newBenchCommand() *cobra.Command {
	var (
		trials     int
		length     int
		bound      int64
		seed       int64
		workers    int
		algorithms []string
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare the algorithms over many generated sequences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			params := config.GetParameterUnit(ctx).SV
			flags := cmd.Flags()
			if flags.Changed("trials") {
				params.Bench.Trials = trials
			}
			if flags.Changed("length") {
				params.Bench.Length = length
			}
			if flags.Changed("max") {
				params.Bench.Max = bound
			}
			if flags.Changed("workers") {
				params.Bench.Workers = workers
			}
			if flags.Changed("seed") {
				params.Seed = seed
			}
			if err := params.ValidateBench(ctx); err != nil {
				return err
			}

			algs := make([]sort.Algorithm, 0, len(algorithms))
			for _, name := range algorithms {
				alg, err := sort.ParseAlgorithm(name)
				if err != nil {
					return err
				}
				algs = append(algs, alg)
			}

			report, err := bench.NewRunner(bench.Options{
				Trials:     params.Bench.Trials,
				Length:     params.Bench.Length,
				Bound:      params.Bench.Max,
				Seed:       params.Seed,
				Workers:    params.Bench.Workers,
				Algorithms: algs,
			}).Run(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "run %s\n", report.RunID)
			fmt.Fprintln(w, "ALGORITHM\tTRIALS\tCOMPARISONS\tEXCHANGES\tSHIFTS\tMERGES\tELAPSED")
			for _, s := range report.Summary() {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
					s.Algorithm, s.Trials, s.Stats.Comparisons, s.Stats.Exchanges,
					s.Stats.Shifts, s.Stats.Merges, s.Elapsed.Round(time.Microsecond))
			}
			return w.Flush()
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&trials, "trials", 0, "number of generated sequences")
	flags.IntVarP(&length, "length", "n", 0, "length of every sequence")
	flags.Int64VarP(&bound, "max", "m", 0, "exclusive upper bound of values")
	flags.Int64Var(&seed, "seed", 0, "base random seed, 0 seeds from the clock")
	flags.IntVar(&workers, "workers", 0, "worker pool size")
	flags.StringSliceVarP(&algorithms, "algorithm", "a", nil, "algorithms to compare, all by default")
	return cmd
}
