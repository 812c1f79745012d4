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
	"github.com/spf13/cobra"

	"github.com/matrixorigin/matrixsort/pkg/common/moerr"
	"github.com/matrixorigin/matrixsort/pkg/config"
	"github.com/matrixorigin/matrixsort/pkg/harness"
)

func newSortCommand() *cobra.Command {
	var (
		algorithm string
		length    int
		bound     int64
		seed      int64
		input     string
	)
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort one sequence and print it before and after",
		Example: `  mo-sort sort -a bubble -n 10 -m 100
  mo-sort sort -a merge --input "5 3 8 1 9 2"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			params := config.GetParameterUnit(ctx).SV
			flags := cmd.Flags()
			if flags.Changed("algorithm") {
				params.Algorithm = algorithm
			}
			if flags.Changed("length") {
				if length < 0 {
					return moerr.NewInvalidInput(ctx, "sequence length %d is negative", length)
				}
				params.Length = length
			}
			if flags.Changed("max") {
				params.Max = bound
			}
			if flags.Changed("seed") {
				params.Seed = seed
			}
			if flags.Changed("input") {
				params.Input = input
			}

			out := cmd.OutOrStdout()
			if err := harness.Prompt(ctx, stdin, out, params); err != nil {
				return err
			}
			_, err := harness.New(params, out).Run(ctx)
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&algorithm, "algorithm", "a", "", "bubble, insertion or merge")
	flags.IntVarP(&length, "length", "n", 0, "number of values to generate")
	flags.Int64VarP(&bound, "max", "m", 0, "exclusive upper bound of generated values")
	flags.Int64Var(&seed, "seed", 0, "random seed, 0 seeds from the clock")
	flags.StringVar(&input, "input", "", "whitespace separated values to sort instead of generating")
	return cmd
}
