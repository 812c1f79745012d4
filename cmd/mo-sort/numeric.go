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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matrixorigin/matrixsort/pkg/common/moerr"
	"github.com/matrixorigin/matrixsort/pkg/numeric"
)

func parseIntArg(cmd *cobra.Command, arg string) (int64, error) {
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, moerr.NewParseError(cmd.Context(), "%q is not an integer", arg)
	}
	return n, nil
}

func newPrimeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prime N",
		Short: "Tell whether N is prime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseIntArg(cmd, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), numeric.IsPrime(n))
			return err
		},
	}
}

func newFactorialCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "factorial N",
		Short: "Print N!",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseIntArg(cmd, args[0])
			if err != nil {
				return err
			}
			f, err := numeric.Factorial(cmd.Context(), n)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), f)
			return err
		},
	}
}
