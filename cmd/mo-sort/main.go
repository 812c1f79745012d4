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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matrixorigin/matrixsort/pkg/config"
	"github.com/matrixorigin/matrixsort/pkg/logutil"
	"github.com/matrixorigin/matrixsort/pkg/version"
)

// stdin is replaced in tests.
var stdin io.Reader = os.Stdin

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configFile string
		logLevel   string
	)
	root := &cobra.Command{
		Use:   "mo-sort",
		Short: "Generate, print and sort integer sequences",
		Long: `mo-sort runs bubble, insertion and merge sort over generated or
operator supplied integer sequences.

Values missing from both flags and the configuration file are read from stdin.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			params := config.NewParameters()
			if configFile != "" {
				if err := config.LoadParametersFromFile(ctx, configFile, params); err != nil {
					return err
				}
			}
			params.SetDefaultValues()
			if logLevel != "" {
				params.Log.Level = logLevel
			}
			if err := params.Log.Validate(ctx); err != nil {
				return err
			}
			logutil.SetupMOLogger(&params.Log)
			cmd.SetContext(config.WithParameterUnit(ctx, config.NewParameterUnit(params)))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logutil.Sync()
		},
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "toml or yaml configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newSortCommand(),
		newBenchCommand(),
		newPrimeCommand(),
		newFactorialCommand(),
	)
	return root
}

func versionString() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s)",
		version.Version, version.CommitID, version.BuildTime, version.GoVersion)
}
