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

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matrixorigin/matrixsort/pkg/common/moerr"
	"github.com/matrixorigin/matrixsort/pkg/logutil"
	"github.com/matrixorigin/matrixsort/pkg/sequence"
	"github.com/matrixorigin/matrixsort/pkg/sort"
)

type ConfigurationKeyType int

const (
	ParameterUnitKey ConfigurationKeyType = 1
)

const (
	// UnsetLength marks a length the operator still has to supply.
	UnsetLength = -1

	// MaxBenchTrials bounds the number of sequences one bench run generates.
	MaxBenchTrials = 1 << 16

	defaultAlgorithm    = "merge"
	defaultBenchTrials  = 10
	defaultBenchLength  = 1000
	defaultBenchMax     = 1000
	defaultBenchWorkers = 4
	defaultLogLevel     = "info"
	defaultLogFormat    = "console"
)

// Parameters of a sorting run
type Parameters struct {
	//sorting algorithm: bubble, insertion or merge. default: merge
	Algorithm string `toml:"algorithm" yaml:"algorithm"`

	//number of values to generate. -1 asks the operator
	Length int `toml:"length" yaml:"length"`

	//exclusive upper bound of generated values. 0 asks the operator
	Max int64 `toml:"max" yaml:"max"`

	//random seed. 0 seeds from the clock
	Seed int64 `toml:"seed" yaml:"seed"`

	//explicit whitespace separated values, replaces generation when set
	Input string `toml:"input" yaml:"input"`

	Log logutil.LogConfig `toml:"log" yaml:"log"`

	Bench BenchParameters `toml:"bench" yaml:"bench"`
}

// BenchParameters of the trial runner
type BenchParameters struct {
	//number of generated sequences. default: 10
	Trials int `toml:"trials" yaml:"trials"`

	//length of every sequence. default: 1000
	Length int `toml:"length" yaml:"length"`

	//exclusive upper bound of values. default: 1000
	Max int64 `toml:"max" yaml:"max"`

	//size of the worker pool. default: 4
	Workers int `toml:"workers" yaml:"workers"`
}

// NewParameters returns parameters whose length and bound are still unset.
func NewParameters() *Parameters {
	return &Parameters{Length: UnsetLength}
}

// SetDefaultValues fills the fields left empty by the configuration file.
func (p *Parameters) SetDefaultValues() {
	if p.Algorithm == "" {
		p.Algorithm = defaultAlgorithm
	}
	if p.Log.Level == "" {
		p.Log.Level = defaultLogLevel
	}
	if p.Log.Format == "" {
		p.Log.Format = defaultLogFormat
	}
	if p.Bench.Trials == 0 {
		p.Bench.Trials = defaultBenchTrials
	}
	if p.Bench.Length == 0 {
		p.Bench.Length = defaultBenchLength
	}
	if p.Bench.Max == 0 {
		p.Bench.Max = defaultBenchMax
	}
	if p.Bench.Workers == 0 {
		p.Bench.Workers = defaultBenchWorkers
	}
}

// NeedsLength reports whether the operator still has to supply a length.
func (p *Parameters) NeedsLength() bool {
	return p.Input == "" && p.Length < 0
}

// NeedsMax reports whether the operator still has to supply a bound.
func (p *Parameters) NeedsMax() bool {
	return p.Input == "" && p.Max <= 0
}

// Validate checks the parameters of a sorting run.
func (p *Parameters) Validate(ctx context.Context) error {
	if _, err := sort.ParseAlgorithm(p.Algorithm); err != nil {
		return err
	}
	if p.Input != "" {
		return nil
	}
	if p.Length < 0 {
		return moerr.NewInvalidInput(ctx, "sequence length %d is negative", p.Length)
	}
	if p.Length > sequence.MaxLength {
		return moerr.NewInvalidInput(ctx, "sequence length %d exceeds %d", p.Length, sequence.MaxLength)
	}
	if p.Max <= 0 {
		return moerr.NewInvalidInput(ctx, "max %d must be positive", p.Max)
	}
	return nil
}

// ValidateBench checks the parameters of the trial runner.
func (p *Parameters) ValidateBench(ctx context.Context) error {
	b := p.Bench
	switch {
	case b.Trials <= 0:
		return moerr.NewBadConfig(ctx, "bench trials %d must be positive", b.Trials)
	case b.Trials > MaxBenchTrials:
		return moerr.NewBadConfig(ctx, "bench trials %d exceeds %d", b.Trials, MaxBenchTrials)
	case b.Length < 0:
		return moerr.NewBadConfig(ctx, "bench length %d is negative", b.Length)
	case b.Length > sequence.MaxLength:
		return moerr.NewBadConfig(ctx, "bench length %d exceeds %d", b.Length, sequence.MaxLength)
	case b.Max <= 0:
		return moerr.NewBadConfig(ctx, "bench max %d must be positive", b.Max)
	case b.Workers <= 0:
		return moerr.NewBadConfig(ctx, "bench workers %d must be positive", b.Workers)
	}
	return nil
}

// LoadParametersFromFile decodes a toml or yaml file into params.
// Keys missing from the file keep their current values.
func LoadParametersFromFile(ctx context.Context, path string, params *Parameters) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return moerr.NewFileNotFound(ctx, path)
		}
		return moerr.ConvertGoError(ctx, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err = toml.Decode(string(data), params); err != nil {
			return moerr.NewBadConfig(ctx, "decode %s: %v", path, err)
		}
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, params); err != nil {
			return moerr.NewBadConfig(ctx, "decode %s: %v", path, err)
		}
	default:
		return moerr.NewBadConfig(ctx, "unsupported configuration file %s", path)
	}
	return nil
}

type ParameterUnit struct {
	SV *Parameters
}

func NewParameterUnit(sv *Parameters) *ParameterUnit {
	return &ParameterUnit{
		SV: sv,
	}
}

// WithParameterUnit stores pu in ctx.
func WithParameterUnit(ctx context.Context, pu *ParameterUnit) context.Context {
	return context.WithValue(ctx, ParameterUnitKey, pu)
}

// GetParameterUnit gets the configuration from the context.
func GetParameterUnit(ctx context.Context) *ParameterUnit {
	pu, _ := ctx.Value(ParameterUnitKey).(*ParameterUnit)
	if pu == nil {
		panic("parameter unit is invalid")
	}
	return pu
}
