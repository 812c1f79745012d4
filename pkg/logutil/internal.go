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

package logutil

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/matrixorigin/matrixsort/pkg/common/moerr"
)

// SetupMOLogger sets up the global logger for the process.
func SetupMOLogger(conf *LogConfig) {
	logger, err := initMOLogger(conf)
	if err != nil {
		panic(err)
	}
	replaceGlobalLogger(logger)
	Debugf("MO logger init, level=%s, log file=%s", conf.Level, conf.Filename)
}

// initMOLogger tees every sink of cfg into one core.
func initMOLogger(cfg *LogConfig) (*zap.Logger, error) {
	level := cfg.getLevel()
	sinks := cfg.getSinks()
	cores := make([]zapcore.Core, 0, len(sinks))
	for _, sink := range sinks {
		cores = append(cores, zapcore.NewCore(sink.enc, sink.out, level))
	}
	return zap.New(zapcore.NewTee(cores...), cfg.getOptions()...), nil
}

// global zap logger for MO server.
var _globalLogger atomic.Value
var _skip1Logger atomic.Value

// init initializes a default zap logger before set up logger.
func init() {
	SetLogReporter(&TraceReporter{noopContextField})
	logger, _ := initMOLogger(&LogConfig{Level: "info", Format: "console"})
	replaceGlobalLogger(logger)
}

// GetGlobalLogger returns the current global zap Logger.
func GetGlobalLogger() *zap.Logger {
	return _globalLogger.Load().(*zap.Logger)
}

func getLoggerWithSkip() *zap.Logger {
	return _skip1Logger.Load().(*zap.Logger)
}

// replaceGlobalLogger replaces the current global zap Logger.
func replaceGlobalLogger(logger *zap.Logger) {
	_globalLogger.Store(logger)
	_skip1Logger.Store(logger.WithOptions(zap.AddCallerSkip(1)))
}

// LogConfig serializes log related config in toml/json.
type LogConfig struct {
	Level      string `toml:"level" yaml:"level" user_setting:"basic"`
	Format     string `toml:"format" yaml:"format" user_setting:"basic"`
	Filename   string `toml:"filename" yaml:"filename" user_setting:"basic"`
	MaxSize    int    `toml:"max-size" yaml:"max-size"`
	MaxDays    int    `toml:"max-days" yaml:"max-days"`
	MaxBackups int    `toml:"max-backups" yaml:"max-backups"`
	// StacktraceLevel is the level at which zap attaches stack traces, default fatal.
	StacktraceLevel string `toml:"stacktrace-level" yaml:"stacktrace-level"`
}

// Validate reports a level or format SetupMOLogger would reject.
func (cfg *LogConfig) Validate(ctx context.Context) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
		return moerr.NewBadConfig(ctx, "unknown log level %q", cfg.Level)
	}
	switch cfg.Format {
	case "", "json", "console":
	default:
		return moerr.NewBadConfig(ctx, "unsupported log format %q", cfg.Format)
	}
	return nil
}

func (cfg *LogConfig) getSyncer() zapcore.WriteSyncer {
	if cfg.Filename == "" || cfg.Filename == "console" {
		return getConsoleSyncer()
	}

	if stat, err := os.Stat(cfg.Filename); err == nil {
		if stat.IsDir() {
			panic(moerr.NewInternalError(context.Background(), "log file can't be a directory: %s", cfg.Filename))
		}
	}
	if cfg.MaxSize == 0 {
		cfg.MaxSize = 512
	}
	// add lumberjack logger
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxDays,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
		Compress:   false,
	})
}

func (cfg *LogConfig) getEncoder() zapcore.Encoder {
	return getLoggerEncoder(cfg.Format)
}

func (cfg *LogConfig) getLevel() zap.AtomicLevel {
	level := zap.NewAtomicLevel()
	err := level.UnmarshalText([]byte(cfg.Level))
	if err != nil {
		panic(err)
	}
	return level
}

func (cfg *LogConfig) getStacktraceLevel() zapcore.Level {
	if cfg.StacktraceLevel == "" {
		return zapcore.FatalLevel
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.StacktraceLevel)); err != nil {
		panic(err)
	}
	return lvl
}

// getSinks returns the configured sink. A log file is also echoed to the
// console.
func (cfg *LogConfig) getSinks() (sinks []ZapSink) {
	encoder, syncer := cfg.getEncoder(), cfg.getSyncer()
	sinks = append(sinks, ZapSink{encoder, syncer})
	if cfg.Filename != "" && cfg.Filename != "console" {
		sinks = append(sinks, ZapSink{getLoggerEncoder(cfg.Format), getConsoleSyncer()})
	}
	return
}

func (cfg *LogConfig) getOptions() []zap.Option {
	return []zap.Option{zap.AddStacktrace(cfg.getStacktraceLevel()), zap.AddCaller()}
}

// ZapSink pairs an encoder with the syncer it writes to.
type ZapSink struct {
	enc zapcore.Encoder
	out zapcore.WriteSyncer
}

func getLoggerEncoder(format string) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "name",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000 -0700"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	switch format {
	case "json", "":
		if format == "" {
			encoderConfig.EncodeDuration = zapcore.NanosDurationEncoder
		}
		return zapcore.NewJSONEncoder(encoderConfig)
	case "console":
		return zapcore.NewConsoleEncoder(encoderConfig)
	default:
		panic(moerr.NewInternalError(context.Background(), "unsupported log format: %s", format))
	}
}

// getConsoleSyncer writes to stderr, keeping stdout for command output.
func getConsoleSyncer() zapcore.WriteSyncer {
	syncer, _, err := zap.Open("stderr")
	if err != nil {
		panic(err)
	}
	return syncer
}

// TraceReporter carries the hook that turns a context into log fields.
type TraceReporter struct {
	ContextField ContextFieldFunc
}

// ContextFieldFunc extracts a zap field from a context.
type ContextFieldFunc func(context.Context) zap.Field

var gLogConfigs atomic.Value

// SetLogReporter replaces the context field hook.
func SetLogReporter(r *TraceReporter) {
	if r.ContextField != nil {
		gLogConfigs.Store(r.ContextField)
	}
}

// GetContextFieldFunc returns the context field hook.
func GetContextFieldFunc() ContextFieldFunc {
	return gLogConfigs.Load().(ContextFieldFunc)
}

type runKey struct{}

// ContextWithRun tags ctx with the id of the run that owns it.
func ContextWithRun(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runKey{}, runID)
}

// RunFromContext returns the run id stored by ContextWithRun.
func RunFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runKey{}).(string)
	return id, ok
}

func noopContextField(ctx context.Context) zap.Field {
	if ctx != nil {
		if id, ok := RunFromContext(ctx); ok {
			return zap.String("run", id)
		}
	}
	return zap.Skip()
}

// ContextFields returns a zap option attaching the context's fields.
func ContextFields() func(ctx context.Context) zap.Option {
	return func(ctx context.Context) zap.Option {
		return zap.Fields(GetContextFieldFunc()(ctx))
	}
}

// Elapsed is a zap field holding a duration rounded to microseconds.
func Elapsed(d time.Duration) zap.Field {
	return zap.Duration("elapsed", d.Round(time.Microsecond))
}
