// Copyright 2022 Matrix Origin
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
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/lni/goutils/leaktest"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/matrixorigin/matrixsort/pkg/common/moerr"
)

func TestLogConfig_getter(t *testing.T) {
	type fields struct {
		Level      string
		Format     string
		Filename   string
		MaxSize    int
		MaxDays    int
		MaxBackups int

		Entry zapcore.Entry
	}
	tests := []struct {
		name        string
		fields      fields
		wantLevel   zap.AtomicLevel
		wantOpts    []zap.Option
		wantSyncer  zapcore.WriteSyncer
		wantEncoder zapcore.Encoder
		wantSinks   int
	}{
		{
			name: "normal",
			fields: fields{
				Level:      "debug",
				Format:     "console",
				Filename:   "",
				MaxSize:    0,
				MaxDays:    0,
				MaxBackups: 0,

				Entry: zapcore.Entry{Level: zapcore.DebugLevel, Message: "console msg"},
			},
			wantLevel:   zap.NewAtomicLevelAt(zap.DebugLevel),
			wantOpts:    []zap.Option{zap.AddStacktrace(zapcore.FatalLevel), zap.AddCaller()},
			wantSyncer:  getConsoleSyncer(),
			wantEncoder: getLoggerEncoder("console"),
			wantSinks:   1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &LogConfig{
				Level:      tt.fields.Level,
				Format:     tt.fields.Format,
				Filename:   tt.fields.Filename,
				MaxSize:    tt.fields.MaxSize,
				MaxDays:    tt.fields.MaxDays,
				MaxBackups: tt.fields.MaxBackups,
			}
			require.Equal(t, tt.wantLevel.Level(), cfg.getLevel().Level())
			require.Equal(t, len(tt.wantOpts), len(cfg.getOptions()))
			require.Equal(t, tt.wantSyncer, cfg.getSyncer())
			wantMsg, _ := tt.wantEncoder.EncodeEntry(tt.fields.Entry, nil)
			gotMsg, _ := cfg.getEncoder().EncodeEntry(tt.fields.Entry, nil)
			require.Equal(t, wantMsg.String(), gotMsg.String())
			require.Equal(t, tt.wantSinks, len(cfg.getSinks()))
		})
	}
}

func TestSetupMOLogger(t *testing.T) {
	defer leaktest.AfterTest(t)()
	type args struct {
		conf *LogConfig
	}
	tests := []struct {
		name string
		args args
	}{
		{
			name: "console",
			args: args{conf: &LogConfig{
				Level:      zapcore.DebugLevel.String(),
				Format:     "console",
				Filename:   "",
				MaxSize:    512,
				MaxDays:    0,
				MaxBackups: 0,

				StacktraceLevel: "panic",
			}},
		},
		{
			name: "json",
			args: args{conf: &LogConfig{
				Level:      zapcore.DebugLevel.String(),
				Format:     "json",
				Filename:   "",
				MaxSize:    512,
				MaxDays:    0,
				MaxBackups: 0,

				StacktraceLevel: "error",
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetupMOLogger(tt.args.conf)
			require.True(t, GetGlobalLogger().Core().Enabled(zapcore.DebugLevel))
			Info("sorted", zap.Int("length", 6), Elapsed(time.Millisecond))
		})
	}
}

func TestSetupMOLogger_panic(t *testing.T) {
	defer leaktest.AfterTest(t)()
	conf := &LogConfig{
		Level:  zapcore.DebugLevel.String(),
		Format: "panic",
	}
	defer func() {
		if err := recover(); err != nil {
			require.Equal(t, moerr.NewInternalError(context.TODO(), "unsupported log format: %s", conf.Format), err)
		} else {
			t.Errorf("not receive panic")
		}
	}()
	SetupMOLogger(conf)
}

func TestSetupMOLogger_panicDir(t *testing.T) {
	conf := &LogConfig{
		Level:    zapcore.DebugLevel.String(),
		Format:   "json",
		Filename: t.TempDir(),
		MaxSize:  512,
	}
	require.Panics(t, func() {
		SetupMOLogger(conf)
	})
}

func Test_getLoggerEncoder(t *testing.T) {
	defer leaktest.AfterTest(t)()
	type args struct {
		format string
	}
	type fields struct {
		entry  zapcore.Entry
		fields []zap.Field
	}
	tests := []struct {
		name       string
		args       args
		fields     fields
		wantOutput *regexp.Regexp
		foundCnt   int
	}{
		{
			name: "console",
			args: args{
				format: "console",
			},
			fields: fields{
				entry:  zapcore.Entry{Level: zapcore.DebugLevel, Message: "console msg"},
				fields: []zap.Field{},
			},
			// like: 0001/01/01 00:00:00.000000 +0000 DEBUG console msg
			wantOutput: regexp.MustCompile(`\d{4}/\d{2}/\d{2} (\d{2}:{0,1}){3}\.\d{6} \+\d{4}\s+DEBUG\s+console msg`),
			foundCnt:   1,
		},
		{
			name: "json",
			args: args{
				format: "json",
			},
			fields: fields{
				entry:  zapcore.Entry{Level: zapcore.DebugLevel, Message: "json msg"},
				fields: []zap.Field{},
			},
			wantOutput: regexp.MustCompile(`\{.*"level":"DEBUG".*"msg":"json msg".*\}`),
			foundCnt:   1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getLoggerEncoder(tt.args.format)
			require.NotNil(t, got)
			buf, err := got.EncodeEntry(tt.fields.entry, tt.fields.fields)
			require.Nil(t, err)
			t.Logf("encode result: %s", buf.String())
			found := tt.wantOutput.FindAll(buf.Bytes(), -1)
			require.Equal(t, tt.foundCnt, len(found))
		})
	}
}

func TestContextFields(t *testing.T) {
	f := GetContextFieldFunc()(context.Background())
	require.Equal(t, zap.Skip(), f)

	ctx := ContextWithRun(context.Background(), "run-1")
	id, ok := RunFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "run-1", id)
	require.Equal(t, zap.String("run", "run-1"), GetContextFieldFunc()(ctx))
	require.NotNil(t, ContextFields()(ctx))
}

func TestLogConfig_Validate(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, (&LogConfig{Level: "warn", Format: "json"}).Validate(ctx))
	require.NoError(t, (&LogConfig{Level: "info"}).Validate(ctx))

	err := (&LogConfig{Level: "loud", Format: "json"}).Validate(ctx)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrBadConfig))
	err = (&LogConfig{Level: "info", Format: "xml"}).Validate(ctx)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrBadConfig))
}

// capture replaces f with a pipe and returns a func that restores f and
// reports what was written.
func capture(t *testing.T, f **os.File) func() string {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stubs := gostub.Stub(f, w)
	return func() string {
		stubs.Reset()
		require.NoError(t, w.Close())
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		return string(data)
	}
}

func TestConsoleLogsGoToStderr(t *testing.T) {
	defer SetupMOLogger(&LogConfig{Level: "info", Format: "console"})
	stdout := capture(t, &os.Stdout)
	stderr := capture(t, &os.Stderr)

	SetupMOLogger(&LogConfig{Level: "info", Format: "console"})
	Info("sequence sorted", zap.Int("length", 3))

	require.Empty(t, stdout())
	require.Contains(t, stderr(), "sequence sorted")
}

func TestFileLogEchoesToConsole(t *testing.T) {
	defer SetupMOLogger(&LogConfig{Level: "info", Format: "console"})
	path := filepath.Join(t.TempDir(), "mo-sort.log")
	conf := &LogConfig{Level: "info", Format: "json", Filename: path}
	require.Len(t, conf.getSinks(), 2)

	stderr := capture(t, &os.Stderr)
	SetupMOLogger(conf)
	Info("bench finished", zap.Int("trials", 2))

	require.Contains(t, stderr(), "bench finished")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"bench finished"`)
}
