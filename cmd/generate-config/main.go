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
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matrixorigin/matrixsort/pkg/common/moerr"
	"github.com/matrixorigin/matrixsort/pkg/config"
)

func main() {
	argCnt := len(os.Args)
	if argCnt != 2 {
		fmt.Printf("usage: %s outputFile(.toml|.yaml)\n", os.Args[0])
		os.Exit(-1)
	}
	if err := generate(context.Background(), os.Args[1]); err != nil {
		fmt.Printf("generate configuration failed. error:%v \n", err)
		os.Exit(-1)
	}
}

// generate writes a configuration file holding every default value.
// The format follows the file extension.
func generate(ctx context.Context, path string) error {
	params := config.NewParameters()
	params.SetDefaultValues()

	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(params); err != nil {
			return moerr.ConvertGoError(ctx, err)
		}
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(params); err != nil {
			return moerr.ConvertGoError(ctx, err)
		}
		if err := enc.Close(); err != nil {
			return moerr.ConvertGoError(ctx, err)
		}
	default:
		return moerr.NewBadConfig(ctx, "unsupported configuration file %s", path)
	}
	return moerr.ConvertGoError(ctx, os.WriteFile(path, buf.Bytes(), 0644))
}
