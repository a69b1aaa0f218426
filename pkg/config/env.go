// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gitlab.com/tozd/go/errors"
)

// Environment variables read by ApplyEnv
const (
	EnvQuality   = "IMGREDUCE_QUALITY"
	EnvSize      = "IMGREDUCE_SIZE"
	EnvRecursive = "IMGREDUCE_RECURSIVE"
	EnvResize    = "IMGREDUCE_RESIZE"
)

// 🌱 ApplyEnv loads the given dotenv files (missing ones are ignored) and
// overlays IMGREDUCE_* variables onto cfg. Variables already set in the
// process environment take precedence over dotenv values.
func ApplyEnv(cfg *Config, dotenv ...string) error {
	for _, f := range dotenv {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Errorf("loading %s: %w", f, err)
		}
	}

	if v, ok := os.LookupEnv(EnvQuality); ok {
		q, err := strconv.Atoi(v)
		if err != nil {
			return errors.Errorf("parsing %s: %w", EnvQuality, err)
		}
		cfg.Quality = q
	}
	if v, ok := os.LookupEnv(EnvSize); ok {
		cfg.Size = SizeClass(v)
	}
	if v, ok := os.LookupEnv(EnvRecursive); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Errorf("parsing %s: %w", EnvRecursive, err)
		}
		cfg.Recursive = b
	}
	if v, ok := os.LookupEnv(EnvResize); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Errorf("parsing %s: %w", EnvResize, err)
		}
		cfg.Resize = b
	}

	return nil
}
