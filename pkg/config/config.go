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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultQuality is the encoder quality used when none is configured.
	// Values outside 0-100 are accepted and clamped by the encoder.
	DefaultQuality = 75
)

// ErrInvalidConfig is returned when a configuration fails validation
var ErrInvalidConfig = errors.Base("invalid config")

// 🔌 Parser is the interface for options file parsers
type Parser interface {
	// 📝 Parse decodes data on top of the given config
	Parse(ctx context.Context, data []byte, cfg *Config) error

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config holds everything a reduction run needs
type Config struct {
	Source      string    `json:"source,omitempty" yaml:"source,omitempty"`
	Destination string    `json:"destination,omitempty" yaml:"destination,omitempty"`
	Recursive   bool      `json:"recursive,omitempty" yaml:"recursive,omitempty"`
	Resize      bool      `json:"resize,omitempty" yaml:"resize,omitempty"`
	Quality     int       `json:"quality,omitempty" yaml:"quality,omitempty"`
	Size        SizeClass `json:"size,omitempty" yaml:"size,omitempty"`
	Exclude     []string  `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Report      string    `json:"report,omitempty" yaml:"report,omitempty"`
}

// 🏭 Default returns a config with default values set
func Default() *Config {
	return &Config{
		Quality: DefaultQuality,
		Size:    SizeDefault,
	}
}

// 🎯 Load reads an options file on top of the defaults
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading options file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading options file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg := Default()
	if err := p.Parse(ctx, data, cfg); err != nil {
		return nil, errors.Errorf("parsing options file: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the config and normalizes its paths
func (cfg *Config) Validate() error {
	if cfg.Source == "" {
		return errors.Errorf("%w: source is required", ErrInvalidConfig)
	}
	if cfg.Destination == "" {
		return errors.Errorf("%w: destination is required", ErrInvalidConfig)
	}

	size, err := ParseSizeClass(string(cfg.Size))
	if err != nil {
		return errors.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	cfg.Size = size

	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("%w: bad exclude pattern %q", ErrInvalidConfig, pattern)
		}
	}

	cfg.Source = filepath.Clean(cfg.Source)
	cfg.Destination = filepath.Clean(cfg.Destination)

	return nil
}

// MinSize is the smallest file size, in bytes, that gets transformed
func (cfg *Config) MinSize() int64 {
	return cfg.Size.Threshold()
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	var flags []string
	if cfg.Recursive {
		flags = append(flags, "recursive")
	}
	if cfg.Resize {
		flags = append(flags, "resize")
	}
	return fmt.Sprintf("%s -> %s (quality=%d min=%d %s)",
		cfg.Source, cfg.Destination, cfg.Quality, cfg.MinSize(), strings.Join(flags, ","))
}
