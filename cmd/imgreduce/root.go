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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/imgreduce/pkg/codec"
	"github.com/walteh/imgreduce/pkg/config"
	"github.com/walteh/imgreduce/pkg/log"
	"github.com/walteh/imgreduce/pkg/operation"
	"github.com/walteh/imgreduce/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// dotenvFile is loaded from the working directory when present
const dotenvFile = ".env"

// rootOpts holds the parsed flags of the root command
type rootOpts struct {
	configFile string
	debug      bool
	recursive  bool
	resize     bool
	quality    int
	size       string
	exclude    []string
	report     string
}

func newRootOpts() *rootOpts {
	return &rootOpts{}
}

// 🌳 command builds the root command
func (o *rootOpts) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imgreduce src_dir dst_dir",
		Short: "Reduce the size of every image in a directory",
		Long: `imgreduce re-encodes the images under src_dir with a lower quality and,
optionally, half the dimensions.

Results are written to dst_dir, mirroring the source layout. When dst_dir is
the same directory as src_dir, images are overwritten in place.

Files smaller than the size threshold, and files that cannot be decoded, are
copied unchanged to dst_dir (or left alone when working in place).`,
		Example: `  imgreduce photos photos-small
  imgreduce -r --resize --quality 60 -s m photos photos
  imgreduce -r --exclude 'raw/**' --report run.yaml photos out`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&o.recursive, "recursive", "r", false, "descend into subdirectories")
	flags.BoolVar(&o.resize, "resize", false, "halve image width and height")
	flags.IntVar(&o.quality, "quality", config.DefaultQuality, "JPEG encoder quality, usually 0-95; clamped to 1-100")
	flags.StringVarP(&o.size, "size", "s", "", "minimum file size to reduce: s (100KiB), m (500KiB) or l (1MiB)")
	flags.StringVarP(&o.configFile, "config", "c", "", "options file (.yaml, .json or .hcl)")
	flags.StringArrayVar(&o.exclude, "exclude", nil, "glob of files to pass through unchanged, repeatable")
	flags.StringVar(&o.report, "report", "", "write a run report to this path (.json or .yaml)")
	flags.BoolVarP(&o.debug, "debug", "d", false, "enable debug logging")

	return cmd
}

// 🔧 buildConfig layers defaults, the options file, the environment and
// the flags that were set, in that order
func (o *rootOpts) buildConfig(ctx context.Context, cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()
	if o.configFile != "" {
		loaded, err := config.Load(ctx, o.configFile)
		if err != nil {
			return nil, errors.Errorf("loading options file: %w", err)
		}
		cfg = loaded
	}

	if err := config.ApplyEnv(cfg, dotenvFile); err != nil {
		return nil, errors.Errorf("reading environment: %w", err)
	}

	cfg.Source = args[0]
	cfg.Destination = args[1]

	flags := cmd.Flags()
	if flags.Changed("recursive") {
		cfg.Recursive = o.recursive
	}
	if flags.Changed("resize") {
		cfg.Resize = o.resize
	}
	if flags.Changed("quality") {
		cfg.Quality = o.quality
	}
	if flags.Changed("size") {
		size, err := config.ParseSizeClass(o.size)
		if err != nil {
			return nil, errors.Errorf("parsing --size: %w", err)
		}
		cfg.Size = size
	}
	if flags.Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, o.exclude...)
	}
	if flags.Changed("report") {
		cfg.Report = o.report
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *rootOpts) run(cmd *cobra.Command, args []string) error {
	logger := setupLogging(cmd.ErrOrStderr(), o.debug)
	ctx := logger.WithContext(cmd.Context())

	cfg, err := o.buildConfig(ctx, cmd, args)
	if err != nil {
		return err
	}

	op := operation.NewReduceOperation(operation.Options{
		Config:    cfg,
		Codec:     codec.New(),
		Files:     status.NewFileManager(),
		StatusMgr: status.NewManager(&logger, status.NewDefaultFileFormatter()),
		Console:   log.NewWithZerolog(cmd.OutOrStdout(), logger),
		Logger:    &logger,
	})

	return operation.NewRunner(&logger).Run(ctx, op)
}

// setupLogging configures zerolog based on flags. Per-file lines go to the
// console, so without --debug only warnings reach the structured log.
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}
