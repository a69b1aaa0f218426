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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/imgreduce/pkg/codec"
	"github.com/walteh/imgreduce/pkg/config"
	"github.com/walteh/imgreduce/pkg/log"
	"github.com/walteh/imgreduce/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎮 Operation is a unit of work the runner can execute
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains everything an operation needs
type Options struct {
	// Config is the validated run configuration
	Config *config.Config
	// Codec performs the image transform
	Codec codec.Transformer
	// Files performs every file system write
	Files status.FileManager
	// StatusMgr records per-file results
	StatusMgr *status.Manager
	// Console prints per-file outcomes, optional
	Console *log.Logger
	// Logger receives structured events
	Logger *zerolog.Logger
}

// BaseOperation carries the shared options of every operation
type BaseOperation struct {
	Options
}

// 🏭 NewBaseOperation fills in defaults for missing options
func NewBaseOperation(opts Options) BaseOperation {
	if opts.Codec == nil {
		opts.Codec = codec.New()
	}
	if opts.Files == nil {
		opts.Files = status.NewFileManager()
	}
	if opts.Logger == nil {
		l := zerolog.Nop()
		opts.Logger = &l
	}
	if opts.StatusMgr == nil {
		opts.StatusMgr = status.NewManager(opts.Logger, nil)
	}
	return BaseOperation{Options: opts}
}

func (op *BaseOperation) validate() error {
	if op.Config == nil {
		return errors.Errorf("config is required")
	}
	if err := op.Config.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}
	return nil
}
