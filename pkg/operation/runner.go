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
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 OperationRunner executes operations
type OperationRunner struct {
	logger *zerolog.Logger
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger) *OperationRunner {
	if logger == nil {
		l := zerolog.Nop()
		logger = &l
	}
	return &OperationRunner{
		logger: logger,
	}
}

// 🏃 Run executes an operation and logs how long it took
func (r *OperationRunner) Run(ctx context.Context, op Operation) error {
	start := time.Now()
	err := op.Execute(ctx)
	elapsed := time.Since(start)

	if err != nil {
		r.logger.Error().Err(err).Dur("elapsed", elapsed).Msg("operation failed")
		return errors.Errorf("executing operation: %w", err)
	}

	r.logger.Info().Dur("elapsed", elapsed).Msg("operation complete")
	return nil
}
