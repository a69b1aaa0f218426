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
	"os"
	"time"

	"github.com/walteh/imgreduce/pkg/log"
	"github.com/walteh/imgreduce/pkg/status"
	"github.com/walteh/imgreduce/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewReduceOperation creates a new reduce operation
func NewReduceOperation(opts Options) *ReduceOperation {
	return &ReduceOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

// 🗜️ ReduceOperation walks the source and runs every entry through the policy
type ReduceOperation struct {
	BaseOperation

	mode Mode
}

// Mode returns the mode of the last execution
func (op *ReduceOperation) Mode() Mode {
	return op.mode
}

// 🏃 Execute runs the reduction. Only setup problems are returned as errors;
// per-file failures end up in the status manager.
func (op *ReduceOperation) Execute(ctx context.Context) error {
	if err := op.validate(); err != nil {
		return err
	}
	cfg := op.Config
	started := time.Now()

	// a missing source must abort before the destination is created
	if err := checkSource(cfg.Source); err != nil {
		return err
	}
	if err := PrepareRoot(ctx, op.Files, cfg.Destination); err != nil {
		return err
	}

	resolver, err := NewResolver(cfg.Source, cfg.Destination, op.Files)
	if err != nil {
		return errors.Errorf("creating resolver: %w", err)
	}
	op.mode = resolver.Mode()
	policy := NewPolicy(cfg, resolver, op.Codec, op.Files)

	op.Logger.Debug().Str("config", cfg.String()).Str("mode", op.mode.String()).Msg("starting reduction")
	if op.Console != nil {
		op.Console.StartRun(ctx, log.RunOperation{
			Source:      cfg.Source,
			Destination: cfg.Destination,
			Mode:        op.mode.String(),
		})
		defer op.Console.EndRun(ctx)
	}

	processed := 0
	err = walk.Walk(ctx, cfg.Source, cfg.Recursive, func(ctx context.Context, e walk.Entry) error {
		res := policy.Process(ctx, e)
		if !res.Reportable() {
			return nil
		}

		processed++
		op.StatusMgr.TrackResult(ctx, res)
		if op.Console != nil {
			op.Console.LogResult(ctx, res)
		}
		op.StatusMgr.UpdateProgress(ctx, processed)
		return nil
	})
	if err != nil {
		return errors.Errorf("walking source: %w", err)
	}

	op.StatusMgr.FinishOperation(ctx)
	summary := op.StatusMgr.Summary(ctx)

	if cfg.Report != "" {
		report := status.NewReport(summary, op.StatusMgr.SortedResults(ctx))
		report.Source = cfg.Source
		report.Destination = cfg.Destination
		report.Mode = op.mode.String()
		report.Started = started
		report.Elapsed = time.Since(started).String()
		if err := status.WriteReport(cfg.Report, report); err != nil {
			return errors.Errorf("writing report: %w", err)
		}
	}

	if op.Console != nil {
		op.printFooter(ctx, summary)
	}

	return nil
}

// printFooter closes the console run with the summary table and timing
func (op *ReduceOperation) printFooter(ctx context.Context, summary status.Summary) {
	elapsed := op.Console.EndRun(ctx).Round(time.Millisecond)

	op.Console.LogNewline()
	if err := op.Console.Summary(summary); err != nil {
		op.Logger.Warn().Err(err).Msg("rendering summary")
	}

	if op.Config.Report != "" {
		op.Console.Infof("report written to %s", op.Config.Report)
	}
	if summary.Failed > 0 {
		op.Console.Warningf("%d of %d files failed in %s", summary.Failed, summary.Total(), elapsed)
		return
	}
	op.Console.Successf("reduced %d of %d files in %s, saved %s",
		summary.Reduced, summary.Total(), elapsed, status.HumanSize(summary.BytesSaved))
}

func checkSource(source string) error {
	info, err := os.Stat(source)
	if err != nil {
		return errors.Errorf("%w: %v", walk.ErrRootUnreadable, err)
	}
	if !info.IsDir() {
		return errors.Errorf("%w: %q is not a directory", walk.ErrRootUnreadable, source)
	}
	return nil
}
