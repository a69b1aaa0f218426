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
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/imgreduce/pkg/codec"
	"github.com/walteh/imgreduce/pkg/config"
	"github.com/walteh/imgreduce/pkg/status"
	"github.com/walteh/imgreduce/pkg/walk"
)

// Reasons attached to results
const (
	ReasonBelowThreshold = "below threshold"
	ReasonExcluded       = "excluded"
	ReasonNotReduced     = "not reduced"
	ReasonSymlink        = "symbolic link"
)

// ⚖️ Policy decides, per file, whether to transform, copy or skip it
type Policy struct {
	resolver *Resolver
	codec    codec.Transformer
	files    status.FileManager
	opts     codec.Options
	minSize  int64
	exclude  []string
}

// 🏭 NewPolicy builds a policy from a validated config
func NewPolicy(cfg *config.Config, resolver *Resolver, c codec.Transformer, files status.FileManager) *Policy {
	return &Policy{
		resolver: resolver,
		codec:    c,
		files:    files,
		opts:     TransformOptions(cfg),
		minSize:  cfg.MinSize(),
		exclude:  cfg.Exclude,
	}
}

// TransformOptions extracts the codec options from cfg
func TransformOptions(cfg *config.Config) codec.Options {
	return codec.Options{
		Quality: cfg.Quality,
		Resize:  cfg.Resize,
	}
}

// 📄 Process runs one entry through the policy. It never returns an error:
// every failure is folded into the result.
func (p *Policy) Process(ctx context.Context, e walk.Entry) status.Result {
	logger := zerolog.Ctx(ctx).With().Str("file", e.RelPath).Logger()

	res := status.Result{
		Path:       e.Path,
		RelPath:    e.RelPath,
		SizeBefore: e.Size,
	}

	if e.Err != nil {
		return failed(res, "reading entry", e.Err)
	}
	if !e.IsRegular() || p.resolver.Contains(e) {
		res.Outcome = status.OutcomeIgnored
		return res
	}

	res.Output = p.resolver.Resolve(e)

	// writing through a link in place would replace it, and its target is
	// reduced under its own path
	if e.Link && p.resolver.Mode() == ModeInPlace {
		res.Outcome = status.OutcomeSkipped
		res.Reason = ReasonSymlink
		res.SizeAfter = e.Size
		return res
	}

	if p.excluded(e.RelPath) {
		logger.Debug().Msg("excluded by pattern")
		return p.passThrough(ctx, e, res, ReasonExcluded)
	}
	if e.Size < p.minSize {
		logger.Debug().Int64("size", e.Size).Int64("min_size", p.minSize).Msg("below threshold")
		return p.passThrough(ctx, e, res, ReasonBelowThreshold)
	}

	data, err := p.files.ReadFile(ctx, e.Path)
	if err != nil {
		return p.fallback(ctx, e, res, err)
	}

	reduced, err := p.codec.Transform(ctx, data, p.opts)
	if err != nil {
		logger.Debug().Err(err).Msg("transform failed")
		return p.fallback(ctx, e, res, err)
	}

	if err := p.resolver.Prepare(ctx, res.Output); err != nil {
		return failed(res, "creating parent directories", err)
	}
	if err := p.files.WriteFileAtomic(ctx, res.Output, reduced, e.Mode); err != nil {
		return failed(res, "writing output", err)
	}

	res.Outcome = status.OutcomeReduced
	res.SizeAfter = int64(len(reduced))
	return res
}

// passThrough handles files that are not worth transforming
func (p *Policy) passThrough(ctx context.Context, e walk.Entry, res status.Result, reason string) status.Result {
	if p.resolver.Mode() == ModeInPlace {
		res.Outcome = status.OutcomeSkipped
		res.Reason = reason
		res.SizeAfter = e.Size
		return res
	}
	return p.copyAsIs(ctx, e, res, reason)
}

// fallback handles a failed transform: copy when mirrored, leave alone in place
func (p *Policy) fallback(ctx context.Context, e walk.Entry, res status.Result, cause error) status.Result {
	reason := fmt.Sprintf("%s: %v", ReasonNotReduced, cause)
	if p.resolver.Mode() == ModeInPlace {
		res.Outcome = status.OutcomeSkipped
		res.Reason = reason
		res.SizeAfter = e.Size
		res.Err = cause
		return res
	}
	res.Err = cause
	return p.copyAsIs(ctx, e, res, reason)
}

func (p *Policy) copyAsIs(ctx context.Context, e walk.Entry, res status.Result, reason string) status.Result {
	if err := p.resolver.Prepare(ctx, res.Output); err != nil {
		return failed(res, "creating parent directories", err)
	}
	if err := p.files.CopyFile(ctx, e.Path, res.Output); err != nil {
		return failed(res, "copying original", err)
	}
	res.Outcome = status.OutcomeCopied
	res.Reason = reason
	res.SizeAfter = e.Size
	return res
}

func (p *Policy) excluded(relPath string) bool {
	for _, pattern := range p.exclude {
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
	}
	return false
}

func failed(res status.Result, reason string, err error) status.Result {
	res.Outcome = status.OutcomeFailed
	res.Reason = fmt.Sprintf("%s: %v", reason, err)
	res.Err = err
	return res
}
