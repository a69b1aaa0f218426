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

package status

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// 📊 Outcome is what happened to a single file
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeIgnored         // Not a regular file, never reported
	OutcomeReduced         // Transformed bytes were written
	OutcomeCopied          // Original bytes were copied verbatim
	OutcomeSkipped         // Nothing was written
	OutcomeFailed          // Copy or write failed
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeReduced:
		return "reduced"
	case OutcomeCopied:
		return "copied"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText lets reports carry the outcome name
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// 📄 Result describes the outcome for one file
type Result struct {
	Path       string  `json:"path" yaml:"path"`
	RelPath    string  `json:"rel_path" yaml:"rel_path"`
	Output     string  `json:"output,omitempty" yaml:"output,omitempty"`
	Outcome    Outcome `json:"outcome" yaml:"outcome"`
	Reason     string  `json:"reason,omitempty" yaml:"reason,omitempty"`
	SizeBefore int64   `json:"size_before" yaml:"size_before"`
	SizeAfter  int64   `json:"size_after" yaml:"size_after"`
	Err        error   `json:"-" yaml:"-"`
}

// Reportable reports whether the result should be shown and counted
func (r Result) Reportable() bool {
	return r.Outcome != OutcomeIgnored && r.Outcome != OutcomeUnknown
}

// Saved is the number of bytes the file shrank by, negative if it grew
func (r Result) Saved() int64 {
	if r.Outcome != OutcomeReduced {
		return 0
	}
	return r.SizeBefore - r.SizeAfter
}

// 📈 Summary tallies the results of a run
type Summary struct {
	Reduced    int
	Copied     int
	Skipped    int
	Failed     int
	BytesSaved int64
}

// Total is the number of reported files
func (s Summary) Total() int {
	return s.Reduced + s.Copied + s.Skipped + s.Failed
}

// 🔧 Manager records results and reports progress
type Manager struct {
	logger    *zerolog.Logger
	formatter FileFormatter

	mu      sync.RWMutex
	results map[string]Result
	order   []string
}

// 🏭 NewManager creates a new status manager
func NewManager(logger *zerolog.Logger, formatter FileFormatter) *Manager {
	if formatter == nil {
		formatter = NewDefaultFileFormatter()
	}
	return &Manager{
		logger:    logger,
		formatter: formatter,
		results:   make(map[string]Result),
	}
}

// TrackResult records a result. Results that are not reportable are dropped.
func (m *Manager) TrackResult(ctx context.Context, r Result) {
	if !r.Reportable() {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.results[r.RelPath]; !ok {
		m.order = append(m.order, r.RelPath)
	}
	m.results[r.RelPath] = r

	event := m.logger.Info()
	if r.Outcome == OutcomeFailed {
		event = m.logger.Warn().Err(r.Err)
	}
	event.
		Str("path", r.RelPath).
		Str("outcome", r.Outcome.String()).
		Int64("size_before", r.SizeBefore).
		Int64("size_after", r.SizeAfter).
		Msg(m.formatter.FormatResult(r))
}

// Results returns every recorded result in the order it was tracked
func (m *Manager) Results(ctx context.Context) []Result {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Result, 0, len(m.order))
	for _, p := range m.order {
		out = append(out, m.results[p])
	}
	return out
}

// SortedResults returns every recorded result ordered by relative path
func (m *Manager) SortedResults(ctx context.Context) []Result {
	out := m.Results(ctx)
	sort.Slice(out, func(i, j int) bool { return out[i].RelPath < out[j].RelPath })
	return out
}

// Summary tallies the recorded results
func (m *Manager) Summary(ctx context.Context) Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var s Summary
	for _, r := range m.results {
		switch r.Outcome {
		case OutcomeReduced:
			s.Reduced++
			s.BytesSaved += r.Saved()
		case OutcomeCopied:
			s.Copied++
		case OutcomeSkipped:
			s.Skipped++
		case OutcomeFailed:
			s.Failed++
		}
	}
	return s
}

// UpdateProgress logs how many files have been processed so far
func (m *Manager) UpdateProgress(ctx context.Context, processed int) {
	m.logger.Debug().
		Int("processed", processed).
		Msg(m.formatter.FormatProgress(processed, -1))
}

// FinishOperation logs the final tally
func (m *Manager) FinishOperation(ctx context.Context) {
	s := m.Summary(ctx)
	m.logger.Info().
		Int("reduced", s.Reduced).
		Int("copied", s.Copied).
		Int("skipped", s.Skipped).
		Int("failed", s.Failed).
		Int64("bytes_saved", s.BytesSaved).
		Msg(m.formatter.FormatProgress(s.Total(), s.Total()))
}
