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

package log

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/imgreduce/pkg/status"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_result",
			op: func(t *testing.T, logger *Logger) {
				logger.LogResult(context.Background(), status.Result{
					RelPath:    "photo.jpg",
					Outcome:    status.OutcomeReduced,
					SizeBefore: 4096,
					SizeAfter:  1024,
				})
			},
			wantLogs: []string{
				"✓ photo.jpg                           reduced    4.0 KiB -> 1.0 KiB",
			},
		},
		{
			name: "log_ignored_result",
			op: func(t *testing.T, logger *Logger) {
				logger.LogResult(context.Background(), status.Result{RelPath: "sub", Outcome: status.OutcomeIgnored})
				logger.Info("after")
			},
			wantLogs: []string{
				"ℹ️  after",
			},
		},
		{
			name: "log_failed_result",
			op: func(t *testing.T, logger *Logger) {
				logger.LogResult(context.Background(), status.Result{
					RelPath:    "broken.png",
					Outcome:    status.OutcomeFailed,
					SizeBefore: 12,
					Reason:     "writing output",
					Err:        errors.New("disk full"),
				})
			},
			wantLogs: []string{
				"✗ broken.png                          failed     12 B                  writing output",
			},
		},
		{
			name: "log_run",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					Source:      "/tmp/photos",
					Destination: "/tmp/small",
					Mode:        "mirrored",
				})
				logger.EndRun(context.Background())
			},
			wantLogs: []string{
				"[reducing /tmp/photos]",
				"◆ /tmp/small • mirrored",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"✅ success test",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create buffer for console output
			buf := &bytes.Buffer{}
			logger := NewWithZerolog(buf, zerolog.New(zerolog.NewTestWriter(t)))

			// Perform operation
			tt.op(t, logger)

			// Check output
			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestEndRunWithoutStart(t *testing.T) {
	logger := NewWithZerolog(io.Discard, zerolog.Nop())
	assert.Zero(t, logger.EndRun(context.Background()), "ending a run that never started should be a no-op")
}

func TestSummary(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	buf := &bytes.Buffer{}
	logger := NewWithZerolog(buf, zerolog.Nop())

	err := logger.Summary(status.Summary{Reduced: 3, Copied: 2, Skipped: 1, Failed: 0, BytesSaved: 2048})
	require.NoError(t, err)

	output := buf.String()
	for _, want := range []string{"outcome", "reduced", "3", "copied", "2", "skipped", "failed", "2.0 KiB"} {
		assert.Contains(t, output, want, "summary should mention %q", want)
	}
}
