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
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

// 🧪 TestResultFormatting tests result message formatting
func TestResultFormatting(t *testing.T) {
	tests := []struct {
		name        string
		result      Result
		want        string
		description string
	}{
		{
			name:        "reduced_file",
			result:      Result{RelPath: "a.jpg", Outcome: OutcomeReduced, SizeBefore: 2048, SizeAfter: 1024},
			want:        "🗜️  Reduced a.jpg (2.0 KiB -> 1.0 KiB)",
			description: "should show sizes for reduced files",
		},
		{
			name:        "copied_file",
			result:      Result{RelPath: "notes.txt", Outcome: OutcomeCopied, Reason: "not an image"},
			want:        "📋 Copied notes.txt: not an image",
			description: "should append the reason",
		},
		{
			name:        "skipped_file",
			result:      Result{RelPath: "tiny.png", Outcome: OutcomeSkipped},
			want:        "⏭️  Skipped tiny.png",
			description: "should show skip symbol",
		},
		{
			name:        "failed_file",
			result:      Result{RelPath: "x.gif", Outcome: OutcomeFailed, Reason: "disk full"},
			want:        "❌ Failed x.gif: disk full",
			description: "should show failure symbol",
		},
		{
			name:        "unknown_outcome",
			result:      Result{RelPath: "odd"},
			want:        "❔ unknown odd",
			description: "should not hide unknown outcomes",
		},
	}

	formatter := NewDefaultFileFormatter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatter.FormatResult(tt.result)
			assert.Equal(t, tt.want, got, tt.description)
		})
	}
}

// 🧪 TestProgressFormatting tests progress message formatting
func TestProgressFormatting(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		total    int
		expected string
	}{
		{name: "zero_progress", current: 0, total: 10, expected: "⏳ Progress: 0/10 (0%)"},
		{name: "half_progress", current: 5, total: 10, expected: "⏳ Progress: 5/10 (50%)"},
		{name: "complete", current: 10, total: 10, expected: "✅ Progress: 10/10 (100%)"},
		{name: "zero_total", current: 0, total: 0, expected: "✅ Progress: 0/0 (0%)"},
		{name: "current_exceeds_total", current: 15, total: 10, expected: "✅ Progress: 15/10 (100%)"},
		{name: "unknown_total", current: 7, total: -1, expected: "⏳ Processed: 7"},
		{name: "negative_current", current: -3, total: -1, expected: "⏳ Processed: 0"},
	}

	formatter := NewDefaultFileFormatter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatter.FormatProgress(tt.current, tt.total))
		})
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{-2048, "-2.0 KiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanSize(tt.in), "HumanSize(%d)", tt.in)
	}
}

func TestFormatLine(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{
			name:   "reduced",
			result: Result{RelPath: "a.jpg", Outcome: OutcomeReduced, SizeBefore: 2048, SizeAfter: 100},
			want:   "    ✓ a.jpg                               reduced    2.0 KiB -> 100 B      ",
		},
		{
			name:   "copied_with_reason",
			result: Result{RelPath: "b.txt", Outcome: OutcomeCopied, SizeBefore: 3, Reason: "below threshold"},
			want:   "    • b.txt                               copied     3 B                   below threshold",
		},
		{
			name:   "failed",
			result: Result{RelPath: "c.png", Outcome: OutcomeFailed, SizeBefore: 10},
			want:   "    ✗ c.png                               failed     10 B                  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLine(tt.result))
		})
	}
}
