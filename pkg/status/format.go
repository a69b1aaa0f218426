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
	"fmt"
)

// FileFormatter defines how results and progress should be formatted
type FileFormatter interface {
	// FormatResult formats the outcome of one file
	FormatResult(r Result) string

	// FormatProgress formats a progress message; total < 0 means unknown
	FormatProgress(current, total int) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatResult formats a result with emojis
func (f *DefaultFileFormatter) FormatResult(r Result) string {
	var msg string
	switch r.Outcome {
	case OutcomeReduced:
		msg = fmt.Sprintf("🗜️  Reduced %s (%s -> %s)", r.RelPath, HumanSize(r.SizeBefore), HumanSize(r.SizeAfter))
	case OutcomeCopied:
		msg = fmt.Sprintf("📋 Copied %s", r.RelPath)
	case OutcomeSkipped:
		msg = fmt.Sprintf("⏭️  Skipped %s", r.RelPath)
	case OutcomeFailed:
		msg = fmt.Sprintf("❌ Failed %s", r.RelPath)
	default:
		return fmt.Sprintf("❔ %s %s", r.Outcome, r.RelPath)
	}
	if r.Reason != "" {
		msg += ": " + r.Reason
	}
	return msg
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	if current < 0 {
		current = 0
	}
	if total < 0 {
		return fmt.Sprintf("⏳ Processed: %d", current)
	}

	var percentage float64
	if total > 0 {
		percentage = float64(current) / float64(total) * 100
		if percentage > 100 {
			percentage = 100
		}
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// HumanSize renders a byte count with a binary unit
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit && n > -unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for abs(n)/div >= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
