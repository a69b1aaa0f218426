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
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 35 // Base width for filename
	outcomeWidth = 10 // Width for outcome text
	sizeWidth    = 22 // Width for size text
)

// 🎯 FormatLine formats a result as an aligned console line
func FormatLine(r Result) string {
	var prefix string
	switch r.Outcome {
	case OutcomeReduced:
		prefix = color.GreenString("✓")
	case OutcomeCopied:
		prefix = color.CyanString("•")
	case OutcomeSkipped:
		prefix = color.HiBlackString("-")
	case OutcomeFailed:
		prefix = color.RedString("✗")
	default:
		prefix = color.YellowString("?")
	}

	var size string
	switch r.Outcome {
	case OutcomeReduced:
		size = fmt.Sprintf("%s -> %s", HumanSize(r.SizeBefore), HumanSize(r.SizeAfter))
	default:
		size = HumanSize(r.SizeBefore)
	}

	line := fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		fmt.Sprintf("%-*s", nameWidth, r.RelPath),
		fmt.Sprintf("%-*s", outcomeWidth, r.Outcome),
		fmt.Sprintf("%-*s", sizeWidth, size),
	)
	if r.Reason != "" {
		line += color.New(color.Faint).Sprint(r.Reason)
	}
	return line
}
