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

package config

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// SizeClass selects the minimum file size worth reducing
type SizeClass string

const (
	SizeDefault SizeClass = ""
	SizeSmall   SizeClass = "s"
	SizeMedium  SizeClass = "m"
	SizeLarge   SizeClass = "l"
)

// Thresholds in bytes
const (
	ThresholdSmall  int64 = 102400
	ThresholdMedium int64 = 512000
	ThresholdLarge  int64 = 1048576
)

// ParseSizeClass parses s, m or l in any case. An empty string selects the default.
func ParseSizeClass(s string) (SizeClass, error) {
	switch SizeClass(strings.ToLower(strings.TrimSpace(s))) {
	case SizeDefault:
		return SizeDefault, nil
	case SizeSmall:
		return SizeSmall, nil
	case SizeMedium:
		return SizeMedium, nil
	case SizeLarge:
		return SizeLarge, nil
	default:
		return SizeDefault, errors.Errorf("unknown size %q, want one of s, m, l", s)
	}
}

// Threshold returns the byte count for the class, 0 meaning always process
func (c SizeClass) Threshold() int64 {
	switch c {
	case SizeSmall:
		return ThresholdSmall
	case SizeMedium:
		return ThresholdMedium
	case SizeLarge:
		return ThresholdLarge
	default:
		return 0
	}
}

func (c SizeClass) String() string {
	if c == SizeDefault {
		return "default"
	}
	return strings.ToUpper(string(c))
}
