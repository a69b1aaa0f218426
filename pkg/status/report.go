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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 📝 Report is the machine-readable record of a run
type Report struct {
	Source      string        `json:"source" yaml:"source"`
	Destination string        `json:"destination" yaml:"destination"`
	Mode        string        `json:"mode" yaml:"mode"`
	Started     time.Time     `json:"started" yaml:"started"`
	Elapsed     string        `json:"elapsed" yaml:"elapsed"`
	Reduced     int           `json:"reduced" yaml:"reduced"`
	Copied      int           `json:"copied" yaml:"copied"`
	Skipped     int           `json:"skipped" yaml:"skipped"`
	Failed      int           `json:"failed" yaml:"failed"`
	BytesSaved  int64         `json:"bytes_saved" yaml:"bytes_saved"`
	Files       []ReportEntry `json:"files" yaml:"files"`
}

// ReportEntry is one file in a Report
type ReportEntry struct {
	Result `yaml:",inline"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewReport builds a report from a summary and the per-file results
func NewReport(summary Summary, results []Result) *Report {
	r := &Report{
		Reduced:    summary.Reduced,
		Copied:     summary.Copied,
		Skipped:    summary.Skipped,
		Failed:     summary.Failed,
		BytesSaved: summary.BytesSaved,
		Files:      make([]ReportEntry, 0, len(results)),
	}
	for _, res := range results {
		entry := ReportEntry{Result: res}
		if res.Err != nil {
			entry.Error = res.Err.Error()
		}
		r.Files = append(r.Files, entry)
	}
	return r
}

// 💾 WriteReport writes the report as JSON for .json paths and YAML otherwise
func WriteReport(path string, report *Report) error {
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Errorf("encoding JSON report: %w", err)
		}
	default:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return errors.Errorf("encoding YAML report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return errors.Errorf("encoding YAML report: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Errorf("writing report: %w", err)
	}
	return nil
}
