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
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/imgreduce/pkg/status"
)

// 📦 RunOperation describes a reduction run for logging
type RunOperation struct {
	Source      string // Source root
	Destination string // Destination root
	Mode        string // in-place or mirrored
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	current *RunOperation
	started time.Time
	results int
}

// 🏭 NewWithZerolog creates a logger that sends structured events to zlog
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 📝 LogResult prints a per-file outcome. Ignored entries print nothing.
func (l *Logger) LogResult(ctx context.Context, r status.Result) {
	if !r.Reportable() {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.results++
	fmt.Fprintln(l.console, status.FormatLine(r))

	event := l.zlog.Debug()
	if r.Outcome == status.OutcomeFailed {
		event = l.zlog.Warn().Err(r.Err)
	}
	event.
		Str("file", r.RelPath).
		Str("output", r.Output).
		Str("outcome", r.Outcome.String()).
		Str("reason", r.Reason).
		Int64("size_before", r.SizeBefore).
		Int64("size_after", r.SizeAfter).
		Msg("file processed")
}

// 📝 StartRun prints the run header
func (l *Logger) StartRun(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = &op
	l.started = time.Now()
	l.results = 0

	fmt.Fprintf(l.console, "[reducing %s]\n",
		color.New(color.FgCyan).Sprint(op.Source))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Destination),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.Mode))

	l.zlog.Info().
		Str("source", op.Source).
		Str("destination", op.Destination).
		Str("mode", op.Mode).
		Msg("starting run")
}

// 📝 EndRun logs the end of the current run
func (l *Logger) EndRun(ctx context.Context) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return 0
	}

	elapsed := time.Since(l.started)
	l.zlog.Info().
		Str("source", l.current.Source).
		Int("files", l.results).
		Dur("elapsed", elapsed).
		Msg("run complete")

	l.current = nil
	return elapsed
}

// 📊 Summary prints a table with the outcome counts of a run
func (l *Logger) Summary(s status.Summary) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := pterm.TableData{
		{"outcome", "files"},
		{"reduced", strconv.Itoa(s.Reduced)},
		{"copied", strconv.Itoa(s.Copied)},
		{"skipped", strconv.Itoa(s.Skipped)},
		{"failed", strconv.Itoa(s.Failed)},
		{"saved", status.HumanSize(s.BytesSaved)},
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(l.console, table)
	return nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
