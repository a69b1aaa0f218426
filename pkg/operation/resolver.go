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
	"path/filepath"
	"strings"

	"github.com/walteh/imgreduce/pkg/status"
	"github.com/walteh/imgreduce/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// ErrDestinationNotDir aborts a run whose destination is an existing file
var ErrDestinationNotDir = errors.Base("destination exists and is not a directory")

// 🔀 Mode selects where reduced files are written
type Mode int

const (
	ModeMirrored Mode = iota // Output goes to a parallel tree
	ModeInPlace              // Files are overwritten where they stand
)

func (m Mode) String() string {
	if m == ModeInPlace {
		return "in-place"
	}
	return "mirrored"
}

// DetectMode reports in-place when both roots name the same directory
func DetectMode(source, destination string) (Mode, error) {
	absSrc, err := filepath.Abs(source)
	if err != nil {
		return ModeMirrored, errors.Errorf("resolving source path: %w", err)
	}
	absDst, err := filepath.Abs(destination)
	if err != nil {
		return ModeMirrored, errors.Errorf("resolving destination path: %w", err)
	}
	if absSrc == absDst {
		return ModeInPlace, nil
	}

	srcInfo, srcErr := os.Stat(absSrc)
	dstInfo, dstErr := os.Stat(absDst)
	if srcErr == nil && dstErr == nil && os.SameFile(srcInfo, dstInfo) {
		return ModeInPlace, nil
	}
	return ModeMirrored, nil
}

// 📂 PrepareRoot makes sure destination is a directory, creating it with its
// parents when missing. An existing non-directory is a fatal error.
func PrepareRoot(ctx context.Context, files status.FileManager, destination string) error {
	info, err := os.Stat(destination)
	switch {
	case err == nil && !info.IsDir():
		return errors.Errorf("%w: %q", ErrDestinationNotDir, destination)
	case err == nil:
		return nil
	case !os.IsNotExist(err):
		return errors.Errorf("checking destination: %w", err)
	}

	if err := files.CreateDir(ctx, destination); err != nil {
		return errors.Errorf("creating destination %q: %w", destination, err)
	}
	return nil
}

// 🧭 Resolver maps source entries to output paths
type Resolver struct {
	mode        Mode
	source      string
	destination string
	absDest     string
	files       status.FileManager
}

// 🏭 NewResolver creates a resolver; the mode is fixed for its lifetime
func NewResolver(source, destination string, files status.FileManager) (*Resolver, error) {
	mode, err := DetectMode(source, destination)
	if err != nil {
		return nil, err
	}
	absDest, err := filepath.Abs(destination)
	if err != nil {
		return nil, errors.Errorf("resolving destination path: %w", err)
	}
	return &Resolver{
		mode:        mode,
		source:      filepath.Clean(source),
		destination: filepath.Clean(destination),
		absDest:     absDest,
		files:       files,
	}, nil
}

// Mode returns the run mode
func (r *Resolver) Mode() Mode {
	return r.mode
}

// Resolve returns the output path for e
func (r *Resolver) Resolve(e walk.Entry) string {
	if r.mode == ModeInPlace {
		return e.Path
	}
	return filepath.Join(r.destination, filepath.FromSlash(e.RelPath))
}

// Prepare creates the parent chain of output. It is a no-op in place.
func (r *Resolver) Prepare(ctx context.Context, output string) error {
	if r.mode == ModeInPlace {
		return nil
	}
	if err := r.files.CreateDir(ctx, filepath.Dir(output)); err != nil {
		return errors.Errorf("preparing %s: %w", filepath.Dir(output), err)
	}
	return nil
}

// Contains reports whether e lives inside the destination tree of a
// mirrored run, which happens when the destination is nested in the source
func (r *Resolver) Contains(e walk.Entry) bool {
	if r.mode == ModeInPlace {
		return false
	}
	abs, err := filepath.Abs(e.Path)
	if err != nil {
		return false
	}
	return abs == r.absDest || strings.HasPrefix(abs, r.absDest+string(filepath.Separator))
}
