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

// Package walk enumerates the files under a source root.
package walk

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrRootUnreadable is returned when the root itself cannot be traversed
var ErrRootUnreadable = errors.Base("source root unreadable")

const (
	flatPattern      = "*"
	recursivePattern = "**/*"
)

// 📄 Entry is one discovered path
type Entry struct {
	Path    string      // Path on disk, rooted at the walk root
	RelPath string      // Slash separated path relative to the root
	Size    int64       // Size in bytes
	Mode    fs.FileMode // Type and permission bits
	ModTime time.Time   // Last modification
	Err     error       // Set when the entry could not be stat'ed or read
	Link    bool        // Path is a symbolic link; the other fields describe its target
}

// IsRegular reports whether the entry is a plain file
func (e Entry) IsRegular() bool {
	return e.Err == nil && e.Mode.IsRegular()
}

// IsDir reports whether the entry is a directory
func (e Entry) IsDir() bool {
	return e.Err == nil && e.Mode.IsDir()
}

// Func is called once per entry. Returning an error stops the walk.
type Func func(ctx context.Context, e Entry) error

// 🚶 Walk yields the direct children of root, or the whole subtree when
// recursive is set. Order follows the filesystem. Directories are yielded
// too; callers decide what to do with them.
func Walk(ctx context.Context, root string, recursive bool, fn Func) error {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(root)
	if err != nil {
		return errors.Errorf("%w: stat %s: %s", ErrRootUnreadable, root, err)
	}
	if !info.IsDir() {
		return errors.Errorf("%w: %s is not a directory", ErrRootUnreadable, root)
	}

	fsys := os.DirFS(root)
	// fail early on an unreadable root rather than yielding nothing
	if _, err := fs.ReadDir(fsys, "."); err != nil {
		return errors.Errorf("%w: reading %s: %s", ErrRootUnreadable, root, err)
	}

	pattern := flatPattern
	if recursive {
		pattern = recursivePattern
	}
	logger.Debug().Str("root", root).Str("pattern", pattern).Msg("walking source")

	// symlinked directories are reported but never descended into, so a
	// file reachable through several links is yielded once
	err = doublestar.GlobWalk(fsys, pattern, func(rel string, d fs.DirEntry) error {
		entry := Entry{
			Path:    filepath.Join(root, filepath.FromSlash(rel)),
			RelPath: path.Clean(rel),
		}

		fi, err := d.Info()
		if err == nil && fi.Mode()&fs.ModeSymlink != 0 {
			entry.Link = true
			fi, err = os.Stat(entry.Path)
		}
		if err != nil {
			entry.Err = errors.Errorf("stat %s: %w", rel, err)
		} else {
			entry.Size = fi.Size()
			entry.Mode = fi.Mode()
			entry.ModTime = fi.ModTime()
		}

		// doublestar skips directories it cannot read; surface them instead
		if recursive && entry.IsDir() && !entry.Link {
			if err := checkReadable(fsys, rel); err != nil {
				entry.Err = errors.Errorf("reading directory %s: %w", rel, err)
			}
		}

		return fn(ctx, entry)
	}, doublestar.WithNoFollow())
	if err != nil {
		return errors.Errorf("walking %s: %w", root, err)
	}

	return nil
}

func checkReadable(fsys fs.FS, dir string) error {
	f, err := fsys.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	if rd, ok := f.(fs.ReadDirFile); ok {
		if _, err := rd.ReadDir(1); err != nil && err != io.EOF {
			return err
		}
	}
	return nil
}
