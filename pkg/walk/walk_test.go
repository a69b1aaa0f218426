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

package walk

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// 🧪 createTree lays out files (relative slash paths) under a temp root
func createTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755), "creating parent of %s", rel)
		require.NoError(t, os.WriteFile(p, []byte(content), 0644), "writing %s", rel)
	}
	return root
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func collect(t *testing.T, root string, recursive bool) []Entry {
	t.Helper()
	var entries []Entry
	err := Walk(testContext(t), root, recursive, func(ctx context.Context, e Entry) error {
		entries = append(entries, e)
		return nil
	})
	require.NoError(t, err, "Walk should succeed")
	sort.Slice(entries, func(i, j int) bool { return entries[i].RelPath < entries[j].RelPath })
	return entries
}

func relPaths(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.RelPath)
	}
	return out
}

func TestWalk(t *testing.T) {
	files := map[string]string{
		"a.jpg":          "aaaa",
		"sub/b.png":      "bb",
		"sub/deep/c.gif": "c",
	}

	tests := []struct {
		name      string
		recursive bool
		want      []string
	}{
		{
			name:      "flat",
			recursive: false,
			want:      []string{"a.jpg", "sub"},
		},
		{
			name:      "recursive",
			recursive: true,
			want:      []string{"a.jpg", "sub", "sub/b.png", "sub/deep", "sub/deep/c.gif"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := createTree(t, files)
			entries := collect(t, root, tt.recursive)
			assert.Equal(t, tt.want, relPaths(entries), "entries should match")
		})
	}
}

func TestWalkEntryFields(t *testing.T) {
	root := createTree(t, map[string]string{"sub/b.png": "12345"})
	entries := collect(t, root, true)
	require.Len(t, entries, 2)

	dir, file := entries[0], entries[1]
	assert.True(t, dir.IsDir(), "sub should be a directory")
	assert.False(t, dir.IsRegular(), "sub should not be regular")

	assert.True(t, file.IsRegular(), "file should be regular")
	assert.Equal(t, "sub/b.png", file.RelPath)
	assert.Equal(t, filepath.Join(root, "sub", "b.png"), file.Path)
	assert.Equal(t, int64(5), file.Size)
	assert.False(t, file.ModTime.IsZero(), "mod time should be set")
}

func TestWalkEmptyRoot(t *testing.T) {
	entries := collect(t, t.TempDir(), true)
	assert.Empty(t, entries)
}

func TestWalkRootErrors(t *testing.T) {
	tests := []struct {
		name string
		root func(t *testing.T) string
	}{
		{
			name: "missing_root",
			root: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope") },
		},
		{
			name: "root_is_file",
			root: func(t *testing.T) string {
				p := filepath.Join(t.TempDir(), "file.txt")
				require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
				return p
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			err := Walk(testContext(t), tt.root(t), true, func(ctx context.Context, e Entry) error {
				called = true
				return nil
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRootUnreadable), "error should be ErrRootUnreadable")
			assert.False(t, called, "callback should not run")
		})
	}
}

func TestWalkStopsOnCallbackError(t *testing.T) {
	root := createTree(t, map[string]string{"a": "1", "b": "2", "c": "3"})
	boom := errors.New("boom")

	calls := 0
	err := Walk(testContext(t), root, false, func(ctx context.Context, e Entry) error {
		calls++
		return boom
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom), "callback error should be wrapped")
	assert.Equal(t, 1, calls, "walk should stop after the first error")
}

func regularPaths(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		if e.IsRegular() {
			out = append(out, e.RelPath)
		}
	}
	sort.Strings(out)
	return out
}

func TestWalkSymlinks(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		links map[string]string // link path -> target, relative to the link's directory
		want  []string
	}{
		{
			name:  "cycle_to_parent",
			files: map[string]string{"sub/a.jpg": "a"},
			links: map[string]string{"sub/loop": ".."},
			want:  []string{"sub/a.jpg"},
		},
		{
			name:  "sibling_directory",
			files: map[string]string{"photos/a.jpg": "a", "photos/b.jpg": "b"},
			links: map[string]string{"alias": "photos"},
			want:  []string{"photos/a.jpg", "photos/b.jpg"},
		},
		{
			name:  "linked_file",
			files: map[string]string{"a.jpg": "a"},
			links: map[string]string{"b.jpg": "a.jpg"},
			want:  []string{"a.jpg", "b.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := createTree(t, tt.files)
			for link, target := range tt.links {
				require.NoError(t, os.Symlink(target, filepath.Join(root, filepath.FromSlash(link))))
			}

			entries := collect(t, root, true)
			assert.Equal(t, tt.want, regularPaths(entries), "each file should be yielded once")

			for _, e := range entries {
				_, isLink := tt.links[e.RelPath]
				assert.Equal(t, isLink, e.Link, "link flag of %s", e.RelPath)
			}
		})
	}
}

func TestWalkUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	root := createTree(t, map[string]string{"ok.jpg": "1", "locked/a.jpg": "2"})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	entries := collect(t, root, true)

	var found bool
	for _, e := range entries {
		if e.RelPath == "locked" {
			found = true
			require.Error(t, e.Err, "unreadable directory should carry an error")
			assert.False(t, e.IsDir())
		}
	}
	assert.True(t, found, "unreadable directory should be yielded")
	assert.Equal(t, []string{"ok.jpg"}, regularPaths(entries))
}
