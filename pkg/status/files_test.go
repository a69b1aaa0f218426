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
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	ctx := context.Background()
	fm := NewFileManager()
	dir := t.TempDir()
	path := filepath.Join(dir, "img.jpg")

	require.NoError(t, os.WriteFile(path, []byte("original"), 0600))
	require.NoError(t, fm.WriteFileAtomic(ctx, path, []byte("reduced"), 0640))

	content, err := fm.ReadFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "reduced", string(content), "content should be replaced")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0640), info.Mode().Perm(), "mode should be applied")
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files should be left behind")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	fm := NewFileManager()
	err := fm.WriteFileAtomic(context.Background(), filepath.Join(t.TempDir(), "missing", "x.jpg"), []byte("x"), 0644)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating temp file")
}

func TestCopyFile(t *testing.T) {
	ctx := context.Background()
	fm := NewFileManager()
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	content := []byte{0x00, 0x01, 0xff, 'h', 'i'}
	require.NoError(t, os.WriteFile(src, content, 0644))
	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	// an existing, longer destination must be truncated
	require.NoError(t, os.WriteFile(dst, []byte("much longer previous content"), 0644))

	require.NoError(t, fm.CopyFile(ctx, src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, content, got, "content should be byte-identical")

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime), "modification time should be preserved")
}

func TestCopyFileMissingSource(t *testing.T) {
	fm := NewFileManager()
	dir := t.TempDir()
	err := fm.CopyFile(context.Background(), filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening source file")
	assert.NoFileExists(t, filepath.Join(dir, "dst"))
}

func TestCreateDirIsIdempotent(t *testing.T) {
	ctx := context.Background()
	fm := NewFileManager()
	path := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, fm.CreateDir(ctx, path))
	require.NoError(t, fm.CreateDir(ctx, path), "creating an existing directory should not fail")
	assert.DirExists(t, path)
}
