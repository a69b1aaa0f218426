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
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// 💾 FileManager handles every file system write of a run
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	// WriteFileAtomic replaces path with content, keeping mode
	WriteFileAtomic(ctx context.Context, path string, content []byte, mode fs.FileMode) error
	// CopyFile copies content, mode and modification time from src to dst
	CopyFile(ctx context.Context, src, dst string) error
	// CreateDir creates path and its parents; existing directories are fine
	CreateDir(ctx context.Context, path string) error
}

// OSFileManager is the FileManager backed by the local disk
type OSFileManager struct{}

var _ FileManager = OSFileManager{}

// NewFileManager returns a FileManager working on the local disk
func NewFileManager() OSFileManager {
	return OSFileManager{}
}

func (OSFileManager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (OSFileManager) WriteFileAtomic(ctx context.Context, path string, content []byte, mode fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tempPath)
	}

	if _, err := tmp.Write(content); err != nil {
		cleanup()
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(mode.Perm()); err != nil {
		cleanup()
		return errors.Errorf("setting mode on temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

func (OSFileManager) CopyFile(ctx context.Context, src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return errors.Errorf("stat source file: %w", err)
	}

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		return errors.Errorf("copying file content: %w", err)
	}
	if err := destination.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Errorf("setting destination mode: %w", err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.Errorf("setting destination times: %w", err)
	}

	return nil
}

func (OSFileManager) CreateDir(ctx context.Context, path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Errorf("creating directory: %w", err)
	}
	return nil
}
