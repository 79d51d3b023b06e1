// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalFS is the FileSystem plugin backed by the host OS's own
// filesystem, resolving and opening asset files via os/io/path-filepath.
type LocalFS struct{}

var _ FileSystem = LocalFS{}

func (LocalFS) ReadEntireFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (LocalFS) WriteEntireFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

func (LocalFS) Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

func (LocalFS) Move(src, dst string) error {
	return os.Rename(src, dst)
}

func (fs LocalFS) CopyDirectory(src, dst string) error {
	entries, err := fs.ScanDirectory(src, true, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}
	for _, e := range entries {
		rel, err := filepath.Rel(src, e.Name)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if e.IsDir {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := fs.Copy(e.Name, target); err != nil {
			return err
		}
	}
	return nil
}

func (LocalFS) ScanDirectory(path string, recursive, includeDotfiles bool) ([]DirEntry, error) {
	var out []DirEntry
	walk := func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if !includeDotfiles && strings.HasPrefix(e.Name(), ".") {
				continue
			}
			full := filepath.Join(dir, e.Name())
			info, err := e.Info()
			if err != nil {
				return err
			}
			out = append(out, DirEntry{Name: full, IsDir: e.IsDir(), ModTime: info.ModTime()})
		}
		return nil
	}

	if !recursive {
		return out, walk(path)
	}

	var rec func(dir string) error
	rec = func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if !includeDotfiles && strings.HasPrefix(e.Name(), ".") {
				continue
			}
			full := filepath.Join(dir, e.Name())
			info, err := e.Info()
			if err != nil {
				return err
			}
			out = append(out, DirEntry{Name: full, IsDir: e.IsDir(), ModTime: info.ModTime()})
			if e.IsDir() {
				if err := rec(full); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return out, rec(path)
}

// CreateDirectory creates a "generated" subdirectory under path. A
// fixed literal suffix, not a caller-supplied one: see the FileSystem
// interface doc.
func (LocalFS) CreateDirectory(path string) error {
	return os.MkdirAll(filepath.Join(path, "generated"), 0755)
}

func (LocalFS) FullPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("platform: FullPath(%q): %w", path, err)
	}
	return abs, nil
}
