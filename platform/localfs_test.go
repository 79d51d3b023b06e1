// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalFSReadWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs := LocalFS{}
	path := filepath.Join(dir, "a.txt")

	require.NoError(t, fs.WriteEntireFile(path, []byte("hello")))
	data, err := fs.ReadEntireFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))
}

func TestLocalFSCopyAndMove(t *testing.T) {
	dir := t.TempDir()
	fs := LocalFS{}
	src := filepath.Join(dir, "src.txt")
	require.NoError(t, fs.WriteEntireFile(src, []byte("payload")))

	cp := filepath.Join(dir, "copy.txt")
	require.NoError(t, fs.Copy(src, cp))
	data, err := fs.ReadEntireFile(cp)
	require.NoError(t, err)
	require.Equal(t, "payload", string(data))

	moved := filepath.Join(dir, "moved.txt")
	require.NoError(t, fs.Move(cp, moved))
	_, err = fs.ReadEntireFile(cp)
	require.Error(t, err)
	data, err = fs.ReadEntireFile(moved)
	require.NoError(t, err)
	require.Equal(t, "payload", string(data))
}

func TestLocalFSScanDirectorySkipsDotfilesByDefault(t *testing.T) {
	dir := t.TempDir()
	fs := LocalFS{}
	require.NoError(t, fs.WriteEntireFile(filepath.Join(dir, "visible.txt"), []byte("x")))
	require.NoError(t, fs.WriteEntireFile(filepath.Join(dir, ".hidden"), []byte("x")))

	entries, err := fs.ScanDirectory(dir, false, false)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, filepath.Join(dir, "visible.txt"), entries[0].Name)

	entries, err = fs.ScanDirectory(dir, false, true)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestLocalFSScanDirectoryRecursive(t *testing.T) {
	dir := t.TempDir()
	fs := LocalFS{}
	require.NoError(t, fs.WriteEntireFile(filepath.Join(dir, "top.txt"), []byte("x")))
	require.NoError(t, fs.CreateDirectory(dir))
	sub := filepath.Join(dir, "generated")
	require.NoError(t, fs.WriteEntireFile(filepath.Join(sub, "nested.txt"), []byte("x")))

	entries, err := fs.ScanDirectory(dir, true, false)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, filepath.Base(e.Name))
	}
	require.Contains(t, names, "top.txt")
	require.Contains(t, names, "generated")
	require.Contains(t, names, "nested.txt")
}

func TestLocalFSCreateDirectoryUsesFixedGeneratedName(t *testing.T) {
	dir := t.TempDir()
	fs := LocalFS{}
	require.NoError(t, fs.CreateDirectory(dir))

	entries, err := fs.ScanDirectory(dir, false, false)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "generated", filepath.Base(entries[0].Name))
	require.True(t, entries[0].IsDir)
}

func TestLocalFSFullPathIsAbsolute(t *testing.T) {
	fs := LocalFS{}
	abs, err := fs.FullPath(".")
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(abs))
}
