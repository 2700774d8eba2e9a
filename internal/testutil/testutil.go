// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// MustMkdirAll creates a directory along with any necessary parents.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// MustWriteFile writes content to path, creating parent directories.
// The test fails immediately if the operation fails.
func MustWriteFile(t testing.TB, path, content string) {
	t.Helper()
	MustMkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// MustCanonical returns path with symlinks resolved (t.TempDir lives under a
// symlink on macOS). The test fails if the path cannot be resolved.
func MustCanonical(t testing.TB, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve %s: %v", path, err)
	}
	return resolved
}

// WriteScript writes an executable POSIX shell script named name into dir and
// returns its path. The body is placed after a "#!/bin/sh" line.
func WriteScript(t testing.TB, dir, name, body string) string {
	t.Helper()
	MustMkdirAll(t, dir)
	p := filepath.Join(dir, name)
	content := "#!/bin/sh\n" + strings.TrimLeft(body, "\n")
	if err := os.WriteFile(p, []byte(content), 0o755); err != nil {
		t.Fatalf("failed to write script %s: %v", p, err)
	}
	return p
}

// FakeMavenHome creates <root>/bin/mvn (mvn.cmd on Windows) with the given
// script body and returns the home directory.
func FakeMavenHome(t testing.TB, root, body string) string {
	t.Helper()
	name := "mvn"
	if runtime.GOOS == "windows" {
		name = "mvn.cmd"
	}
	WriteScript(t, filepath.Join(root, "bin"), name, body)
	return root
}

// SkipOnWindows skips tests that rely on POSIX shell scripts.
func SkipOnWindows(t testing.TB) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test relies on POSIX shell scripts")
	}
}
