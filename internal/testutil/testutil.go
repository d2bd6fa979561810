// Package testutil holds helpers shared by package tests: building tool
// binaries and writing throwaway shell scripts.
package testutil

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// RequirePOSIX skips the test on platforms without /bin/sh.
func RequirePOSIX(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

// WriteScript writes an executable /bin/sh script named name into dir and
// returns its path.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	RequirePOSIX(t)

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("create script dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("write script %s: %v", name, err)
	}
	return path
}

// BuildTool builds cmd/<name> into dir (a test-scoped temporary directory
// when dir is empty) and returns the absolute path of the executable. The
// binary keeps the bare tool name so it can be resolved as a script reference.
func BuildTool(t *testing.T, name, dir string) string {
	t.Helper()

	repoRoot, err := findRepoRoot()
	if err != nil {
		t.Fatalf("find repo root: %v", err)
	}
	if dir == "" {
		dir = t.TempDir()
	}

	binName := name
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	outPath := filepath.Join(dir, binName)

	srcPath := filepath.Join(repoRoot, "cmd", name)
	if _, statErr := os.Stat(srcPath); statErr != nil {
		t.Fatalf("tool sources not found for %q: %v", name, statErr)
	}

	cmd := exec.Command("go", "build", "-o", outPath, "./cmd/"+name)
	cmd.Dir = repoRoot
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build %s failed: %v\n%s", name, err, string(output))
	}
	return outPath
}

func findRepoRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil || start == "" {
		return "", errors.New("cannot determine working directory")
	}
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found from %s upward", start)
		}
		dir = parent
	}
}
