// Package integration provides CLI integration tests for lcagents.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// lcagentsBin is the path to the built lcagents binary.
	lcagentsBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetLcagentsBin sets the path to the lcagents binary (called from TestMain).
func SetLcagentsBin(path string) {
	lcagentsBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated test environment with its own project root.
type TestEnv struct {
	t *testing.T
	// Root is the project root the CLI operates on via --root.
	Root string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build lcagents: %v", buildErr)
	}
	if lcagentsBin == "" {
		t.Fatal("lcagents binary not built (lcagentsBin is empty)")
	}

	return &TestEnv{
		t:    t,
		Root: t.TempDir(),
	}
}

// Base returns the .lcagents directory under the environment root.
func (e *TestEnv) Base() string {
	return filepath.Join(e.Root, ".lcagents")
}

// CmdResult holds the result of a lcagents command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunLcagents executes the lcagents CLI with the given arguments.
// Returns stdout, stderr, and exit code.
func (e *TestEnv) RunLcagents(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--root", e.Root}, args...)
	cmd := exec.Command(lcagentsBin, allArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run lcagents: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunLcagents executes the lcagents CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRunLcagents(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunLcagents(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("lcagents %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// Resource mirrors the CLI's JSON resource output.
type Resource struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Source string `json:"source"`
	Path   string `json:"path"`
}

// RuntimeConfig mirrors the persisted runtime configuration.
type RuntimeConfig struct {
	CoreSystem     string `json:"coreSystem"`
	InstallationID string `json:"installationId"`
	Version        string `json:"version"`
}
