// Package integration provides CLI integration tests for datebug.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var (
	// datebugBin is the path to the built datebug binary.
	datebugBin string
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
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetDatebugBin sets the path to the datebug binary (called from TestMain).
func SetDatebugBin(path string) {
	datebugBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated environment with its own config and data
// directory. The config file selects the memory backend unless a test
// overrides it with flags.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
	Env     []string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build datebug: %v", buildErr)
	}
	if datebugBin == "" {
		t.Fatal("datebug binary not built (datebugBin is empty)")
	}

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "backend: memory\ndata_dir: " + dataDir + "\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  configDir,
		DataDir: dataDir,
	}
}

// Setenv adds a variable to the environment of every later command.
func (e *TestEnv) Setenv(key, value string) {
	e.Env = append(e.Env, key+"="+value)
}

// CmdResult holds the result of a datebug command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunDatebug executes the datebug CLI with the given arguments.
func (e *TestEnv) RunDatebug(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config, "--data-dir", e.DataDir}, args...)
	cmd := exec.Command(datebugBin, allArgs...)
	cmd.Env = append(filteredEnviron(), e.Env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run datebug: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunDatebug executes the datebug CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRunDatebug(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunDatebug(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("datebug %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// filteredEnviron drops variables that would point the binary at a real
// database or a shared config directory.
func filteredEnviron() []string {
	var env []string
	for _, kv := range os.Environ() {
		switch {
		case hasKey(kv, "DATABASE_URL"), hasKey(kv, "DATEBUG_BACKEND"),
			hasKey(kv, "DATEBUG_CONFIG_DIR"), hasKey(kv, "DATEBUG_DATA_DIR"):
			continue
		}
		env = append(env, kv)
	}
	return env
}

func hasKey(kv, key string) bool {
	return strings.HasPrefix(kv, key+"=")
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

// Record mirrors one entry of the JSON report.
type Record struct {
	Operation  string `json:"operation"`
	Input      string `json:"input"`
	Output     string `json:"output"`
	InputYear  int    `json:"input_year"`
	OutputYear *int   `json:"output_year"`
	Match      bool   `json:"match"`
	Error      string `json:"error"`
	Residual   int    `json:"residual"`
}

// Report mirrors the JSON report document.
type Report struct {
	Results []Record `json:"results"`
	Passed  int      `json:"passed"`
	Failed  int      `json:"failed"`
}
