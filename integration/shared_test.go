//go:build basic || database

// Package integration runs the detective binary end to end.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

// fixturePath is relative to the project root, where commands run.
const fixturePath = "core/agg/testdata/timeline_basic.json"

var (
	// sharedDetectivePath holds the path to a shared detective binary built once for all tests.
	sharedDetectivePath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getDetectiveBinary returns the path to the detective binary, building it once if needed.
func getDetectiveBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "detective-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		detectivePath := filepath.Join(tempDir, "detective")
		buildCmd := exec.Command("go", "build", "-o", detectivePath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build detective: %v", err))
		}

		sharedDetectivePath = detectivePath
	})

	return sharedDetectivePath
}

// runDetective runs the binary from the project root and returns stdout.
// Stderr is only logged, since the analysis header is written there.
func runDetective(t *testing.T, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getDetectiveBinary(), args...)
	cmd.Dir = "../"
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.Output()
	if err != nil {
		var stderr string
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		t.Logf("Command failed: %s\nOutput: %s\nStderr: %s", cmd.String(), string(output), stderr)
	}
	return string(output), err
}
