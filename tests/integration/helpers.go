//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"testing"

	"github.com/ncloud-labs/hyperclova-go/providers/clovastudio"
)

// isCI returns true if running in a CI environment.
func isCI() bool {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "CIRCLECI", "JENKINS_URL"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// skipIfNoAPIKey skips the test if HYPERCLOVA_API_KEY is not set.
// In CI, it fails unless CLOVA_SKIP_INTEGRATION is set.
func skipIfNoAPIKey(t *testing.T) {
	t.Helper()
	if os.Getenv(clovastudio.EnvAPIKey) != "" {
		return
	}
	if isCI() && os.Getenv("CLOVA_SKIP_INTEGRATION") == "" {
		t.Fatalf("%s not set (CI environment detected; set CLOVA_SKIP_INTEGRATION=1 to skip)", clovastudio.EnvAPIKey)
	}
	t.Skipf("%s not set", clovastudio.EnvAPIKey)
}

// cliResult holds the result of running a CLI command.
type cliResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// runCLI executes the clova CLI with the given arguments, using the
// pre-built binary from TestMain.
func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()

	if cliBinary == "" {
		t.Fatal("CLI binary not built - TestMain may not have run")
	}

	cmd := exec.Command(cliBinary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("Failed to run CLI: %v", err)
		}
	}

	return cliResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}
