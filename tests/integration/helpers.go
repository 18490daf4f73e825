//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/petal-labs/dialog/cli/commands"
	"github.com/petal-labs/dialog/cli/keystore"
)

// isCI returns true if running in a CI environment.
func isCI() bool {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "CIRCLECI", "TRAVIS", "JENKINS_URL"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// skipIfNoAccessToken skips tests that talk to the live service.
// In CI it fails unless DIALOG_SKIP_INTEGRATION is set.
func skipIfNoAccessToken(t *testing.T) {
	t.Helper()
	if os.Getenv(commands.AccessTokenEnv) != "" {
		return
	}
	if isCI() && os.Getenv("DIALOG_SKIP_INTEGRATION") == "" {
		t.Fatalf("%s not set (CI environment detected; set DIALOG_SKIP_INTEGRATION=1 to skip)", commands.AccessTokenEnv)
	}
	t.Skipf("%s not set", commands.AccessTokenEnv)
}

// getAccessToken returns the client access token from the environment.
func getAccessToken(t *testing.T) string {
	t.Helper()
	token := os.Getenv(commands.AccessTokenEnv)
	if token == "" {
		t.Fatalf("%s not set", commands.AccessTokenEnv)
	}
	return token
}

// cliResult holds the result of running a CLI command.
type cliResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// cliEnv runs the CLI binary with an isolated home directory, so config
// and keystore files never touch the developer's own.
type cliEnv struct {
	home string
	env  []string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	if cliBinary == "" {
		t.Fatal("CLI binary not built - TestMain may not have run")
	}
	home := t.TempDir()
	return &cliEnv{
		home: home,
		env: []string{
			"HOME=" + home,
			"PATH=" + os.Getenv("PATH"),
			keystore.PassphraseEnv + "=integration-passphrase",
		},
	}
}

// setenv adds a variable to the child environment.
func (e *cliEnv) setenv(key, value string) {
	e.env = append(e.env, key+"="+value)
}

// configPath is where the CLI looks for its config file by default.
func (e *cliEnv) configPath() string {
	return filepath.Join(e.home, ".dialog", "config.yaml")
}

func (e *cliEnv) run(t *testing.T, args ...string) cliResult {
	t.Helper()
	return e.runWithStdin(t, "", args...)
}

func (e *cliEnv) runWithStdin(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()

	cmd := exec.Command(cliBinary, args...)
	cmd.Env = e.env
	cmd.Stdin = bytes.NewBufferString(stdin)
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
