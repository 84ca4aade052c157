//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfclient"
	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIEndpoint   string
	ClientID      string
	ClientSecret  string
	AdminUser     string
	AdminPassword string
	BinaryPath    string
	Verbose       bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIEndpoint:   os.Getenv("CF_API_ENDPOINT"),
		ClientID:      os.Getenv("CF_CLIENT_ID"),
		ClientSecret:  os.Getenv("CF_CLIENT_SECRET"),
		AdminUser:     os.Getenv("CF_ADMIN_USER"),
		AdminPassword: os.Getenv("CF_ADMIN_PASSWORD"),
		BinaryPath:    getBinaryPath(),
		Verbose:       os.Getenv("CFV2_VERBOSE") == "true",
	}
}

func getBinaryPath() string {
	if path := os.Getenv("CFV2_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../cfv2",
		"./cfv2",
		"../cfv2",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "cfv2"
}

func (config *TestConfig) hasCredentials() bool {
	return (config.ClientID != "" && config.ClientSecret != "") || (config.AdminUser != "" && config.AdminPassword != "")
}

// SkipIfMissingConfig skips the test unless a foundation and credentials are configured.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIEndpoint == "" {
		t.Skip("CF_API_ENDPOINT not set, skipping integration test")
	}

	if !config.hasCredentials() {
		t.Skip("no CF credentials set, skipping integration test")
	}
}

// SkipIfMissingBinary additionally skips CLI tests when the binary is not built.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	config.SkipIfMissingConfig(t)

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("cfv2 binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// NewClient creates a library client for the configured foundation.
func (config *TestConfig) NewClient(t *testing.T) cfclient.Client {
	t.Helper()

	clientConfig := &cfapi.Config{
		APIEndpoint:  config.APIEndpoint,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		HTTPTimeout:  time.Minute,
		RetryMax:     2,
		UserAgent:    "cfv2-integration-tests",
	}

	if config.AdminUser != "" {
		clientConfig.Username = config.AdminUser
		clientConfig.Password = config.AdminPassword

		if clientConfig.ClientID == "" {
			clientConfig.ClientID = "cf"
		}
	}

	client, err := cfclient.New(context.Background(), clientConfig)
	require.NoError(t, err)

	return client
}

// CommandRunner runs the cfv2 binary against a private config file.
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a runner whose config file lives in a temp dir.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
		t:          t,
	}
}

// Run executes a cfv2 command and returns its output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes a cfv2 command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configFile}, args...)

	cmd := exec.Command(runner.config.BinaryPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// Login authenticates the runner's config with the configured credentials.
func (runner *CommandRunner) Login() error {
	args := []string{"login", "--api", runner.config.APIEndpoint}

	if runner.config.ClientID != "" && runner.config.ClientSecret != "" {
		args = append(args, "--client-id", runner.config.ClientID, "--client-secret", runner.config.ClientSecret)
	} else {
		args = append(args, "--username", runner.config.AdminUser, "--password", runner.config.AdminPassword)
	}

	_, stderr, err := runner.Run(args...)
	if err != nil {
		return fmt.Errorf("failed to log in: %s", stderr)
	}

	return nil
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	if !json.Valid([]byte(strings.TrimSpace(output))) {
		t.Errorf("Output is not valid JSON: %s", output)
	}
}
