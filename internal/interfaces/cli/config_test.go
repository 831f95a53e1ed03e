package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipewise.dev/cli/internal/core/environment"
	"pipewise.dev/cli/internal/core/plugin"
)

const testProject = `
environments:
  - name: dev
    config:
      plugins:
        extractors:
          - name: tap-csv
            config:
              path: /data
            select:
              - "*.csv"
  - name: prod
`

// writeTestProject writes a project file into a temp dir and returns its path
func writeTestProject(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipewise.yml")
	require.NoError(t, os.WriteFile(path, []byte(testProject), 0644))
	return path
}

// runCommand executes the root command with the given args and returns its
// combined output
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd := NewRootCommand()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// TestConfigGet_ShowsMergedOverride tests the happy-path point lookup
func TestConfigGet_ShowsMergedOverride(t *testing.T) {
	path := writeTestProject(t)

	out, err := runCommand(t, "config", "get", "dev", "extractors", "tap-csv", "--project", path)

	require.NoError(t, err)
	assert.Contains(t, out, "extractors/tap-csv")
	assert.Contains(t, out, "dev")
	assert.Contains(t, out, "path: /data")
	assert.Contains(t, out, "_select:", "extras should appear underscore-prefixed")
}

// TestConfigGet_NoOverride tests that absence is reported, not failed
func TestConfigGet_NoOverride(t *testing.T) {
	path := writeTestProject(t)

	out, err := runCommand(t, "config", "get", "dev", "loaders", "target-postgres", "--project", path)

	require.NoError(t, err, "a missing override is not an error")
	assert.Contains(t, out, "No override configured")
}

// TestConfigGet_Errors tests the command's failure modes
func TestConfigGet_Errors(t *testing.T) {
	path := writeTestProject(t)

	tests := []struct {
		name        string
		args        []string
		wantErr     error
		description string
	}{
		{
			name:        "UnknownEnvironment_ShouldFail",
			args:        []string{"config", "get", "staging", "extractors", "tap-csv", "--project", path},
			wantErr:     environment.ErrEnvironmentNotFound,
			description: "unknown environment names surface the registry error",
		},
		{
			name:        "InvalidPluginType_ShouldFail",
			args:        []string{"config", "get", "dev", "widgets", "tap-csv", "--project", path},
			wantErr:     plugin.ErrInvalidType,
			description: "unknown plugin types fail before the project is consulted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, tt.args...)

			require.Error(t, err, tt.description)
			assert.ErrorIs(t, err, tt.wantErr, tt.description)
		})
	}
}

// TestConfigGet_MissingProjectFile tests the load failure path
func TestConfigGet_MissingProjectFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yml")

	_, err := runCommand(t, "config", "get", "dev", "extractors", "tap-csv", "--project", missing)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read project file")
}

// TestConfigPath_ReportsResolvedPath tests path resolution output
func TestConfigPath_ReportsResolvedPath(t *testing.T) {
	out, err := runCommand(t, "config", "path", "--project", "/tmp/custom.yml")

	require.NoError(t, err)
	assert.Contains(t, out, "/tmp/custom.yml")
}
