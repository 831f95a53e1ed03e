package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipewise.dev/cli/internal/core/environment"
	"pipewise.dev/cli/internal/core/plugin"
)

const sampleProject = `
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
        loaders:
          - name: target-postgres
            config:
              dbname: warehouse_dev
  - name: prod
`

// TestParse_BuildsEnvironments tests parsing a full project file
func TestParse_BuildsEnvironments(t *testing.T) {
	proj, err := Parse([]byte(sampleProject))
	require.NoError(t, err)

	dev, err := proj.FindEnvironment("dev")
	require.NoError(t, err)
	assert.Equal(t, "dev", dev.Name())
	assert.Equal(t, 2, dev.Config().Len())

	override, ok := dev.GetPluginConfig(plugin.TypeExtractor, "tap-csv")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"path": "/data"}, override.Config())
	assert.Equal(t, map[string]any{"select": []any{"*.csv"}}, override.Extras())
	assert.Equal(t, map[string]any{
		"path":    "/data",
		"_select": []any{"*.csv"},
	}, override.ConfigWithExtras())

	// An environment declared without config is valid and empty.
	prod, err := proj.FindEnvironment("prod")
	require.NoError(t, err)
	assert.Equal(t, 0, prod.Config().Len())
}

// TestFindEnvironment_Missing tests the not-found contract
func TestFindEnvironment_Missing(t *testing.T) {
	proj, err := Parse([]byte(sampleProject))
	require.NoError(t, err)

	env, err := proj.FindEnvironment("staging")

	require.Error(t, err)
	assert.ErrorIs(t, err, environment.ErrEnvironmentNotFound)
	assert.Contains(t, err.Error(), "staging", "the missing name should appear in the error")
	assert.Nil(t, env)
}

// TestParse_Errors tests project file failure modes
func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantErr     error
		description string
	}{
		{
			name: "DuplicateEnvironmentName_ShouldFail",
			input: `
environments:
  - name: dev
  - name: dev
`,
			wantErr:     ErrDuplicateEnvironment,
			description: "environment names must be unique within a project",
		},
		{
			name: "UnknownPluginType_ShouldPropagate",
			input: `
environments:
  - name: dev
    config:
      plugins:
        widgets:
          - name: x
`,
			wantErr:     plugin.ErrInvalidType,
			description: "environment construction errors propagate with context",
		},
		{
			name: "MalformedOverride_ShouldPropagate",
			input: `
environments:
  - name: dev
    config:
      plugins:
        extractors:
          - config:
              path: /data
`,
			wantErr:     environment.ErrMalformedOverride,
			description: "a spec without a name fails parsing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proj, err := Parse([]byte(tt.input))

			require.Error(t, err, tt.description)
			assert.ErrorIs(t, err, tt.wantErr, tt.description)
			assert.Nil(t, proj)
		})
	}
}

// TestParse_UnnamedEnvironment tests that a nameless environment is rejected
func TestParse_UnnamedEnvironment(t *testing.T) {
	_, err := Parse([]byte(`
environments:
  - config:
      plugins: {}
`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "without a name")
}

// TestParse_InvalidYAML tests decode failures
func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("environments: ["))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse project file")
}

// TestLoad_ReadsProjectFile tests loading from disk
func TestLoad_ReadsProjectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(sampleProject), 0644))

	proj, err := Load(path)
	require.NoError(t, err)

	_, err = proj.FindEnvironment("dev")
	assert.NoError(t, err)
}

// TestLoad_MissingFile tests the read failure path
func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read project file")
}

// TestLoad_ParseErrorCarriesPath tests that parse failures name the file
func TestLoad_ParseErrorCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
environments:
  - name: dev
    config:
      plugins:
        widgets:
          - name: x
`), 0644))

	_, err := Load(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, plugin.ErrInvalidType)
	assert.Contains(t, err.Error(), path)
}

// TestDefaultPath_Precedence tests env-var over working-directory default
func TestDefaultPath_Precedence(t *testing.T) {
	t.Setenv(EnvVarProject, "")
	assert.Equal(t, DefaultFileName, DefaultPath())

	t.Setenv(EnvVarProject, "/etc/pipewise/pipewise.yml")
	assert.Equal(t, "/etc/pipewise/pipewise.yml", DefaultPath())
}
