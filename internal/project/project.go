// Package project loads pipewise project files and resolves the named
// environments they declare.
package project

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pipewise.dev/cli/internal/core/environment"
)

// DefaultFileName is the project file looked up in the working directory
// when no explicit path is given.
const DefaultFileName = "pipewise.yml"

// EnvVarProject overrides the project file path when set.
const EnvVarProject = "PIPEWISE_PROJECT"

// ErrDuplicateEnvironment is returned when a project file declares two
// environments with the same name.
var ErrDuplicateEnvironment = fmt.Errorf("duplicate environment")

// Project holds the environments declared by one project file.
type Project struct {
	environments map[string]*environment.Environment
}

// projectFile is the raw YAML shape of a project file. Only the
// environment section is modeled here; other sections belong to the
// orchestrator.
type projectFile struct {
	Environments []struct {
		Name   string         `yaml:"name"`
		Config map[string]any `yaml:"config"`
	} `yaml:"environments"`
}

// DefaultPath resolves the project file path: the PIPEWISE_PROJECT
// environment variable when set, otherwise pipewise.yml in the working
// directory.
func DefaultPath() string {
	if path := os.Getenv(EnvVarProject); path != "" {
		return path
	}
	return DefaultFileName
}

// Load reads and parses a project file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	project, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return project, nil
}

// Parse builds a project from raw project-file bytes. Environment
// construction errors (unknown plugin types, malformed override specs)
// propagate unchanged.
func Parse(data []byte) (*Project, error) {
	var file projectFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}

	environments := make(map[string]*environment.Environment, len(file.Environments))
	for _, raw := range file.Environments {
		if raw.Name == "" {
			return nil, fmt.Errorf("environment declared without a name")
		}
		if _, exists := environments[raw.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEnvironment, raw.Name)
		}
		env, err := environment.NewEnvironment(raw.Name, raw.Config)
		if err != nil {
			return nil, fmt.Errorf("environment %q: %w", raw.Name, err)
		}
		environments[raw.Name] = env
	}
	return &Project{environments: environments}, nil
}

// FindEnvironment returns the environment with the given name, or an error
// wrapping environment.ErrEnvironmentNotFound.
func (p *Project) FindEnvironment(name string) (*environment.Environment, error) {
	env, ok := p.environments[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", environment.ErrEnvironmentNotFound, name)
	}
	return env, nil
}
