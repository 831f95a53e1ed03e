package cli

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"pipewise.dev/cli/internal/project"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// NewRootCommand creates the base command when called without any subcommands
func NewRootCommand() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "pw",
		Short: "Pipewise CLI - data pipeline environments and plugin configuration",
		Long: `Pipewise CLI is a tool for working with data pipeline projects: named
runtime environments, per-plugin configuration overrides, and the effective
configuration a pipeline run would see in a given environment.

Environments let one pipeline definition be parameterized per deployment
context (dev, prod, ...) by overriding plugin settings keyed by plugin type
and name.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set custom version template
	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	// Add persistent flags
	rootCmd.PersistentFlags().String("project", "", fmt.Sprintf("Project file path (default is $%s or ./%s)", project.EnvVarProject, project.DefaultFileName))

	// Add subcommands
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewInspectCommand())

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// loadProject loads the project file selected by the --project flag, the
// PIPEWISE_PROJECT environment variable, or the working-directory default.
func loadProject(cmd *cobra.Command) (*project.Project, error) {
	path, err := cmd.Flags().GetString("project")
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = project.DefaultPath()
	}
	return project.Load(path)
}

// projectPath resolves the project file path the same way loadProject does,
// without reading it.
func projectPath(cmd *cobra.Command) string {
	if path, err := cmd.Flags().GetString("project"); err == nil && path != "" {
		return path
	}
	return project.DefaultPath()
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
