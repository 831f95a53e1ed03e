package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pipewise.dev/cli/internal/core/environment"
	"pipewise.dev/cli/internal/core/plugin"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	var configCmd = &cobra.Command{
		Use:   "config",
		Short: "Query environment plugin configuration",
		Long: `Query plugin configuration overrides declared by the project's
environments.

Overrides are keyed by plugin type and name; the effective view merges a
plugin's config mapping with its extra settings (select, schema, ...) under
underscore-prefixed keys.`,
	}

	// Add subcommands
	configCmd.AddCommand(NewConfigGetCommand())
	configCmd.AddCommand(NewConfigPathCommand())

	return configCmd
}

// NewConfigGetCommand creates the get subcommand
func NewConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <environment> <plugin-type> <plugin-name>",
		Short: "Show a plugin's configuration override in an environment",
		Example: `  pw config get dev extractors tap-csv
  pw config get prod loaders target-postgres --project ./pipelines/pipewise.yml`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			envName, rawType, pluginName := args[0], args[1], args[2]

			pluginType, err := plugin.ParseType(rawType)
			if err != nil {
				return fmt.Errorf("%w (known types: %v)", err, plugin.Types())
			}

			proj, err := loadProject(cmd)
			if err != nil {
				return err
			}

			env, err := proj.FindEnvironment(envName)
			if err != nil {
				return err
			}

			override, ok := env.GetPluginConfig(pluginType, pluginName)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(
					fmt.Sprintf("No override configured for %s/%s in environment %q", pluginType, pluginName, envName)))
				return nil
			}

			return printOverride(cmd, env, override)
		},
	}
}

// NewConfigPathCommand creates the path subcommand
func NewConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the resolved project file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), projectPath(cmd))
			return nil
		},
	}
}

// printOverride renders the effective (config + extras) view of one override
func printOverride(cmd *cobra.Command, env *environment.Environment, override *environment.PluginOverride) error {
	header := headerStyle.Render(fmt.Sprintf("%s @ %s", override.Ref(), env.Name()))
	fmt.Fprintln(cmd.OutOrStdout(), header)

	merged := override.ConfigWithExtras()
	if len(merged) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("(empty override)"))
		return nil
	}

	rendered, err := yaml.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(rendered))
	return nil
}
