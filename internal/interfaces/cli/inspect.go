package cli

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pipewise.dev/cli/internal/core/environment"
)

// NewInspectCommand creates the inspect command
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <environment>",
		Short: "Interactively browse an environment's plugin overrides",
		Long: `Launch an interactive terminal view of one environment's plugin
configuration overrides.

Navigate the override list with the arrow keys and press enter to toggle the
merged configuration view for the selected plugin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadProject(cmd)
			if err != nil {
				return err
			}
			env, err := proj.FindEnvironment(args[0])
			if err != nil {
				return err
			}

			program := tea.NewProgram(newInspectModel(env), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("inspect failed: %w", err)
			}
			return nil
		},
	}
}

// overrideDisplayItem represents one override row in the inspect view
type overrideDisplayItem struct {
	ref    string
	detail string
}

// inspectModel holds the state for the Bubble Tea inspect view
type inspectModel struct {
	envName      string
	items        []overrideDisplayItem
	selectedRow  int
	showDetail   bool
	windowWidth  int
	windowHeight int
}

// newInspectModel creates an inspect model over one environment's overrides,
// sorted by plugin type then name for a stable display order.
func newInspectModel(env *environment.Environment) inspectModel {
	overrides := make([]*environment.PluginOverride, 0, env.Config().Len())
	for _, override := range env.Config().Plugins() {
		overrides = append(overrides, override)
	}
	sort.Slice(overrides, func(i, j int) bool {
		if overrides[i].Type() != overrides[j].Type() {
			return overrides[i].Type() < overrides[j].Type()
		}
		return overrides[i].Name() < overrides[j].Name()
	})

	items := make([]overrideDisplayItem, len(overrides))
	for i, override := range overrides {
		detail := "(empty override)"
		if merged := override.ConfigWithExtras(); len(merged) > 0 {
			if rendered, err := yaml.Marshal(merged); err == nil {
				detail = string(rendered)
			}
		}
		items[i] = overrideDisplayItem{
			ref:    override.Ref().String(),
			detail: detail,
		}
	}

	return inspectModel{envName: env.Name(), items: items}
}

// Init implements the Bubble Tea init method
func (m inspectModel) Init() tea.Cmd {
	return nil
}

// Update implements the Bubble Tea update method
func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.selectedRow > 0 {
				m.selectedRow--
			}
			return m, nil

		case "down", "j":
			if m.selectedRow < len(m.items)-1 {
				m.selectedRow++
			}
			return m, nil

		case "enter", " ":
			m.showDetail = !m.showDetail
			return m, nil
		}
	}

	return m, nil
}

// View implements the Bubble Tea view method
func (m inspectModel) View() string {
	header := headerStyle.Render(fmt.Sprintf("Environment: %s", m.envName))

	if len(m.items) == 0 {
		empty := mutedStyle.Render("\n  No plugin overrides configured in this environment.\n")
		return lipgloss.JoinVertical(lipgloss.Left, header, empty, m.renderFooter())
	}

	rows := make([]string, 0, len(m.items)+2)
	for i, item := range m.items {
		rowStyle := lipgloss.NewStyle()
		marker := "  "
		if i == m.selectedRow {
			rowStyle = rowStyle.Bold(true).Foreground(lipgloss.Color("86"))
			marker = "> "
		}
		rows = append(rows, rowStyle.Render(marker+item.ref))
	}
	list := lipgloss.JoinVertical(lipgloss.Left, rows...)

	sections := []string{header, list}
	if m.showDetail {
		sections = append(sections, m.renderDetail())
	}
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderDetail renders the merged configuration of the selected override
func (m inspectModel) renderDetail() string {
	item := m.items[m.selectedRow]
	title := headerStyle.Render(item.ref)
	body := lipgloss.NewStyle().
		PaddingLeft(2).
		Render(item.detail)
	return lipgloss.JoinVertical(lipgloss.Left, "", title, body)
}

// renderFooter renders the control instructions footer
func (m inspectModel) renderFooter() string {
	return mutedStyle.Render("\nControls: [↑↓] Navigate | [Enter] Toggle config | [q] Quit")
}
