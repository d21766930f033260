package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/goaltray/goaltray/internal/config"
	"github.com/goaltray/goaltray/internal/daemon/menu"
	"github.com/goaltray/goaltray/internal/models"
)

var (
	menuVariant string
	menuLabels  string
	menuShowIDs bool
	menuWidth   int
)

var menuCmd = &cobra.Command{
	Use:   "menu <goals-file>",
	Short: "Preview the tray menu for a goals file",
	Long: `Preview the tray menu built from a YAML or JSON goals file ("-" for stdin).

Variant and labels default to the current settings.`,
	Args: cobra.ExactArgs(1),
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&menuVariant, "variant", "", "Menu variant (rich or simple)")
	menuCmd.Flags().StringVar(&menuLabels, "labels", "", "Label set (pt or en)")
	menuCmd.Flags().BoolVar(&menuShowIDs, "ids", false, "Show item identifiers")
	menuCmd.Flags().IntVar(&menuWidth, "width", 48, "Maximum label width")
}

func runMenu(cmd *cobra.Command, args []string) error {
	goals, err := config.LoadGoals(args[0])
	if err != nil {
		return err
	}
	if err := goals.Validate(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", styleWarning.Render("Warning:"), err)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if menuVariant != "" {
		settings.Tray.Variant = menuVariant
	}
	if menuLabels != "" {
		settings.Tray.Labels = menuLabels
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	m := menu.Build(goals, menu.OptionsFromSettings(settings))
	fmt.Fprint(cmd.OutOrStdout(), renderMenu(m, previewOptions{width: menuWidth, ids: menuShowIDs}))
	return nil
}

type previewOptions struct {
	width int
	ids   bool
}

// renderMenu draws a menu as an indented tree. Items that carry an
// identifier but no action are marked inert.
func renderMenu(m *menu.Menu, opts previewOptions) string {
	if opts.width <= 0 {
		opts.width = 48
	}

	var b strings.Builder
	m.Walk(func(it menu.Item, depth int) {
		indent := strings.Repeat("    ", depth)
		title := ansi.Truncate(it.Label, opts.width, "…")

		var line string
		switch it.Kind {
		case menu.KindSeparator:
			line = indent + styleHint.Render(strings.Repeat("─", opts.width/2))
		case menu.KindLabel:
			line = indent + styleMenuLabel.Render(title)
		case menu.KindSubmenu:
			line = indent + styleMenuSubmenu.Render("▸ "+title)
		default:
			line = indent + "  " + styleMenuAction.Render(title)
		}

		if opts.ids && it.Kind != menu.KindSeparator {
			pad := opts.width + 6 - lipgloss.Width(line)
			if pad < 2 {
				pad = 2
			}
			line += strings.Repeat(" ", pad) + idTag(m, it)
		}
		b.WriteString(line)
		b.WriteString("\n")
	})
	return b.String()
}

func idTag(m *menu.Menu, it menu.Item) string {
	if it.Kind != menu.KindAction {
		return styleHint.Render(it.ID)
	}
	a, ok := m.Lookup(it.ID)
	if !ok || it.ID == "" || it.Disabled {
		return styleMenuInert.Render(it.ID + " (inert)")
	}
	return styleMenuID.Render(it.ID) + " " + styleHint.Render(a.String())
}

// goalsSummary is printed after a push.
func goalsSummary(goals models.GoalList) string {
	pending, completed := goals.Partition()
	return fmt.Sprintf("%d pending, %d completed", len(pending), len(completed))
}
