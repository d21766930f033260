package cmd

import (
	"fmt"
	"io"
	"net"
	"runtime"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/goaltray/goaltray/internal/buildinfo"
	"github.com/goaltray/goaltray/internal/config"
	"github.com/goaltray/goaltray/internal/models"
)

var (
	versionBrand = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "30", Dark: "45"})
	versionLabel = lipgloss.NewStyle().Width(9).Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "240"})
)

var daemonVersionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version and effective tray configuration",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		printVersion(cmd.OutOrStdout(), settings)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(daemonVersionCmd)
}

type versionRow struct {
	label, value string
}

// versionRows lists what this build would run with the given settings.
func versionRows(s *models.Settings) []versionRow {
	bridgePort := "dynamic"
	if s.Bridge.Port > 0 {
		bridgePort = strconv.Itoa(s.Bridge.Port)
	}
	return []versionRow{
		{"Build", buildinfo.Short() + " " + buildinfo.BuildDate},
		{"Runtime", runtime.Version() + " " + runtime.GOOS + "/" + runtime.GOARCH},
		{"Tray", s.Tray.Variant + " menu, " + s.Tray.Labels + " labels"},
		{"Bridge", "ws://" + net.JoinHostPort(s.Bridge.Host, bridgePort) + "/bridge"},
		{"Logging", s.Log.Level},
	}
}

func printVersion(w io.Writer, s *models.Settings) {
	fmt.Fprintf(w, "%s %s\n", versionBrand.Render("goaltrayd"), buildinfo.Version)
	for _, r := range versionRows(s) {
		fmt.Fprintf(w, "  %s %s\n", versionLabel.Render(r.label), r.value)
	}
}
