package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goaltray/goaltray/internal/config"
	"github.com/goaltray/goaltray/internal/models"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Show the settings in ~/.goaltray/settings.yaml.

A running daemon reloads tray and log settings as soon as the file
changes. Bridge settings apply on the next start.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		printSettings(cmd.OutOrStdout(), settings)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long:  "Change a setting. Keys: " + strings.Join(settingKeys(), ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.EnsureGlobalDir(); err != nil {
			return fmt.Errorf("failed to create global directory: %w", err)
		}
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		if err := setSetting(settings, args[0], args[1]); err != nil {
			return err
		}
		if err := config.SaveSettings(settings); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", styleSuccess.Render("✓"), args[0], args[1])
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}

// settingFields maps keys to getters and setters on Settings.
var settingFields = map[string]struct {
	get func(s *models.Settings) string
	set func(s *models.Settings, v string) error
}{
	"tray.variant": {
		get: func(s *models.Settings) string { return s.Tray.Variant },
		set: func(s *models.Settings, v string) error { s.Tray.Variant = v; return nil },
	},
	"tray.labels": {
		get: func(s *models.Settings) string { return s.Tray.Labels },
		set: func(s *models.Settings, v string) error { s.Tray.Labels = v; return nil },
	},
	"tray.tooltip": {
		get: func(s *models.Settings) string { return s.Tray.Tooltip },
		set: func(s *models.Settings, v string) error { s.Tray.Tooltip = v; return nil },
	},
	"bridge.host": {
		get: func(s *models.Settings) string { return s.Bridge.Host },
		set: func(s *models.Settings, v string) error { s.Bridge.Host = v; return nil },
	},
	"bridge.port": {
		get: func(s *models.Settings) string { return strconv.Itoa(s.Bridge.Port) },
		set: func(s *models.Settings, v string) error {
			port, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid port %q: %w", v, err)
			}
			s.Bridge.Port = port
			return nil
		},
	},
	"log.level": {
		get: func(s *models.Settings) string { return s.Log.Level },
		set: func(s *models.Settings, v string) error { s.Log.Level = v; return nil },
	},
	"log.development": {
		get: func(s *models.Settings) string { return strconv.FormatBool(s.Log.Development) },
		set: func(s *models.Settings, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid boolean %q: %w", v, err)
			}
			s.Log.Development = b
			return nil
		},
	},
}

func settingKeys() []string {
	keys := make([]string, 0, len(settingFields))
	for k := range settingFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// setSetting applies one key and validates the result.
func setSetting(s *models.Settings, key, value string) error {
	f, ok := settingFields[key]
	if !ok {
		return fmt.Errorf("unknown setting %q (expected one of: %s)", key, strings.Join(settingKeys(), ", "))
	}
	if err := f.set(s, value); err != nil {
		return err
	}
	return s.Validate()
}

func printSettings(w io.Writer, s *models.Settings) {
	for _, k := range settingKeys() {
		fmt.Fprintf(w, "  %s %s\n", styleLabel.Render(fmt.Sprintf("%-16s", k)), styleValue.Render(settingFields[k].get(s)))
	}
}
