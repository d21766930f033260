package models

import "fmt"

// Menu variants.
const (
	VariantRich   = "rich"
	VariantSimple = "simple"
)

// Label sets.
const (
	LabelsPT = "pt"
	LabelsEN = "en"
)

// TrayConfig holds tray menu settings.
type TrayConfig struct {
	Variant string `yaml:"variant"` // "rich" | "simple"
	Labels  string `yaml:"labels"`  // "pt" | "en"
	Tooltip string `yaml:"tooltip"`
}

// BridgeConfig holds the front-end bridge listen address.
type BridgeConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"` // 0 = dynamic
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level       string `yaml:"level"` // "debug" | "info" | "warn" | "error"
	Development bool   `yaml:"development"`
}

// Settings represents global application settings.
// This corresponds to ~/.goaltray/settings.yaml.
type Settings struct {
	Version int          `yaml:"version"`
	Tray    TrayConfig   `yaml:"tray"`
	Bridge  BridgeConfig `yaml:"bridge"`
	Log     LogConfig    `yaml:"log"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Tray: TrayConfig{
			Variant: VariantRich,
			Labels:  LabelsPT,
			Tooltip: "Metas",
		},
		Bridge: BridgeConfig{
			Host: "localhost",
			Port: 0,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Normalize fills zero values left by partial settings files.
func (s *Settings) Normalize() {
	def := NewSettings()
	if s.Version == 0 {
		s.Version = def.Version
	}
	if s.Tray.Variant == "" {
		s.Tray.Variant = def.Tray.Variant
	}
	if s.Tray.Labels == "" {
		s.Tray.Labels = def.Tray.Labels
	}
	if s.Tray.Tooltip == "" {
		s.Tray.Tooltip = def.Tray.Tooltip
	}
	if s.Bridge.Host == "" {
		s.Bridge.Host = def.Bridge.Host
	}
	if s.Log.Level == "" {
		s.Log.Level = def.Log.Level
	}
}

// Validate checks enumerated fields.
func (s *Settings) Validate() error {
	switch s.Tray.Variant {
	case VariantRich, VariantSimple:
	default:
		return fmt.Errorf("invalid tray.variant %q (expected rich or simple)", s.Tray.Variant)
	}
	switch s.Tray.Labels {
	case LabelsPT, LabelsEN:
	default:
		return fmt.Errorf("invalid tray.labels %q (expected pt or en)", s.Tray.Labels)
	}
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q", s.Log.Level)
	}
	if s.Bridge.Port < 0 || s.Bridge.Port > 65535 {
		return fmt.Errorf("invalid bridge.port %d", s.Bridge.Port)
	}
	return nil
}
