package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/proximity-nav/internal/nav"
	"github.com/iburimskiy/proximity-nav/internal/proximity"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512

	FeedbackRingSize = 4096

	// Nav bar placement
	NavY      = 40
	NavHeight = 48
	NavPad    = 12

	// Control pills
	ControlsMargin = 20
	OptionWidth    = 64
	OptionHeight   = 32
	HoverFloor     = 1.05

	// Click feedback tone
	BlipFrequency = 880
	BlipDuration  = 60 // ms
	BlipVolume    = 0.25
)

const (
	EnvConfig      = "PROXNAV_CONFIG"
	EnvDB          = "PROXNAV_DB"
	EnvInspectAddr = "PROXNAV_INSPECT_ADDR"
	EnvSound       = "PROXNAV_SOUND"
)

var ErrInvalidConfig = errors.New("invalid config")

// Preset is one animator's tuning plus the size of its response ellipse.
type Preset struct {
	proximity.Config `yaml:",inline"`
	RadiusX          float64 `yaml:"radius_x"`
	RadiusY          float64 `yaml:"radius_y"`
}

type Config struct {
	Nav      Preset     `yaml:"nav"`
	Theme    Preset     `yaml:"theme"`
	Language Preset     `yaml:"language"`
	Items    []nav.Item `yaml:"items"`

	DB          string `yaml:"db"`
	InspectAddr string `yaml:"inspect_addr"`
	Sound       bool   `yaml:"sound"`
}

func Default() Config {
	navCfg := proximity.DefaultConfig()
	ctlCfg := proximity.DefaultConfig()
	ctlCfg.MaxBoost = 0.12
	return Config{
		Nav:      Preset{Config: navCfg, RadiusX: 350, RadiusY: 150},
		Theme:    Preset{Config: ctlCfg, RadiusX: 200, RadiusY: 120},
		Language: Preset{Config: ctlCfg, RadiusX: 200, RadiusY: 120},
		Items:    nav.DefaultItems(),
		Sound:    true,
	}
}

// LoadEnv reads a .env file if present and reports whether it did.
func LoadEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Load starts from Default, overlays the YAML file at path (if non-empty) and
// then the PROXNAV_* environment variables, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadItems reads a nav layout file: either a bare list of items or a
// document with an items key.
func LoadItems(path string) ([]nav.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []nav.Item
	if err := yaml.Unmarshal(data, &items); err != nil {
		var doc struct {
			Items []nav.Item `yaml:"items"`
		}
		if err2 := yaml.Unmarshal(data, &doc); err2 != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
		items = doc.Items
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvDB)); v != "" {
		c.DB = v
	}
	if v, ok := os.LookupEnv(EnvInspectAddr); ok {
		c.InspectAddr = strings.TrimSpace(v)
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvSound))) {
	case "0", "false", "off", "no":
		c.Sound = false
	case "1", "true", "on", "yes":
		c.Sound = true
	}
}

func (c Config) Validate() error {
	for name, p := range map[string]Preset{"nav": c.Nav, "theme": c.Theme, "language": c.Language} {
		if err := p.Config.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if !(p.RadiusX > 0 && p.RadiusY > 0) {
			return fmt.Errorf("%w: %s radii must be > 0", ErrInvalidConfig, name)
		}
	}
	return validateItems(c.Items)
}

func validateItems(items []nav.Item) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: no nav items", ErrInvalidConfig)
	}
	seen := map[string]bool{}
	for i, it := range items {
		if strings.TrimSpace(it.ID) == "" || strings.TrimSpace(it.Section) == "" {
			return fmt.Errorf("%w: item %d needs id and section", ErrInvalidConfig, i)
		}
		if seen[it.ID] {
			return fmt.Errorf("%w: duplicate item id %q", ErrInvalidConfig, it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}
