// Package config loads the invcore YAML configuration file.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/invcore/engine/manager"
	"github.com/nathoo/invcore/engine/tags"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Equipment EquipmentConfig `yaml:"equipment"`
	Inventory InventoryConfig `yaml:"inventory"`
	Catalog   string          `yaml:"catalog"` // default catalog directory, relative to the config file
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // logrus level name
	Format string `yaml:"format"` // "text" or "json"
}

// EquipmentConfig overrides the recognized equipment slots
type EquipmentConfig struct {
	Slots []string `yaml:"slots"`
}

// InventoryConfig holds inventory manager settings
type InventoryConfig struct {
	MovePolicy string `yaml:"move_policy"` // "uniform" or "rollback"
	Seed       int64  `yaml:"seed"`        // fixed identity seed for replays; 0 = random
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file. A relative catalog path is
// resolved against the directory holding the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Catalog != "" && !filepath.IsAbs(cfg.Catalog) {
		cfg.Catalog = filepath.Join(filepath.Dir(path), cfg.Catalog)
	}
	return cfg, nil
}

// Parse decodes and validates YAML configuration. Unknown keys are errors.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Inventory.MovePolicy == "" {
		c.Inventory.MovePolicy = "uniform"
	}
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if _, err := manager.ParseMovePolicy(c.Inventory.MovePolicy); err != nil {
		return fmt.Errorf("inventory.move_policy: %w", err)
	}
	seen := make(map[string]bool, len(c.Equipment.Slots))
	for _, s := range c.Equipment.Slots {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("equipment.slots: empty slot name")
		}
		if seen[s] {
			return fmt.Errorf("equipment.slots: duplicate slot %q", s)
		}
		seen[s] = true
	}
	return nil
}

// MovePolicy returns the parsed move policy.
func (c *Config) MovePolicy() manager.MovePolicy {
	p, _ := manager.ParseMovePolicy(c.Inventory.MovePolicy)
	return p
}

// EquipmentSlots returns the configured slot names, or the default slots.
func (c *Config) EquipmentSlots() []string {
	if len(c.Equipment.Slots) == 0 {
		return tags.DefaultSlotNames()
	}
	out := make([]string, len(c.Equipment.Slots))
	copy(out, c.Equipment.Slots)
	return out
}

// NewLogger builds a logger from the log section, writing to w.
func (c *Config) NewLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	if lvl, err := logrus.ParseLevel(c.Log.Level); err == nil {
		l.SetLevel(lvl)
	}
	if c.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return l
}
