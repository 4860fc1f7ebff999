// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Panel PanelConfig `yaml:"panel"`
	Feed  FeedConfig  `yaml:"feed"`
}

// ---- PANEL (renderer side) ----

type PanelConfig struct {
	Source  SourceConfig  `yaml:"source"`
	Poll    PollConfig    `yaml:"poll"`
	Display DisplayConfig `yaml:"display"`

	// Status block export (optional, opt-in)
	Status *StatusConfig `yaml:"status"`
}

// ---- SOURCE ----

type SourceConfig struct {
	Transport string `yaml:"transport"` // serial | telnet | mqtt | stdin
	Address   string `yaml:"address"`   // device path, host:port or broker URL
	BaudRate  int    `yaml:"baud_rate"`
	TimeoutMs int    `yaml:"timeout_ms"`

	// mqtt only
	Topic      string `yaml:"topic"`
	ClientID   string `yaml:"client_id"`
	QueueBytes int    `yaml:"queue_bytes"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs      int `yaml:"interval_ms"`
	MaxBytesPerPoll int `yaml:"max_bytes_per_poll"`
}

// ---- DISPLAY ----

type DisplayConfig struct {
	Backend   string `yaml:"backend"`    // terminal | image
	ImagePath string `yaml:"image_path"` // image backend: PNG written after each pass
}

// ---- STATUS ----

type StatusConfig struct {
	Transport  string `yaml:"transport"` // modbus | ingest
	Endpoint   string `yaml:"endpoint"`
	UnitID     uint8  `yaml:"unit_id"`
	Slot       uint16 `yaml:"slot"`
	DeviceName string `yaml:"device_name"`
	TimeoutMs  int    `yaml:"timeout_ms"`
}

// ---- FEED (sender side) ----

type FeedConfig struct {
	Address     string `yaml:"address"`
	BaudRate    int    `yaml:"baud_rate"`
	IntervalMs  int    `yaml:"interval_ms"`
	LineDelayMs int    `yaml:"line_delay_ms"`
	DiskPath    string `yaml:"disk_path"`
}

// Load reads and decodes a YAML config file.
// Unknown keys are rejected so typos surface at startup.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return &cfg, nil
}
