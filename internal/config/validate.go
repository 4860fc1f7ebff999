// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
)

// Validate checks panel configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}
	p := cfg.Panel

	// ------------------------------------------------------------
	// SOURCE
	// ------------------------------------------------------------

	switch p.Source.Transport {
	case "serial", "telnet":
		if p.Source.Address == "" {
			return fmt.Errorf("source: transport %q requires address", p.Source.Transport)
		}
	case "mqtt":
		if p.Source.Address == "" {
			return errors.New("source: transport \"mqtt\" requires broker address")
		}
		if p.Source.Topic == "" {
			return errors.New("source: transport \"mqtt\" requires topic")
		}
	case "stdin":
	case "":
		return errors.New("source: transport is required")
	default:
		return fmt.Errorf("source: unknown transport %q", p.Source.Transport)
	}

	if p.Source.BaudRate < 0 || p.Source.TimeoutMs < 0 || p.Source.QueueBytes < 0 {
		return errors.New("source: baud_rate, timeout_ms and queue_bytes must not be negative")
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	if p.Poll.IntervalMs < 0 || p.Poll.MaxBytesPerPoll < 0 {
		return errors.New("poll: interval_ms and max_bytes_per_poll must not be negative")
	}

	// ------------------------------------------------------------
	// DISPLAY
	// ------------------------------------------------------------

	switch p.Display.Backend {
	case "", "terminal":
	case "image":
		if p.Display.ImagePath == "" {
			return errors.New("display: backend \"image\" requires image_path")
		}
	default:
		return fmt.Errorf("display: unknown backend %q", p.Display.Backend)
	}

	// ------------------------------------------------------------
	// STATUS BLOCK (OPT-IN)
	// ------------------------------------------------------------

	if s := p.Status; s != nil {
		switch s.Transport {
		case "", "modbus", "ingest":
		default:
			return fmt.Errorf("status: unknown transport %q", s.Transport)
		}
		if s.Endpoint == "" {
			return errors.New("status: endpoint required")
		}
		// device_name sanity (ASCII only)
		for i := 0; i < len(s.DeviceName); i++ {
			if s.DeviceName[i] > 0x7F {
				return errors.New("status: device_name must contain ASCII characters only")
			}
		}
		// slot*20 must still address a uint16 register
		if uint32(s.Slot)*20+19 > 0xFFFF {
			return fmt.Errorf("status: slot %d out of register range", s.Slot)
		}
	}

	return nil
}

// ValidateFeed checks the sender section.
// It MUST NOT mutate configuration.
func ValidateFeed(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}
	f := cfg.Feed
	if f.Address == "" {
		return errors.New("feed: address required")
	}
	if f.BaudRate < 0 || f.IntervalMs < 0 || f.LineDelayMs < 0 {
		return errors.New("feed: baud_rate, interval_ms and line_delay_ms must not be negative")
	}
	return nil
}
