// internal/writer/builder.go
package writer

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/panelmon/internal/config"
	wingest "github.com/tamzrod/panelmon/internal/writer/ingest"
	wmodbus "github.com/tamzrod/panelmon/internal/writer/modbus"
)

// BuildPlan converts the status config into a StatusPlan.
// Assumes config has already passed validation.
func BuildPlan(s cfg.StatusConfig) StatusPlan {
	return StatusPlan{
		Endpoint:   s.Endpoint,
		UnitID:     s.UnitID,
		BaseSlot:   s.Slot,
		DeviceName: s.DeviceName,
	}
}

// Build creates the status writer and its endpoint client.
// A nil config means status is disabled: the writer is nil and enabled is false.
func Build(s *cfg.StatusConfig) (sw StatusWriter, closeFn func() error, enabled bool, err error) {
	noop := func() error { return nil }
	if s == nil {
		return nil, noop, false, nil
	}

	timeout := time.Duration(s.TimeoutMs) * time.Millisecond

	var (
		cli    endpointClient
		closer func() error
	)

	switch s.Transport {
	case "ingest":
		c, err := wingest.NewEndpointClient(wingest.Config{Endpoint: s.Endpoint, Timeout: timeout})
		if err != nil {
			return nil, noop, false, err
		}
		cli, closer = c, c.Close
	case "modbus", "":
		c, err := wmodbus.NewEndpointClient(wmodbus.Config{Endpoint: s.Endpoint, Timeout: timeout})
		if err != nil {
			return nil, noop, false, err
		}
		cli, closer = c, c.Close
	default:
		return nil, noop, false, fmt.Errorf("writer: unknown status transport %q", s.Transport)
	}

	w, err := NewDeviceStatusWriter(BuildPlan(*s), cli)
	if err != nil {
		_ = closer()
		return nil, noop, false, err
	}
	return w, closer, true, nil
}
