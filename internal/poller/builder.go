// internal/poller/builder.go
package poller

import (
	"time"

	cfg "github.com/tamzrod/panelmon/internal/config"
	"github.com/tamzrod/panelmon/internal/source"
)

// Build constructs a Poller and wires the source lifecycle.
// The source is reused while healthy.
// On transport death, Poller discards it and uses factory on a future tick.
// No retries, no loops, no semantics.
func Build(p cfg.PanelConfig, sink Sink) (*Poller, func() error, error) {
	sc := source.Config{
		Transport: p.Source.Transport,
		Address:   p.Source.Address,
		BaudRate:  p.Source.BaudRate,
		Timeout:   time.Duration(p.Source.TimeoutMs) * time.Millisecond,
		Topic:     p.Source.Topic,
		ClientID:  p.Source.ClientID,
		QueueLen:  p.Source.QueueBytes,
	}

	// source factory: ONE attempt per call
	factory := func() (source.Source, error) {
		return source.Open(sc)
	}

	// initial source (fail fast at startup)
	src, err := factory()
	if err != nil {
		return nil, nil, err
	}

	name := sc.Transport
	if sc.Address != "" {
		name += ":" + sc.Address
	}

	pl, err := New(
		Config{
			Name:            name,
			Interval:        time.Duration(p.Poll.IntervalMs) * time.Millisecond,
			MaxBytesPerPoll: p.Poll.MaxBytesPerPoll,
		},
		src,
		factory,
		sink,
	)
	if err != nil {
		_ = src.Close()
		return nil, nil, err
	}

	return pl, pl.Close, nil
}
