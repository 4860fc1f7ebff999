// internal/status/snapshot.go
package status

import "github.com/tamzrod/panelmon/internal/ingest"

// Snapshot represents exactly what the writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health         uint16
	LastErrorCode  uint16
	SecondsInError uint16

	Flushes     uint16
	Redrawn     uint16
	Applied     uint16
	Discarded   uint16
	Truncated   uint16
	UnknownKeys uint16
}

// WithCounters returns s with its counter slots taken from c.
// Link health fields are left untouched.
func (s Snapshot) WithCounters(c ingest.Counters) Snapshot {
	s.Flushes = saturate(c.Flushes)
	s.Redrawn = saturate(c.Redrawn)
	s.Applied = saturate(c.Applied)
	s.Discarded = saturate(c.Discarded)
	s.Truncated = saturate(c.Truncated)
	s.UnknownKeys = saturate(c.UnknownKeys)
	return s
}

func saturate(v uint32) uint16 {
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}
