// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/panelmon/internal/ingest"
)

// Sink consumes drained bytes synchronously.
// The ingest pipeline is the only production sink.
type Sink interface {
	Feed(b []byte)
	Counters() ingest.Counters
	TakeErr() error
}

// dropper is implemented by queued sources that can overflow.
type dropper interface {
	Dropped() uint64
}

// PollResult is a snapshot produced by one poll cycle.
// It holds values only; nothing in it aliases loop-owned state.
type PollResult struct {
	Source string
	At     time.Time

	// Bytes is how many bytes this cycle fed to the sink.
	Bytes int

	// Counters is a copy of the sink counters after this cycle.
	Counters ingest.Counters

	// Dropped is how many bytes the current source lost to its own
	// queue overflowing before they could be drained.
	Dropped uint64

	// Reopened is true when this cycle had to open the source.
	Reopened bool

	// EOF is true when a finite source ended.
	EOF bool

	Err       error // transport failure; the source was discarded
	RenderErr error // render pass failure; state was still committed
}
