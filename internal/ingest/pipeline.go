// internal/ingest/pipeline.go
package ingest

// State is the position of the pipeline in its line cycle.
type State uint8

const (
	StateAccumulating State = iota
	StateLineReady
	StateApplying
	StateRendering
)

func (s State) String() string {
	switch s {
	case StateAccumulating:
		return "accumulating"
	case StateLineReady:
		return "line_ready"
	case StateApplying:
		return "applying"
	case StateRendering:
		return "rendering"
	default:
		return "unknown"
	}
}

// Applier receives key/value updates.
// It reports false for keys it does not recognize.
type Applier interface {
	Apply(key, value string) bool
}

// FlushFunc runs one render pass and reports how many regions it repainted.
type FlushFunc func() (redrawn int, err error)

// Counters is a value snapshot of pipeline activity.
type Counters struct {
	Bytes       uint32
	Lines       uint32
	Applied     uint32
	UnknownKeys uint32
	Discarded   uint32
	Truncated   uint32
	Flushes     uint32
	Redrawn     uint32
	FlushErrors uint32
}

// Pipeline wires accumulator, parser, store and render pass together.
// One goroutine owns it; there is no locking.
type Pipeline struct {
	acc   LineAccumulator
	store Applier
	flush FlushFunc

	state    State
	counters Counters
	lastErr  error

	// OnTransition, if set, observes every state change.
	OnTransition func(from, to State)
}

// NewPipeline builds a pipeline in the accumulating state.
func NewPipeline(store Applier, flush FlushFunc) *Pipeline {
	return &Pipeline{
		store: store,
		flush: flush,
		state: StateAccumulating,
	}
}

// Feed processes bytes synchronously, in order.
func (p *Pipeline) Feed(b []byte) {
	for _, c := range b {
		p.FeedByte(c)
	}
}

// FeedByte processes one byte.
func (p *Pipeline) FeedByte(c byte) {
	p.counters.Bytes++

	line, truncated, ok := p.acc.Push(c)
	if !ok {
		return
	}

	p.to(StateLineReady)
	p.counters.Lines++
	if truncated {
		p.counters.Truncated++
	}

	ev := ParseLine(line)
	switch ev.Kind {
	case KindFlush:
		p.to(StateRendering)
		p.counters.Flushes++
		if p.flush != nil {
			n, err := p.flush()
			p.counters.Redrawn += uint32(n)
			if err != nil {
				p.counters.FlushErrors++
				p.lastErr = err
			}
		}

	case KindApply:
		p.to(StateApplying)
		if p.store != nil && p.store.Apply(ev.Key, ev.Value) {
			p.counters.Applied++
		} else {
			p.counters.UnknownKeys++
		}

	default:
		p.counters.Discarded++
	}

	p.to(StateAccumulating)
}

// State returns the current state.
func (p *Pipeline) State() State { return p.state }

// Counters returns a copy of the activity counters.
func (p *Pipeline) Counters() Counters { return p.counters }

// TakeErr returns and clears the last render error.
func (p *Pipeline) TakeErr() error {
	err := p.lastErr
	p.lastErr = nil
	return err
}

// Pending returns the number of bytes waiting for a terminator.
func (p *Pipeline) Pending() int { return p.acc.Len() }

func (p *Pipeline) to(next State) {
	if p.state == next {
		return
	}
	prev := p.state
	p.state = next
	if p.OnTransition != nil {
		p.OnTransition(prev, next)
	}
}
