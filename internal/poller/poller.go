// internal/poller/poller.go
package poller

import (
	"errors"
	"io"
	"time"

	"github.com/tamzrod/panelmon/internal/source"
)

const (
	readChunk              = 512
	defaultMaxBytesPerPoll = 4096
)

// Factory opens a fresh source. ONE attempt per call.
type Factory func() (source.Source, error)

// Config is the minimal runtime config the poller needs.
type Config struct {
	Name            string
	Interval        time.Duration
	MaxBytesPerPoll int
}

// Poller is a dumb, clock-driven reader.
// Each cycle drains what the source has right now and feeds the sink in
// the same goroutine; nothing waits for input.
type Poller struct {
	cfg     Config
	src     source.Source
	factory Factory
	sink    Sink
	buf     []byte
}

// New creates a poller with immutable config.
// src may be nil if factory is set; the first cycle then opens it.
func New(cfg Config, src source.Source, factory Factory, sink Sink) (*Poller, error) {
	if cfg.Name == "" {
		return nil, errors.New("poller: source name required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if sink == nil {
		return nil, errors.New("poller: sink required")
	}
	if src == nil && factory == nil {
		return nil, errors.New("poller: source or factory required")
	}
	if cfg.MaxBytesPerPoll <= 0 {
		cfg.MaxBytesPerPoll = defaultMaxBytesPerPoll
	}
	return &Poller{
		cfg:     cfg,
		src:     src,
		factory: factory,
		sink:    sink,
		buf:     make([]byte, readChunk),
	}, nil
}

// PollOnce performs exactly one poll cycle.
// On transport death the source is discarded; a later cycle reopens it.
func (p *Poller) PollOnce() (res PollResult) {
	res = PollResult{
		Source: p.cfg.Name,
		At:     time.Now(),
	}
	defer func() {
		res.Counters = p.sink.Counters()
		res.RenderErr = p.sink.TakeErr()
	}()
	defer func() {
		if d, ok := p.src.(dropper); ok {
			res.Dropped = d.Dropped()
		}
	}()

	if p.src == nil {
		if p.factory == nil {
			res.Err = errors.New("poller: source closed and no factory")
			return res
		}
		src, err := p.factory()
		if err != nil {
			res.Err = err
			return res
		}
		p.src = src
		res.Reopened = true
	}

	for res.Bytes < p.cfg.MaxBytesPerPoll {
		want := p.cfg.MaxBytesPerPoll - res.Bytes
		if want > len(p.buf) {
			want = len(p.buf)
		}

		n, err := p.src.Read(p.buf[:want])
		if n > 0 {
			p.sink.Feed(p.buf[:n])
			res.Bytes += n
		}

		if err != nil {
			_ = p.src.Close()
			p.src = nil
			if errors.Is(err, io.EOF) {
				res.EOF = true
			} else {
				res.Err = err
			}
			return res
		}

		// nothing (more) available this cycle
		if n == 0 {
			return res
		}
	}

	return res
}

// Close releases the current source, if any.
func (p *Poller) Close() error {
	if p.src == nil {
		return nil
	}
	err := p.src.Close()
	p.src = nil
	return err
}
