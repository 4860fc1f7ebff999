// cmd/panelmon/orchestrator.go
package main

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tamzrod/panelmon/internal/ingest"
	"github.com/tamzrod/panelmon/internal/poller"
	"github.com/tamzrod/panelmon/internal/status"
	"github.com/tamzrod/panelmon/internal/writer"
)

// A healthy link with no END for this long reports stale.
const staleAfter = 10 * time.Second

// orchestrator owns the status snapshot. It only ever sees value copies
// of poll results; the pipeline itself stays on the poll goroutine.
type orchestrator struct {
	name string
	sw   writer.StatusWriter // nil when status is disabled

	snap        status.Snapshot
	lastFlushes uint32
	lastFlushAt time.Time

	last    ingest.Counters
	dropped uint64
	lastErr string
}

func newOrchestrator(name string, sw writer.StatusWriter, now time.Time) *orchestrator {
	return &orchestrator{
		name:        name,
		sw:          sw,
		snap:        status.Snapshot{Health: status.HealthUnknown},
		lastFlushAt: now,
	}
}

// start asserts the full status block once.
func (o *orchestrator) start() {
	o.write("on start")
}

// onResult folds one poll cycle into the snapshot.
func (o *orchestrator) onResult(res poller.PollResult) {
	o.last = res.Counters
	o.dropped = res.Dropped

	if res.Reopened {
		log.Printf("source reopened (source=%s)", res.Source)
	}
	if res.RenderErr != nil {
		log.Printf("render error (source=%s): %v", res.Source, res.RenderErr)
	}

	changed := false

	if res.Counters.Flushes != o.lastFlushes {
		o.lastFlushes = res.Counters.Flushes
		o.lastFlushAt = res.At
	}

	next := o.snap.WithCounters(res.Counters)
	if next != o.snap {
		o.snap = next
		changed = true
	}

	if res.Err == nil {
		// Recovery / OK. Stale only clears on a fresh END; until then it
		// keeps counting seconds like an error.
		recovered := false
		switch o.snap.Health {
		case status.HealthOK:
		case status.HealthStale:
			recovered = res.At.Sub(o.lastFlushAt) < staleAfter
		default:
			recovered = true
		}
		if recovered {
			o.snap.Health = status.HealthOK
			o.snap.LastErrorCode = 0
			o.snap.SecondsInError = 0
			changed = true
		}
		o.lastErr = ""
	} else {
		if msg := res.Err.Error(); msg != o.lastErr {
			log.Printf("source error (source=%s): %v", res.Source, res.Err)
			o.lastErr = msg
		}

		if o.snap.Health != status.HealthError {
			o.snap.Health = status.HealthError
			changed = true
		}

		// Set raw-ish error code (best-effort pass-through).
		code := errorCode(res.Err)
		if o.snap.LastErrorCode != code {
			o.snap.LastErrorCode = code
			changed = true
		}

		// NOTE: seconds_in_error increments on the 1Hz ticker only.
	}

	if changed {
		o.write("")
	}
}

// onTick runs at 1 Hz.
func (o *orchestrator) onTick(now time.Time) {
	changed := false

	if o.snap.Health == status.HealthOK && now.Sub(o.lastFlushAt) >= staleAfter {
		o.snap.Health = status.HealthStale
		changed = true
	}

	// Tick 1 Hz while not OK.
	if o.snap.Health != status.HealthOK && o.snap.Health != status.HealthUnknown {
		if o.snap.SecondsInError < 65535 {
			o.snap.SecondsInError++
			changed = true
		}
	}

	if changed {
		o.write("seconds tick")
	}
}

// summary logs the pipeline counters.
func (o *orchestrator) summary() {
	c := o.last
	log.Printf(
		"panel stats (source=%s): %s in, %s lines, %s applied, %s flushes, %s redrawn, %s discarded, %s truncated, %s unknown, %s queue overflow",
		o.name,
		humanize.Bytes(uint64(c.Bytes)),
		humanize.Comma(int64(c.Lines)),
		humanize.Comma(int64(c.Applied)),
		humanize.Comma(int64(c.Flushes)),
		humanize.Comma(int64(c.Redrawn)),
		humanize.Comma(int64(c.Discarded)),
		humanize.Comma(int64(c.Truncated)),
		humanize.Comma(int64(c.UnknownKeys)),
		humanize.Bytes(o.dropped),
	)
}

func (o *orchestrator) write(when string) {
	if o.sw == nil {
		return
	}
	if err := o.sw.WriteStatus(o.snap); err != nil {
		if when != "" {
			log.Printf("status write failed %s (source=%s): %v", when, o.name, err)
			return
		}
		log.Printf("status write failed (source=%s): %v", o.name, err)
	}
}

// errorCode extracts a best-effort uint16 code from an error without assuming concrete types.
// If the error does not expose a code, returns 1 (generic error).
func errorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	type coderA interface{ Code() uint16 }
	type coderB interface{ ErrorCode() uint16 }

	var a coderA
	if errors.As(err, &a) {
		return a.Code()
	}
	var b coderB
	if errors.As(err, &b) {
		return b.ErrorCode()
	}

	switch {
	case errors.Is(err, os.ErrNotExist):
		return 2 // port or device gone
	case errors.Is(err, os.ErrPermission):
		return 3
	}

	return 1
}
