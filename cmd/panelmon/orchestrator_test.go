// cmd/panelmon/orchestrator_test.go
package main

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/tamzrod/panelmon/internal/ingest"
	"github.com/tamzrod/panelmon/internal/poller"
	"github.com/tamzrod/panelmon/internal/status"
)

type recordingWriter struct {
	snaps []status.Snapshot
}

func (r *recordingWriter) WriteStatus(s status.Snapshot) error {
	r.snaps = append(r.snaps, s)
	return nil
}

func (r *recordingWriter) last() status.Snapshot { return r.snaps[len(r.snaps)-1] }

func TestOrchestrator_StartAssertsUnknown(t *testing.T) {
	w := &recordingWriter{}
	o := newOrchestrator("test", w, time.Now())
	o.start()

	if len(w.snaps) != 1 || w.last().Health != status.HealthUnknown {
		t.Fatalf("start: %+v", w.snaps)
	}
}

func TestOrchestrator_ErrorThenRecovery(t *testing.T) {
	t0 := time.Unix(1000, 0)
	w := &recordingWriter{}
	o := newOrchestrator("test", w, t0)

	o.onResult(poller.PollResult{At: t0, Err: errors.New("cable pulled")})
	if s := w.last(); s.Health != status.HealthError || s.LastErrorCode != 1 {
		t.Fatalf("error snapshot: %+v", s)
	}

	o.onTick(t0.Add(time.Second))
	o.onTick(t0.Add(2 * time.Second))
	if s := w.last(); s.SecondsInError != 2 {
		t.Fatalf("seconds in error: %+v", s)
	}

	o.onResult(poller.PollResult{At: t0.Add(3 * time.Second), Counters: ingest.Counters{Flushes: 1, Applied: 23}})
	s := w.last()
	if s.Health != status.HealthOK || s.LastErrorCode != 0 || s.SecondsInError != 0 {
		t.Fatalf("recovery snapshot: %+v", s)
	}
	if s.Flushes != 1 || s.Applied != 23 {
		t.Fatalf("counters not carried: %+v", s)
	}
}

func TestOrchestrator_IdenticalResultWritesNothing(t *testing.T) {
	t0 := time.Unix(1000, 0)
	w := &recordingWriter{}
	o := newOrchestrator("test", w, t0)

	res := poller.PollResult{At: t0, Counters: ingest.Counters{Flushes: 1}}
	o.onResult(res)
	n := len(w.snaps)
	o.onResult(res)
	if len(w.snaps) != n {
		t.Fatalf("unchanged result should not write")
	}
}

func TestOrchestrator_StaleWithoutFlush(t *testing.T) {
	t0 := time.Unix(1000, 0)
	w := &recordingWriter{}
	o := newOrchestrator("test", w, t0)

	o.onResult(poller.PollResult{At: t0, Counters: ingest.Counters{Flushes: 1}})
	o.onTick(t0.Add(staleAfter - time.Second))
	if w.last().Health != status.HealthOK {
		t.Fatalf("should still be OK: %+v", w.last())
	}

	o.onTick(t0.Add(staleAfter))
	if w.last().Health != status.HealthStale {
		t.Fatalf("expected stale: %+v", w.last())
	}

	// a new END brings it back
	later := t0.Add(staleAfter + time.Second)
	o.onResult(poller.PollResult{At: later, Counters: ingest.Counters{Flushes: 2}})
	if s := w.last(); s.Health != status.HealthOK || s.SecondsInError != 0 {
		t.Fatalf("expected OK after flush: %+v", s)
	}
}

func TestOrchestrator_StaleCountsSecondsAcrossIdlePolls(t *testing.T) {
	t0 := time.Unix(1000, 0)
	w := &recordingWriter{}
	o := newOrchestrator("test", w, t0)

	idle := ingest.Counters{Flushes: 1}
	o.onResult(poller.PollResult{At: t0, Counters: idle})

	staleAt := t0.Add(staleAfter)
	o.onTick(staleAt)
	if s := w.last(); s.Health != status.HealthStale || s.SecondsInError != 1 {
		t.Fatalf("expected stale with 1s: %+v", s)
	}

	const n = 10
	for i := 1; i < n; i++ {
		now := staleAt.Add(time.Duration(i) * time.Second)
		o.onTick(now)
		o.onResult(poller.PollResult{At: now.Add(100 * time.Millisecond), Counters: idle})
	}

	s := w.last()
	if s.Health != status.HealthStale || s.SecondsInError != n {
		t.Fatalf("stale seconds: got health=%d seconds=%d want seconds=%d", s.Health, s.SecondsInError, n)
	}
	// one write per tick, none for the idle polls
	if got := len(w.snaps); got != 1+n {
		t.Fatalf("writes: got=%d want=%d", got, 1+n)
	}
}

func TestOrchestrator_SummaryCarriesDropped(t *testing.T) {
	o := newOrchestrator("test", nil, time.Now())
	o.onResult(poller.PollResult{At: time.Now(), Dropped: 42})
	if o.dropped != 42 {
		t.Fatalf("dropped: got=%d", o.dropped)
	}
	o.summary()
}

func TestOrchestrator_DisabledStatus(t *testing.T) {
	o := newOrchestrator("test", nil, time.Now())
	o.start()
	o.onResult(poller.PollResult{Err: errors.New("x")})
	o.onTick(time.Now())
	o.summary()
}

type codedErr struct{ code uint16 }

func (e codedErr) Error() string { return "coded" }
func (e codedErr) Code() uint16 { return e.code }

func TestErrorCode(t *testing.T) {
	if errorCode(nil) != 0 {
		t.Fatalf("nil must be 0")
	}
	if got := errorCode(fmt.Errorf("wrap: %w", codedErr{7})); got != 7 {
		t.Fatalf("coded: got=%d", got)
	}
	if got := errorCode(fmt.Errorf("open: %w", os.ErrNotExist)); got != 2 {
		t.Fatalf("not exist: got=%d", got)
	}
	if got := errorCode(errors.New("boom")); got != 1 {
		t.Fatalf("generic: got=%d", got)
	}
}
