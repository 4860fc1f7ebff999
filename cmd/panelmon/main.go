// cmd/panelmon/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tamzrod/panelmon/internal/config"
	"github.com/tamzrod/panelmon/internal/fields"
	"github.com/tamzrod/panelmon/internal/ingest"
	"github.com/tamzrod/panelmon/internal/poller"
	"github.com/tamzrod/panelmon/internal/render"
	"github.com/tamzrod/panelmon/internal/writer"
)

// How often the counter summary is logged.
const summaryEvery = time.Minute

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: panelmon <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// --------------------
	// Display
	// --------------------

	be, err := openBackend(cfg.Panel.Display)
	if err != nil {
		log.Fatalf("display open failed (backend=%s): %v", cfg.Panel.Display.Backend, err)
	}
	defer be.close()

	// restore the terminal before dying
	fatalf := func(format string, v ...any) {
		be.close()
		log.Fatalf(format, v...)
	}

	// --------------------
	// Store -> scheduler -> pipeline
	// --------------------

	store := fields.NewStore()

	sched, err := render.NewScheduler(store, be.r)
	if err != nil {
		fatalf("scheduler build failed: %v", err)
	}

	pipe := ingest.NewPipeline(store, sched.FlushCount)

	// ---- poller ----
	p, closePoller, err := poller.Build(cfg.Panel, pipe)
	if err != nil {
		fatalf("poller build failed (transport=%s): %v", cfg.Panel.Source.Transport, err)
	}
	defer closePoller()

	// ---- status writer (optional) ----
	statusWriter, closeStatus, statusEnabled, err := writer.Build(cfg.Panel.Status)
	if err != nil {
		fatalf("status writer build failed: %v", err)
	}
	defer closeStatus()

	if be.tm != nil {
		// log lines would tear the panel
		log.SetOutput(discardUnlessFile())
		go be.tm.WatchKeys(cancel)
	}

	// ---- channel between poller and orchestrator ----
	out := make(chan poller.PollResult)

	name := cfg.Panel.Source.Transport
	if cfg.Panel.Source.Address != "" {
		name += ":" + cfg.Panel.Source.Address
	}

	o := newOrchestrator(name, statusWriter, time.Now())

	// Orchestrator (runner-owned state + 1Hz seconds ticker)
	orchDone := make(chan struct{})
	go func() {
		defer close(orchDone)

		secTicker := time.NewTicker(time.Second)
		defer secTicker.Stop()
		sumTicker := time.NewTicker(summaryEvery)
		defer sumTicker.Stop()

		// Full block write on start (identity re-assert) if enabled.
		o.start()

		for {
			select {
			case <-ctx.Done():
				o.summary()
				return

			case res, ok := <-out:
				if !ok {
					o.summary()
					return
				}
				o.onResult(res)

			case now := <-secTicker.C:
				o.onTick(now)

			case <-sumTicker.C:
				o.summary()
			}
		}
	}()

	log.Printf("panelmon started (source=%s, backend=%s, status=%v)", name, cfg.Panel.Display.Backend, statusEnabled)

	// poller producer; returns on ctx done or EOF of a finite source
	p.Run(ctx, out)
	close(out)

	if ctx.Err() == nil {
		log.Printf("source ended (source=%s)", name)
		if be.tm != nil {
			// keep the last frame on screen until the user quits
			<-ctx.Done()
		}
	}

	<-orchDone
}

// discardUnlessFile keeps logging when stderr is redirected to a file.
func discardUnlessFile() *os.File {
	fi, err := os.Stderr.Stat()
	if err == nil && fi.Mode().IsRegular() {
		return os.Stderr
	}
	null, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return os.Stderr
	}
	return null
}
