// cmd/panelfeed/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goburrow/serial"

	"github.com/tamzrod/panelmon/internal/config"
	"github.com/tamzrod/panelmon/internal/feed"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: panelfeed <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.ValidateFeed(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	f := cfg.Feed

	// --------------------
	// Port
	// --------------------

	port, err := serial.Open(&serial.Config{
		Address:  f.Address,
		BaudRate: f.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  time.Second,
	})
	if err != nil {
		log.Fatalf("serial open failed (port=%s): %v", f.Address, err)
	}
	defer port.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Printf("panelfeed started (port=%s, baud=%d, interval=%dms)", f.Address, f.BaudRate, f.IntervalMs)

	col := feed.NewCollector(f.DiskPath)
	lineDelay := time.Duration(f.LineDelayMs) * time.Millisecond

	ticker := time.NewTicker(time.Duration(f.IntervalMs) * time.Millisecond)
	defer ticker.Stop()

	var frames uint64

	for {
		pairs, s := col.Collect(ctx)

		if err := feed.Send(port, pairs, lineDelay); err != nil {
			log.Printf("send failed (port=%s): %v", f.Address, err)
		} else {
			frames++
			log.Printf(
				"frame %s (cpu=%.0f%%, ram=%s/%s, procs=%d)",
				humanize.Comma(int64(frames)),
				s.CPUPct,
				humanize.IBytes(s.RAMUsed),
				humanize.IBytes(s.RAMTotal),
				s.Procs,
			)
		}

		select {
		case <-ctx.Done():
			log.Printf("panelfeed stopped after %s frames", humanize.Comma(int64(frames)))
			return
		case <-ticker.C:
		}
	}
}
