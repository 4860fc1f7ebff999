// internal/feed/sample.go
package feed

import "time"

// Sample is one raw reading of the host.
// Unknown readings keep their zero value and clear the matching ok flag
// or carry -1 for counts.
type Sample struct {
	At time.Time

	IP        string
	UptimeSec uint64

	Load   [3]float64
	LoadOK bool

	CPUPct   float64
	CPUTemp  float64
	CPUOK    bool
	TempOK   bool
	MemOK    bool
	SwapOK   bool
	DiskOK   bool
	UptimeOK bool

	RAMUsed, RAMTotal   uint64
	RAMPct              float64
	SwapUsed, SwapTotal uint64
	SwapPct             float64
	DiskUsed, DiskTotal uint64
	DiskPct             float64

	// cumulative counters; rates come from two samples
	NetRx, NetTx        uint64
	NetOK               bool
	DiskRead, DiskWrite uint64
	IOOK                bool

	Procs      int
	SMBClients int
	ConnIn     int
}
