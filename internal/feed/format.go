// internal/feed/format.go
package feed

import (
	"fmt"
	"strconv"

	"github.com/tamzrod/panelmon/internal/fields"
)

const (
	mib = 1 << 20
	gib = 1 << 30

	unknown = "--"
)

// Pair is one key=value line of a frame.
type Pair struct {
	Key   string
	Value string
}

// Format renders cur as one frame, one pair per panel field in field order.
// Rates need prev; without it (or across a counter reset) they read "--".
func Format(cur Sample, prev *Sample) []Pair {
	v := make([]string, fields.Count)
	for i := range v {
		v[i] = unknown
	}

	v[fields.IP] = cur.IP
	if cur.IP == "" {
		v[fields.IP] = "0.0.0.0"
	}
	if cur.UptimeOK {
		v[fields.Uptime] = FormatUptime(cur.UptimeSec)
	}
	if cur.LoadOK {
		v[fields.Load1] = fmt.Sprintf("%.2f", cur.Load[0])
		v[fields.Load5] = fmt.Sprintf("%.2f", cur.Load[1])
		v[fields.Load15] = fmt.Sprintf("%.2f", cur.Load[2])
	}
	if cur.CPUOK {
		v[fields.CPUPct] = fmt.Sprintf("%.0f", cur.CPUPct)
	}
	if cur.TempOK {
		v[fields.CPUTemp] = fmt.Sprintf("%.0f", cur.CPUTemp)
	}
	if cur.MemOK {
		v[fields.RAMUsed] = strconv.FormatUint(cur.RAMUsed/mib, 10)
		v[fields.RAMTotal] = strconv.FormatUint(cur.RAMTotal/mib, 10)
		v[fields.RAMPct] = fmt.Sprintf("%.0f", cur.RAMPct)
	}
	if cur.SwapOK {
		v[fields.SwapUsed] = strconv.FormatUint(cur.SwapUsed/mib, 10)
		v[fields.SwapTotal] = strconv.FormatUint(cur.SwapTotal/mib, 10)
		v[fields.SwapPct] = fmt.Sprintf("%.0f", cur.SwapPct)
	}
	if cur.DiskOK {
		v[fields.DiskUsed] = strconv.FormatUint(cur.DiskUsed/gib, 10)
		v[fields.DiskTotal] = strconv.FormatUint(cur.DiskTotal/gib, 10)
		v[fields.DiskPct] = fmt.Sprintf("%.0f", cur.DiskPct)
	}

	if prev != nil {
		dt := cur.At.Sub(prev.At).Seconds()
		if dt > 0 && cur.NetOK && prev.NetOK {
			if rx, ok := delta(cur.NetRx, prev.NetRx); ok {
				v[fields.NetRx] = fmt.Sprintf("%.0f", float64(rx)*8/1000/dt)
			}
			if tx, ok := delta(cur.NetTx, prev.NetTx); ok {
				v[fields.NetTx] = fmt.Sprintf("%.0f", float64(tx)*8/1000/dt)
			}
		}
		if dt > 0 && cur.IOOK && prev.IOOK {
			if rd, ok := delta(cur.DiskRead, prev.DiskRead); ok {
				v[fields.DiskRead] = fmt.Sprintf("%.1f", float64(rd)/mib/dt)
			}
			if wr, ok := delta(cur.DiskWrite, prev.DiskWrite); ok {
				v[fields.DiskWrite] = fmt.Sprintf("%.1f", float64(wr)/mib/dt)
			}
		}
	}

	if cur.Procs >= 0 {
		v[fields.ProcCount] = strconv.Itoa(cur.Procs)
	}
	if cur.SMBClients >= 0 {
		v[fields.SMBClients] = strconv.Itoa(cur.SMBClients)
	}
	if cur.ConnIn >= 0 {
		v[fields.ConnIn] = strconv.Itoa(cur.ConnIn)
	}

	out := make([]Pair, fields.Count)
	for i := range out {
		out[i] = Pair{Key: fields.ID(i).Key(), Value: v[i]}
	}
	return out
}

func delta(cur, prev uint64) (uint64, bool) {
	if cur < prev {
		return 0, false
	}
	return cur - prev, true
}

// FormatUptime renders seconds as "Nd Nh Nm", "Nh Nm" or "Nm".
func FormatUptime(sec uint64) string {
	days := sec / 86400
	hours := sec % 86400 / 3600
	mins := sec % 3600 / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}
