// internal/feed/feed_test.go
package feed

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/tamzrod/panelmon/internal/fields"
	"github.com/tamzrod/panelmon/internal/ingest"
)

func value(pairs []Pair, key string) string {
	for _, p := range pairs {
		if p.Key == key {
			return p.Value
		}
	}
	return "<missing>"
}

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		sec  uint64
		want string
	}{
		{0, "0m"},
		{59, "0m"},
		{61, "1m"},
		{3*3600 + 5*60, "3h 5m"},
		{2*86400 + 3600 + 60, "2d 1h 1m"},
		{86400, "1d 0h 0m"},
	}
	for _, c := range cases {
		if got := FormatUptime(c.sec); got != c.want {
			t.Fatalf("FormatUptime(%d): got=%q want=%q", c.sec, got, c.want)
		}
	}
}

func TestFormat_AllKeysInFieldOrder(t *testing.T) {
	pairs := Format(Sample{Procs: -1, SMBClients: -1, ConnIn: -1}, nil)
	keys := fields.Keys()

	if len(pairs) != len(keys) {
		t.Fatalf("pairs: got=%d want=%d", len(pairs), len(keys))
	}
	for i, p := range pairs {
		if p.Key != keys[i] {
			t.Fatalf("pair %d: got=%q want=%q", i, p.Key, keys[i])
		}
	}
	if value(pairs, "ip") != "0.0.0.0" || value(pairs, "cpu_pct") != "--" {
		t.Fatalf("unknown readings: %v", pairs)
	}
}

func TestFormat_Units(t *testing.T) {
	s := Sample{
		IP:       "10.0.0.5",
		LoadOK:   true,
		Load:     [3]float64{0.5, 1.234, 2},
		CPUOK:    true,
		CPUPct:   91.4,
		MemOK:    true,
		RAMUsed:  1536 * mib,
		RAMTotal: 4096 * mib,
		RAMPct:   37.5,
		DiskOK:   true,
		DiskUsed: 10*gib + 5,
		DiskPct:  76,
		Procs:    212,
		ConnIn:   3,
	}
	pairs := Format(s, nil)

	want := map[string]string{
		"ip":          "10.0.0.5",
		"load_1":      "0.50",
		"load_5":      "1.23",
		"load_15":     "2.00",
		"cpu_pct":     "91",
		"ram_used":    "1536",
		"ram_total":   "4096",
		"disk_used":   "10",
		"disk_pct":    "76",
		"proc_count":  "212",
		"smb_clients": "0",
		"conn_in":     "3",
		"net_rx":      "--",
		"disk_read":   "--",
	}
	for k, v := range want {
		if got := value(pairs, k); got != v {
			t.Fatalf("%s: got=%q want=%q", k, got, v)
		}
	}
}

func TestFormat_RatesFromPrevious(t *testing.T) {
	t0 := time.Unix(1000, 0)
	prev := Sample{At: t0, NetOK: true, NetRx: 0, NetTx: 1000, IOOK: true, DiskRead: 0, DiskWrite: 0}
	cur := Sample{
		At:    t0.Add(2 * time.Second),
		NetOK: true, NetRx: 250_000, NetTx: 1000,
		IOOK: true, DiskRead: 3 * mib, DiskWrite: 0,
	}

	pairs := Format(cur, &prev)
	// 250000 B * 8 / 1000 / 2 s = 1000 kbit/s
	if got := value(pairs, "net_rx"); got != "1000" {
		t.Fatalf("net_rx: got=%q", got)
	}
	if got := value(pairs, "net_tx"); got != "0" {
		t.Fatalf("net_tx: got=%q", got)
	}
	if got := value(pairs, "disk_read"); got != "1.5" {
		t.Fatalf("disk_read: got=%q", got)
	}

	// counter reset
	reset := cur
	reset.At = cur.At.Add(time.Second)
	reset.NetRx = 10
	pairs = Format(reset, &cur)
	if got := value(pairs, "net_rx"); got != "--" {
		t.Fatalf("net_rx after reset: got=%q", got)
	}
}

func TestPickIP(t *testing.T) {
	ifs := psnet.InterfaceStatList{
		{Name: "lo", Addrs: psnet.InterfaceAddrList{{Addr: "127.0.0.1/8"}}},
		{Name: "wg0", Addrs: psnet.InterfaceAddrList{{Addr: "10.8.0.2/24"}}},
		{Name: "wlan0", Addrs: psnet.InterfaceAddrList{{Addr: "192.168.1.20/24"}}},
		{Name: "enp3s0", Addrs: psnet.InterfaceAddrList{{Addr: "fe80::1/64"}, {Addr: "192.168.1.10/24"}}},
	}
	if got := pickIP(ifs); got != "192.168.1.10" {
		t.Fatalf("wired preferred: got=%q", got)
	}

	ifs = ifs[:3]
	if got := pickIP(ifs); got != "192.168.1.20" {
		t.Fatalf("private fallback: got=%q", got)
	}

	if got := pickIP(ifs[:2]); got != "0.0.0.0" {
		t.Fatalf("nothing usable: got=%q", got)
	}
}

func TestSumWholeDisks(t *testing.T) {
	dio := map[string]disk.IOCountersStat{
		"sda":       {ReadBytes: 100, WriteBytes: 10},
		"sda1":      {ReadBytes: 90, WriteBytes: 9},
		"nvme0n1":   {ReadBytes: 1000, WriteBytes: 100},
		"nvme0n1p2": {ReadBytes: 900, WriteBytes: 90},
		"loop1":     {ReadBytes: 1},
		"loop10":    {ReadBytes: 2},
	}
	r, w := sumWholeDisks(dio)
	if r != 1103 || w != 110 {
		t.Fatalf("sum: read=%d write=%d", r, w)
	}
}

func TestConnectionCounts(t *testing.T) {
	conn := func(status string, lport uint32, rip string) psnet.ConnectionStat {
		return psnet.ConnectionStat{
			Status: status,
			Laddr:  psnet.Addr{IP: "10.0.0.5", Port: lport},
			Raddr:  psnet.Addr{IP: rip, Port: 50000},
		}
	}
	conns := []psnet.ConnectionStat{
		conn("ESTABLISHED", 445, "10.0.0.7"),
		conn("ESTABLISHED", 445, "10.0.0.7"),
		conn("ESTABLISHED", 139, "10.0.0.8"),
		conn("ESTABLISHED", 22, "10.0.0.9"),
		conn("ESTABLISHED", 443, "10.0.0.9"),
		conn("ESTABLISHED", 51000, "1.1.1.1"),
		conn("LISTEN", 80, ""),
	}
	if got := countSMBClients(conns); got != 2 {
		t.Fatalf("smb clients: got=%d", got)
	}
	if got := countIncoming(conns); got != 2 {
		t.Fatalf("incoming: got=%d", got)
	}
}

func TestSend_WireFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Send(&buf, []Pair{{"ip", "10.0.0.5"}, {"cpu_pct", "12"}}, 0)
	if err != nil {
		t.Fatalf("Send err=%v", err)
	}
	if got := buf.String(); got != "ip=10.0.0.5\ncpu_pct=12\nEND\n" {
		t.Fatalf("wire: %q", got)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, bytes.ErrTooLarge }

func TestSend_PropagatesWriteError(t *testing.T) {
	if err := Send(failWriter{}, []Pair{{"ip", "x"}}, 0); err == nil {
		t.Fatalf("expected write error")
	}
}

func TestFrame_RoundTripsThroughPipeline(t *testing.T) {
	s := Sample{
		IP: "192.168.1.50", UptimeOK: true, UptimeSec: 90061,
		CPUOK: true, CPUPct: 42, Procs: 7, SMBClients: 1, ConnIn: 4,
	}
	pairs := Format(s, nil)

	var buf bytes.Buffer
	if err := Send(&buf, pairs, 0); err != nil {
		t.Fatalf("Send err=%v", err)
	}

	store := fields.NewStore()
	flushes := 0
	pipe := ingest.NewPipeline(store, func() (int, error) {
		flushes++
		return 0, nil
	})
	pipe.Feed(buf.Bytes())

	c := pipe.Counters()
	if flushes != 1 || c.Applied != uint32(fields.Count) || c.UnknownKeys != 0 || c.Discarded != 0 {
		t.Fatalf("counters: flushes=%d %+v", flushes, c)
	}
	for _, p := range pairs {
		id, _ := fields.Lookup(p.Key)
		if got := store.Value(id); got != strings.TrimSpace(p.Value) {
			t.Fatalf("%s: stored=%q sent=%q", p.Key, got, p.Value)
		}
	}
	if store.Value(fields.Uptime) != "1d 1h 1m" {
		t.Fatalf("uptime: %q", store.Value(fields.Uptime))
	}
}
