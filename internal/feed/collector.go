// internal/feed/collector.go
package feed

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// Interfaces never used for the panel address.
var skipIfacePrefixes = []string{"lo", "tun", "nordlynx", "wg", "docker", "br-", "veth"}

// Physical interfaces preferred for the panel address.
var wiredIfacePrefixes = []string{"eth", "enp", "eno", "ens"}

// SMB and NetBIOS session ports.
var smbPorts = map[uint32]bool{445: true, 139: true}

// First ephemeral port; connections from here up are outgoing.
const ephemeralPortStart = 49152

// Collector samples the host through gopsutil.
// Rates are derived from the previous sample, so one Collector must be
// reused across frames. Not safe for concurrent use.
type Collector struct {
	diskPath string
	prev     *Sample
}

// NewCollector samples disk usage at diskPath, falling back to "/".
func NewCollector(diskPath string) *Collector {
	if diskPath == "" {
		diskPath = "/"
	}
	return &Collector{diskPath: diskPath}
}

// Collect reads the host and returns one formatted frame.
func (c *Collector) Collect(ctx context.Context) ([]Pair, Sample) {
	cur := c.sample(ctx)
	pairs := Format(cur, c.prev)
	c.prev = &cur
	return pairs, cur
}

func (c *Collector) sample(ctx context.Context) Sample {
	s := Sample{
		At:         time.Now(),
		Procs:      -1,
		SMBClients: -1,
		ConnIn:     -1,
	}

	if ifs, err := psnet.InterfacesWithContext(ctx); err == nil {
		s.IP = pickIP(ifs)
	}

	if up, err := host.UptimeWithContext(ctx); err == nil {
		s.UptimeSec, s.UptimeOK = up, true
	}

	if avg, err := load.AvgWithContext(ctx); err == nil && avg != nil {
		s.Load = [3]float64{avg.Load1, avg.Load5, avg.Load15}
		s.LoadOK = true
	}

	// interval 0 compares against the previous call
	if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
		s.CPUPct, s.CPUOK = pct[0], true
	}

	// partial results come back with a warnings error
	if temps, _ := host.SensorsTemperaturesWithContext(ctx); len(temps) > 0 {
		s.CPUTemp, s.TempOK = pickTemp(temps)
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		s.RAMUsed, s.RAMTotal, s.RAMPct = vm.Used, vm.Total, vm.UsedPercent
		s.MemOK = true
	}

	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil && sw != nil {
		s.SwapUsed, s.SwapTotal, s.SwapPct = sw.Used, sw.Total, sw.UsedPercent
		s.SwapOK = true
	}

	du, err := disk.UsageWithContext(ctx, c.diskPath)
	if err != nil && c.diskPath != "/" {
		du, err = disk.UsageWithContext(ctx, "/")
	}
	if err == nil && du != nil {
		s.DiskUsed, s.DiskTotal, s.DiskPct = du.Used, du.Total, du.UsedPercent
		s.DiskOK = true
	}

	if nio, err := psnet.IOCountersWithContext(ctx, false); err == nil && len(nio) > 0 {
		s.NetRx, s.NetTx, s.NetOK = nio[0].BytesRecv, nio[0].BytesSent, true
	}

	if dio, err := disk.IOCountersWithContext(ctx); err == nil && len(dio) > 0 {
		s.DiskRead, s.DiskWrite = sumWholeDisks(dio)
		s.IOOK = true
	}

	if pids, err := process.PidsWithContext(ctx); err == nil {
		s.Procs = len(pids)
	}

	if conns, err := psnet.ConnectionsWithContext(ctx, "tcp"); err == nil {
		s.SMBClients = countSMBClients(conns)
		s.ConnIn = countIncoming(conns)
	}

	return s
}

func hasPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// pickIP returns the first IPv4 address of a wired interface, else the first
// private IPv4 address of any non-virtual interface, else "0.0.0.0".
func pickIP(ifs psnet.InterfaceStatList) string {
	ipv4 := func(iface psnet.InterfaceStat, private bool) string {
		for _, a := range iface.Addrs {
			ip, _, err := net.ParseCIDR(a.Addr)
			if err != nil {
				ip = net.ParseIP(a.Addr)
			}
			if ip == nil || ip.To4() == nil || ip.IsLoopback() {
				continue
			}
			if private && !ip.IsPrivate() {
				continue
			}
			return ip.To4().String()
		}
		return ""
	}

	for _, iface := range ifs {
		if hasPrefix(iface.Name, skipIfacePrefixes) || !hasPrefix(iface.Name, wiredIfacePrefixes) {
			continue
		}
		if ip := ipv4(iface, false); ip != "" {
			return ip
		}
	}
	for _, iface := range ifs {
		if hasPrefix(iface.Name, skipIfacePrefixes) {
			continue
		}
		if ip := ipv4(iface, true); ip != "" {
			return ip
		}
	}
	return "0.0.0.0"
}

// pickTemp prefers a CPU package or thermal zone sensor, else the first one.
func pickTemp(temps []host.TemperatureStat) (float64, bool) {
	for _, t := range temps {
		k := strings.ToLower(t.SensorKey)
		if strings.Contains(k, "coretemp") || strings.Contains(k, "k10temp") ||
			strings.Contains(k, "cpu") || strings.Contains(k, "thermal_zone0") {
			return t.Temperature, true
		}
	}
	return temps[0].Temperature, true
}

// sumWholeDisks adds the counters of whole devices only, so partitions
// (sda1, nvme0n1p2) are not counted twice.
func sumWholeDisks(dio map[string]disk.IOCountersStat) (read, write uint64) {
	for name, st := range dio {
		if isPartition(name, dio) {
			continue
		}
		read += st.ReadBytes
		write += st.WriteBytes
	}
	return read, write
}

func isPartition(name string, dio map[string]disk.IOCountersStat) bool {
	for other := range dio {
		if other == "" || other == name || !strings.HasPrefix(name, other) {
			continue
		}
		// devices ending in a digit separate partitions with 'p'
		rest := name[len(other):]
		if isDigit(other[len(other)-1]) {
			if !strings.HasPrefix(rest, "p") {
				continue
			}
			rest = rest[1:]
		}
		if rest != "" && isDigit(rest[0]) {
			return true
		}
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func established(c psnet.ConnectionStat) bool {
	return c.Status == "ESTABLISHED" && c.Laddr.IP != "" && c.Raddr.IP != ""
}

// countSMBClients counts distinct remote hosts on local SMB ports.
func countSMBClients(conns []psnet.ConnectionStat) int {
	hosts := make(map[string]struct{})
	for _, c := range conns {
		if established(c) && smbPorts[c.Laddr.Port] {
			hosts[c.Raddr.IP] = struct{}{}
		}
	}
	return len(hosts)
}

// countIncoming counts established connections on non-ephemeral local
// ports, SMB excluded.
func countIncoming(conns []psnet.ConnectionStat) int {
	n := 0
	for _, c := range conns {
		if established(c) && c.Laddr.Port < ephemeralPortStart && !smbPorts[c.Laddr.Port] {
			n++
		}
	}
	return n
}
