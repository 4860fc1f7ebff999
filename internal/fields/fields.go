// internal/fields/fields.go
package fields

// ID identifies one recognized telemetry field.
// Order is the wire table order; it carries no rendering meaning.
type ID uint8

const (
	IP ID = iota
	Uptime
	Load1
	Load5
	Load15
	CPUPct
	CPUTemp
	RAMUsed
	RAMTotal
	RAMPct
	SwapUsed
	SwapTotal
	SwapPct
	DiskUsed
	DiskTotal
	DiskPct
	NetRx
	NetTx
	DiskRead
	DiskWrite
	ProcCount
	SMBClients
	ConnIn

	// Count is the number of recognized fields.
	Count int = iota
)

// MaxValueLen is the capacity of one text buffer.
// A value can never exceed the line bound of the wire protocol.
const MaxValueLen = 200

type entry struct {
	key         string
	placeholder string
}

var table = [Count]entry{
	IP:         {"ip", "---.---.---.---"},
	Uptime:     {"up", "--"},
	Load1:      {"load_1", "--"},
	Load5:      {"load_5", "--"},
	Load15:     {"load_15", "--"},
	CPUPct:     {"cpu_pct", "0"},
	CPUTemp:    {"cpu_temp", "--"},
	RAMUsed:    {"ram_used", "--"},
	RAMTotal:   {"ram_total", "--"},
	RAMPct:     {"ram_pct", "0"},
	SwapUsed:   {"swap_used", "--"},
	SwapTotal:  {"swap_total", "--"},
	SwapPct:    {"swap_pct", "0"},
	DiskUsed:   {"disk_used", "--"},
	DiskTotal:  {"disk_total", "--"},
	DiskPct:    {"disk_pct", "0"},
	NetRx:      {"net_rx", "--"},
	NetTx:      {"net_tx", "--"},
	DiskRead:   {"disk_read", "--"},
	DiskWrite:  {"disk_write", "--"},
	ProcCount:  {"proc_count", "--"},
	SMBClients: {"smb_clients", "--"},
	ConnIn:     {"conn_in", "--"},
}

var byKey = func() map[string]ID {
	m := make(map[string]ID, Count)
	for i := range table {
		m[table[i].key] = ID(i)
	}
	return m
}()

// Key returns the wire key of the field.
func (id ID) Key() string {
	if int(id) >= Count {
		return ""
	}
	return table[id].key
}

// Placeholder returns the startup text of the field.
func (id ID) Placeholder() string {
	if int(id) >= Count {
		return ""
	}
	return table[id].placeholder
}

func (id ID) String() string { return id.Key() }

// Lookup resolves a wire key. Keys are case-sensitive.
func Lookup(key string) (ID, bool) {
	id, ok := byKey[key]
	return id, ok
}

// Keys returns all recognized wire keys in table order.
func Keys() []string {
	out := make([]string, Count)
	for i := range table {
		out[i] = table[i].key
	}
	return out
}
