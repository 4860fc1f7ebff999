// internal/fields/groups.go
package fields

// GroupID identifies one display region.
type GroupID uint8

const (
	GroupIP GroupID = iota
	GroupUptime
	GroupLoad
	GroupCPU
	GroupRAM
	GroupSwap
	GroupDisk
	GroupNet
	GroupIO
	GroupStats

	// GroupCount is the number of display regions.
	GroupCount int = iota
)

// Group is a set of fields that repaint together as one region.
type Group struct {
	ID      GroupID
	Name    string
	Members []ID
}

// groups is in paint order (top of the panel to bottom).
var groups = [GroupCount]Group{
	{GroupIP, "ip", []ID{IP}},
	{GroupUptime, "uptime", []ID{Uptime}},
	{GroupLoad, "load", []ID{Load1, Load5, Load15}},
	{GroupCPU, "cpu", []ID{CPUPct, CPUTemp}},
	{GroupRAM, "ram", []ID{RAMPct, RAMUsed, RAMTotal}},
	{GroupSwap, "swap", []ID{SwapPct, SwapUsed, SwapTotal}},
	{GroupDisk, "disk", []ID{DiskPct, DiskUsed, DiskTotal}},
	{GroupNet, "net", []ID{NetRx, NetTx}},
	{GroupIO, "io", []ID{DiskRead, DiskWrite}},
	{GroupStats, "stats", []ID{ProcCount, SMBClients, ConnIn}},
}

// Groups returns every display region in paint order.
func Groups() []Group {
	out := make([]Group, GroupCount)
	copy(out, groups[:])
	return out
}

// GroupOf returns the group a field belongs to.
func GroupOf(id ID) GroupID {
	for _, g := range groups {
		for _, m := range g.Members {
			if m == id {
				return g.ID
			}
		}
	}
	// unreachable for a valid ID: every field is in exactly one group
	return GroupID(GroupCount)
}

func (g GroupID) String() string {
	if int(g) >= GroupCount {
		return "unknown"
	}
	return groups[g].Name
}

// Members returns the fields painted by the group.
func (g GroupID) Members() []ID {
	if int(g) >= GroupCount {
		return nil
	}
	return groups[g].Members
}
