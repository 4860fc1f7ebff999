// internal/render/regions.go
package render

import "github.com/tamzrod/panelmon/internal/fields"

// pen prints consecutive runs of text like a cursor-based display driver.
type pen struct {
	r    Rasterizer
	x, y int
	size int
}

func newPen(r Rasterizer, x, y int) *pen {
	return &pen{r: r, x: x, y: y, size: 1}
}

func (p *pen) print(s string, fg Color) *pen {
	p.r.DrawText(p.x, p.y, s, fg, ColorBlack, p.size)
	p.x += TextWidth(s, p.size)
	return p
}

func (p *pen) at(x int) *pen {
	p.x = x
	return p
}

// region is one group's area and its painter.
type region struct {
	group fields.GroupID
	clear Rect
	paint func(r Rasterizer, v FieldView)
}

func barRegion(g fields.GroupID, y int, pct fields.ID, detail func(v FieldView) string) region {
	return region{
		group: g,
		clear: Rect{barX, y, infoX + infoW - barX, barH},
		paint: func(r Rasterizer, v FieldView) {
			drawBar(r, barX, y, barW, barH, v.Percent(pct))
			newPen(r, infoX, y+2).
				print(v.Value(pct)+"%  ", ColorHigh).
				print(detail(v), ColorMedium)
		},
	}
}

// panelRegions is the fixed layout, in paint order.
var panelRegions = []region{
	{
		group: fields.GroupIP,
		clear: Rect{4, rowIP, ScreenW - 8, CharH},
		paint: func(r Rasterizer, v FieldView) {
			ip := v.Value(fields.IP)
			x := (ScreenW - TextWidth(ip, 1)) / 2
			r.DrawText(x, rowIP, ip, ColorAmber, ColorBlack, 1)
		},
	},
	{
		group: fields.GroupUptime,
		clear: Rect{32, rowUp, 150, 10},
		paint: func(r Rasterizer, v FieldView) {
			newPen(r, 32, rowUp).print(v.Value(fields.Uptime), ColorAmber)
		},
	},
	{
		group: fields.GroupLoad,
		clear: Rect{44, rowLoad, 180, 10},
		paint: func(r Rasterizer, v FieldView) {
			newPen(r, 44, rowLoad).
				print(v.Value(fields.Load1), ColorAmber).
				print(" / ", ColorAmber).
				print(v.Value(fields.Load5), ColorAmber).
				print(" / ", ColorAmber).
				print(v.Value(fields.Load15), ColorAmber)
		},
	},
	barRegion(fields.GroupCPU, rowCPU, fields.CPUPct, func(v FieldView) string {
		return v.Value(fields.CPUTemp) + "C"
	}),
	barRegion(fields.GroupRAM, rowRAM, fields.RAMPct, func(v FieldView) string {
		return v.Value(fields.RAMUsed) + "/" + v.Value(fields.RAMTotal) + "M"
	}),
	barRegion(fields.GroupSwap, rowSwap, fields.SwapPct, func(v FieldView) string {
		return v.Value(fields.SwapUsed) + "/" + v.Value(fields.SwapTotal) + "M"
	}),
	barRegion(fields.GroupDisk, rowDisk, fields.DiskPct, func(v FieldView) string {
		return v.Value(fields.DiskUsed) + "/" + v.Value(fields.DiskTotal) + "G"
	}),
	{
		group: fields.GroupNet,
		clear: Rect{44, rowNet, 270, 10},
		paint: func(r Rasterizer, v FieldView) {
			newPen(r, 44, rowNet).
				print("Rx:"+v.Value(fields.NetRx)+"  Tx:"+v.Value(fields.NetTx), ColorAmber).
				print(" KB/s", ColorDim)
		},
	},
	{
		group: fields.GroupIO,
		clear: Rect{44, rowIO, 270, 10},
		paint: func(r Rasterizer, v FieldView) {
			newPen(r, 44, rowIO).
				print("R:"+v.Value(fields.DiskRead)+"  W:"+v.Value(fields.DiskWrite), ColorAmber).
				print(" MB/s", ColorDim)
		},
	},
	{
		group: fields.GroupStats,
		clear: Rect{8, rowStat, 304, 12},
		paint: func(r Rasterizer, v FieldView) {
			p := newPen(r, 8, rowStat)
			p.print("PROC:", ColorMedium).print(v.Value(fields.ProcCount), ColorAmber)
			p.at(100).print("SMB:", ColorMedium).print(v.Value(fields.SMBClients), ColorAmber)
			p.at(180).print("CONN:", ColorMedium).print(v.Value(fields.ConnIn), ColorAmber)
		},
	},
}

// RegionOf returns the clear rectangle of a group.
func RegionOf(g fields.GroupID) (Rect, bool) {
	for _, rg := range panelRegions {
		if rg.group == g {
			return rg.clear, true
		}
	}
	return Rect{}, false
}

// drawChrome paints everything that never changes: background, border,
// title and row labels.
func drawChrome(r Rasterizer) {
	r.FillRect(0, 0, ScreenW, ScreenH, ColorBlack)
	r.DrawRect(0, 0, ScreenW, ScreenH, ColorDim)
	r.DrawRect(2, 2, ScreenW-4, ScreenH-4, ColorDim)

	// title with a one-pixel glow offset
	x := (ScreenW - TextWidth(title, 2)) / 2
	r.DrawText(x+1, rowTitle+1, title, ColorDim, ColorBlack, 2)
	r.DrawText(x, rowTitle, title, ColorHigh, ColorBlack, 2)

	for _, l := range labels {
		r.DrawText(8, l.y, l.text, ColorMedium, ColorBlack, 1)
	}
}
