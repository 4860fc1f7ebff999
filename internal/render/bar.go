// internal/render/bar.go
package render

// Tier is the fill severity of a percent bar.
type Tier uint8

const (
	TierNormal Tier = iota
	TierWarning
	TierCritical
)

func (t Tier) String() string {
	switch t {
	case TierWarning:
		return "warning"
	case TierCritical:
		return "critical"
	default:
		return "normal"
	}
}

// TierFor classifies a percent value.
func TierFor(percent int) Tier {
	switch {
	case percent > TierCritAbove:
		return TierCritical
	case percent > TierWarnAbove:
		return TierWarning
	default:
		return TierNormal
	}
}

// Color returns the bar fill color of the tier.
func (t Tier) Color() Color {
	switch t {
	case TierCritical:
		return ColorCritical
	case TierWarning:
		return ColorWarning
	default:
		return ColorAmber
	}
}

// FillWidth maps a percent onto the bar interior (bar width minus 4).
// Geometry clamps to 0..100; the tier does not.
func FillWidth(percent, width int) int {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return percent * (width - 4) / 100
}

// Segments returns the x offsets and widths of the filled segments
// for a fill width: segW-wide blocks separated by segGap.
func Segments(fillW int) (xs, ws []int) {
	for sx := 0; sx < fillW; sx += segW + segGap {
		sw := segW
		if fillW-sx < sw {
			sw = fillW - sx
		}
		xs = append(xs, sx)
		ws = append(ws, sw)
	}
	return xs, ws
}

// drawBar paints a segmented percent bar with its outline.
func drawBar(r Rasterizer, x, y, w, h, percent int) {
	fill := TierFor(percent).Color()

	r.DrawRect(x, y, w, h, ColorDim)
	r.FillRect(x+1, y+1, w-2, h-2, ColorBlack)

	xs, ws := Segments(FillWidth(percent, w))
	for i := range xs {
		r.FillRect(x+2+xs[i], y+2, ws[i], h-4, fill)
	}
}
