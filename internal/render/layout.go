// internal/render/layout.go
package render

// ---- PALETTE (amber phosphor, RGB565) ----

const (
	ColorBlack    Color = 0x1080
	ColorDim      Color = 0x6260
	ColorMedium   Color = 0xCC80
	ColorAmber    Color = 0xFDE0
	ColorHigh     Color = 0xFEE0
	ColorWarning  Color = 0xFCC0
	ColorCritical Color = 0xF800
)

// ---- PANEL GEOMETRY ----

const (
	ScreenW = 320
	ScreenH = 240

	lineH  = 21
	startY = 5
)

// Row baselines, top to bottom.
const (
	rowTitle = startY + lineH*iota
	rowIP
	rowUp
	rowLoad
	rowCPU
	rowRAM
	rowSwap
	rowDisk
	rowNet
	rowIO
	rowStat
)

// ---- BAR GEOMETRY ----

const (
	barX = 44
	barW = 130
	barH = 11

	// bar text column
	infoX = 180
	infoW = 130

	segW   = 3
	segGap = 1
)

// Tier thresholds (percent, exclusive lower bounds).
const (
	TierWarnAbove = 75
	TierCritAbove = 90
)

const title = "[ SERVER MONITOR ]"

// Rect is a region in panel pixels.
type Rect struct {
	X, Y, W, H int
}

var labels = []struct {
	y    int
	text string
}{
	{rowUp, "UP:"},
	{rowLoad, "LOAD:"},
	{rowCPU, "CPU:"},
	{rowRAM, "RAM:"},
	{rowSwap, "SWP:"},
	{rowDisk, "DSK:"},
	{rowNet, "NET:"},
	{rowIO, "I/O:"},
}
