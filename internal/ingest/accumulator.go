// internal/ingest/accumulator.go
package ingest

import "strings"

// MaxLineLen is the line bound of the wire protocol.
// Bytes past the bound are dropped until the next terminator.
const MaxLineLen = 200

const (
	byteCR = 0x0D
	byteLF = 0x0A
)

// LineAccumulator turns a byte stream into trimmed lines.
// Zero value is ready to use.
type LineAccumulator struct {
	buf       [MaxLineLen]byte
	n         int
	truncated bool
}

// Push consumes one byte.
//
// ok is true only when a terminator completed a non-empty line.
// truncated reports that bytes of that line were dropped at the bound.
func (a *LineAccumulator) Push(c byte) (line string, truncated, ok bool) {
	switch c {
	case byteCR:
		return "", false, false

	case byteLF:
		raw := string(a.buf[:a.n])
		truncated = a.truncated
		a.Reset()

		line = strings.TrimSpace(raw)
		if line == "" {
			return "", false, false
		}
		return line, truncated, true

	default:
		if a.n < MaxLineLen {
			a.buf[a.n] = c
			a.n++
		} else {
			a.truncated = true
		}
		return "", false, false
	}
}

// Len returns the number of buffered bytes.
func (a *LineAccumulator) Len() int { return a.n }

// Reset empties the buffer.
func (a *LineAccumulator) Reset() {
	a.n = 0
	a.truncated = false
}
