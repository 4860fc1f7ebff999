// internal/ingest/parse.go
package ingest

import "strings"

// FlushSentinel is the line that triggers a render pass.
const FlushSentinel = "END"

// Kind is the outcome of parsing one line.
type Kind uint8

const (
	// KindDiscard means the line carries nothing usable.
	KindDiscard Kind = iota
	// KindFlush is the END sentinel.
	KindFlush
	// KindApply is a key/value update.
	KindApply
)

func (k Kind) String() string {
	switch k {
	case KindFlush:
		return "flush"
	case KindApply:
		return "apply"
	default:
		return "discard"
	}
}

// Event is one parsed line.
type Event struct {
	Kind  Kind
	Key   string
	Value string
}

// ParseLine classifies one trimmed, non-empty line.
// Syntax only: keys are not checked against the field table here.
func ParseLine(line string) Event {
	if line == FlushSentinel {
		return Event{Kind: KindFlush}
	}

	eq := strings.IndexByte(line, '=')
	if eq <= 0 {
		return Event{Kind: KindDiscard}
	}

	key := strings.TrimSpace(line[:eq])
	if key == "" {
		return Event{Kind: KindDiscard}
	}

	return Event{
		Kind:  KindApply,
		Key:   key,
		Value: strings.TrimSpace(line[eq+1:]),
	}
}
