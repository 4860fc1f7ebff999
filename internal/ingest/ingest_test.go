// internal/ingest/ingest_test.go
package ingest

import (
	"errors"
	"strings"
	"testing"
)

// ---- helpers ----

func pushAll(a *LineAccumulator, s string) []string {
	var out []string
	for i := 0; i < len(s); i++ {
		if line, _, ok := a.Push(s[i]); ok {
			out = append(out, line)
		}
	}
	return out
}

type fakeStore struct {
	known  map[string]bool
	values map[string]string
}

func newFakeStore(keys ...string) *fakeStore {
	f := &fakeStore{known: map[string]bool{}, values: map[string]string{}}
	for _, k := range keys {
		f.known[k] = true
	}
	return f
}

func (f *fakeStore) Apply(key, value string) bool {
	if !f.known[key] {
		return false
	}
	f.values[key] = value
	return true
}

// ---- accumulator ----

func TestAccumulator_CRIgnoredLFTerminates(t *testing.T) {
	var a LineAccumulator
	lines := pushAll(&a, "ip=1.2.3.4\r\nEND\r\n")

	if len(lines) != 2 || lines[0] != "ip=1.2.3.4" || lines[1] != "END" {
		t.Fatalf("unexpected lines: %q", lines)
	}
	if a.Len() != 0 {
		t.Fatalf("buffer not reset: len=%d", a.Len())
	}
}

func TestAccumulator_TrimsAndDropsBlank(t *testing.T) {
	var a LineAccumulator
	lines := pushAll(&a, "\n   \n\t up = 3m \t\n")

	if len(lines) != 1 || lines[0] != "up = 3m" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestAccumulator_BoundNeverExceeded(t *testing.T) {
	var a LineAccumulator
	for i := 0; i < 1000; i++ {
		a.Push('x')
		if a.Len() > MaxLineLen {
			t.Fatalf("buffer exceeded bound: %d", a.Len())
		}
	}

	line, truncated, ok := a.Push('\n')
	if !ok {
		t.Fatalf("expected a line")
	}
	if !truncated {
		t.Fatalf("expected truncated flag")
	}
	if len(line) != MaxLineLen {
		t.Fatalf("line len: got=%d want=%d", len(line), MaxLineLen)
	}

	// next line starts clean
	line, truncated, ok = a.Push('y')
	if ok || truncated || line != "" {
		t.Fatalf("non-terminator should not emit")
	}
	line, truncated, ok = a.Push('\n')
	if !ok || truncated || line != "y" {
		t.Fatalf("after reset: line=%q truncated=%v ok=%v", line, truncated, ok)
	}
}

func TestAccumulator_ExactBoundIsNotTruncated(t *testing.T) {
	var a LineAccumulator
	lines := pushAll(&a, strings.Repeat("z", MaxLineLen))
	if len(lines) != 0 {
		t.Fatalf("no terminator yet")
	}
	_, truncated, ok := a.Push('\n')
	if !ok || truncated {
		t.Fatalf("exactly %d bytes should not be truncated", MaxLineLen)
	}
}

// ---- parser ----

func TestParseLine(t *testing.T) {
	cases := []struct {
		in    string
		kind  Kind
		key   string
		value string
	}{
		{"END", KindFlush, "", ""},
		{"ip=10.0.0.5", KindApply, "ip", "10.0.0.5"},
		{"up = 1d 2h", KindApply, "up", "1d 2h"},
		{"ip=", KindApply, "ip", ""},
		{"a=b=c", KindApply, "a", "b=c"},
		{"=value", KindDiscard, "", ""},
		{"novalue", KindDiscard, "", ""},
		{"end", KindDiscard, "", ""},
		{"END=1", KindApply, "END", "1"},
	}

	for _, c := range cases {
		ev := ParseLine(c.in)
		if ev.Kind != c.kind || ev.Key != c.key || ev.Value != c.value {
			t.Fatalf("ParseLine(%q) = %+v, want kind=%s key=%q value=%q",
				c.in, ev, c.kind, c.key, c.value)
		}
	}
}

// ---- pipeline ----

func TestPipeline_ApplyThenFlush(t *testing.T) {
	store := newFakeStore("ip", "up")
	flushes := 0
	p := NewPipeline(store, func() (int, error) {
		flushes++
		return 2, nil
	})

	p.Feed([]byte("ip=10.0.0.5\nbogus=1\nnoequals\n=x\nEND\n"))

	if store.values["ip"] != "10.0.0.5" {
		t.Fatalf("ip: got=%q", store.values["ip"])
	}
	if flushes != 1 {
		t.Fatalf("expected 1 flush, got %d", flushes)
	}

	c := p.Counters()
	if c.Lines != 5 || c.Applied != 1 || c.UnknownKeys != 1 || c.Discarded != 2 || c.Flushes != 1 || c.Redrawn != 2 {
		t.Fatalf("unexpected counters: %+v", c)
	}
	if p.State() != StateAccumulating {
		t.Fatalf("pipeline should rest in accumulating, got %s", p.State())
	}
}

func TestPipeline_MalformedLinesDoNotMutate(t *testing.T) {
	store := newFakeStore("ip")
	store.values["ip"] = "orig"
	p := NewPipeline(store, nil)

	p.Feed([]byte("ip\n=ip\n   \n\r\n"))

	if store.values["ip"] != "orig" {
		t.Fatalf("malformed line mutated store: %q", store.values["ip"])
	}
}

func TestPipeline_OversizedLineKeyIsCapped(t *testing.T) {
	var gotKey string
	capture := applierFunc(func(k, v string) bool {
		gotKey = k
		return false
	})

	p := NewPipeline(capture, nil)
	p.Feed([]byte(strings.Repeat("k", 150) + "=" + strings.Repeat("v", 100) + "\n"))
	if len(gotKey) != 150 {
		t.Fatalf("key len: got=%d want=150", len(gotKey))
	}

	// 250 key bytes: '=' falls past the bound, line is discarded
	gotKey = ""
	p.Feed([]byte(strings.Repeat("k", 250) + "=val\n"))
	if gotKey != "" {
		t.Fatalf("expected discard, got key of len %d", len(gotKey))
	}

	c := p.Counters()
	if c.Truncated != 2 {
		t.Fatalf("truncated: got=%d want=2", c.Truncated)
	}
}

func TestPipeline_StateTransitions(t *testing.T) {
	p := NewPipeline(newFakeStore("ip"), func() (int, error) { return 0, nil })

	var trace []string
	p.OnTransition = func(from, to State) {
		trace = append(trace, from.String()+">"+to.String())
	}

	p.Feed([]byte("ip=1\nEND\n"))

	want := []string{
		"accumulating>line_ready", "line_ready>applying", "applying>accumulating",
		"accumulating>line_ready", "line_ready>rendering", "rendering>accumulating",
	}
	if strings.Join(trace, ",") != strings.Join(want, ",") {
		t.Fatalf("trace:\n got=%v\nwant=%v", trace, want)
	}
}

func TestPipeline_FlushErrorRecorded(t *testing.T) {
	boom := errors.New("present failed")
	p := NewPipeline(newFakeStore(), func() (int, error) { return 1, boom })

	p.Feed([]byte("END\n"))

	if err := p.TakeErr(); !errors.Is(err, boom) {
		t.Fatalf("expected flush error, got %v", err)
	}
	if err := p.TakeErr(); err != nil {
		t.Fatalf("error should be cleared, got %v", err)
	}
	if c := p.Counters(); c.FlushErrors != 1 || c.Redrawn != 1 {
		t.Fatalf("unexpected counters: %+v", c)
	}
}

type applierFunc func(k, v string) bool

func (f applierFunc) Apply(k, v string) bool { return f(k, v) }
