package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if l.String() != s {
			t.Errorf("expected %q, got %q", s, l.String())
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeFamily) {
		t.Error("phase level should not emit family scope")
	}
	if !LevelDetail.ShouldEmit(ScopeFamily) {
		t.Error("detail level should emit family scope")
	}
	if LevelDetail.ShouldEmit(ScopeLookup) {
		t.Error("detail level should not emit lookup scope")
	}
	if !LevelDebug.ShouldEmit(ScopeLookup) {
		t.Error("debug level should emit lookup scope")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	Point(tr, ScopeFamily, "register", "bpfel", "backend", "BPF", "jit", "true")
	Point(tr, ScopeLookup, "lookup", "bpfel")

	out := buf.String()
	if !strings.Contains(out, "register (bpfel) {backend=BPF, jit=true}") {
		t.Errorf("unexpected text output: %q", out)
	}
	if strings.Contains(out, "lookup") {
		t.Errorf("lookup event should be filtered at detail level: %q", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)

	span := Begin(tr, ScopeDriver, "init", 0)
	span.WithExtra("targets", "4").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"kind":"begin"`) || !strings.Contains(lines[1], `"kind":"end"`) {
		t.Errorf("unexpected events: %q", lines)
	}
	if !strings.Contains(lines[1], `"targets":"4"`) {
		t.Errorf("missing extra on end event: %q", lines[1])
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	Point(r, ScopeLookup, "a", "")
	Point(r, ScopeLookup, "b", "")
	Point(r, ScopeLookup, "c", "")

	events := r.Snapshot()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Name != "b" || events[1].Name != "c" {
		t.Errorf("expected [b c], got [%s %s]", events[0].Name, events[1].Name)
	}
}

func TestMultiTracer(t *testing.T) {
	var buf bytes.Buffer
	stream := NewStreamTracer(&buf, LevelDebug, FormatText)
	ring := NewRingTracer(8, LevelDebug)
	m := NewMultiTracer(LevelDebug, stream, ring)

	Point(m, ScopeRegistry, "seal", "")

	if got, ok := m.Ring(); !ok || got != ring {
		t.Fatal("expected ring tracer to be found")
	}
	if len(ring.Snapshot()) != 1 || buf.Len() == 0 {
		t.Error("expected event in both tracers")
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Error("expected disabled tracer")
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("expected Nop from empty context")
	}
	r := NewRingTracer(1, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != r {
		t.Error("expected tracer from context")
	}
}
