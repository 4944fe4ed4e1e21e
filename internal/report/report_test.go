package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"targetinfo/internal/target"
	"targetinfo/internal/triple"
)

func sampleEntries(t *testing.T) []Entry {
	t.Helper()
	r := target.NewRegistry()
	r.Register(new(target.Target), "bpf", "BPF (host endian)", "BPF", target.NeverMatch, true)
	r.Register(new(target.Target), "bpfeb", "BPF (big endian)", "BPF", target.ArchIs(triple.BPFEB), true)
	r.Register(new(target.Target), "sbf", "SBF (little endian)", "SBF", target.ArchIs(triple.SBF), false)
	entries, err := Entries(r.Targets())
	if err != nil {
		t.Fatal(err)
	}
	return entries
}

func TestEntries(t *testing.T) {
	entries := sampleEntries(t)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Name != "bpf" || len(entries[0].Arches) != 0 {
		t.Errorf("bpf should match no arch, got %+v", entries[0])
	}
	if entries[1].Index != 1 || strings.Join(entries[1].Arches, ",") != "bpfeb" {
		t.Errorf("unexpected bpfeb entry %+v", entries[1])
	}
	if entries[2].JIT {
		t.Error("sbf sample has no JIT")
	}
}

func TestWritePretty(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePretty(&buf, sampleEntries(t), PrettyOptions{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"  Registered Targets:\n",
		"    bpf   - BPF (host endian)\n",
		"    bpfeb - BPF (big endian)\n",
		"    sbf   - SBF (little endian)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("expected no escape sequences without color")
	}
}

func TestWritePrettyVerbose(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePretty(&buf, sampleEntries(t), PrettyOptions{Verbose: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "[BPF, jit, by name only]") {
		t.Errorf("missing name-only marker:\n%s", out)
	}
	if !strings.Contains(out, "[SBF, no jit, arch sbf]") {
		t.Errorf("missing sbf details:\n%s", out)
	}
}

func TestWritePrettyEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePretty(&buf, nil, PrettyOptions{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "(none)") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleEntries(t)); err != nil {
		t.Fatal(err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded[2]["name"] != "sbf" || decoded[2]["backend"] != "SBF" {
		t.Errorf("unexpected json entry %v", decoded[2])
	}
	if _, ok := decoded[0]["ArchIDs"]; ok {
		t.Error("arch ordinals must not leak into JSON")
	}
}

func TestMsgpackSnapshot(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMsgpack(&buf, sampleEntries(t)); err != nil {
		t.Fatal(err)
	}
	got, err := ReadMsgpack(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[1].Name != "bpfeb" || strings.Join(got[1].Arches, ",") != "bpfeb" {
		t.Errorf("unexpected decoded snapshot %+v", got)
	}
}

func TestReadMsgpackRejectsGarbage(t *testing.T) {
	if _, err := ReadMsgpack(strings.NewReader("not msgpack")); err == nil {
		t.Error("expected decode error")
	}
}
