// Package report renders the contents of a target registry.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"

	"targetinfo/internal/target"
	"targetinfo/internal/triple"
)

// snapshotSchema is bumped whenever Snapshot changes shape.
const snapshotSchema uint16 = 1

// Entry describes one registered target.
type Entry struct {
	Index       uint16   `json:"index" msgpack:"index"`
	Name        string   `json:"name" msgpack:"name"`
	Description string   `json:"description" msgpack:"description"`
	Backend     string   `json:"backend" msgpack:"backend"`
	JIT         bool     `json:"jit" msgpack:"jit"`
	Arches      []string `json:"arches" msgpack:"-"`
	ArchIDs     []uint8  `json:"-" msgpack:"arches"`
}

// Snapshot is the binary listing written by WriteMsgpack.
type Snapshot struct {
	Schema  uint16  `msgpack:"schema"`
	Targets []Entry `msgpack:"targets"`
}

// Entries describes targets in the given order.
func Entries(targets []*target.Target) ([]Entry, error) {
	out := make([]Entry, 0, len(targets))
	for i, t := range targets {
		idx, err := safecast.Conv[uint16](i)
		if err != nil {
			return nil, fmt.Errorf("too many targets: %w", err)
		}
		e := Entry{
			Index:       idx,
			Name:        t.Name(),
			Description: t.ShortDescription(),
			Backend:     t.BackendName(),
			JIT:         t.HasJIT(),
			Arches:      []string{},
		}
		for _, a := range triple.Arches() {
			if t.MatchesArch(a) {
				e.Arches = append(e.Arches, a.String())
				e.ArchIDs = append(e.ArchIDs, triple.Ordinal(a))
			}
		}
		out = append(out, e)
	}
	return out, nil
}

// PrettyOptions controls WritePretty.
type PrettyOptions struct {
	Color   bool
	Verbose bool // append backend, JIT and matched architectures
}

// WritePretty writes the human-readable listing:
//
//	Registered Targets:
//	  bpf    - BPF (host endian)
//	  bpfeb  - BPF (big endian)
func WritePretty(w io.Writer, entries []Entry, opts PrettyOptions) error {
	nameColor := color.New(color.FgCyan, color.Bold)
	dimColor := color.New(color.Faint)
	if opts.Color {
		nameColor.EnableColor()
		dimColor.EnableColor()
	} else {
		nameColor.DisableColor()
		dimColor.DisableColor()
	}

	width := 0
	for _, e := range entries {
		width = max(width, runewidth.StringWidth(e.Name))
	}
	column := lipgloss.NewStyle().Width(width)

	var sb strings.Builder
	sb.WriteString("  Registered Targets:\n")
	if len(entries) == 0 {
		sb.WriteString("    (none)\n")
	}
	for _, e := range entries {
		sb.WriteString("    ")
		sb.WriteString(nameColor.Sprint(column.Render(e.Name)))
		sb.WriteString(" - ")
		sb.WriteString(e.Description)
		if opts.Verbose {
			sb.WriteString(dimColor.Sprint(verboseTail(e)))
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func verboseTail(e Entry) string {
	jit := "no jit"
	if e.JIT {
		jit = "jit"
	}
	arches := "by name only"
	if len(e.Arches) > 0 {
		arches = "arch " + strings.Join(e.Arches, ", ")
	}
	return fmt.Sprintf("  [%s, %s, %s]", e.Backend, jit, arches)
}

// WriteJSON writes entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteMsgpack writes entries as a msgpack Snapshot.
func WriteMsgpack(w io.Writer, entries []Entry) error {
	return msgpack.NewEncoder(w).Encode(&Snapshot{Schema: snapshotSchema, Targets: entries})
}

// ReadMsgpack decodes a Snapshot written by WriteMsgpack and restores the
// architecture names of every entry.
func ReadMsgpack(r io.Reader) ([]Entry, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Schema != snapshotSchema {
		return nil, fmt.Errorf("unsupported snapshot schema %d (want %d)", snap.Schema, snapshotSchema)
	}
	for i := range snap.Targets {
		e := &snap.Targets[i]
		e.Arches = make([]string, 0, len(e.ArchIDs))
		for _, id := range e.ArchIDs {
			a, err := triple.ArchFromOrdinal(int(id))
			if err != nil {
				return nil, fmt.Errorf("target %q: %w", e.Name, err)
			}
			e.Arches = append(e.Arches, a.String())
		}
	}
	return snap.Targets, nil
}
