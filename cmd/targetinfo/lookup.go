package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"targetinfo/internal/target"
	"targetinfo/internal/trace"
	"targetinfo/internal/triple"
)

type lookupPayload struct {
	Target      string `json:"target"`
	Description string `json:"description"`
	Backend     string `json:"backend"`
	JIT         bool   `json:"jit"`
	Triple      string `json:"triple"`
	Endian      string `json:"endian,omitempty"`
	PointerSize int    `json:"pointer_size,omitempty"`
}

func newLookupCmd(c *cli) *cobra.Command {
	var (
		tripleFlag string
		march      string
		format     string
	)
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Select the target for a triple or an explicit target name",
		Long: `lookup picks a target the way a compiler driver does: --march names the
target directly, otherwise the architecture of --triple decides. Without either
flag the [select] section of the configuration is used, then the host triple.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("triple") {
				tripleFlag = c.cfg.Select.Triple
			}
			if !cmd.Flags().Changed("march") {
				march = c.cfg.Select.March
			}

			tt := triple.Host()
			if strings.TrimSpace(tripleFlag) != "" {
				var err error
				if tt, err = triple.Parse(tripleFlag); err != nil {
					return err
				}
			} else if march != "" {
				// an explicit target with no triple starts from an unknown arch
				tt = tt.WithArch(triple.UnknownArch)
			}

			span := trace.Begin(trace.FromContext(cmd.Context()), trace.ScopeDriver, "lookup", 0)
			t, resolved, err := target.Resolve(march, tt)
			span.End(resolved.String())
			if err != nil {
				return err
			}

			payload := lookupPayload{
				Target:      t.Name(),
				Description: t.ShortDescription(),
				Backend:     t.BackendName(),
				JIT:         t.HasJIT(),
				Triple:      resolved.String(),
				PointerSize: resolved.Arch.PointerSize(),
			}
			if resolved.Arch != triple.UnknownArch {
				payload.Endian = "little"
				if resolved.Arch.IsBigEndian() {
					payload.Endian = "big"
				}
			}
			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "pretty":
				renderLookupPretty(out, payload, c.useColor(cmd, out))
				return nil
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&tripleFlag, "triple", "", "target triple, e.g. bpfel-unknown-none")
	cmd.Flags().StringVar(&march, "march", "", "explicit target name, e.g. bpfeb")
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}

func renderLookupPretty(out io.Writer, p lookupPayload, useColor bool) {
	name := color.New(color.FgCyan, color.Bold)
	if useColor {
		name.EnableColor()
	} else {
		name.DisableColor()
	}
	jit := "no"
	if p.JIT {
		jit = "yes"
	}
	fmt.Fprintf(out, "target:  %s - %s\n", name.Sprint(p.Target), p.Description)
	fmt.Fprintf(out, "backend: %s\n", p.Backend)
	fmt.Fprintf(out, "jit:     %s\n", jit)
	fmt.Fprintf(out, "triple:  %s\n", p.Triple)
	if p.Endian != "" {
		fmt.Fprintf(out, "layout:  %s endian, %d-byte pointers\n", p.Endian, p.PointerSize)
	}
}
